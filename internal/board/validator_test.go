package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"welfared/internal/models"
	"welfared/internal/structures"
)

func validationConfig() *structures.Config {
	return &structures.Config{
		Validation: structures.ValidationConfig{
			RequireCallsign: true,
			RequireName:     true,
			RequireLocation: true,
			RequireStatus:   true,
			ValidStatuses:   []string{"SAFE", "NEED ASSISTANCE", "TRAFFIC"},
		},
	}
}

func validRecord() *models.CheckinRecord {
	return &models.CheckinRecord{
		Callsign: "KA1ABC",
		Name:     "John Smith",
		Location: "Oakville",
		Status:   "SAFE",
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	v := NewValidator(validationConfig())
	ok, errs := v.Validate(validRecord())
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidate_MissingFields(t *testing.T) {
	v := NewValidator(validationConfig())
	ok, errs := v.Validate(&models.CheckinRecord{})

	assert.False(t, ok)
	require.Len(t, errs, 4)
	assert.Contains(t, errs, "Missing required field: CALLSIGN")
	assert.Contains(t, errs, "Missing required field: NAME")
	assert.Contains(t, errs, "Missing required field: LOCATION")
	assert.Contains(t, errs, "Missing required field: STATUS")
}

func TestValidate_WhitespaceOnlyIsMissing(t *testing.T) {
	v := NewValidator(validationConfig())
	rec := validRecord()
	rec.Name = "   "

	ok, errs := v.Validate(rec)
	assert.False(t, ok)
	assert.Contains(t, errs, "Missing required field: NAME")
}

func TestValidate_InvalidStatus(t *testing.T) {
	v := NewValidator(validationConfig())
	rec := validRecord()
	rec.Status = "PANIC"

	ok, errs := v.Validate(rec)
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, `Invalid status: "PANIC" (valid: SAFE, NEED ASSISTANCE, TRAFFIC)`, errs[0])
}

func TestValidate_StatusCaseInsensitive(t *testing.T) {
	v := NewValidator(validationConfig())
	rec := validRecord()
	rec.Status = "safe"

	ok, errs := v.Validate(rec)
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	v := NewValidator(validationConfig())
	rec := &models.CheckinRecord{Callsign: "KA1ABC", Status: "PANIC"}

	ok, errs := v.Validate(rec)
	assert.False(t, ok)
	assert.Len(t, errs, 3)
}

func TestValidate_OptionalFieldsDisabled(t *testing.T) {
	conf := validationConfig()
	conf.Validation.RequireName = false
	conf.Validation.RequireLocation = false
	v := NewValidator(conf)

	rec := &models.CheckinRecord{Callsign: "KA1ABC", Status: "SAFE"}
	ok, errs := v.Validate(rec)
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidate_EmptyAllowListAcceptsAnyStatus(t *testing.T) {
	conf := validationConfig()
	conf.Validation.ValidStatuses = nil
	v := NewValidator(conf)

	rec := validRecord()
	rec.Status = "ANYTHING"
	ok, _ := v.Validate(rec)
	assert.True(t, ok)
}

func TestValidate_EmptyStatusSkipsAllowList(t *testing.T) {
	conf := validationConfig()
	conf.Validation.RequireStatus = false
	v := NewValidator(conf)

	rec := validRecord()
	rec.Status = ""
	ok, errs := v.Validate(rec)
	assert.True(t, ok)
	assert.Empty(t, errs)
}
