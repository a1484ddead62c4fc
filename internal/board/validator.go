package board

import (
	"fmt"
	"strings"

	"welfared/internal/models"
	"welfared/internal/structures"
)

// Validator enforces the configured presence and status rules on a
// parsed record. It collects every violation instead of failing fast so
// one rejection can report everything wrong with a submission. It is
// stateless with respect to the roster.
type Validator struct {
	rules structures.ValidationConfig
}

func NewValidator(conf *structures.Config) *Validator {
	return &Validator{rules: conf.Validation}
}

func (v *Validator) Validate(rec *models.CheckinRecord) (bool, []string) {
	var errs []string

	required := []struct {
		enabled bool
		label   string
		value   string
	}{
		{v.rules.RequireCallsign, "CALLSIGN", rec.Callsign},
		{v.rules.RequireName, "NAME", rec.Name},
		{v.rules.RequireLocation, "LOCATION", rec.Location},
		{v.rules.RequireStatus, "STATUS", rec.Status},
	}
	for _, field := range required {
		if field.enabled && strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", field.label))
		}
	}

	status := strings.TrimSpace(rec.Status)
	if status != "" && len(v.rules.ValidStatuses) > 0 && !v.statusAllowed(status) {
		errs = append(errs, fmt.Sprintf("Invalid status: %q (valid: %s)",
			status, strings.Join(v.rules.ValidStatuses, ", ")))
	}

	return len(errs) == 0, errs
}

func (v *Validator) statusAllowed(status string) bool {
	for _, valid := range v.rules.ValidStatuses {
		if strings.EqualFold(status, valid) {
			return true
		}
	}
	return false
}
