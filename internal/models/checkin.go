package models

import (
	"strings"
	"time"
)

// Canonical status values. The allow-list is operator configuration, so
// these are defaults rather than a closed set.
const (
	StatusSafe           = "SAFE"
	StatusNeedAssistance = "NEED ASSISTANCE"
	StatusTraffic        = "TRAFFIC"
)

// Power field values.
const (
	PowerOn        = "ON"
	PowerOff       = "OFF"
	PowerGenerator = "GENERATOR"
)

// HistoryEntry is one superseded state of a check-in, captured when a
// content-changing resubmission replaces the live record.
type HistoryEntry struct {
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	ReceivedTime time.Time `json:"received_time"`
}

// CheckinRecord is one sender's current state within a window instance.
// An empty string means the field was absent from the submission.
type CheckinRecord struct {
	Callsign string `json:"callsign"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status"`
	Power    string `json:"power,omitempty"`
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"`

	ReceivedTime     time.Time `json:"received_time"`
	FirstCheckinTime time.Time `json:"first_checkin_time"`

	// UpdateNumber is 0 for the first submission and increments once per
	// content-changing resubmission. It always equals len(History).
	UpdateNumber int            `json:"update_number"`
	History      []HistoryEntry `json:"history,omitempty"`
}

// CallsignKey is the case-insensitive identity used for reconciliation.
func (c *CheckinRecord) CallsignKey() string {
	return strings.ToUpper(strings.TrimSpace(c.Callsign))
}

// ContentEquals compares the four content fields with surrounding
// whitespace stripped. Identity and provenance fields are ignored, so a
// retransmission of the same message compares equal regardless of when
// it arrived.
func (c *CheckinRecord) ContentEquals(other *CheckinRecord) bool {
	return strings.TrimSpace(c.Name) == strings.TrimSpace(other.Name) &&
		strings.TrimSpace(c.Location) == strings.TrimSpace(other.Location) &&
		strings.TrimSpace(c.Status) == strings.TrimSpace(other.Status) &&
		strings.TrimSpace(c.Message) == strings.TrimSpace(other.Message)
}

// PreviousStatus returns the status the record held before its latest
// update, or "" for a never-updated record.
func (c *CheckinRecord) PreviousStatus() string {
	if c.UpdateNumber == 0 || len(c.History) == 0 {
		return ""
	}
	return c.History[len(c.History)-1].Status
}

// Clone returns a deep copy, safe to hand to renderers while the live
// record may be replaced by the next update.
func (c *CheckinRecord) Clone() *CheckinRecord {
	cp := *c
	if c.History != nil {
		cp.History = make([]HistoryEntry, len(c.History))
		copy(cp.History, c.History)
	}
	return &cp
}
