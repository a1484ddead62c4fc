package models

// SnapshotState is the on-disk roster format: a JSON map of window key
// to that window's records. Timestamps serialize as RFC 3339 with
// nanoseconds and round-trip exactly through save/load.
type SnapshotState map[string][]*CheckinRecord

// WindowSummary is the per-window projection served by the board API
// and used by operator-facing summaries.
type WindowSummary struct {
	WindowKey     string         `json:"window_key"`
	Date          string         `json:"date"`
	TimeRange     string         `json:"time_range"`
	TotalCheckins int            `json:"total_checkins"`
	StatusCounts  map[string]int `json:"status_counts"`
	Callsigns     []string       `json:"callsigns"`
}
