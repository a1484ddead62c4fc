package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"welfared/internal/models"
	"welfared/internal/structures"
)

type AggregatorServiceInterface interface {
	CurrentWindow(now time.Time) *models.WindowInstance
	AddCheckin(rec *models.CheckinRecord, now time.Time) (bool, string, *models.WindowInstance)
	WindowCheckins(key string) []*models.CheckinRecord
	WindowCount(key string) int
	WindowInfo(key string) (*models.WindowInstance, bool)
	StatusCounts(key string) map[string]int
	WindowKeys() []string
	Summary() []models.WindowSummary
	ClearWindow(key string)
	ClearAll()
	GetSnapshot() models.SnapshotState
	PutSnapshot(state models.SnapshotState)
}

// AggregatorService owns the roster and enforces the duplicate/update
// invariants. All mutations arrive through the single pipeline worker.
type AggregatorService struct {
	windows []models.TimeWindow
	roster  *models.Roster
}

func NewAggregatorService(conf *structures.Config) AggregatorServiceInterface {
	windows := make([]models.TimeWindow, 0, len(conf.TimeWindows))
	for _, w := range conf.TimeWindows {
		windows = append(windows, models.TimeWindow{Name: w.Name, Start: w.Start, End: w.End})
	}
	return &AggregatorService{
		windows: windows,
		roster:  models.NewRoster(),
	}
}

// CurrentWindow returns the first configured window containing now's
// time-of-day, in configuration order. Overlapping windows resolve to
// whichever is listed first. Nil means no window is active, which is a
// normal outcome outside operating hours.
func (as *AggregatorService) CurrentWindow(now time.Time) *models.WindowInstance {
	for _, w := range as.windows {
		if w.Contains(now) {
			return models.NewWindowInstance(w, now)
		}
	}
	return nil
}

// AddCheckin reconciles a record into the active window. Outcomes:
//   - no active window: rejected, nil window
//   - first record for the callsign: stored with update number 0
//   - identical content to the live record: rejected, no state change
//   - differing content: live record replaced, its prior state appended
//     to history, update number incremented
func (as *AggregatorService) AddCheckin(rec *models.CheckinRecord, now time.Time) (bool, string, *models.WindowInstance) {
	if now.IsZero() {
		now = rec.ReceivedTime
	}
	if now.IsZero() {
		now = time.Now()
	}
	if rec.ReceivedTime.IsZero() {
		rec.ReceivedTime = now
	}

	win := as.CurrentWindow(now)
	if win == nil {
		return false, "No active time window for this check-in", nil
	}

	callsign := rec.CallsignKey()
	existing, idx, found := as.roster.Find(win.Key, callsign)
	if found {
		if existing.ContentEquals(rec) {
			return false, fmt.Sprintf("Duplicate: %s - identical check-in already exists", callsign), win
		}

		history := make([]models.HistoryEntry, 0, len(existing.History)+1)
		history = append(history, existing.History...)
		history = append(history, models.HistoryEntry{
			Status:       existing.Status,
			Message:      existing.Message,
			ReceivedTime: existing.ReceivedTime,
		})

		rec.History = history
		rec.UpdateNumber = existing.UpdateNumber + 1
		rec.FirstCheckinTime = existing.FirstCheckinTime
		if rec.FirstCheckinTime.IsZero() {
			rec.FirstCheckinTime = existing.ReceivedTime
		}

		as.roster.Replace(win.Key, idx, rec)
		return true, fmt.Sprintf("Updated %s in %s (update #%d)", callsign, win.Name, rec.UpdateNumber), win
	}

	rec.UpdateNumber = 0
	rec.History = nil
	rec.FirstCheckinTime = rec.ReceivedTime
	as.roster.Append(win, rec)
	return true, fmt.Sprintf("Added %s to %s", callsign, win.Name), win
}

func (as *AggregatorService) WindowCheckins(key string) []*models.CheckinRecord {
	return as.roster.Checkins(key)
}

func (as *AggregatorService) WindowCount(key string) int {
	return as.roster.Count(key)
}

func (as *AggregatorService) WindowInfo(key string) (*models.WindowInstance, bool) {
	return as.roster.Info(key)
}

// StatusCounts tallies live records by uppercased status. Records with
// no status count under "UNKNOWN".
func (as *AggregatorService) StatusCounts(key string) map[string]int {
	counts := make(map[string]int)
	for _, rec := range as.roster.Checkins(key) {
		status := strings.ToUpper(strings.TrimSpace(rec.Status))
		if status == "" {
			status = "UNKNOWN"
		}
		counts[status]++
	}
	return counts
}

func (as *AggregatorService) WindowKeys() []string {
	keys := as.roster.Keys()
	sort.Strings(keys)
	return keys
}

// Summary builds the per-window projection across all held windows.
func (as *AggregatorService) Summary() []models.WindowSummary {
	summaries := make([]models.WindowSummary, 0)
	for _, key := range as.WindowKeys() {
		info, ok := as.roster.Info(key)
		if !ok {
			continue
		}
		checkins := as.roster.Checkins(key)
		callsigns := make([]string, 0, len(checkins))
		for _, rec := range checkins {
			callsigns = append(callsigns, rec.CallsignKey())
		}
		summaries = append(summaries, models.WindowSummary{
			WindowKey:     key,
			Date:          info.Date,
			TimeRange:     info.TimeRange(),
			TotalCheckins: len(checkins),
			StatusCounts:  as.StatusCounts(key),
			Callsigns:     callsigns,
		})
	}
	return summaries
}

func (as *AggregatorService) ClearWindow(key string) {
	as.roster.Clear(key)
}

func (as *AggregatorService) ClearAll() {
	as.roster.ClearAll()
}

func (as *AggregatorService) GetSnapshot() models.SnapshotState {
	return as.roster.Snapshot()
}

// PutSnapshot restores persisted windows. Instance names come back from
// the configured window matching the key's bounds; unknown windows keep
// the time range as their name.
func (as *AggregatorService) PutSnapshot(state models.SnapshotState) {
	for key, checkins := range state {
		info, err := models.WindowInstanceFromKey(key)
		if err != nil {
			continue
		}
		for _, w := range as.windows {
			if w.Start == info.Start && w.End == info.End {
				info.Name = w.DisplayName()
				break
			}
		}
		as.roster.Put(info, checkins)
	}
}
