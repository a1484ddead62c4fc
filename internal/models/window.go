package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// TimeWindow is a named daily check-in interval. Start and End are
// "HH:MM" wall-clock times and both ends are inclusive.
type TimeWindow struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q, expected HH:MM", s)
	}
	hour, err := cast.ToIntE(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	minute, err := cast.ToIntE(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hour*60 + minute, nil
}

// Contains reports whether t's time-of-day falls within the window.
// Comparison is at minute resolution, matching the HH:MM configuration.
func (w TimeWindow) Contains(t time.Time) bool {
	start, err := ParseClock(w.Start)
	if err != nil {
		return false
	}
	end, err := ParseClock(w.End)
	if err != nil {
		return false
	}
	cur := t.Hour()*60 + t.Minute()
	return start <= cur && cur <= end
}

// DisplayName returns the configured name, or "start-end" when unnamed.
func (w TimeWindow) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.Start + "-" + w.End
}

// WindowInstance binds a TimeWindow to a concrete calendar date. Key is
// the composite roster key, e.g. "2024-12-16_1900-2100".
type WindowInstance struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
	Date  string `json:"date"`
	Key   string `json:"key"`
}

const dateLayout = "2006-01-02"

// NewWindowInstance creates the instance of w for the given date.
func NewWindowInstance(w TimeWindow, date time.Time) *WindowInstance {
	d := date.Format(dateLayout)
	return &WindowInstance{
		Name:  w.DisplayName(),
		Start: w.Start,
		End:   w.End,
		Date:  d,
		Key:   WindowKey(d, w.Start, w.End),
	}
}

// WindowKey builds the composite roster key from a date string and the
// window bounds.
func WindowKey(date, start, end string) string {
	return fmt.Sprintf("%s_%s-%s",
		date,
		strings.ReplaceAll(start, ":", ""),
		strings.ReplaceAll(end, ":", ""))
}

// WindowInstanceFromKey reconstructs an instance from a roster key, used
// when restoring persisted state. The name falls back to the time range.
func WindowInstanceFromKey(key string) (*WindowInstance, error) {
	sep := strings.LastIndexByte(key, '_')
	if sep < 0 {
		return nil, fmt.Errorf("invalid window key %q", key)
	}
	date, span := key[:sep], key[sep+1:]
	bounds := strings.SplitN(span, "-", 2)
	if len(bounds) != 2 || len(bounds[0]) != 4 || len(bounds[1]) != 4 {
		return nil, fmt.Errorf("invalid window key %q", key)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid window key %q: %w", key, err)
	}
	start := bounds[0][:2] + ":" + bounds[0][2:]
	end := bounds[1][:2] + ":" + bounds[1][2:]
	return &WindowInstance{
		Name:  start + "-" + end,
		Start: start,
		End:   end,
		Date:  date,
		Key:   key,
	}, nil
}

// TimeRange returns "HH:MM-HH:MM" for report headers.
func (wi *WindowInstance) TimeRange() string {
	return wi.Start + "-" + wi.End
}

// DateValue parses the instance date. A zero time is returned for a
// malformed date, which only happens with hand-edited state files.
func (wi *WindowInstance) DateValue() time.Time {
	t, _ := time.Parse(dateLayout, wi.Date)
	return t
}
