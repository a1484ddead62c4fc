package models

import "sync"

// WindowEntry holds one window instance and its check-ins in arrival
// order. Updates replace records in place, so the order reflects first
// check-in time per callsign.
type WindowEntry struct {
	Info     *WindowInstance  `json:"info"`
	Checkins []*CheckinRecord `json:"checkins"`
}

// Roster is the full in-memory collection of window instances and their
// records. Mutations come from a single pipeline worker; the lock guards
// concurrent read-side snapshots taken by renderers and the HTTP board.
type Roster struct {
	Mutex   sync.RWMutex
	Windows map[string]*WindowEntry
}

func NewRoster() *Roster {
	return &Roster{
		Windows: make(map[string]*WindowEntry),
	}
}

// Find returns the live record for a callsign within a window, with its
// position, using case-insensitive callsign comparison.
func (r *Roster) Find(key, callsign string) (*CheckinRecord, int, bool) {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()
	entry, ok := r.Windows[key]
	if !ok {
		return nil, 0, false
	}
	for i, rec := range entry.Checkins {
		if rec.CallsignKey() == callsign {
			return rec, i, true
		}
	}
	return nil, 0, false
}

// Append stores a new record, creating the window entry lazily on the
// first check-in that falls into it.
func (r *Roster) Append(info *WindowInstance, rec *CheckinRecord) {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()
	entry, ok := r.Windows[info.Key]
	if !ok {
		entry = &WindowEntry{Info: info}
		r.Windows[info.Key] = entry
	}
	entry.Checkins = append(entry.Checkins, rec)
}

// Replace swaps the record at idx for an updated one.
func (r *Roster) Replace(key string, idx int, rec *CheckinRecord) {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()
	entry, ok := r.Windows[key]
	if !ok || idx < 0 || idx >= len(entry.Checkins) {
		return
	}
	entry.Checkins[idx] = rec
}

// Checkins returns a deep-copied snapshot of a window's records so that
// rendering can run concurrently with the next ingestion.
func (r *Roster) Checkins(key string) []*CheckinRecord {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()
	entry, ok := r.Windows[key]
	if !ok {
		return nil
	}
	out := make([]*CheckinRecord, len(entry.Checkins))
	for i, rec := range entry.Checkins {
		out[i] = rec.Clone()
	}
	return out
}

// Count returns the number of live records in a window.
func (r *Roster) Count(key string) int {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()
	entry, ok := r.Windows[key]
	if !ok {
		return 0
	}
	return len(entry.Checkins)
}

// Info returns the window instance for a key.
func (r *Roster) Info(key string) (*WindowInstance, bool) {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()
	entry, ok := r.Windows[key]
	if !ok {
		return nil, false
	}
	return entry.Info, true
}

// Keys lists all window keys currently held.
func (r *Roster) Keys() []string {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()
	keys := make([]string, 0, len(r.Windows))
	for k := range r.Windows {
		keys = append(keys, k)
	}
	return keys
}

// Clear removes one window and all its records.
func (r *Roster) Clear(key string) {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()
	delete(r.Windows, key)
}

// ClearAll resets the roster.
func (r *Roster) ClearAll() {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()
	r.Windows = make(map[string]*WindowEntry)
}

// Snapshot returns the persisted-state view of the roster: a deep copy
// of every window's records keyed by window key.
func (r *Roster) Snapshot() SnapshotState {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()
	state := make(SnapshotState, len(r.Windows))
	for key, entry := range r.Windows {
		recs := make([]*CheckinRecord, len(entry.Checkins))
		for i, rec := range entry.Checkins {
			recs[i] = rec.Clone()
		}
		state[key] = recs
	}
	return state
}

// Put installs a window entry wholesale, used when restoring state.
func (r *Roster) Put(info *WindowInstance, checkins []*CheckinRecord) {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()
	r.Windows[info.Key] = &WindowEntry{Info: info, Checkins: checkins}
}
