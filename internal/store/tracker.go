package store

import "sync"

// TrackerStore caches the combat tracker's derived rows, keyed by character
// id. Rows are created by UI actions (adding a combatant), not by the sync
// core; the core only merges character changes into rows that already exist.
type TrackerStore struct {
	mu   sync.Mutex
	rows []TrackerRow
}

// NewTrackerStore creates an empty combat tracker cache.
func NewTrackerStore() *TrackerStore {
	return &TrackerStore{}
}

// Rows returns a copy of every tracker row in initiative order.
func (s *TrackerStore) Rows() []TrackerRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TrackerRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// ReplaceRows swaps the entire tracker contents.
func (s *TrackerStore) ReplaceRows(rows []TrackerRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make([]TrackerRow, len(rows))
	copy(s.rows, rows)
}

// Row returns the tracker row for the given character id.
func (s *TrackerStore) Row(characterID string) (TrackerRow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.CharacterID == characterID {
			return r, true
		}
	}
	return TrackerRow{}, false
}

// SetRow replaces the row with the same character id, or appends it.
func (s *TrackerStore) SetRow(row TrackerRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].CharacterID == row.CharacterID {
			s.rows[i] = row
			return
		}
	}
	s.rows = append(s.rows, row)
}

// RemoveRow deletes the row for the given character id and reports whether it
// existed.
func (s *TrackerStore) RemoveRow(characterID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].CharacterID == characterID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return true
		}
	}
	return false
}
