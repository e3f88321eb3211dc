package store

import "sync"

// CharacterStore caches every character known to the client plus the
// zero-or-one "active" character selection. The selection holds its own copy
// of the character, separate from the list entry, because the two are updated
// by independently guarded writes.
type CharacterStore struct {
	mu         sync.Mutex
	characters []Character
	selected   *Character
}

// NewCharacterStore creates an empty character cache.
func NewCharacterStore() *CharacterStore {
	return &CharacterStore{}
}

// List returns a copy of every cached character in insertion order.
func (s *CharacterStore) List() []Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Character, len(s.characters))
	copy(out, s.characters)
	return out
}

// ReplaceList swaps the entire cached list.
func (s *CharacterStore) ReplaceList(characters []Character) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.characters = make([]Character, len(characters))
	copy(s.characters, characters)
}

// Get returns the cached character with the given id.
func (s *CharacterStore) Get(id string) (Character, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.characters {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}

// Upsert replaces the cached character with the same id, or appends it.
func (s *CharacterStore) Upsert(c Character) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.characters {
		if s.characters[i].ID == c.ID {
			s.characters[i] = c
			return
		}
	}
	s.characters = append(s.characters, c)
}

// Remove deletes the character with the given id and reports whether a cached
// copy existed.
func (s *CharacterStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.characters {
		if s.characters[i].ID == id {
			s.characters = append(s.characters[:i], s.characters[i+1:]...)
			return true
		}
	}
	return false
}

// Selected returns the active character selection, if any.
func (s *CharacterStore) Selected() (Character, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return Character{}, false
	}
	return *s.selected, true
}

// SetSelected replaces the active character selection.
func (s *CharacterStore) SetSelected(c Character) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &c
}

// ClearSelected drops the active character selection. The selection must
// never point at a removed id, so reconcilers call this when the selected
// character is deleted.
func (s *CharacterStore) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}
