package store

import "sync"

// InventoryStore caches the signed-in player's inventories plus the
// zero-or-one currently selected inventory. As with characters, the selection
// keeps its own copy so list and selection can be updated independently.
type InventoryStore struct {
	mu          sync.Mutex
	inventories []Inventory
	selected    *Inventory
}

// NewInventoryStore creates an empty player inventory cache.
func NewInventoryStore() *InventoryStore {
	return &InventoryStore{}
}

// List returns a copy of every cached inventory in insertion order.
func (s *InventoryStore) List() []Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Inventory, len(s.inventories))
	copy(out, s.inventories)
	return out
}

// ReplaceList swaps the entire cached list.
func (s *InventoryStore) ReplaceList(inventories []Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventories = make([]Inventory, len(inventories))
	copy(s.inventories, inventories)
}

// Get returns the cached inventory with the given id.
func (s *InventoryStore) Get(id string) (Inventory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.inventories {
		if inv.ID == id {
			return inv, true
		}
	}
	return Inventory{}, false
}

// Upsert replaces the cached inventory with the same id, or appends it.
func (s *InventoryStore) Upsert(inv Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventories {
		if s.inventories[i].ID == inv.ID {
			s.inventories[i] = inv
			return
		}
	}
	s.inventories = append(s.inventories, inv)
}

// Remove deletes the inventory with the given id and reports whether a cached
// copy existed.
func (s *InventoryStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventories {
		if s.inventories[i].ID == id {
			s.inventories = append(s.inventories[:i], s.inventories[i+1:]...)
			return true
		}
	}
	return false
}

// Selected returns the currently selected inventory, if any.
func (s *InventoryStore) Selected() (Inventory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return Inventory{}, false
	}
	return *s.selected, true
}

// SetSelected replaces the current inventory selection.
func (s *InventoryStore) SetSelected(inv Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &inv
}

// ClearSelected drops the current inventory selection.
func (s *InventoryStore) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// AdminInventoryStore caches the inventories of the character a GM is
// currently browsing in the admin panel. When no character is being browsed
// the store is inert and reconcilers skip it.
type AdminInventoryStore struct {
	mu          sync.Mutex
	characterID string
	inventories []Inventory
}

// NewAdminInventoryStore creates an empty admin browse cache.
func NewAdminInventoryStore() *AdminInventoryStore {
	return &AdminInventoryStore{}
}

// BrowsedCharacter returns the id of the character whose inventories are
// being browsed, if any.
func (s *AdminInventoryStore) BrowsedCharacter() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.characterID, s.characterID != ""
}

// Browse switches the cache to a new character and replaces its contents.
func (s *AdminInventoryStore) Browse(characterID string, inventories []Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.characterID = characterID
	s.inventories = make([]Inventory, len(inventories))
	copy(s.inventories, inventories)
}

// List returns a copy of the browsed character's inventories.
func (s *AdminInventoryStore) List() []Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Inventory, len(s.inventories))
	copy(out, s.inventories)
	return out
}

// Upsert replaces the cached inventory with the same id, or appends it.
func (s *AdminInventoryStore) Upsert(inv Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventories {
		if s.inventories[i].ID == inv.ID {
			s.inventories[i] = inv
			return
		}
	}
	s.inventories = append(s.inventories, inv)
}

// Remove deletes the inventory with the given id and reports whether it was
// cached.
func (s *AdminInventoryStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventories {
		if s.inventories[i].ID == id {
			s.inventories = append(s.inventories[:i], s.inventories[i+1:]...)
			return true
		}
	}
	return false
}

// Clear resets the store to browsing nothing.
func (s *AdminInventoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.characterID = ""
	s.inventories = nil
}

// CurrencyPanelStore caches the zero-or-one inventory whose coin pouch the GM
// has open in the currency panel.
type CurrencyPanelStore struct {
	mu   sync.Mutex
	open *Inventory
}

// NewCurrencyPanelStore creates a closed currency panel cache.
func NewCurrencyPanelStore() *CurrencyPanelStore {
	return &CurrencyPanelStore{}
}

// Open sets the inventory shown in the panel.
func (s *CurrencyPanelStore) Open(inv Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = &inv
}

// OpenInventory returns the inventory shown in the panel, if any.
func (s *CurrencyPanelStore) OpenInventory() (Inventory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open == nil {
		return Inventory{}, false
	}
	return *s.open, true
}

// Update replaces the open inventory when the id matches and reports whether
// it did.
func (s *CurrencyPanelStore) Update(inv Inventory) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open == nil || s.open.ID != inv.ID {
		return false
	}
	s.open = &inv
	return true
}

// Clear closes the panel.
func (s *CurrencyPanelStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = nil
}
