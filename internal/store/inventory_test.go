package store

import "testing"

func TestInventoryStore_SelectionLifecycle(t *testing.T) {
	s := NewInventoryStore()
	if _, ok := s.Selected(); ok {
		t.Fatal("expected no initial selection")
	}
	s.Upsert(Inventory{ID: "i1", Name: "Backpack"})
	s.SetSelected(Inventory{ID: "i1", Name: "Backpack"})

	sel, ok := s.Selected()
	if !ok || sel.ID != "i1" {
		t.Fatalf("selected = %+v, want i1", sel)
	}
	s.ClearSelected()
	if _, ok := s.Selected(); ok {
		t.Fatal("expected cleared selection")
	}
}

func TestAdminInventoryStore_BrowseSwitchesCharacter(t *testing.T) {
	s := NewAdminInventoryStore()
	if _, ok := s.BrowsedCharacter(); ok {
		t.Fatal("expected no browsed character initially")
	}

	s.Browse("char-1", []Inventory{{ID: "i1"}})
	id, ok := s.BrowsedCharacter()
	if !ok || id != "char-1" {
		t.Fatalf("browsed = %q, want char-1", id)
	}
	if len(s.List()) != 1 {
		t.Fatalf("list len = %d, want 1", len(s.List()))
	}

	s.Browse("char-2", nil)
	if len(s.List()) != 0 {
		t.Fatal("expected list replaced on browse switch")
	}

	s.Clear()
	if _, ok := s.BrowsedCharacter(); ok {
		t.Fatal("expected cleared browse state")
	}
}

func TestCurrencyPanelStore_UpdateOnlyOnMatch(t *testing.T) {
	s := NewCurrencyPanelStore()
	if s.Update(Inventory{ID: "i1"}) {
		t.Fatal("expected no update while closed")
	}

	s.Open(Inventory{ID: "i1", Currency: Currency{GP: 1}})
	if s.Update(Inventory{ID: "i2", Currency: Currency{GP: 99}}) {
		t.Fatal("expected mismatched id to be skipped")
	}
	if !s.Update(Inventory{ID: "i1", Currency: Currency{GP: 50}}) {
		t.Fatal("expected matching id to update")
	}
	open, ok := s.OpenInventory()
	if !ok || open.Currency.GP != 50 {
		t.Fatalf("open = %+v, want gp 50", open)
	}
}
