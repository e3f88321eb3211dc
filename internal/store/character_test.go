package store

import (
	"testing"
	"time"
)

func TestCharacterStore_UpsertReplacesByID(t *testing.T) {
	s := NewCharacterStore()
	s.Upsert(Character{ID: "c1", Name: "Mira"})
	s.Upsert(Character{ID: "c2", Name: "Torv"})
	s.Upsert(Character{ID: "c1", Name: "Mira the Bold"})

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("list len = %d, want 2", len(list))
	}
	if list[0].Name != "Mira the Bold" {
		t.Fatalf("name = %q, want replaced in place", list[0].Name)
	}
}

func TestCharacterStore_ListReturnsCopy(t *testing.T) {
	s := NewCharacterStore()
	s.Upsert(Character{ID: "c1", Name: "Mira"})

	list := s.List()
	list[0].Name = "mutated"

	got, _ := s.Get("c1")
	if got.Name != "Mira" {
		t.Fatalf("name = %q, want cache unaffected by caller mutation", got.Name)
	}
}

func TestCharacterStore_SelectionIsOwnCopy(t *testing.T) {
	s := NewCharacterStore()
	older := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	s.Upsert(Character{ID: "c1", Name: "List Copy", UpdatedAt: older})
	s.SetSelected(Character{ID: "c1", Name: "Selected Copy", UpdatedAt: newer})

	listed, _ := s.Get("c1")
	sel, ok := s.Selected()
	if !ok {
		t.Fatal("expected selection")
	}
	if listed.Name == sel.Name {
		t.Fatal("expected list and selection to hold independent copies")
	}
}

func TestCharacterStore_RemoveReportsExistence(t *testing.T) {
	s := NewCharacterStore()
	s.Upsert(Character{ID: "c1"})

	if !s.Remove("c1") {
		t.Fatal("expected removal of cached character")
	}
	if s.Remove("c1") {
		t.Fatal("expected second removal to report missing")
	}
}

func TestCharacterStore_ClearSelected(t *testing.T) {
	s := NewCharacterStore()
	s.SetSelected(Character{ID: "c1"})
	s.ClearSelected()
	if _, ok := s.Selected(); ok {
		t.Fatal("expected empty selection")
	}
}
