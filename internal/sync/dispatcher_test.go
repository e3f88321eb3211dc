package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/louisbranch/tavern/internal/store"
)

type recordingReconciler struct {
	events []ChangeEvent
	err    error
}

func (r *recordingReconciler) Apply(ctx context.Context, evt ChangeEvent) error {
	r.events = append(r.events, evt)
	return r.err
}

func TestDispatcher_RoutesByEntityType(t *testing.T) {
	d := NewDispatcher()
	chars := &recordingReconciler{}
	invs := &recordingReconciler{}
	d.Register(EntityCharacter, chars)
	d.Register(EntityInventory, invs)

	d.DispatchEvent(context.Background(), ChangeEvent{EntityType: EntityCharacter, Action: ActionDeleted, EntityID: "c"})
	d.DispatchEvent(context.Background(), ChangeEvent{EntityType: EntityInventory, Action: ActionDeleted, EntityID: "i"})

	if len(chars.events) != 1 || len(invs.events) != 1 {
		t.Fatalf("calls = %d/%d, want 1/1", len(chars.events), len(invs.events))
	}
}

func TestDispatcher_UnknownEntityTypeDropped(t *testing.T) {
	d := NewDispatcher()
	chars := &recordingReconciler{}
	d.Register(EntityCharacter, chars)

	d.DispatchEvent(context.Background(), ChangeEvent{EntityType: "spellbook", Action: ActionCreated})

	if len(chars.events) != 0 {
		t.Fatalf("calls = %d, want 0", len(chars.events))
	}
}

func TestDispatcher_BatchAppliesInOrder(t *testing.T) {
	d := NewDispatcher()
	r := &recordingReconciler{}
	d.Register(EntityCharacter, r)

	batch := ChangeBatch{CorrelationID: "corr-1"}
	for i := 0; i < 5; i++ {
		batch.Changes = append(batch.Changes, ChangeEvent{
			EntityType: EntityCharacter,
			Action:     ActionUpdated,
			EntityID:   fmt.Sprintf("char-%d", i),
		})
	}
	d.DispatchBatch(context.Background(), batch)

	if len(r.events) != 5 {
		t.Fatalf("calls = %d, want 5", len(r.events))
	}
	for i, evt := range r.events {
		if want := fmt.Sprintf("char-%d", i); evt.EntityID != want {
			t.Fatalf("event %d id = %q, want %q", i, evt.EntityID, want)
		}
	}
}

// A create followed by an update of the same id in one batch must leave the
// cache holding the updated version.
func TestDispatcher_CreateThenUpdateWithinBatch(t *testing.T) {
	characters := store.NewCharacterStore()
	d := NewDispatcher()
	d.Register(EntityCharacter, CharacterReconciler{Characters: characters})

	batch := ChangeBatch{
		CorrelationID: "corr-2",
		Changes: []ChangeEvent{
			characterEvent(t, ActionCreated, testCharacter("char-A", "v1", t1)),
			characterEvent(t, ActionUpdated, testCharacter("char-A", "v2", t2)),
		},
	}
	d.DispatchBatch(context.Background(), batch)

	got, ok := characters.Get("char-A")
	if !ok {
		t.Fatal("expected character cached")
	}
	if got.Name != "v2" {
		t.Fatalf("name = %q, want %q", got.Name, "v2")
	}
	if n := len(characters.List()); n != 1 {
		t.Fatalf("cached characters = %d, want 1", n)
	}
}

// A malformed event is dropped without aborting the rest of its batch.
func TestDispatcher_MalformedEventDoesNotAbortBatch(t *testing.T) {
	player := store.NewInventoryStore()
	player.Upsert(testInventory("inv-B", "Chest", nil, t1))
	d := NewDispatcher()
	d.Register(EntityInventory, InventoryReconciler{Player: player})

	batch := ChangeBatch{
		CorrelationID: "corr-3",
		Changes: []ChangeEvent{
			{EntityType: EntityInventory, Action: ActionUpdated, Data: json.RawMessage(`{"name":"no id"}`)},
			{EntityType: EntityInventory, Action: ActionDeleted, EntityID: "inv-B"},
		},
	}
	d.DispatchBatch(context.Background(), batch)

	if _, ok := player.Get("inv-B"); ok {
		t.Fatal("expected second event to still remove inv-B")
	}
}

func TestDispatcher_ReconcilerErrorDoesNotStopLaterEvents(t *testing.T) {
	d := NewDispatcher()
	failing := &recordingReconciler{err: fmt.Errorf("boom")}
	ok := &recordingReconciler{}
	d.Register(EntityCharacter, failing)
	d.Register(EntityInventory, ok)

	d.DispatchBatch(context.Background(), ChangeBatch{
		Changes: []ChangeEvent{
			{EntityType: EntityCharacter, Action: ActionUpdated},
			{EntityType: EntityInventory, Action: ActionUpdated},
		},
	})

	if len(ok.events) != 1 {
		t.Fatalf("later events applied = %d, want 1", len(ok.events))
	}
}
