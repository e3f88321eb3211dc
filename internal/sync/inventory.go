package sync

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/louisbranch/tavern/internal/notify"
	"github.com/louisbranch/tavern/internal/store"
)

// InventoryReconciler merges inventory change events into up to three
// independent caches: the player's own inventory list and selection, the
// admin panel's per-character browse list, and the admin currency panel.
// Each target is updated independently and conditionally; an absent target is
// a skip, never a failure, and never blocks the others.
type InventoryReconciler struct {
	// Player is the signed-in player's inventory cache. Required.
	Player *store.InventoryStore
	// Admin is the GM browse cache. Optional.
	Admin *store.AdminInventoryStore
	// Currency is the GM currency panel cache. Optional.
	Currency *store.CurrencyPanelStore
	// Notifier surfaces deletion toasts. Optional.
	Notifier notify.Notifier
}

// Apply implements Reconciler.
func (r InventoryReconciler) Apply(ctx context.Context, evt ChangeEvent) error {
	if r.Player == nil {
		return fmt.Errorf("player inventory store is not configured")
	}
	switch evt.Action {
	case ActionCreated:
		return r.applyCreated(evt)
	case ActionUpdated:
		return r.applyUpdated(evt)
	case ActionDeleted:
		return r.applyDeleted(evt)
	default:
		return fmt.Errorf("unknown inventory action %q", evt.Action)
	}
}

func (r InventoryReconciler) applyCreated(evt ChangeEvent) error {
	inv, err := decodeInventory(evt)
	if err != nil {
		return err
	}

	// The selection must never lag behind the list entry, so a stale payload
	// that loses the timestamp guard yields its place to the cached copy.
	winner := inv
	if existing, ok := r.Player.Get(inv.ID); !ok || existing.UpdatedAt.Before(inv.UpdatedAt) {
		r.Player.Upsert(inv)
	} else {
		winner = existing
	}
	if _, selected := r.Player.Selected(); !selected {
		r.Player.SetSelected(winner)
	}

	r.mergeAdmin(inv)
	r.mergeCurrency(inv)
	return nil
}

func (r InventoryReconciler) applyUpdated(evt ChangeEvent) error {
	inv, err := decodeInventory(evt)
	if err != nil {
		return err
	}

	if existing, ok := r.Player.Get(inv.ID); !ok || existing.UpdatedAt.Before(inv.UpdatedAt) {
		r.Player.Upsert(inv)
	}
	// Selection holds its own copy and is guarded on its own timestamp.
	if sel, ok := r.Player.Selected(); ok && sel.ID == inv.ID && sel.UpdatedAt.Before(inv.UpdatedAt) {
		r.Player.SetSelected(inv)
	}

	r.mergeAdmin(inv)
	r.mergeCurrency(inv)
	return nil
}

func (r InventoryReconciler) applyDeleted(evt ChangeEvent) error {
	id := strings.TrimSpace(evt.EntityID)
	if id == "" {
		return fmt.Errorf("inventory deleted event has no entity id")
	}

	sel, wasSelected := r.Player.Selected()
	removed := r.Player.Remove(id)
	if wasSelected && sel.ID == id {
		r.Player.ClearSelected()
		r.notify(notify.Notification{
			Title:       "Inventory deleted",
			Message:     fmt.Sprintf("Your inventory %s was deleted by %s", sel.Name, evt.ChangedBy),
			Severity:    notify.SeverityWarning,
			AutoCloseMs: 8000,
		})
	} else if removed {
		r.notify(notify.Notification{
			Message:     fmt.Sprintf("An inventory was deleted by %s", evt.ChangedBy),
			Severity:    notify.SeverityInfo,
			AutoCloseMs: 5000,
		})
	}

	if r.Admin != nil {
		r.Admin.Remove(id)
	}
	if r.Currency != nil {
		if open, ok := r.Currency.OpenInventory(); ok && open.ID == id {
			r.Currency.Clear()
		}
	}
	return nil
}

// mergeAdmin copies the inventory into the admin browse cache when the GM is
// currently browsing one of its owners.
func (r InventoryReconciler) mergeAdmin(inv store.Inventory) {
	if r.Admin == nil {
		return
	}
	characterID, browsing := r.Admin.BrowsedCharacter()
	if !browsing || !slices.Contains(inv.OwnerIDs, characterID) {
		return
	}
	r.Admin.Upsert(inv)
}

// mergeCurrency refreshes the currency panel when it is open on this
// inventory.
func (r InventoryReconciler) mergeCurrency(inv store.Inventory) {
	if r.Currency == nil {
		return
	}
	r.Currency.Update(inv)
}

func (r InventoryReconciler) notify(n notify.Notification) {
	if r.Notifier == nil {
		return
	}
	r.Notifier.Notify(n)
}
