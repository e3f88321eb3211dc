package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/tavern/internal/notify"
	"github.com/louisbranch/tavern/internal/store"
)

// CharacterReconciler merges character change events into the character list,
// the active-character selection, and the combat tracker.
type CharacterReconciler struct {
	// Characters is the "all known characters" cache. Required.
	Characters *store.CharacterStore
	// Tracker holds the combat tracker's derived rows. Optional; when nil the
	// tracker merge is skipped.
	Tracker *store.TrackerStore
	// Notifier surfaces change toasts. Optional.
	Notifier notify.Notifier
}

// Apply implements Reconciler.
func (r CharacterReconciler) Apply(ctx context.Context, evt ChangeEvent) error {
	if r.Characters == nil {
		return fmt.Errorf("character store is not configured")
	}
	switch evt.Action {
	case ActionCreated:
		return r.applyCreated(evt)
	case ActionUpdated:
		return r.applyUpdated(evt)
	case ActionDeleted:
		return r.applyDeleted(evt)
	default:
		return fmt.Errorf("unknown character action %q", evt.Action)
	}
}

func (r CharacterReconciler) applyCreated(evt ChangeEvent) error {
	c, err := decodeCharacter(evt)
	if err != nil {
		return err
	}
	if existing, ok := r.Characters.Get(c.ID); ok && !existing.UpdatedAt.Before(c.UpdatedAt) {
		// Duplicate or stale delivery.
		return nil
	}
	r.Characters.Upsert(c)
	r.notify(notify.Notification{
		Message:     fmt.Sprintf("Character %s was created by %s", c.Name, evt.ChangedBy),
		Severity:    notify.SeverityInfo,
		AutoCloseMs: 5000,
	})
	return nil
}

func (r CharacterReconciler) applyUpdated(evt ChangeEvent) error {
	c, err := decodeCharacter(evt)
	if err != nil {
		return err
	}

	applied := false
	if existing, ok := r.Characters.Get(c.ID); !ok || existing.UpdatedAt.Before(c.UpdatedAt) {
		r.Characters.Upsert(c)
		applied = true
	}

	if r.Tracker != nil {
		if row, ok := r.Tracker.Row(c.ID); ok {
			r.Tracker.SetRow(mergeTrackerRow(row, c))
		}
	}

	// The selection is a separate cache holding its own copy, so it gets its
	// own timestamp guard: list and selection can be stale independently.
	if sel, ok := r.Characters.Selected(); ok && sel.ID == c.ID && sel.UpdatedAt.Before(c.UpdatedAt) {
		r.Characters.SetSelected(c)
		applied = true
	}

	if applied {
		r.notify(notify.Notification{
			Message:     fmt.Sprintf("Character %s was updated by %s", c.Name, evt.ChangedBy),
			Severity:    notify.SeverityInfo,
			AutoCloseMs: 5000,
		})
	}
	return nil
}

func (r CharacterReconciler) applyDeleted(evt ChangeEvent) error {
	id := strings.TrimSpace(evt.EntityID)
	if id == "" {
		return fmt.Errorf("character deleted event has no entity id")
	}
	existing, ok := r.Characters.Get(id)
	if !ok {
		return nil
	}
	r.Characters.Remove(id)

	if sel, selected := r.Characters.Selected(); selected && sel.ID == id {
		r.Characters.ClearSelected()
		r.notify(notify.Notification{
			Title:       "Active character removed",
			Message:     fmt.Sprintf("%s was deleted by %s", existing.Name, evt.ChangedBy),
			Severity:    notify.SeverityError,
			AutoCloseMs: 8000,
		})
		return nil
	}
	r.notify(notify.Notification{
		Message:     fmt.Sprintf("Character %s was deleted by %s", existing.Name, evt.ChangedBy),
		Severity:    notify.SeverityInfo,
		AutoCloseMs: 5000,
	})
	return nil
}

func (r CharacterReconciler) notify(n notify.Notification) {
	if r.Notifier == nil {
		return
	}
	r.Notifier.Notify(n)
}

// mergeTrackerRow folds an incoming character into an existing tracker row.
// Stats are copied over. The condition merge is additive only: conditions new
// in the payload are appended with no duration, conditions already on the row
// keep their remaining duration (labels match case-insensitively), and
// tracker-only conditions are left alone.
func mergeTrackerRow(row store.TrackerRow, c store.Character) store.TrackerRow {
	row.Name = c.Name
	row.HP = c.HP
	row.MaxHP = c.MaxHP
	row.TempHP = c.TempHP
	row.ArmorClass = c.ArmorClass

	for _, label := range c.Conditions {
		if hasCondition(row.Conditions, label) {
			continue
		}
		row.Conditions = append(row.Conditions, store.TrackerCondition{Label: label})
	}
	return row
}

func hasCondition(conditions []store.TrackerCondition, label string) bool {
	for _, cond := range conditions {
		if strings.EqualFold(cond.Label, label) {
			return true
		}
	}
	return false
}
