package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/tavern/internal/notify"
	"github.com/louisbranch/tavern/internal/store"
)

// CampaignReconciler is deliberately minimal: campaign changes mostly just
// surface a toast. When a campaign store is configured the cache mutation is
// a straight replace-by-id with no timestamp guard.
type CampaignReconciler struct {
	// Campaigns is optional; without it only notifications are emitted.
	Campaigns *store.CampaignStore
	// Notifier surfaces change toasts. Optional.
	Notifier notify.Notifier
}

// Apply implements Reconciler.
func (r CampaignReconciler) Apply(ctx context.Context, evt ChangeEvent) error {
	switch evt.Action {
	case ActionCreated, ActionUpdated:
		c, err := decodeCampaign(evt)
		if err != nil {
			return err
		}
		if r.Campaigns != nil {
			r.Campaigns.Upsert(c)
		}
		r.notify(notify.Notification{
			Message:     fmt.Sprintf("Campaign %s was %s by %s", c.Name, evt.Action, evt.ChangedBy),
			Severity:    notify.SeverityInfo,
			AutoCloseMs: 5000,
		})
		return nil
	case ActionDeleted:
		id := strings.TrimSpace(evt.EntityID)
		if id == "" {
			return fmt.Errorf("campaign deleted event has no entity id")
		}
		if r.Campaigns != nil {
			r.Campaigns.Remove(id)
		}
		r.notify(notify.Notification{
			Message:     fmt.Sprintf("A campaign was deleted by %s", evt.ChangedBy),
			Severity:    notify.SeverityInfo,
			AutoCloseMs: 5000,
		})
		return nil
	default:
		return fmt.Errorf("unknown campaign action %q", evt.Action)
	}
}

func (r CampaignReconciler) notify(n notify.Notification) {
	if r.Notifier == nil {
		return
	}
	r.Notifier.Notify(n)
}
