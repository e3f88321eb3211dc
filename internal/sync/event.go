// Package sync implements the realtime entity synchronization client: a
// persistent push-channel connection whose change events are reconciled into
// the independent in-memory caches that mirror server state.
package sync

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/tavern/internal/store"
)

// EntityType identifies the entity family a change event targets.
type EntityType string

const (
	// EntityCharacter targets campaign characters.
	EntityCharacter EntityType = "character"
	// EntityInventory targets shared and personal inventories.
	EntityInventory EntityType = "inventory"
	// EntityCampaign targets campaigns themselves.
	EntityCampaign EntityType = "campaign"
)

// Action identifies what happened to the entity.
type Action string

const (
	// ActionCreated means the entity came into existence.
	ActionCreated Action = "created"
	// ActionUpdated means an existing entity changed.
	ActionUpdated Action = "updated"
	// ActionDeleted means the entity was removed. Deleted events carry no data.
	ActionDeleted Action = "deleted"
)

// ChangeEvent is one server-originated entity mutation. Data is
// entity-shaped-but-unverified; reconcilers decode and validate it against
// the declared entity type before trusting any field.
type ChangeEvent struct {
	EntityType EntityType      `json:"entityType"`
	EntityID   string          `json:"entityId,omitempty"`
	Action     Action          `json:"action"`
	Data       json.RawMessage `json:"data,omitempty"`
	ChangedBy  string          `json:"changedBy"`
	Timestamp  time.Time       `json:"timestamp"`
}

// ChangeBatch groups the change events emitted by a single originating
// server-side operation. Changes apply strictly in order; later entries may
// depend on earlier ones.
type ChangeBatch struct {
	CorrelationID string        `json:"correlationId"`
	Timestamp     time.Time     `json:"timestamp"`
	Changes       []ChangeEvent `json:"changes"`
}

// UserNotification is a direct user-facing message pushed over the channel,
// routed straight to the notification sink without touching any cache.
type UserNotification struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Push-channel frame kinds.
const (
	FrameNotification       = "notification"
	FrameEntityChanged      = "entity_changed"
	FrameEntityBatchChanged = "entity_batch_changed"
)

// frame is the envelope every push-channel message arrives in.
type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// decodeCharacter parses an event payload as a character and checks that the
// envelope's entity id, when present, agrees with the payload's own id.
func decodeCharacter(evt ChangeEvent) (store.Character, error) {
	if len(evt.Data) == 0 {
		return store.Character{}, fmt.Errorf("character %s event has no data", evt.Action)
	}
	var c store.Character
	if err := json.Unmarshal(evt.Data, &c); err != nil {
		return store.Character{}, fmt.Errorf("decode character payload: %w", err)
	}
	if strings.TrimSpace(c.ID) == "" {
		return store.Character{}, fmt.Errorf("character payload has no id")
	}
	if evt.EntityID != "" && evt.EntityID != c.ID {
		return store.Character{}, fmt.Errorf("entity id %q does not match payload id %q", evt.EntityID, c.ID)
	}
	return c, nil
}

// decodeInventory parses an event payload as an inventory with the same id
// agreement check as decodeCharacter.
func decodeInventory(evt ChangeEvent) (store.Inventory, error) {
	if len(evt.Data) == 0 {
		return store.Inventory{}, fmt.Errorf("inventory %s event has no data", evt.Action)
	}
	var inv store.Inventory
	if err := json.Unmarshal(evt.Data, &inv); err != nil {
		return store.Inventory{}, fmt.Errorf("decode inventory payload: %w", err)
	}
	if strings.TrimSpace(inv.ID) == "" {
		return store.Inventory{}, fmt.Errorf("inventory payload has no id")
	}
	if evt.EntityID != "" && evt.EntityID != inv.ID {
		return store.Inventory{}, fmt.Errorf("entity id %q does not match payload id %q", evt.EntityID, inv.ID)
	}
	return inv, nil
}

// decodeCampaign parses an event payload as a campaign.
func decodeCampaign(evt ChangeEvent) (store.Campaign, error) {
	if len(evt.Data) == 0 {
		return store.Campaign{}, fmt.Errorf("campaign %s event has no data", evt.Action)
	}
	var c store.Campaign
	if err := json.Unmarshal(evt.Data, &c); err != nil {
		return store.Campaign{}, fmt.Errorf("decode campaign payload: %w", err)
	}
	if strings.TrimSpace(c.ID) == "" {
		return store.Campaign{}, fmt.Errorf("campaign payload has no id")
	}
	if evt.EntityID != "" && evt.EntityID != c.ID {
		return store.Campaign{}, fmt.Errorf("entity id %q does not match payload id %q", evt.EntityID, c.ID)
	}
	return c, nil
}
