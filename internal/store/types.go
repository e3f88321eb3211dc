// Package store holds the in-memory entity caches the sync core reconciles
// into. Each cache is an independent collaborator: it is owned by exactly one
// reconciler inside the core and read by UI code outside it, so every cache
// guards its state with a mutex and hands out copies, never internal slices.
package store

import "time"

// Character is one campaign character as mirrored from the server.
type Character struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaignId"`
	Name       string    `json:"name"`
	HP         int       `json:"hp"`
	MaxHP      int       `json:"maxHp"`
	TempHP     int       `json:"tempHp"`
	ArmorClass int       `json:"armorClass"`
	Conditions []string  `json:"conditions"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TrackerCondition is one condition on a combat tracker row. Remaining is the
// number of rounds left, or nil when the condition has no tracked duration.
type TrackerCondition struct {
	Label     string `json:"label"`
	Remaining *int   `json:"remaining"`
}

// TrackerRow is the combat tracker's derived view of one character.
type TrackerRow struct {
	CharacterID string             `json:"characterId"`
	Name        string             `json:"name"`
	HP          int                `json:"hp"`
	MaxHP       int                `json:"maxHp"`
	TempHP      int                `json:"tempHp"`
	ArmorClass  int                `json:"armorClass"`
	Conditions  []TrackerCondition `json:"conditions"`
}

// Currency is the coin pouch carried by an inventory.
type Currency struct {
	CP int `json:"cp"`
	SP int `json:"sp"`
	EP int `json:"ep"`
	GP int `json:"gp"`
	PP int `json:"pp"`
}

// Inventory is one shared or personal inventory as mirrored from the server.
type Inventory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerIDs  []string  `json:"ownerIds"`
	Currency  Currency  `json:"currency"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Campaign is one campaign as mirrored from the server.
type Campaign struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}
