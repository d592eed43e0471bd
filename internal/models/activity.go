package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity actions recorded on collection mutations.
const (
	ActivityAdded   = "added"
	ActivityUpdated = "updated"
	ActivityRemoved = "removed"
)

// ActivityEvent is one entry in the dashboard feed.
type ActivityEvent struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CardID    uuid.UUID `json:"card_id"`
	Variant   string    `json:"variant"`
	Action    string    `json:"action"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`

	// Denormalized for feed rendering.
	DisplayName string `json:"display_name,omitempty"`
	CardName    string `json:"card_name,omitempty"`
	SetCode     string `json:"set_code,omitempty"`
}

// LeaderboardEntry ranks a collector by total owned cards.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	CardCount   int       `json:"card_count"`
}
