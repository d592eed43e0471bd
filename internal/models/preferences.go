package models

import (
	"time"

	"github.com/google/uuid"
)

// Preferences are per-user display settings. A defaults row is created
// lazily on first read.
type Preferences struct {
	UserID        uuid.UUID `json:"user_id"`
	Currency      string    `json:"currency"`
	DisplayName   string    `json:"display_name"`
	PublicProfile bool      `json:"public_profile"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultPreferences returns the settings a fresh user starts with.
func DefaultPreferences(userID uuid.UUID) *Preferences {
	return &Preferences{
		UserID:   userID,
		Currency: "USD",
	}
}
