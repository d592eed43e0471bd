package models

import (
	"time"

	"github.com/google/uuid"
)

// Card conditions accepted by the collection endpoints.
var Conditions = []string{"mint", "near_mint", "excellent", "good", "played", "damaged"}

// CollectionItem is one owned variant of one card. (user, card,
// variant) is unique; owning more copies bumps Quantity.
type CollectionItem struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	CardID     uuid.UUID `json:"card_id"`
	Variant    string    `json:"variant"`
	Quantity   int       `json:"quantity"`
	Condition  string    `json:"condition"`
	AcquiredAt time.Time `json:"acquired_at"`

	// Denormalized for list responses.
	CardName   string `json:"card_name,omitempty"`
	CardNumber string `json:"card_number,omitempty"`
	SetCode    string `json:"set_code,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

// SetProgress is per-set completion: distinct owned variants over all
// variants the engine says exist in the set.
type SetProgress struct {
	SetID         uuid.UUID `json:"set_id"`
	SetCode       string    `json:"set_code"`
	SetName       string    `json:"set_name"`
	OwnedVariants int       `json:"owned_variants"`
	TotalVariants int       `json:"total_variants"`
	OwnedCards    int       `json:"owned_cards"`
	TotalCards    int       `json:"total_cards"`
	PercentOwned  float64   `json:"percent_owned"`
}

// CollectionValue is the estimated worth of a collection in the user's
// preferred currency.
type CollectionValue struct {
	Currency    string  `json:"currency"`
	Total       float64 `json:"total"`
	CardCount   int     `json:"card_count"`
	PricedCount int     `json:"priced_count"`
}
