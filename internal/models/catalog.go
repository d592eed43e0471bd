package models

import (
	"time"

	"github.com/google/uuid"
)

// Series groups sets under one product line, e.g. "Scarlet & Violet".
type Series struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	SetCount int       `json:"set_count,omitempty"`
}

// Set is one trading-card expansion.
type Set struct {
	ID           uuid.UUID `json:"id"`
	SeriesID     uuid.UUID `json:"series_id"`
	SeriesName   string    `json:"series_name,omitempty"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	ReleaseDate  time.Time `json:"release_date"`
	PrintedTotal int       `json:"printed_total"`
	SecretTotal  int       `json:"secret_total"`
	LogoURL      string    `json:"logo_url,omitempty"`
	SymbolURL    string    `json:"symbol_url,omitempty"`
}

// Card is one printing inside a set. ExternalID is the card's id in the
// external card API, used as the pricing lookup key.
type Card struct {
	ID         uuid.UUID `json:"id"`
	SetID      uuid.UUID `json:"set_id"`
	ExternalID string    `json:"external_id"`
	Number     string    `json:"number"`
	Name       string    `json:"name"`
	Rarity     string    `json:"rarity"`
	Supertype  string    `json:"supertype"`
	ImageURL   string    `json:"image_url,omitempty"`
}

// VariantPrice is the market price of one variant, converted into the
// requested display currency.
type VariantPrice struct {
	Variant  string  `json:"variant"`
	PriceKey string  `json:"price_key"`
	Currency string  `json:"currency"`
	Low      float64 `json:"low,omitempty"`
	Market   float64 `json:"market"`
}

// CardDetail is a card plus its inferred variants and per-variant
// prices, as served by GET /cards/:id.
type CardDetail struct {
	Card     Card           `json:"card"`
	Set      Set            `json:"set"`
	Variants []string       `json:"variants"`
	Prices   []VariantPrice `json:"prices,omitempty"`
}
