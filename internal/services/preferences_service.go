package services

import (
	"errors"

	"cardbinder/internal/models"
	"cardbinder/internal/rates"
	"cardbinder/internal/repositories"

	"github.com/google/uuid"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

type PreferencesService struct {
	prefsRepo *repositories.PreferencesRepository
}

func NewPreferencesService(prefsRepo *repositories.PreferencesRepository) *PreferencesService {
	return &PreferencesService{prefsRepo: prefsRepo}
}

// Get returns the user's preferences, creating the defaults row on
// first read.
func (s *PreferencesService) Get(userID uuid.UUID) (*models.Preferences, error) {
	prefs, err := s.prefsRepo.Find(userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = models.DefaultPreferences(userID)
		if err := s.prefsRepo.Upsert(prefs); err != nil {
			return nil, err
		}
	}
	return prefs, nil
}

// UpdatePreferencesRequest is the PATCH body for preference updates.
type UpdatePreferencesRequest struct {
	Currency      *string `json:"currency,omitempty"`
	DisplayName   *string `json:"display_name,omitempty"`
	PublicProfile *bool   `json:"public_profile,omitempty"`
}

func (s *PreferencesService) Update(userID uuid.UUID, req UpdatePreferencesRequest) (*models.Preferences, error) {
	prefs, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if req.Currency != nil {
		if !rates.IsSupported(*req.Currency) {
			return nil, ErrUnsupportedCurrency
		}
		prefs.Currency = *req.Currency
	}
	if req.DisplayName != nil {
		prefs.DisplayName = *req.DisplayName
	}
	if req.PublicProfile != nil {
		prefs.PublicProfile = *req.PublicProfile
	}

	if err := s.prefsRepo.Upsert(prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// Currency resolves the display currency for a user, defaulting to USD
// when preferences are missing or unreadable.
func (s *PreferencesService) Currency(userID uuid.UUID) string {
	prefs, err := s.prefsRepo.Find(userID)
	if err != nil || prefs == nil {
		return "USD"
	}
	return prefs.Currency
}
