package services

import (
	"context"

	"cardbinder/internal/models"
	"cardbinder/internal/repositories"

	"github.com/google/uuid"
)

type DashboardService struct {
	activityRepo *repositories.ActivityRepository
	redisRepo    *repositories.RedisRepository
	prefsRepo    *repositories.PreferencesRepository
}

func NewDashboardService(
	activityRepo *repositories.ActivityRepository,
	redisRepo *repositories.RedisRepository,
	prefsRepo *repositories.PreferencesRepository,
) *DashboardService {
	return &DashboardService{
		activityRepo: activityRepo,
		redisRepo:    redisRepo,
		prefsRepo:    prefsRepo,
	}
}

func (s *DashboardService) Feed(viewerID uuid.UUID, limit int) ([]models.ActivityEvent, error) {
	if limit < 1 || limit > 100 {
		limit = 25
	}
	return s.activityRepo.ListFeed(viewerID, limit)
}

func (s *DashboardService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	rows, err := s.redisRepo.TopCollectors(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entry := models.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      row.UserID,
			DisplayName: "Collector",
			CardCount:   row.Count,
		}
		if prefs, err := s.prefsRepo.Find(row.UserID); err == nil && prefs != nil && prefs.DisplayName != "" {
			entry.DisplayName = prefs.DisplayName
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// TradingPreview is the placeholder payload the trading panel renders
// until trading ships.
type TradingPreview struct {
	Available  bool     `json:"available"`
	Message    string   `json:"message"`
	OpenOffers []string `json:"open_offers"`
}

func (s *DashboardService) Trading() TradingPreview {
	return TradingPreview{
		Available:  false,
		Message:    "Trading is coming soon",
		OpenOffers: []string{},
	}
}
