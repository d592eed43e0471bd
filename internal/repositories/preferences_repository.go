package repositories

import (
	"context"
	"errors"

	"cardbinder/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PreferencesRepository struct {
	pool *pgxpool.Pool
}

func NewPreferencesRepository(pool *pgxpool.Pool) *PreferencesRepository {
	return &PreferencesRepository{pool: pool}
}

func (r *PreferencesRepository) Find(userID uuid.UUID) (*models.Preferences, error) {
	ctx := context.Background()

	query := `
		SELECT user_id, currency, display_name, public_profile, updated_at
		FROM user_preferences WHERE user_id = $1
	`
	var prefs models.Preferences
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&prefs.UserID, &prefs.Currency, &prefs.DisplayName,
		&prefs.PublicProfile, &prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *PreferencesRepository) Upsert(prefs *models.Preferences) error {
	ctx := context.Background()

	query := `
		INSERT INTO user_preferences (user_id, currency, display_name, public_profile, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			currency = EXCLUDED.currency,
			display_name = EXCLUDED.display_name,
			public_profile = EXCLUDED.public_profile,
			updated_at = NOW()
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		prefs.UserID, prefs.Currency, prefs.DisplayName, prefs.PublicProfile,
	).Scan(&prefs.UpdatedAt)
}
