package repositories

import (
	"context"

	"cardbinder/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) Create(event *models.ActivityEvent) error {
	ctx := context.Background()

	query := `
		INSERT INTO activity_events (user_id, card_id, variant, action, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		event.UserID, event.CardID, event.Variant, event.Action, event.Quantity,
	).Scan(&event.ID, &event.CreatedAt)
}

// ListFeed returns the newest events from public profiles plus the
// viewer's own, newest first.
func (r *ActivityRepository) ListFeed(viewerID uuid.UUID, limit int) ([]models.ActivityEvent, error) {
	ctx := context.Background()

	query := `
		SELECT ae.id, ae.user_id, ae.card_id, ae.variant, ae.action, ae.quantity, ae.created_at,
		       COALESCE(NULLIF(up.display_name, ''), 'Collector'), c.name, s.code
		FROM activity_events ae
		JOIN cards c ON c.id = ae.card_id
		JOIN sets s ON s.id = c.set_id
		LEFT JOIN user_preferences up ON up.user_id = ae.user_id
		WHERE ae.user_id = $1 OR COALESCE(up.public_profile, FALSE)
		ORDER BY ae.created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, viewerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.ActivityEvent
	for rows.Next() {
		var e models.ActivityEvent
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CardID, &e.Variant, &e.Action, &e.Quantity, &e.CreatedAt,
			&e.DisplayName, &e.CardName, &e.SetCode,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
