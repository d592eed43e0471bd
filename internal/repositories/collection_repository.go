package repositories

import (
	"context"
	"errors"

	"cardbinder/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CollectionRepository struct {
	pool *pgxpool.Pool
}

func NewCollectionRepository(pool *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{pool: pool}
}

// AddOrIncrement inserts the item or bumps the quantity of an existing
// (user, card, variant) row. Returns the row as stored.
func (r *CollectionRepository) AddOrIncrement(item *models.CollectionItem) error {
	ctx := context.Background()

	query := `
		INSERT INTO collection_items (user_id, card_id, variant, quantity, condition)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, card_id, variant) DO UPDATE SET
			quantity = collection_items.quantity + EXCLUDED.quantity,
			condition = EXCLUDED.condition
		RETURNING id, quantity, acquired_at
	`
	return r.pool.QueryRow(ctx, query,
		item.UserID, item.CardID, item.Variant, item.Quantity, item.Condition,
	).Scan(&item.ID, &item.Quantity, &item.AcquiredAt)
}

func (r *CollectionRepository) SetQuantity(userID, cardID uuid.UUID, variant string, quantity int) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `
		UPDATE collection_items SET quantity = $4
		WHERE user_id = $1 AND card_id = $2 AND variant = $3
	`, userID, cardID, variant, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CollectionRepository) Remove(userID, cardID uuid.UUID, variant string) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `
		DELETE FROM collection_items
		WHERE user_id = $1 AND card_id = $2 AND variant = $3
	`, userID, cardID, variant)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CollectionRepository) FindItem(userID, cardID uuid.UUID, variant string) (*models.CollectionItem, error) {
	ctx := context.Background()

	query := `
		SELECT id, user_id, card_id, variant, quantity, condition, acquired_at
		FROM collection_items
		WHERE user_id = $1 AND card_id = $2 AND variant = $3
	`
	var item models.CollectionItem
	err := r.pool.QueryRow(ctx, query, userID, cardID, variant).Scan(
		&item.ID, &item.UserID, &item.CardID, &item.Variant,
		&item.Quantity, &item.Condition, &item.AcquiredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

const itemSelect = `
	SELECT ci.id, ci.user_id, ci.card_id, ci.variant, ci.quantity, ci.condition, ci.acquired_at,
	       c.name, c.number, s.code, COALESCE(c.image_url, '')
	FROM collection_items ci
	JOIN cards c ON c.id = ci.card_id
	JOIN sets s ON s.id = c.set_id
`

func (r *CollectionRepository) ListByUser(userID uuid.UUID) ([]models.CollectionItem, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, itemSelect+`
		WHERE ci.user_id = $1
		ORDER BY ci.acquired_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *CollectionRepository) ListByUserAndSet(userID, setID uuid.UUID) ([]models.CollectionItem, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, itemSelect+`
		WHERE ci.user_id = $1 AND c.set_id = $2
		ORDER BY LENGTH(c.number), c.number, ci.variant
	`, userID, setID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]models.CollectionItem, error) {
	var items []models.CollectionItem
	for rows.Next() {
		var item models.CollectionItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.CardID, &item.Variant,
			&item.Quantity, &item.Condition, &item.AcquiredAt,
			&item.CardName, &item.CardNumber, &item.SetCode, &item.ImageURL,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CountOwnedVariantsBySet counts distinct owned (card, variant) pairs
// and distinct owned cards inside one set.
func (r *CollectionRepository) CountOwnedVariantsBySet(userID, setID uuid.UUID) (variants int, cards int, err error) {
	ctx := context.Background()

	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT ci.card_id)
		FROM collection_items ci
		JOIN cards c ON c.id = ci.card_id
		WHERE ci.user_id = $1 AND c.set_id = $2
	`, userID, setID).Scan(&variants, &cards)
	return variants, cards, err
}

// TotalCards sums the quantities across a user's collection.
func (r *CollectionRepository) TotalCards(userID uuid.UUID) (int, error) {
	ctx := context.Background()

	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM collection_items WHERE user_id = $1
	`, userID).Scan(&total)
	return total, err
}
