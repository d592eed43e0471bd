package repositories

import (
	"context"
	"errors"
	"fmt"

	"cardbinder/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) ListSeries() ([]models.Series, error) {
	ctx := context.Background()

	query := `
		SELECT s.id, s.name, COUNT(st.id)
		FROM series s
		LEFT JOIN sets st ON st.series_id = s.id
		GROUP BY s.id, s.name
		ORDER BY MAX(st.release_date) DESC NULLS LAST
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []models.Series
	for rows.Next() {
		var s models.Series
		if err := rows.Scan(&s.ID, &s.Name, &s.SetCount); err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return series, rows.Err()
}

func (r *CatalogRepository) ListSets(seriesID *uuid.UUID) ([]models.Set, error) {
	ctx := context.Background()

	query := `
		SELECT st.id, st.series_id, s.name, st.code, st.name,
		       COALESCE(st.release_date, 'epoch'::date), st.printed_total, st.secret_total,
		       COALESCE(st.logo_url, ''), COALESCE(st.symbol_url, '')
		FROM sets st
		JOIN series s ON s.id = st.series_id
	`
	args := []interface{}{}
	if seriesID != nil {
		query += ` WHERE st.series_id = $1`
		args = append(args, *seriesID)
	}
	query += ` ORDER BY st.release_date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []models.Set
	for rows.Next() {
		var st models.Set
		if err := rows.Scan(
			&st.ID, &st.SeriesID, &st.SeriesName, &st.Code, &st.Name,
			&st.ReleaseDate, &st.PrintedTotal, &st.SecretTotal,
			&st.LogoURL, &st.SymbolURL,
		); err != nil {
			return nil, err
		}
		sets = append(sets, st)
	}
	return sets, rows.Err()
}

func (r *CatalogRepository) scanSet(row pgx.Row) (*models.Set, error) {
	var st models.Set
	err := row.Scan(
		&st.ID, &st.SeriesID, &st.SeriesName, &st.Code, &st.Name,
		&st.ReleaseDate, &st.PrintedTotal, &st.SecretTotal,
		&st.LogoURL, &st.SymbolURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

const setSelect = `
	SELECT st.id, st.series_id, s.name, st.code, st.name,
	       COALESCE(st.release_date, 'epoch'::date), st.printed_total, st.secret_total,
	       COALESCE(st.logo_url, ''), COALESCE(st.symbol_url, '')
	FROM sets st
	JOIN series s ON s.id = st.series_id
`

func (r *CatalogRepository) FindSetByID(id uuid.UUID) (*models.Set, error) {
	ctx := context.Background()
	return r.scanSet(r.pool.QueryRow(ctx, setSelect+` WHERE st.id = $1`, id))
}

func (r *CatalogRepository) FindSetByCode(code string) (*models.Set, error) {
	ctx := context.Background()
	return r.scanSet(r.pool.QueryRow(ctx, setSelect+` WHERE st.code = $1`, code))
}

func (r *CatalogRepository) ListCardsBySet(setID uuid.UUID, limit, offset int) ([]models.Card, int, error) {
	ctx := context.Background()

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM cards WHERE set_id = $1`, setID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, set_id, external_id, number, name, rarity, supertype, COALESCE(image_url, '')
		FROM cards
		WHERE set_id = $1
		ORDER BY LENGTH(number), number
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, setID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

func (r *CatalogRepository) FindCardByID(id uuid.UUID) (*models.Card, error) {
	ctx := context.Background()

	query := `
		SELECT id, set_id, external_id, number, name, rarity, supertype, COALESCE(image_url, '')
		FROM cards WHERE id = $1
	`
	var c models.Card
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.SetID, &c.ExternalID, &c.Number, &c.Name, &c.Rarity, &c.Supertype, &c.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CatalogRepository) SearchCardsByName(name string, limit int) ([]models.Card, error) {
	ctx := context.Background()

	query := `
		SELECT id, set_id, external_id, number, name, rarity, supertype, COALESCE(image_url, '')
		FROM cards
		WHERE LOWER(name) LIKE LOWER($1)
		ORDER BY name
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, "%"+name+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCards(rows)
}

// AllCardsBySet returns every card of a set, used for completion math.
func (r *CatalogRepository) AllCardsBySet(setID uuid.UUID) ([]models.Card, error) {
	ctx := context.Background()

	query := `
		SELECT id, set_id, external_id, number, name, rarity, supertype, COALESCE(image_url, '')
		FROM cards WHERE set_id = $1
	`
	rows, err := r.pool.Query(ctx, query, setID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCards(rows)
}

func scanCards(rows pgx.Rows) ([]models.Card, error) {
	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(
			&c.ID, &c.SetID, &c.ExternalID, &c.Number, &c.Name, &c.Rarity, &c.Supertype, &c.ImageURL,
		); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// UpsertSeries inserts the series if missing and returns its id.
func (r *CatalogRepository) UpsertSeries(name string) (uuid.UUID, error) {
	ctx := context.Background()

	query := `
		INSERT INTO series (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("upserting series %q: %w", name, err)
	}
	return id, nil
}

func (r *CatalogRepository) UpsertSet(set *models.Set) error {
	ctx := context.Background()

	query := `
		INSERT INTO sets (series_id, code, name, release_date, printed_total, secret_total, logo_url, symbol_url)
		VALUES ($1, $2, $3, NULLIF($4, 'epoch'::date), $5, $6, $7, $8)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			printed_total = EXCLUDED.printed_total,
			secret_total = EXCLUDED.secret_total,
			logo_url = EXCLUDED.logo_url,
			symbol_url = EXCLUDED.symbol_url
		RETURNING id
	`
	return r.pool.QueryRow(ctx, query,
		set.SeriesID, set.Code, set.Name, set.ReleaseDate,
		set.PrintedTotal, set.SecretTotal, set.LogoURL, set.SymbolURL,
	).Scan(&set.ID)
}

// UpsertCards batch-inserts cards with a pgx.Batch, one round trip.
func (r *CatalogRepository) UpsertCards(cards []models.Card) error {
	ctx := context.Background()

	c, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection from pool: %w", err)
	}
	defer c.Release()

	sql := `
		INSERT INTO cards (set_id, external_id, number, name, rarity, supertype, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			rarity = EXCLUDED.rarity,
			supertype = EXCLUDED.supertype,
			image_url = EXCLUDED.image_url
	`

	batch := &pgx.Batch{}
	for _, card := range cards {
		batch.Queue(sql, card.SetID, card.ExternalID, card.Number, card.Name,
			card.Rarity, card.Supertype, card.ImageURL)
	}

	br := c.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("executing batch insert for cards: %w", err)
		}
	}
	return nil
}
