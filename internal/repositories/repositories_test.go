package repositories

import (
	"context"
	"testing"
	"time"

	"cardbinder/internal/database"
	"cardbinder/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a throwaway Postgres container, runs the
// migrations against it, and returns a connected pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed tests in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("cardbinder_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(pool))
	return pool
}

func createTestUser(t *testing.T, repo *UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Role:         "user",
	}
	require.NoError(t, repo.Create(user))
	return user
}

// seedCatalog inserts one series with one set of three cards and
// returns the set and its cards.
func seedCatalog(t *testing.T, repo *CatalogRepository) (*models.Set, []models.Card) {
	t.Helper()

	seriesID, err := repo.UpsertSeries("Scarlet & Violet")
	require.NoError(t, err)

	set := &models.Set{
		SeriesID:     seriesID,
		Code:         "sv1",
		Name:         "Scarlet & Violet",
		ReleaseDate:  time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC),
		PrintedTotal: 198,
		SecretTotal:  60,
	}
	require.NoError(t, repo.UpsertSet(set))

	cards := []models.Card{
		{SetID: set.ID, ExternalID: "sv1-1", Number: "1", Name: "Sprigatito", Rarity: "Common", Supertype: "Pokémon"},
		{SetID: set.ID, ExternalID: "sv1-2", Number: "2", Name: "Floragato", Rarity: "Uncommon", Supertype: "Pokémon"},
		{SetID: set.ID, ExternalID: "sv1-258", Number: "258", Name: "Miriam", Rarity: "Special Illustration Rare", Supertype: "Trainer"},
	}
	require.NoError(t, repo.UpsertCards(cards))

	stored, err := repo.AllCardsBySet(set.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	return set, stored
}

func TestUserRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepository(pool)

	user := createTestUser(t, repo, "ash@example.com")
	assert.NotEqual(t, uuid.Nil, user.ID)

	found, err := repo.FindUserByEmail("ash@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.Nil(t, found.LastLoginAt)

	missing, err := repo.FindUserByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := &models.User{Email: "ash@example.com", PasswordHash: "x", Role: "user"}
	assert.Error(t, repo.Create(dup))

	require.NoError(t, repo.TouchLastLogin(user.ID))
	found, err = repo.FindUserByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.LastLoginAt)

	found.Role = "admin"
	require.NoError(t, repo.Update(found))

	count, err := repo.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "admin", all[0].Role)
}

func TestCatalogRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCatalogRepository(pool)

	set, cards := seedCatalog(t, repo)

	t.Run("upserts are idempotent", func(t *testing.T) {
		seriesID, err := repo.UpsertSeries("Scarlet & Violet")
		require.NoError(t, err)
		assert.Equal(t, set.SeriesID, seriesID)

		again := &models.Set{SeriesID: seriesID, Code: "sv1", Name: "Scarlet & Violet", PrintedTotal: 198, SecretTotal: 60}
		require.NoError(t, repo.UpsertSet(again))
		assert.Equal(t, set.ID, again.ID)

		updated := []models.Card{
			{SetID: set.ID, ExternalID: "sv1-1", Number: "1", Name: "Sprigatito", Rarity: "Common Reprint", Supertype: "Pokémon"},
		}
		require.NoError(t, repo.UpsertCards(updated))

		stored, err := repo.AllCardsBySet(set.ID)
		require.NoError(t, err)
		assert.Len(t, stored, 3)
	})

	t.Run("list series with set counts", func(t *testing.T) {
		series, err := repo.ListSeries()
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.Equal(t, "Scarlet & Violet", series[0].Name)
		assert.Equal(t, 1, series[0].SetCount)
	})

	t.Run("list sets filtered by series", func(t *testing.T) {
		sets, err := repo.ListSets(nil)
		require.NoError(t, err)
		require.Len(t, sets, 1)
		assert.Equal(t, "sv1", sets[0].Code)
		assert.Equal(t, "Scarlet & Violet", sets[0].SeriesName)

		other := uuid.New()
		none, err := repo.ListSets(&other)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("find set by code", func(t *testing.T) {
		found, err := repo.FindSetByCode("sv1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, set.ID, found.ID)

		missing, err := repo.FindSetByCode("nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("paged card listing orders by number", func(t *testing.T) {
		page, total, err := repo.ListCardsBySet(set.ID, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, page, 2)
		assert.Equal(t, "1", page[0].Number)
		assert.Equal(t, "2", page[1].Number)

		rest, _, err := repo.ListCardsBySet(set.ID, 2, 2)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "258", rest[0].Number)
	})

	t.Run("search by name is case-insensitive", func(t *testing.T) {
		hits, err := repo.SearchCardsByName("sprig", 10)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, cards[0].Name, hits[0].Name)
	})
}

func TestCollectionRepository(t *testing.T) {
	pool := setupTestDB(t)
	userRepo := NewUserRepository(pool)
	catalogRepo := NewCatalogRepository(pool)
	repo := NewCollectionRepository(pool)

	user := createTestUser(t, userRepo, "misty@example.com")
	set, cards := seedCatalog(t, catalogRepo)

	item := &models.CollectionItem{
		UserID:    user.ID,
		CardID:    cards[0].ID,
		Variant:   "normal",
		Quantity:  2,
		Condition: "near_mint",
	}
	require.NoError(t, repo.AddOrIncrement(item))
	assert.Equal(t, 2, item.Quantity)

	// Same (user, card, variant) bumps the quantity instead of failing.
	more := &models.CollectionItem{
		UserID: user.ID, CardID: cards[0].ID, Variant: "normal", Quantity: 1, Condition: "played",
	}
	require.NoError(t, repo.AddOrIncrement(more))
	assert.Equal(t, 3, more.Quantity)
	assert.Equal(t, item.ID, more.ID)

	holo := &models.CollectionItem{
		UserID: user.ID, CardID: cards[0].ID, Variant: "reverse_holo", Quantity: 1, Condition: "near_mint",
	}
	require.NoError(t, repo.AddOrIncrement(holo))

	found, err := repo.FindItem(user.ID, cards[0].ID, "normal")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 3, found.Quantity)
	assert.Equal(t, "played", found.Condition)

	require.NoError(t, repo.SetQuantity(user.ID, cards[0].ID, "normal", 5))
	err = repo.SetQuantity(user.ID, cards[1].ID, "normal", 5)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	items, err := repo.ListByUserAndSet(user.ID, set.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Sprigatito", items[0].CardName)
	assert.Equal(t, "sv1", items[0].SetCode)

	variants, owned, err := repo.CountOwnedVariantsBySet(user.ID, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, variants)
	assert.Equal(t, 1, owned)

	total, err := repo.TotalCards(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, total)

	require.NoError(t, repo.Remove(user.ID, cards[0].ID, "reverse_holo"))
	err = repo.Remove(user.ID, cards[0].ID, "reverse_holo")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestPreferencesRepository(t *testing.T) {
	pool := setupTestDB(t)
	userRepo := NewUserRepository(pool)
	repo := NewPreferencesRepository(pool)

	user := createTestUser(t, userRepo, "brock@example.com")

	missing, err := repo.Find(user.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	prefs := &models.Preferences{
		UserID:        user.ID,
		Currency:      "EUR",
		DisplayName:   "Brock",
		PublicProfile: true,
	}
	require.NoError(t, repo.Upsert(prefs))
	assert.False(t, prefs.UpdatedAt.IsZero())

	prefs.Currency = "GBP"
	require.NoError(t, repo.Upsert(prefs))

	found, err := repo.Find(user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "GBP", found.Currency)
	assert.Equal(t, "Brock", found.DisplayName)
	assert.True(t, found.PublicProfile)
}

func TestActivityRepositoryFeedVisibility(t *testing.T) {
	pool := setupTestDB(t)
	userRepo := NewUserRepository(pool)
	catalogRepo := NewCatalogRepository(pool)
	prefsRepo := NewPreferencesRepository(pool)
	repo := NewActivityRepository(pool)

	viewer := createTestUser(t, userRepo, "viewer@example.com")
	public := createTestUser(t, userRepo, "public@example.com")
	private := createTestUser(t, userRepo, "private@example.com")
	_, cards := seedCatalog(t, catalogRepo)

	require.NoError(t, prefsRepo.Upsert(&models.Preferences{
		UserID: public.ID, Currency: "USD", DisplayName: "Gary", PublicProfile: true,
	}))
	require.NoError(t, prefsRepo.Upsert(&models.Preferences{
		UserID: private.ID, Currency: "USD", DisplayName: "Hidden", PublicProfile: false,
	}))

	for _, userID := range []uuid.UUID{viewer.ID, public.ID, private.ID} {
		event := &models.ActivityEvent{
			UserID:   userID,
			CardID:   cards[0].ID,
			Variant:  "normal",
			Action:   models.ActivityAdded,
			Quantity: 1,
		}
		require.NoError(t, repo.Create(event))
		assert.NotEqual(t, uuid.Nil, event.ID)
	}

	feed, err := repo.ListFeed(viewer.ID, 25)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	seen := map[uuid.UUID]string{}
	for _, e := range feed {
		seen[e.UserID] = e.DisplayName
		assert.Equal(t, "Sprigatito", e.CardName)
		assert.Equal(t, "sv1", e.SetCode)
	}
	assert.Equal(t, "Gary", seen[public.ID])
	// Viewer has no preferences row; feed falls back to the default name.
	assert.Equal(t, "Collector", seen[viewer.ID])
	assert.NotContains(t, seen, private.ID)
}
