package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cardbinder/internal/tcgapi"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRepository covers the Redis-backed concerns: refresh-token
// sessions, token blacklist, price-sheet cache, and the collector
// leaderboard.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

const (
	sessionTTL     = 30 * 24 * time.Hour
	priceTTL       = 6 * time.Hour
	leaderboardKey = "leaderboard:cards"
)

func (r *RedisRepository) StoreSession(ctx context.Context, jti string, userID string) error {
	key := "session:" + jti
	return r.rdb.Set(ctx, key, userID, sessionTTL).Err()
}

func (r *RedisRepository) SessionUser(ctx context.Context, jti string) (string, error) {
	key := "session:" + jti
	userID, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return userID, err
}

func (r *RedisRepository) DeleteSession(ctx context.Context, jti string) error {
	key := "session:" + jti
	return r.rdb.Del(ctx, key).Err()
}

func (r *RedisRepository) Blacklist(ctx context.Context, jti string) error {
	key := "blacklist:" + jti
	return r.rdb.Set(ctx, key, "true", sessionTTL).Err()
}

func (r *RedisRepository) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	key := "blacklist:" + jti
	exists, err := r.rdb.Exists(ctx, key).Result()
	return exists == 1, err
}

// StorePriceSheet caches a card's price sheet under its external id.
func (r *RedisRepository) StorePriceSheet(ctx context.Context, externalID string, sheet tcgapi.PriceSheet) error {
	data, err := json.Marshal(sheet)
	if err != nil {
		return err
	}
	key := "prices:" + externalID
	return r.rdb.Set(ctx, key, data, priceTTL).Err()
}

// FindPriceSheet returns the cached sheet, or nil on a miss.
func (r *RedisRepository) FindPriceSheet(ctx context.Context, externalID string) (tcgapi.PriceSheet, error) {
	key := "prices:" + externalID
	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sheet tcgapi.PriceSheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

// AdjustLeaderboard moves a user's owned-card count by delta.
func (r *RedisRepository) AdjustLeaderboard(ctx context.Context, userID uuid.UUID, delta int) error {
	return r.rdb.ZIncrBy(ctx, leaderboardKey, float64(delta), userID.String()).Err()
}

// SetLeaderboardScore pins a user's score to an absolute value.
func (r *RedisRepository) SetLeaderboardScore(ctx context.Context, userID uuid.UUID, count int) error {
	return r.rdb.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(count),
		Member: userID.String(),
	}).Err()
}

type LeaderboardRow struct {
	UserID uuid.UUID
	Count  int
}

// TopCollectors returns the highest-scoring users, best first.
func (r *RedisRepository) TopCollectors(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	entries, err := r.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	rows := make([]LeaderboardRow, 0, len(entries))
	for _, entry := range entries {
		member, ok := entry.Member.(string)
		if !ok {
			continue
		}
		userID, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		rows = append(rows, LeaderboardRow{UserID: userID, Count: int(entry.Score)})
	}
	return rows, nil
}
