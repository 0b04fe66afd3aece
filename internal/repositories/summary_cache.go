package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
)

// SummaryCacheRepository provides cached monthly summaries using Redis.
type SummaryCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached summaries
}

// NewSummaryCacheRepository creates a new repository instance with a TTL.
func NewSummaryCacheRepository(client *redis.Client, expiration time.Duration) *SummaryCacheRepository {
	return &SummaryCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func summaryKey(userID uuid.UUID, month, year int) string {
	return fmt.Sprintf("summary:%s:%04d-%02d", userID, year, month)
}

// GetMonthly fetches a cached summary. Returns an error on cache miss.
func (r *SummaryCacheRepository) GetMonthly(ctx context.Context, userID uuid.UUID, month, year int) (*models.MonthlySummary, error) {
	key := summaryKey(userID, month, year)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, fmt.Errorf("summary not found in cache for %s", key)
		}
		return nil, err
	}

	var summary models.MonthlySummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		logger.Log.Infow(
			"key", key,
			"value", val,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"result", "hit",
		"error", nil,
	)

	return &summary, nil
}

// SetMonthly caches a summary with the configured expiration.
func (r *SummaryCacheRepository) SetMonthly(ctx context.Context, userID uuid.UUID, summary models.MonthlySummary) error {
	key := summaryKey(userID, summary.Month, summary.Year)

	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}

// InvalidateMonthly drops the cached summary for one user month. Called
// after expense mutations so the next read recomputes from storage.
func (r *SummaryCacheRepository) InvalidateMonthly(ctx context.Context, userID uuid.UUID, month, year int) error {
	key := summaryKey(userID, month, year)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "invalidated",
		"error", err,
	)

	return err
}
