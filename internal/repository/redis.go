package repository

import (
	"context"
	"fmt"
	"time"

	"sharent/internal/config"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimitRepository counts requests per user with INCR and a
// window-scoped expiry.
type RedisRateLimitRepository struct {
	client *redis.Client
}

// NewRedisClient builds a Redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisRateLimitRepository(client *redis.Client) *RedisRateLimitRepository {
	return &RedisRateLimitRepository{client: client}
}

func (r *RedisRateLimitRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rate_limit:%d", userID)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("increment rate limit: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("set rate limit window: %w", err)
		}
	}

	return count <= int64(limit), nil
}
