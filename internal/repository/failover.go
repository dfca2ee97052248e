package repository

import (
	"context"
	"sync/atomic"
	"time"

	"sharent/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverRateLimitRepository prefers the primary (Redis) counter and
// falls back to the in-memory one when the primary errors. It retries
// the primary after a cooldown.
type FailoverRateLimitRepository struct {
	primary   domain.RateLimitRepository
	fallback  domain.RateLimitRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	downSince atomic.Int64
}

const recoveryCooldown = time.Minute

func NewFailoverRateLimitRepository(primary, fallback domain.RateLimitRepository, logger *zerolog.Logger) *FailoverRateLimitRepository {
	return &FailoverRateLimitRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverRateLimitRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() || r.cooldownElapsed() {
		allowed, err := r.primary.CheckRateLimit(ctx, userID, limit, window)
		if err == nil {
			r.isDown.Store(false)
			return allowed, nil
		}
		r.logger.Error().Err(err).Msg("primary rate limiter failed, using fallback")
		r.isDown.Store(true)
		r.downSince.Store(time.Now().UnixNano())
	}

	return r.fallback.CheckRateLimit(ctx, userID, limit, window)
}

func (r *FailoverRateLimitRepository) cooldownElapsed() bool {
	return time.Since(time.Unix(0, r.downSince.Load())) > recoveryCooldown
}
