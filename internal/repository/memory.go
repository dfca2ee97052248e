package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimitRepository is the in-process fallback counter used when
// Redis is absent or down.
type MemoryRateLimitRepository struct {
	mu      sync.Mutex
	windows map[int64]*rateWindow
}

type rateWindow struct {
	count     int
	expiresAt time.Time
}

func NewMemoryRateLimitRepository() *MemoryRateLimitRepository {
	return &MemoryRateLimitRepository{windows: make(map[int64]*rateWindow)}
}

func (r *MemoryRateLimitRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.windows[userID]
	if !ok || now.After(entry.expiresAt) {
		entry = &rateWindow{count: 1, expiresAt: now.Add(window)}
		r.windows[userID] = entry
	} else {
		entry.count++
	}

	return entry.count <= limit, nil
}
