package worker

import (
	"context"
	"fmt"
	"time"

	"sharent/internal/domain"
	"sharent/internal/export"

	"github.com/rs/zerolog"
)

// ReportWorker regenerates the booking schedule report off the request
// path. Enqueue is cheap and lossy: while a task is pending, further
// enqueues collapse into it.
type ReportWorker struct {
	source domain.ReportSource
	path   string
	retry  RetryPolicy
	queue  chan struct{}
	logger *zerolog.Logger
}

func NewReportWorker(source domain.ReportSource, path string, retry RetryPolicy, logger *zerolog.Logger) *ReportWorker {
	return &ReportWorker{
		source: source,
		path:   path,
		retry:  retry,
		queue:  make(chan struct{}, 1),
		logger: logger,
	}
}

// Enqueue schedules a report regeneration without blocking the caller.
func (w *ReportWorker) Enqueue() {
	select {
	case w.queue <- struct{}{}:
	default:
	}
}

// Start runs the worker loop until the context is cancelled.
func (w *ReportWorker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.queue:
				w.generateWithRetry(ctx)
			}
		}
	}()
}

func (w *ReportWorker) generateWithRetry(ctx context.Context) {
	attempts := w.retry.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		err := w.generateOnce(ctx)
		if err == nil {
			w.logger.Debug().Str("path", w.path).Msg("booking report written")
			return
		}

		w.logger.Error().Err(err).Int("attempt", attempt).Msg("report generation failed")
		if attempt == attempts {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retry.NextDelay(attempt)):
		}
	}
}

func (w *ReportWorker) generateOnce(ctx context.Context) error {
	items, err := w.source.AllItems(ctx)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	bookings, err := w.source.AllBookings(ctx)
	if err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}
	return export.WriteBookingsReport(w.path, items, bookings)
}
