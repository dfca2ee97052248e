package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"sharent/internal/api"
	"sharent/internal/config"
	"sharent/internal/database"
	"sharent/internal/domain"
	"sharent/internal/events"
	"sharent/internal/logging"
	"sharent/internal/metrics"
	"sharent/internal/repository"
	"sharent/internal/service"
	"sharent/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, rateRepo := initRateLimiter(ctx, cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	eventBus := events.NewBus()

	bookingService := service.NewBookingService(db, db, db, eventBus, &logger)
	itemService := service.NewItemService(db, db, db, db, db, eventBus, &logger)
	userService := service.NewUserService(db, &logger)
	requestService := service.NewRequestService(db, db, db, &logger)

	if cfg.Reports.Enabled {
		startReportWorker(ctx, cfg, db, eventBus, &logger)
	}

	startMetrics(ctx, cfg, &logger)

	httpServer := api.NewHTTPServer(cfg.HTTP, cfg.RateLimit, bookingService, itemService, userService, requestService, rateRepo, &logger)
	return serve(ctx, httpServer, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := logging.Component(baseLogger, "api-main")

	return cfg, logger, closer, nil
}

func initRateLimiter(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, domain.RateLimitRepository) {
	fallback := repository.NewMemoryRateLimitRepository()
	if !cfg.Redis.Enabled {
		return nil, fallback
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, starting on in-memory rate limiter")
	} else {
		logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	}

	primary := repository.NewRedisRateLimitRepository(redisClient)
	return redisClient, repository.NewFailoverRateLimitRepository(primary, fallback, logger)
}

func startReportWorker(ctx context.Context, cfg *config.Config, db *database.DB, bus *events.Bus, logger *zerolog.Logger) {
	if err := os.MkdirAll(filepath.Dir(cfg.Reports.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("create reports directory")
		return
	}

	retryPolicy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
	reportWorker := worker.NewReportWorker(db, cfg.Reports.Path, retryPolicy, logger)
	reportWorker.Start(ctx)

	refresh := func(*events.Event) error {
		reportWorker.Enqueue()
		return nil
	}
	bus.Subscribe(events.EventBookingCreated, refresh)
	bus.Subscribe(events.EventBookingApproved, refresh)
	bus.Subscribe(events.EventBookingRejected, refresh)

	// Initial snapshot on boot.
	reportWorker.Enqueue()
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

func serve(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info().Msg("API server stopped")
	return nil
}
