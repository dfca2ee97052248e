package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"sharent/internal/config"
	"sharent/internal/domain"
	"sharent/internal/metrics"
	"sharent/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// userIDHeader carries the opaque caller identity. Authentication is a
// gateway concern; this layer only relays the id to the services.
const userIDHeader = "X-Sharer-User-Id"

// HTTPServer exposes the marketplace API.
type HTTPServer struct {
	cfg      config.RateLimitConfig
	bookings *service.BookingService
	items    *service.ItemService
	users    *service.UserService
	requests *service.RequestService
	rateRepo domain.RateLimitRepository
	limiters sync.Map
	server   *http.Server
	logger   *zerolog.Logger
}

func NewHTTPServer(cfg config.HTTPConfig, rlCfg config.RateLimitConfig, bookings *service.BookingService, items *service.ItemService, users *service.UserService, requests *service.RequestService, rateRepo domain.RateLimitRepository, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:      rlCfg,
		bookings: bookings,
		items:    items,
		users:    users,
		requests: requests,
		rateRepo: rateRepo,
		logger:   logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", srv.handleCreateUser)
	mux.HandleFunc("GET /users", srv.handleListUsers)
	mux.HandleFunc("GET /users/{id}", srv.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", srv.handlePatchUser)
	mux.HandleFunc("DELETE /users/{id}", srv.handleDeleteUser)

	mux.HandleFunc("POST /items", srv.handleCreateItem)
	mux.HandleFunc("GET /items", srv.handleOwnItems)
	mux.HandleFunc("GET /items/search", srv.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", srv.handleItemDetail)
	mux.HandleFunc("PATCH /items/{id}", srv.handlePatchItem)
	mux.HandleFunc("POST /items/{id}/comment", srv.handleAddComment)

	mux.HandleFunc("POST /requests", srv.handleCreateRequest)
	mux.HandleFunc("GET /requests", srv.handleOwnRequests)
	mux.HandleFunc("GET /requests/all", srv.handleOtherRequests)
	mux.HandleFunc("GET /requests/{id}", srv.handleGetRequest)

	mux.HandleFunc("POST /bookings", srv.handleCreateBooking)
	mux.HandleFunc("GET /bookings", srv.handleBookerBookings)
	mux.HandleFunc("GET /bookings/owner", srv.handleOwnerBookings)
	mux.HandleFunc("GET /bookings/{id}", srv.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", srv.handleSetBookingStatus)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	handler := srv.requestIDMiddleware(srv.loggingMiddleware(srv.rateLimitMiddleware(mux)))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("http api listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), requestID)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(r.Method + " " + r.URL.Path)
		s.logger.Info().
			Str("request_id", requestIDFrom(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// rateLimitMiddleware applies a per-client token bucket plus, when a
// caller identity is present and a counter repository is wired, a
// per-user rolling window.
func (s *HTTPServer) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.clientLimiter(r.RemoteAddr).Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		if s.rateRepo != nil {
			if raw := r.Header.Get(userIDHeader); raw != "" {
				if userID, err := strconv.ParseInt(raw, 10, 64); err == nil {
					window := time.Duration(s.cfg.PerUserWindow) * time.Second
					allowed, err := s.rateRepo.CheckRateLimit(r.Context(), userID, s.cfg.PerUserLimit, window)
					if err != nil {
						s.logger.Error().Err(err).Int64("user_id", userID).Msg("rate limit check failed")
					} else if !allowed {
						writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
						return
					}
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) clientLimiter(key string) *rate.Limiter {
	if v, ok := s.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(rate.Limit(s.cfg.RPS), s.cfg.Burst)
	actual, _ := s.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
