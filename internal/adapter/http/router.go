package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/adapter/http/handler"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	StatementHandler *handler.StatementHandler
	HealthHandler    *handler.HealthHandler
	Guard            middleware.AccountChecker
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	// MetricsHandler serves /metrics. Defaults to promhttp.Handler().
	MetricsHandler http.Handler
	Logger         zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Get("/admin/accounts", cfg.AccountHandler.List)

	r.Group(func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger)
			r.Use(idempotency.Wrap)
		}

		mustNotExist := middleware.RequireAccount(cfg.Guard, middleware.GuardConfig{
			Source:       middleware.SourceBody,
			ExpectExists: false,
			Message:      "Account already exists",
		})
		mustExist := middleware.RequireAccount(cfg.Guard, middleware.GuardConfig{
			Source:       middleware.SourceHeader,
			ExpectExists: true,
			Message:      "Account not found",
		})

		r.With(mustNotExist).Post("/accounts", cfg.AccountHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(mustExist)

			r.Get("/accounts", cfg.AccountHandler.Get)
			r.Put("/accounts", cfg.AccountHandler.Rename)
			r.Delete("/accounts", cfg.AccountHandler.Delete)

			r.Get("/statement", cfg.StatementHandler.Statement)
			r.Post("/deposit", cfg.StatementHandler.Deposit)
			r.Post("/withdraw", cfg.StatementHandler.Withdraw)
			r.Get("/balance", cfg.StatementHandler.Balance)
		})
	})

	return r
}
