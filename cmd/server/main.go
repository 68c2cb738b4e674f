package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/finledger/internal/adapter/http"
	"github.com/iho/finledger/internal/adapter/http/handler"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/adapter/idgen"
	"github.com/iho/finledger/internal/adapter/repository/memory"
	redisRepo "github.com/iho/finledger/internal/adapter/repository/redis"
	"github.com/iho/finledger/internal/infrastructure/config"
	"github.com/iho/finledger/internal/infrastructure/logger"
	"github.com/iho/finledger/internal/infrastructure/metrics"
	"github.com/iho/finledger/internal/infrastructure/redis"
	"github.com/iho/finledger/internal/usecase"
)

const (
	limiterCleanupInterval = 10 * time.Minute
	limiterMaxIdle         = time.Hour
)

func main() {
	os.Exit(realMain(context.Background(), prometheus.DefaultRegisterer))
}

// realMain runs the server until ctx is cancelled or a termination signal
// arrives and returns the process exit code.
func realMain(ctx context.Context, reg prometheus.Registerer) int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, reg); err != nil {
		log.Error().Err(err).Msg("server failed")
		return 1
	}

	log.Info().Msg("server stopped")
	return 0
}

// app is the wired service.
type app struct {
	router      http.Handler
	rateLimiter *middleware.RateLimiter
	redisClient *goredis.Client
}

func (a *app) Close() error {
	if a.redisClient != nil {
		return a.redisClient.Close()
	}
	return nil
}

// buildApp wires repositories, use cases, and handlers. Redis-backed
// idempotency and events are enabled only when REDIS_URL is set.
func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg prometheus.Registerer) (*app, error) {
	idGen, err := idgen.New(cfg.IDFormat)
	if err != nil {
		return nil, err
	}

	accountRepo := memory.NewAccountRepository()
	opts := []usecase.Option{
		usecase.WithMetrics(metrics.NewWithRegistry(reg)),
		usecase.WithLogger(log),
	}

	a := &app{}

	var (
		idempotencyStore usecase.IdempotencyStore
		healthRedis      goredis.UniversalClient
	)
	if cfg.RedisEnabled() {
		client, err := redis.NewClient(ctx, cfg.RedisURL, redis.ConnectOptions{
			MaxElapsed: cfg.RedisConnectTimeout,
			Logger:     log,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to redis")

		a.redisClient = client
		healthRedis = client
		idempotencyStore = redisRepo.NewIdempotencyStore(client)
		opts = append(opts, usecase.WithEventPublisher(
			redisRepo.NewEventPublisher(client, cfg.EventsStream, cfg.EventsStreamMax),
		))
	} else {
		log.Warn().Msg("REDIS_URL not set, idempotency keys and event publishing are disabled")
	}

	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, opts...)
	statementUC := usecase.NewStatementUseCase(accountRepo, opts...)
	guard := usecase.NewAccountGuard(accountRepo)

	a.router = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		StatementHandler: handler.NewStatementHandler(statementUC),
		HealthHandler:    handler.NewHealthHandler(accountRepo, healthRedis),
		Guard:            guard,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      a.rateLimiter,
		Logger:           log,
	})

	return a, nil
}

// run serves HTTP until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg prometheus.Registerer) error {
	a, err := buildApp(ctx, cfg, log, reg)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.rateLimiter != nil {
		go a.rateLimiter.RunCleanup(ctx, limiterCleanupInterval, limiterMaxIdle)
	}

	listener, err := net.Listen("tcp", ":"+cfg.HTTPPort)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.HTTPPort, err)
	}

	server := &http.Server{
		Handler:      a.router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", listener.Addr().String()).Msg("starting server")
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}
