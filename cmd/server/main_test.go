package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/config"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTPPort:            "0",
		HTTPReadTimeout:     time.Second,
		HTTPWriteTimeout:    time.Second,
		HTTPIdleTimeout:     time.Second,
		HTTPShutdownTimeout: time.Second,
		IdempotencyTTL:      time.Hour,
		IDFormat:            "ulid",
	}
}

func serve(t *testing.T, h http.Handler, method, path, identifier, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if identifier != "" {
		req.Header.Set(middleware.IdentifierHeader, identifier)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBuildApp_WithoutRedis(t *testing.T) {
	a, err := buildApp(context.Background(), testConfig(), zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("buildApp failed: %v", err)
	}
	defer a.Close()

	if a.rateLimiter != nil || a.redisClient != nil {
		t.Fatalf("expected optional components to be disabled")
	}

	if rec := serve(t, a.router, http.MethodPost, "/accounts", "", `{"identifier":"111","name":"Ana"}`); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := serve(t, a.router, http.MethodGet, "/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}
}

func TestBuildApp_WithRedisPublishesEvents(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.EventsStream = "events"
	cfg.RateLimitRPS = 100
	cfg.RateLimitBurst = 100

	a, err := buildApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("buildApp failed: %v", err)
	}
	defer a.Close()

	if a.rateLimiter == nil {
		t.Fatalf("expected rate limiter to be configured")
	}

	serve(t, a.router, http.MethodPost, "/accounts", "", `{"identifier":"111","name":"Ana"}`)
	serve(t, a.router, http.MethodPost, "/deposit", "111", `{"amount":10}`)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	entries, err := client.XRange(context.Background(), "events", "-", "+").Result()
	if err != nil {
		t.Fatalf("xrange failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 events, got %d", len(entries))
	}
	if entries[0].Values["type"] != domain.EventTypeAccountCreated || entries[1].Values["type"] != domain.EventTypeOperationRecorded {
		t.Fatalf("unexpected events: %v", entries)
	}
}

func TestBuildApp_InvalidIDFormat(t *testing.T) {
	cfg := testConfig()
	cfg.IDFormat = "serial"

	if _, err := buildApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry()); err == nil {
		t.Fatalf("expected error for unknown id format")
	}
}

func TestBuildApp_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig()
	cfg.RedisURL = "redis://" + addr

	if _, err := buildApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry()); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, testConfig(), zerolog.Nop(), prometheus.NewRegistry())
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestRealMain_ExitCodes(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	t.Run("invalid configuration", func(t *testing.T) {
		t.Setenv("ID_FORMAT", "serial")

		if code := realMain(context.Background(), prometheus.NewRegistry()); code != 1 {
			t.Fatalf("expected exit code 1, got %d", code)
		}
	})

	t.Run("server failure", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		t.Setenv("HTTP_PORT", "0")
		t.Setenv("REDIS_URL", "redis://"+addr)
		t.Setenv("REDIS_CONNECT_TIMEOUT", "0s")

		if code := realMain(context.Background(), prometheus.NewRegistry()); code != 1 {
			t.Fatalf("expected exit code 1, got %d", code)
		}
	})

	t.Run("clean shutdown", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "0")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if code := realMain(ctx, prometheus.NewRegistry()); code != 0 {
			t.Fatalf("expected exit code 0, got %d", code)
		}
	})
}
