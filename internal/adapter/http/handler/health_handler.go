package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// AccountCounter reports the number of registered accounts.
type AccountCounter interface {
	Len() int
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	accounts    AccountCounter
	redisClient redis.UniversalClient
}

// NewHealthHandler creates a new HealthHandler. redisClient may be nil when
// Redis features are disabled.
func NewHealthHandler(accounts AccountCounter, redisClient redis.UniversalClient) *HealthHandler {
	return &HealthHandler{
		accounts:    accounts,
		redisClient: redisClient,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	redisStatus := "disabled"
	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unhealthy", err.Error())
			return
		}
		redisStatus = "ok"
	}

	resp := map[string]any{
		"status": "ready",
		"redis":  redisStatus,
	}
	if h.accounts != nil {
		resp["accounts"] = h.accounts.Len()
	}

	writeJSON(w, http.StatusOK, resp)
}
