package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		route      string
		path       string
		statusCode int
		wantLabel  string
	}{
		{
			name:       "labels by route pattern",
			method:     http.MethodGet,
			route:      "/balance",
			path:       "/balance",
			statusCode: http.StatusTeapot,
			wantLabel:  "/balance",
		},
		{
			name:       "unknown path collapses to unmatched",
			method:     http.MethodPost,
			route:      "/deposit",
			path:       "/some/random/path",
			statusCode: http.StatusNotFound,
			wantLabel:  unmatchedRoute,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpRequestsTotal.Reset()
			httpRequestDuration.Reset()
			httpRequestsInFlight.Set(0)

			r := chi.NewRouter()
			r.Use(Metrics)
			r.MethodFunc(tc.method, tc.route, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
			})
			r.NotFound(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			if rr.Code != tc.statusCode {
				t.Fatalf("expected status %d, got %d", tc.statusCode, rr.Code)
			}

			if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
				t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
			}

			counter := httpRequestsTotal.WithLabelValues(tc.method, tc.wantLabel, strconv.Itoa(tc.statusCode))
			if got := testutil.ToFloat64(counter); got != 1 {
				t.Fatalf("expected request counter to be 1, got %v", got)
			}

			if got := testutil.CollectAndCount(httpRequestDuration); got != 1 {
				t.Fatalf("expected one duration series, got %d", got)
			}
		})
	}
}

func TestRouteLabelWithoutRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	if got := routeLabel(req); got != unmatchedRoute {
		t.Fatalf("expected %q, got %q", unmatchedRoute, got)
	}
}
