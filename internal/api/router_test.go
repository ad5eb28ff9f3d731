// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/airwise/airwise/internal/config"
)

func testRouterConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			RateLimitReqs:     1000,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
	}
}

func newTestRouter(h *Handlers) http.Handler {
	return NewRouter(testRouterConfig(), h)
}

func TestRouterRoutes(t *testing.T) {
	h := newTestHandlers(t)
	router := newTestRouter(h)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "recommendations",
			method:     http.MethodPost,
			path:       "/api/v1/recommendations",
			body:       `{"user_id":"user-1"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "feedback",
			method:     http.MethodPost,
			path:       "/api/v1/feedback",
			body:       `{"user_id":"user-1","action":"stay_indoors","reward":0.7}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "actions",
			method:     http.MethodGet,
			path:       "/api/v1/actions",
			wantStatus: http.StatusOK,
		},
		{
			name:       "engine status",
			method:     http.MethodGet,
			path:       "/api/v1/engine/status",
			wantStatus: http.StatusOK,
		},
		{
			name:       "health",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "liveness",
			method:     http.MethodGet,
			path:       "/health/live",
			wantStatus: http.StatusOK,
		},
		{
			name:       "readiness",
			method:     http.MethodGet,
			path:       "/health/ready",
			wantStatus: http.StatusOK,
		},
		{
			name:       "metrics",
			method:     http.MethodGet,
			path:       "/metrics",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/v1/nope",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			path:       "/api/v1/recommendations",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d (body %s)",
					tt.method, tt.path, rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRouterRequestIDHeader(t *testing.T) {
	h := newTestHandlers(t)
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestRouterRequestIDPropagation(t *testing.T) {
	h := newTestHandlers(t)
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "upstream-id-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id-42" {
		t.Errorf("X-Request-ID = %q, want upstream value preserved", got)
	}
}

func TestRouterRateLimit(t *testing.T) {
	cfg := testRouterConfig()
	cfg.Security.RateLimitReqs = 2
	h := newTestHandlers(t)
	router := NewRouter(cfg, h)

	var lastStatus int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/actions", nil)
		req.RemoteAddr = "10.1.2.3:5555"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		lastStatus = rec.Code
	}

	if lastStatus != http.StatusTooManyRequests {
		t.Errorf("status after burst = %d, want 429", lastStatus)
	}
}
