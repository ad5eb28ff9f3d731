// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/airwise/airwise/internal/bandit"
	"github.com/airwise/airwise/internal/bandit/estimators"
	"github.com/airwise/airwise/internal/logging"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()

	cfg := bandit.DefaultConfig()
	cfg.Epsilon = 0 // deterministic selection in tests

	engine, err := bandit.NewEngine(cfg, estimators.NewFactory(cfg), logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return NewHandlers(engine, logging.NewTestLogger(io.Discard))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantSuccess bool
	}{
		{
			name:        "valid request",
			body:        `{"user_id":"user-123","profile":{"age":34,"asthma_severity_score":2},"environment":{"pm25":55.0,"ozone":80}}`,
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		},
		{
			name:        "empty profile and environment",
			body:        `{"user_id":"user-456"}`,
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		},
		{
			name:        "missing user ID",
			body:        `{"profile":{"age":34}}`,
			wantStatus:  http.StatusBadRequest,
			wantSuccess: false,
		},
		{
			name:        "malformed JSON",
			body:        `{"user_id":`,
			wantStatus:  http.StatusBadRequest,
			wantSuccess: false,
		},
		{
			name:        "unknown field rejected",
			body:        `{"user_id":"user-123","bogus":true}`,
			wantStatus:  http.StatusBadRequest,
			wantSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandlers(t)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.Recommendations(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			resp := decodeResponse(t, rec)
			if resp.Success != tt.wantSuccess {
				t.Errorf("success = %v, want %v", resp.Success, tt.wantSuccess)
			}
		})
	}
}

func TestRecommendationsPayload(t *testing.T) {
	h := newTestHandlers(t)
	body := `{"user_id":"user-123","environment":{"pm25":120.0}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Recommendations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data struct {
			UserID          string                  `json:"user_id"`
			Recommendations []bandit.Recommendation `json:"recommendations"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if resp.Data.UserID != "user-123" {
		t.Errorf("user_id = %q, want %q", resp.Data.UserID, "user-123")
	}
	if len(resp.Data.Recommendations) == 0 {
		t.Fatal("expected at least one recommendation")
	}
	for _, r := range resp.Data.Recommendations {
		if !bandit.ValidAction(r.Action) {
			t.Errorf("unknown action in response: %s", r.Action)
		}
		if r.ConfidenceScore < 0 || r.ConfidenceScore > 1 {
			t.Errorf("confidence_score = %f, want [0, 1]", r.ConfidenceScore)
		}
		if r.Title == "" || r.Description == "" {
			t.Errorf("action %s missing rendered text", r.Action)
		}
	}
}

func TestFeedback(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "valid feedback",
			body:       `{"user_id":"user-123","action":"run_purifier","reward":0.9}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown action",
			body:       `{"user_id":"user-123","action":"open_umbrella","reward":0.5}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeBadRequest,
		},
		{
			name:       "reward above range",
			body:       `{"user_id":"user-123","action":"run_purifier","reward":1.5}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidationFailed,
		},
		{
			name:       "reward below range",
			body:       `{"user_id":"user-123","action":"run_purifier","reward":-0.1}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidationFailed,
		},
		{
			name:       "missing action",
			body:       `{"user_id":"user-123","reward":0.5}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandlers(t)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.Feedback(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				resp := decodeResponse(t, rec)
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Errorf("error code = %v, want %s", resp.Error, tt.wantCode)
				}
			}
		})
	}
}

func TestInsightsNotFound(t *testing.T) {
	h := newTestHandlers(t)
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/ghost/insights", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %v, want code %s", resp.Error, ErrCodeNotFound)
	}
}

func TestInsightsAfterFeedback(t *testing.T) {
	h := newTestHandlers(t)
	router := newTestRouter(h)

	// Record a handful of feedback events first.
	for i := 0; i < 3; i++ {
		body := `{"user_id":"user-777","action":"close_windows","reward":0.8}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("feedback status = %d, want 201", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/user-777/insights", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data bandit.Insights `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if resp.Data.UserID != "user-777" {
		t.Errorf("user_id = %q, want %q", resp.Data.UserID, "user-777")
	}
	if resp.Data.TotalFeedback != 3 {
		t.Errorf("total feedback = %d, want 3", resp.Data.TotalFeedback)
	}
	if len(resp.Data.BestActions) == 0 {
		t.Error("expected at least one best action")
	}
}

func TestActions(t *testing.T) {
	h := newTestHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/actions", nil)
	rec := httptest.NewRecorder()

	h.Actions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data struct {
			Actions []ActionInfo `json:"actions"`
			Count   int          `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if resp.Data.Count != len(bandit.Catalog()) {
		t.Errorf("count = %d, want %d", resp.Data.Count, len(bandit.Catalog()))
	}
	for _, a := range resp.Data.Actions {
		if a.Title == "" || a.Urgency == "" {
			t.Errorf("action %s missing template fields", a.Action)
		}
	}
}

func TestEngineStatus(t *testing.T) {
	h := newTestHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/engine/status", nil)
	rec := httptest.NewRecorder()

	h.EngineStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data bandit.Status `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if resp.Data.Estimator != bandit.StrategyLinUCB {
		t.Errorf("estimator = %q, want %q", resp.Data.Estimator, bandit.StrategyLinUCB)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandlers(t)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		path    string
	}{
		{name: "health", handler: h.Health, path: "/health"},
		{name: "liveness", handler: h.Liveness, path: "/health/live"},
		{name: "readiness", handler: h.Readiness, path: "/health/ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			tt.handler(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			resp := decodeResponse(t, rec)
			if !resp.Success {
				t.Error("expected success envelope")
			}
		})
	}
}
