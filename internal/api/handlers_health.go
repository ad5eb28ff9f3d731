// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package api

import (
	"net/http"
	"time"
)

var startTime = time.Now()

// HealthResponse is the payload for the health endpoints.
type HealthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Estimator     string  `json:"estimator"`
	TrackedUsers  int     `json:"tracked_users"`
}

// Health handles GET /health. The engine is purely in-memory, so the
// service is healthy whenever it can answer at all.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := h.engine.Status()
	rw.Success(HealthResponse{
		Status:        "healthy",
		UptimeSeconds: time.Since(startTime).Seconds(),
		Estimator:     status.Estimator,
		TrackedUsers:  status.TrackedUsers,
	})
}

// Liveness handles GET /health/live.
func (h *Handlers) Liveness(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready.
func (h *Handlers) Readiness(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("engine not initialized")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}
