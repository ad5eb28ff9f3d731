// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

// Package api implements the HTTP surface of the personalization
// service.
//
// # Endpoints
//
//   - POST /api/v1/recommendations: generate personalized coaching
//     recommendations for a user under the current environmental context
//   - POST /api/v1/feedback: record a reward observation for a
//     previously shown action
//   - GET /api/v1/users/{userID}/insights: per-user learning summary
//   - GET /api/v1/actions: the fixed action catalog
//   - GET /api/v1/engine/status: engine runtime state
//   - GET /health, /health/live, /health/ready: operational probes
//   - GET /metrics: Prometheus exposition
//
// # Response Envelope
//
// Every JSON endpoint wraps its payload in APIResponse, carrying a
// success flag, the data or a structured APIError, and metadata with a
// request ID and timestamp. Request bodies are validated with
// go-playground/validator before reaching the engine; validation
// failures return per-field details under the VALIDATION_FAILED code.
//
// Routing uses go-chi with per-group rate limiting (go-chi/httprate)
// and CORS (go-chi/cors) configured from the security section of the
// runtime configuration.
package api
