// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the recommendation engine and the API surface using
the Prometheus client library, exposing metrics for monitoring throughput,
model behavior, and system health.

# Overview

The package provides metrics for:
  - Recommendation throughput and epsilon exploration rate
  - Estimator prediction failures (neutral-score fallbacks)
  - Reward feedback volume per action
  - Per-user model registry size and TTL evictions
  - API request latency and throughput

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Engine Metrics:
  - bandit_recommendations_total: Recommendations served (counter)
  - bandit_explorations_total: Epsilon exploration overrides (counter)
  - bandit_prediction_failures_total: Neutral-score fallbacks (counter)
    Labels: estimator
  - bandit_feedback_total: Reward feedback events (counter)
    Labels: action
  - bandit_tracked_users: Users with in-memory state (gauge)
  - bandit_users_evicted_total: Idle user states evicted (counter)

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)

# Usage

Metrics are registered automatically via promauto at package initialization.
Recording helpers wrap the raw collectors:

	metrics.RecordFeedback(string(action))
	metrics.RecordAPIRequest("POST", "/api/v1/feedback", "200", elapsed)

# Thread Safety

All Prometheus collectors are safe for concurrent use.
*/
package metrics
