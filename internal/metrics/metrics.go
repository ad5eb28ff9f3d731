// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Recommendation throughput and exploration rate
// - Feedback ingestion per action
// - Per-user model registry size
// - API endpoint latency and throughput

var (
	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bandit_recommendations_total",
			Help: "Total number of recommendations served",
		},
	)

	ExplorationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bandit_explorations_total",
			Help: "Total number of selections overridden by epsilon exploration",
		},
	)

	PredictionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_prediction_failures_total",
			Help: "Total number of estimator predictions that fell back to the neutral score",
		},
		[]string{"estimator"},
	)

	// Feedback Metrics
	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_feedback_total",
			Help: "Total number of reward feedback events recorded",
		},
		[]string{"action"},
	)

	// Registry Metrics
	TrackedUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bandit_tracked_users",
			Help: "Current number of users with in-memory model state",
		},
	)

	UsersEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bandit_users_evicted_total",
			Help: "Total number of user states evicted after the idle TTL",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordRecommendation records recommendations served in one request.
func RecordRecommendation(count int) {
	RecommendationsTotal.Add(float64(count))
}

// RecordExploration records one epsilon-greedy exploration override.
func RecordExploration() {
	ExplorationsTotal.Inc()
}

// RecordPredictionFailure records an estimator prediction that fell back
// to the neutral score.
func RecordPredictionFailure(estimator string) {
	PredictionFailures.WithLabelValues(estimator).Inc()
}

// RecordFeedback records one reward feedback event.
func RecordFeedback(action string) {
	FeedbackTotal.WithLabelValues(action).Inc()
}

// SetTrackedUsers updates the registry size gauge.
func SetTrackedUsers(n int) {
	TrackedUsers.Set(float64(n))
}

// RecordEviction records user states removed by a TTL sweep.
func RecordEviction(count int) {
	UsersEvicted.Add(float64(count))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
