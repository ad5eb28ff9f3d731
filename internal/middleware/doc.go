// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

/*
Package middleware provides HTTP middleware for the API surface.

It covers request ID tracking and Prometheus instrumentation. Cross-cutting
router concerns (CORS, rate limiting, panic recovery) are handled by chi
middleware at router assembly.

RequestID echoes an upstream X-Request-ID header or mints a UUID, sets the
response header, and seeds the logging context so handlers can read the ID
through logging.RequestIDFromContext:

	func handler(w http.ResponseWriter, r *http.Request) {
	    logging.Ctx(r.Context()).Info().Msg("processing request")
	}

PrometheusMetrics wraps a handler to record method/path/status counters,
request latency, and an in-flight gauge defined in internal/metrics.
*/
package middleware
