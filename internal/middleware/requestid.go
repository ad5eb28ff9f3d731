// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/airwise/airwise/internal/logging"
)

// RequestID tags each request with an ID, echoing an upstream
// X-Request-ID header when present and minting a UUID otherwise. The ID
// and a fresh correlation ID are placed in the request context through
// the logging package, which is the single store handlers read from.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		ctx = logging.ContextWithNewCorrelationID(ctx)

		next(w, r.WithContext(ctx))
	}
}
