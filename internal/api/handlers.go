// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/airwise/airwise/internal/bandit"
	"github.com/airwise/airwise/internal/logging"
)

// maxBodyBytes caps request bodies. Coaching payloads are small; anything
// larger is malformed or hostile.
const maxBodyBytes = 1 << 20

// Handlers holds the HTTP handlers for the personalization API.
type Handlers struct {
	engine   *bandit.Engine
	validate *validator.Validate
	renderer bandit.Renderer
	logger   zerolog.Logger
}

// NewHandlers creates the API handler set around a bandit engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandlers(engine *bandit.Engine, logger zerolog.Logger) *Handlers {
	return &Handlers{
		engine:   engine,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		renderer: bandit.NewTemplateRenderer(),
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// Recommendations handles POST /api/v1/recommendations.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendationRequest
	if !h.decodeAndValidate(rw, r, &req) {
		return
	}

	recs, err := h.engine.Recommend(r.Context(), req.UserID, req.Profile, req.Environment)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("user_id", logging.SanitizeUserID(req.UserID)).
			Msg("Recommendation generation failed")
		rw.InternalError("failed to generate recommendations")
		return
	}

	rw.Success(map[string]any{
		"user_id":         req.UserID,
		"recommendations": recs,
	})
}

// Feedback handles POST /api/v1/feedback.
func (h *Handlers) Feedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req FeedbackRequest
	if !h.decodeAndValidate(rw, r, &req) {
		return
	}

	err := h.engine.RecordFeedback(r.Context(), req.UserID, req.Action, req.Reward, req.Profile, req.Environment)
	switch {
	case errors.Is(err, bandit.ErrUnknownAction):
		rw.BadRequest(fmt.Sprintf("unknown action: %s", req.Action))
		return
	case errors.Is(err, bandit.ErrInvalidReward):
		rw.ValidationError("reward must be between 0 and 1", nil)
		return
	case err != nil:
		logging.Ctx(r.Context()).Error().Err(err).
			Str("user_id", logging.SanitizeUserID(req.UserID)).
			Msg("Feedback recording failed")
		rw.InternalError("failed to record feedback")
		return
	}

	rw.Created(FeedbackResponse{
		UserID: req.UserID,
		Action: req.Action,
		Reward: req.Reward,
	})
}

// Insights handles GET /api/v1/users/{userID}/insights.
func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		rw.BadRequest("user ID is required")
		return
	}

	insights, err := h.engine.UserInsights(userID)
	if errors.Is(err, bandit.ErrNoUserData) {
		rw.NotFound("no data for user")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("user_id", logging.SanitizeUserID(userID)).
			Msg("Insights lookup failed")
		rw.InternalError("failed to build insights")
		return
	}

	rw.Success(insights)
}

// Actions handles GET /api/v1/actions. The catalog is fixed, so the
// descriptions are rendered at the neutral score.
func (h *Handlers) Actions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	now := time.Now().UTC()
	catalog := bandit.Catalog()
	actions := make([]ActionInfo, 0, len(catalog))
	for _, id := range catalog {
		rec := h.renderer.Render(id, bandit.NeutralScore, now)
		actions = append(actions, ActionInfo{
			Action:      id,
			Title:       rec.Title,
			Description: rec.Description,
			Urgency:     rec.Urgency,
		})
	}

	rw.Success(map[string]any{
		"actions": actions,
		"count":   len(actions),
	})
}

// EngineStatus handles GET /api/v1/engine/status.
func (h *Handlers) EngineStatus(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(h.engine.Status())
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation, writing the error response itself on failure.
func (h *Handlers) decodeAndValidate(rw *ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(rw.w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		rw.BadRequest(fmt.Sprintf("invalid request body: %v", err))
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]validationDetail, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, validationDetail{
					Field: fe.Field(),
					Tag:   fe.Tag(),
					Value: fmt.Sprintf("%v", fe.Value()),
				})
			}
			rw.ValidationError("request validation failed", details)
			return false
		}
		rw.BadRequest("request validation failed")
		return false
	}

	return true
}
