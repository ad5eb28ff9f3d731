// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package api

import (
	"github.com/airwise/airwise/internal/bandit"
)

// RecommendationRequest is the body for POST /api/v1/recommendations.
type RecommendationRequest struct {
	// UserID identifies the subscriber requesting coaching.
	UserID string `json:"user_id" validate:"required,min=1,max=128"`

	// Profile is the user's health profile. Optional; missing fields are
	// defaulted during featurization.
	Profile bandit.UserProfile `json:"profile"`

	// Environment is the current environmental snapshot. Optional.
	Environment bandit.EnvironmentalSnapshot `json:"environment"`
}

// FeedbackRequest is the body for POST /api/v1/feedback.
type FeedbackRequest struct {
	// UserID identifies the subscriber the feedback belongs to.
	UserID string `json:"user_id" validate:"required,min=1,max=128"`

	// Action is the catalog action the feedback refers to.
	Action bandit.ActionID `json:"action" validate:"required"`

	// Reward is the observed benefit in [0, 1].
	Reward float64 `json:"reward" validate:"gte=0,lte=1"`

	// Profile and Environment reconstruct the context the action was
	// shown under. Clients are expected to echo the values from the
	// originating recommendation request.
	Profile     bandit.UserProfile           `json:"profile"`
	Environment bandit.EnvironmentalSnapshot `json:"environment"`
}

// FeedbackResponse acknowledges a recorded feedback event.
type FeedbackResponse struct {
	UserID string          `json:"user_id"`
	Action bandit.ActionID `json:"action"`
	Reward float64         `json:"reward"`
}

// ActionInfo describes one catalog action for GET /api/v1/actions.
type ActionInfo struct {
	Action      bandit.ActionID `json:"action"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Urgency     string          `json:"urgency"`
}

// validationDetail is one per-field validation failure.
type validationDetail struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value,omitempty"`
}
