// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package bandit

import (
	"math"
	"time"
)

// Renderer maps a selected action and its estimated score into the
// user-facing recommendation payload. Rendering is presentation, not
// decision logic; the engine only depends on this interface.
type Renderer interface {
	// Render builds the payload for one scored action.
	Render(action ActionID, score float64, now time.Time) Recommendation
}

// actionTemplate is the static presentation for one action.
type actionTemplate struct {
	title       string
	description string
	urgency     string

	// benefitFactor scales the confidence score into the expected-benefit
	// percentage shown to the user.
	benefitFactor float64
}

var actionTemplates = map[ActionID]actionTemplate{
	ActionStayIndoors: {
		title:         "Stay indoors",
		description:   "Air quality outside is likely to aggravate your symptoms. Stay inside until conditions improve.",
		urgency:       "medium",
		benefitFactor: 70,
	},
	ActionGoOutdoors: {
		title:         "Go for a walk",
		description:   "Conditions look good for you right now. Some fresh air and light activity can help.",
		urgency:       "low",
		benefitFactor: 50,
	},
	ActionTakeMedication: {
		title:         "Take your medication",
		description:   "Current conditions match your triggers. Keep your rescue inhaler close and use it as prescribed.",
		urgency:       "high",
		benefitFactor: 85,
	},
	ActionRunPurifier: {
		title:         "Run your air purifier",
		description:   "Indoor filtration can cut your particulate exposure significantly over the next few hours.",
		urgency:       "medium",
		benefitFactor: 60,
	},
	ActionCloseWindows: {
		title:         "Close your windows",
		description:   "Outdoor pollutant levels are elevated. Keeping windows closed limits what gets inside.",
		urgency:       "medium",
		benefitFactor: 55,
	},
	ActionAvoidExercise: {
		title:         "Skip strenuous exercise",
		description:   "Heavy breathing in today's air would increase your exposure. Keep activity light.",
		urgency:       "medium",
		benefitFactor: 65,
	},
	ActionAvoidPollen: {
		title:         "Limit pollen exposure",
		description:   "Pollen counts are high for your allergens. Plan outdoor time for later in the day.",
		urgency:       "medium",
		benefitFactor: 60,
	},
	ActionAdjustHumidity: {
		title:         "Adjust indoor humidity",
		description:   "Keeping humidity in the 40-50% range makes breathing easier and limits allergen spread.",
		urgency:       "low",
		benefitFactor: 45,
	},
	ActionAdjustTemperature: {
		title:         "Adjust indoor temperature",
		description:   "Temperature extremes can trigger symptoms. A moderate indoor setting helps.",
		urgency:       "low",
		benefitFactor: 40,
	},
	ActionEmergencyAlert: {
		title:         "Seek medical attention",
		description:   "Conditions and your profile suggest serious risk. If symptoms escalate, contact a medical professional now.",
		urgency:       "critical",
		benefitFactor: 95,
	},
}

// TemplateRenderer renders recommendations from the static per-action
// template table.
type TemplateRenderer struct{}

// NewTemplateRenderer creates the default renderer.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{}
}

// Render implements Renderer. The expected benefit is derived
// deterministically from the score, so identical scores always render the
// same percentage.
func (r *TemplateRenderer) Render(action ActionID, score float64, now time.Time) Recommendation {
	tpl, ok := actionTemplates[action]
	if !ok {
		tpl = actionTemplate{
			title:         string(action),
			description:   "Follow your coaching plan.",
			urgency:       "low",
			benefitFactor: 50,
		}
	}

	return Recommendation{
		Action:          action,
		Title:           tpl.title,
		Description:     tpl.description,
		Urgency:         tpl.urgency,
		ExpectedBenefit: int(math.Round(score * tpl.benefitFactor)),
		ConfidenceScore: score,
		Timestamp:       now,
	}
}

var _ Renderer = (*TemplateRenderer)(nil)
