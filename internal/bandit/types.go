// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package bandit

import (
	"errors"
	"time"
)

// ActionID identifies one of the fixed coaching actions the engine can
// recommend. The catalog is immutable; adding or removing an action is a
// breaking change for stored feedback.
type ActionID string

const (
	// ActionStayIndoors advises remaining inside during poor conditions.
	ActionStayIndoors ActionID = "stay_indoors"
	// ActionGoOutdoors advises outdoor activity when conditions are good.
	ActionGoOutdoors ActionID = "go_outdoors"
	// ActionTakeMedication advises taking prescribed relief medication.
	ActionTakeMedication ActionID = "take_medication"
	// ActionRunPurifier advises running an air purifier.
	ActionRunPurifier ActionID = "run_purifier"
	// ActionCloseWindows advises closing windows against outdoor air.
	ActionCloseWindows ActionID = "close_windows"
	// ActionAvoidExercise advises skipping strenuous activity.
	ActionAvoidExercise ActionID = "avoid_exercise"
	// ActionAvoidPollen advises minimizing pollen exposure.
	ActionAvoidPollen ActionID = "avoid_pollen"
	// ActionAdjustHumidity advises changing indoor humidity.
	ActionAdjustHumidity ActionID = "adjust_humidity"
	// ActionAdjustTemperature advises changing indoor temperature.
	ActionAdjustTemperature ActionID = "adjust_temperature"
	// ActionEmergencyAlert escalates to urgent medical guidance.
	ActionEmergencyAlert ActionID = "emergency_alert"
)

// catalog is the fixed, ordered action list. Order is significant only as
// the iteration and tie-break convention, never as a ranking.
var catalog = []ActionID{
	ActionStayIndoors,
	ActionGoOutdoors,
	ActionTakeMedication,
	ActionRunPurifier,
	ActionCloseWindows,
	ActionAvoidExercise,
	ActionAvoidPollen,
	ActionAdjustHumidity,
	ActionAdjustTemperature,
	ActionEmergencyAlert,
}

// Catalog returns the fixed, ordered list of candidate actions.
// The returned slice is a copy; callers may not mutate engine state.
func Catalog() []ActionID {
	out := make([]ActionID, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogSize is the number of actions in the fixed catalog.
const CatalogSize = 10

// ValidAction reports whether a is a member of the fixed catalog.
func ValidAction(a ActionID) bool {
	for _, c := range catalog {
		if c == a {
			return true
		}
	}
	return false
}

// Sentinel errors returned by Engine operations.
var (
	// ErrInvalidReward is returned when a caller supplies a reward outside
	// [0, 1]. Out-of-range rewards are rejected rather than clamped so that
	// upstream bugs surface instead of silently skewing the models.
	ErrInvalidReward = errors.New("reward must be in [0, 1]")

	// ErrUnknownAction is returned when feedback references an action that
	// is not in the catalog.
	ErrUnknownAction = errors.New("unknown action")

	// ErrNoUserData is returned by UserInsights for a user with no
	// recorded feedback.
	ErrNoUserData = errors.New("no data for user")
)

// UserProfile is the health profile consumed from the user-profile store.
// Zero-valued fields are treated as missing and defaulted during
// featurization.
type UserProfile struct {
	// Age in years.
	Age int `json:"age,omitempty"`

	// SeverityScore is the clinician-assigned asthma severity on a 0-3 scale.
	SeverityScore float64 `json:"asthma_severity_score,omitempty"`

	// Allergies lists known allergen sensitivities.
	Allergies []string `json:"allergies,omitempty"`

	// Triggers lists known symptom triggers.
	Triggers []string `json:"triggers,omitempty"`
}

// EnvironmentalSnapshot is one reading from the environmental-data
// aggregation service. Zero-valued fields are treated as missing.
type EnvironmentalSnapshot struct {
	// PM25 is fine particulate matter in ug/m3.
	PM25 float64 `json:"pm25,omitempty"`

	// PM10 is coarse particulate matter in ug/m3.
	PM10 float64 `json:"pm10,omitempty"`

	// Ozone is ground-level ozone in ppb.
	Ozone float64 `json:"ozone,omitempty"`

	// Temperature in degrees Celsius.
	Temperature float64 `json:"temperature,omitempty"`

	// Humidity is relative humidity in percent.
	Humidity float64 `json:"humidity,omitempty"`

	// PollenTree, PollenGrass, and PollenWeed are sub-indices on a 0-5 scale.
	PollenTree  float64 `json:"pollen_tree,omitempty"`
	PollenGrass float64 `json:"pollen_grass,omitempty"`
	PollenWeed  float64 `json:"pollen_weed,omitempty"`
}

// Sample is one (context, reward) training example for an estimator.
type Sample struct {
	// Context is the featurized context vector of length NumFeatures.
	Context []float64

	// Reward is the observed reward in [0, 1].
	Reward float64
}

// RewardRecord is one stored feedback event.
type RewardRecord struct {
	// Context is the featurized context at the time the action was shown.
	Context []float64 `json:"-"`

	// Action is the action the feedback refers to.
	Action ActionID `json:"action"`

	// Reward is the observed benefit in [0, 1].
	Reward float64 `json:"reward"`

	// Timestamp is when the feedback was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// ActionStats aggregates the reward history for one action.
type ActionStats struct {
	// Count is the number of feedback events recorded for the action.
	Count int `json:"count"`

	// MeanReward is the arithmetic mean of recorded rewards.
	MeanReward float64 `json:"mean_reward"`

	// StdReward is the population standard deviation of recorded rewards.
	StdReward float64 `json:"std_reward"`

	// SuccessRate is the fraction of rewards strictly greater than 0.5.
	SuccessRate float64 `json:"success_rate"`
}

// ScoredAction pairs an action with its estimated reward.
type ScoredAction struct {
	// Action is the selected action.
	Action ActionID `json:"action"`

	// Score is the estimated reward in [0, 1] for the action actually
	// returned. During exploration the score still belongs to the
	// explored action, not to the exploitation maximum.
	Score float64 `json:"score"`
}

// Recommendation is the user-facing payload for one selected action.
type Recommendation struct {
	// Action identifies the recommended action.
	Action ActionID `json:"action"`

	// Title is the short user-facing headline.
	Title string `json:"title"`

	// Description is the user-facing guidance text.
	Description string `json:"description"`

	// Urgency is one of "low", "medium", "high", "critical".
	Urgency string `json:"urgency"`

	// ExpectedBenefit is the projected benefit as a whole percentage,
	// derived deterministically from the confidence score.
	ExpectedBenefit int `json:"expected_benefit"`

	// ConfidenceScore is the estimator's predicted reward in [0, 1].
	ConfidenceScore float64 `json:"confidence_score"`

	// Timestamp is when the recommendation was generated.
	Timestamp time.Time `json:"timestamp"`
}

// BestAction pairs an action with its average observed reward, for the
// insights payload.
type BestAction struct {
	Action    ActionID `json:"action"`
	AvgReward float64  `json:"avg_reward"`
}

// Insights summarizes what the engine has learned about one user.
type Insights struct {
	// UserID is the user the insights describe.
	UserID string `json:"user_id"`

	// TotalFeedback is the total number of feedback events ever recorded
	// for the user, including events that have aged out of retention.
	TotalFeedback int `json:"total_recommendations"`

	// BestActions lists up to three actions ranked by average reward.
	BestActions []BestAction `json:"best_actions"`

	// ActionStats is the per-action aggregate statistics.
	ActionStats map[ActionID]ActionStats `json:"action_statistics"`
}

// Estimator is a per-action predictive reward model. Implementations live
// in the estimators subpackage and must be usable without any prior
// training: an unfit estimator predicts the neutral score.
type Estimator interface {
	// Name returns the strategy identifier (e.g. "linucb", "logistic").
	Name() string

	// Predict returns the estimated reward in [0, 1] for a context.
	// An error indicates the model could not score the context (shape
	// mismatch, unfit batch model); callers substitute NeutralScore and
	// must never propagate the failure to the requester.
	Predict(context []float64) (float64, error)

	// Update incorporates one new observation. Online strategies fold the
	// example in immediately; batch strategies accumulate it and refit on
	// their own cadence.
	Update(context []float64, reward float64)

	// Retrain refits the model from scratch on the given dataset.
	Retrain(samples []Sample) error

	// IsTrained reports whether the model has seen at least one fit.
	IsTrained() bool

	// Version returns the model version, incremented on every fit.
	Version() int

	// LastTrainedAt returns when the model was last fit.
	LastTrainedAt() time.Time

	// Observations returns the number of examples seen.
	Observations() int
}

// EstimatorFactory builds a fresh estimator for one action. The Registry
// calls it lazily, once per (user, action) pair.
type EstimatorFactory func(action ActionID) Estimator

// NeutralScore is the prediction substituted for cold-start and failed
// estimators. It is the midpoint of the reward range, so untouched actions
// neither attract nor repel the selector.
const NeutralScore = 0.5
