// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package bandit

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/airwise/airwise/internal/logging"
	"github.com/airwise/airwise/internal/metrics"
)

// Engine is the personalization engine's public surface. It coordinates
// featurization, per-user state, action selection, and rendering behind
// three operations: Recommend, RecordFeedback, and UserInsights.
// It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	registry *Registry
	selector *Selector
	renderer Renderer

	// now is the clock source; replaced in tests for deterministic
	// featurization.
	now func() time.Time

	recommendCount atomic.Int64
	feedbackCount  atomic.Int64
}

// Status summarizes the engine's runtime state for operational endpoints.
type Status struct {
	// Estimator is the configured strategy identifier.
	Estimator string `json:"estimator"`

	// Epsilon is the configured exploration probability.
	Epsilon float64 `json:"epsilon"`

	// TrackedUsers is the number of users with live bandit state.
	TrackedUsers int `json:"tracked_users"`

	// RecommendCount is the number of recommendation requests served.
	RecommendCount int64 `json:"recommend_count"`

	// FeedbackCount is the number of feedback events recorded.
	FeedbackCount int64 `json:"feedback_count"`
}

// NewEngine creates a new engine. The factory builds one estimator per
// (user, action) pair and is selected in main from Config.Estimator; the
// strategy abstraction replaces any runtime library probing.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, factory EstimatorFactory, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if factory == nil {
		return nil, fmt.Errorf("estimator factory not set")
	}

	logger = logger.With().Str("component", "bandit").Logger()

	return &Engine{
		config:   cfg,
		logger:   logger,
		registry: NewRegistry(factory, cfg.MaxHistory, cfg.UserTTL, logger),
		selector: NewSelector(cfg.Epsilon, cfg.Seed, logger),
		renderer: NewTemplateRenderer(),
		now:      time.Now,
	}, nil
}

// SetRenderer replaces the default template renderer.
func (e *Engine) SetRenderer(r Renderer) {
	e.renderer = r
}

// Registry exposes the per-user state store, primarily so the supervised
// sweeper service can run eviction.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Recommend generates up to Config.TopK personalized recommendations for
// the user under the given profile and environmental snapshot. It always
// produces a response for valid input: estimator failures degrade to the
// neutral score rather than surfacing to the caller.
func (e *Engine) Recommend(ctx context.Context, userID string, profile UserProfile, env EnvironmentalSnapshot) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := e.now()
	e.recommendCount.Add(1)

	features := Featurize(profile, env, start)
	state := e.registry.GetOrCreate(userID)

	state.Lock()
	picks := e.selector.TopK(features, state.Estimators(), e.config.TopK)
	state.Unlock()

	recs := make([]Recommendation, 0, len(picks))
	for _, p := range picks {
		recs = append(recs, e.renderer.Render(p.Action, p.Score, start))
	}

	e.logger.Debug().
		Str("user_id", logging.SanitizeUserID(userID)).
		Int("returned", len(recs)).
		Dur("latency", e.now().Sub(start)).
		Msg("recommendations generated")
	metrics.RecordRecommendation(len(recs))

	return recs, nil
}

// RecordFeedback stores one reward observation and folds it into the
// matching estimator. The same featurization used for selection is
// recomputed from the supplied profile and snapshot.
//
// A reward outside [0, 1] is a caller contract violation and is rejected
// with ErrInvalidReward; clamping would mask upstream bugs.
func (e *Engine) RecordFeedback(ctx context.Context, userID string, action ActionID, reward float64, profile UserProfile, env EnvironmentalSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !ValidAction(action) {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if math.IsNaN(reward) || reward < 0 || reward > 1 {
		return fmt.Errorf("%w: got %f", ErrInvalidReward, reward)
	}

	now := e.now()
	features := Featurize(profile, env, now)
	state := e.registry.GetOrCreate(userID)

	state.Lock()
	state.Ledger().Append(RewardRecord{
		Context:   features,
		Action:    action,
		Reward:    reward,
		Timestamp: now,
	})
	state.Estimators()[action].Update(features, reward)
	state.Unlock()

	e.feedbackCount.Add(1)

	e.logger.Debug().
		Str("user_id", logging.SanitizeUserID(userID)).
		Str("action", string(action)).
		Float64("reward", reward).
		Msg("feedback recorded")
	metrics.RecordFeedback(string(action))

	return nil
}

// UserInsights summarizes the user's feedback history. It returns
// ErrNoUserData for a user the engine has never recorded feedback for;
// cold-start is a normal condition, never a panic or internal error.
func (e *Engine) UserInsights(userID string) (*Insights, error) {
	state, ok := e.registry.Get(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoUserData, userID)
	}

	state.Lock()
	defer state.Unlock()

	ledger := state.Ledger()
	if ledger.TotalRecorded() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoUserData, userID)
	}

	stats := ledger.Statistics()
	best := rankBestActions(stats, 3)

	return &Insights{
		UserID:        userID,
		TotalFeedback: ledger.TotalRecorded(),
		BestActions:   best,
		ActionStats:   stats,
	}, nil
}

// ActionStatistics returns per-action statistics for one user, or an
// empty map when the user is unknown.
func (e *Engine) ActionStatistics(userID string) map[ActionID]ActionStats {
	state, ok := e.registry.Get(userID)
	if !ok {
		return map[ActionID]ActionStats{}
	}

	state.Lock()
	defer state.Unlock()
	return state.Ledger().Statistics()
}

// Status returns the engine's runtime counters.
func (e *Engine) Status() Status {
	return Status{
		Estimator:      e.config.Estimator,
		Epsilon:        e.config.Epsilon,
		TrackedUsers:   e.registry.Len(),
		RecommendCount: e.recommendCount.Load(),
		FeedbackCount:  e.feedbackCount.Load(),
	}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// rankBestActions orders actions by mean reward, descending, with catalog
// order breaking ties, and returns the top limit entries.
func rankBestActions(stats map[ActionID]ActionStats, limit int) []BestAction {
	best := make([]BestAction, 0, len(stats))
	for _, a := range catalog {
		if s, ok := stats[a]; ok {
			best = append(best, BestAction{Action: a, AvgReward: s.MeanReward})
		}
	}

	sort.SliceStable(best, func(i, j int) bool {
		return best[i].AvgReward > best[j].AvgReward
	})

	if len(best) > limit {
		best = best[:limit]
	}
	return best
}
