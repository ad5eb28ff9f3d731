// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package bandit

import (
	"math/rand"
	"sync"

	"github.com/rs/zerolog"

	"github.com/airwise/airwise/internal/metrics"
)

// Selector picks actions for a context using epsilon-greedy exploration.
// It is safe for concurrent use.
type Selector struct {
	epsilon float64
	logger  zerolog.Logger

	// rng drives exploration draws (protected by rngMu for concurrent access).
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewSelector creates a selector with the given exploration probability.
// A zero seed falls back to a fixed default for determinism.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSelector(epsilon float64, seed int64, logger zerolog.Logger) *Selector {
	if seed == 0 {
		seed = 42
	}
	return &Selector{
		epsilon: epsilon,
		logger:  logger.With().Str("component", "selector").Logger(),
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for exploration draws
	}
}

// Select picks one action for the context. With probability 1-epsilon it
// returns the action with the highest estimated reward (ties broken by
// catalog order); with probability epsilon it returns a uniformly random
// action. The returned score always belongs to the action actually
// returned, including during exploration.
func (s *Selector) Select(context []float64, estimators map[ActionID]Estimator) ScoredAction {
	return s.selectExcluding(context, estimators, nil)
}

// TopK draws up to k distinct actions by repeated selection, excluding
// previously drawn actions from both the exploitation maximum and the
// exploration pool. The result is ordered by draw, so the exploitation
// winner leads unless an exploration draw displaced it.
func (s *Selector) TopK(context []float64, estimators map[ActionID]Estimator, k int) []ScoredAction {
	if k > len(catalog) {
		k = len(catalog)
	}

	picked := make([]ScoredAction, 0, k)
	exclude := make(map[ActionID]struct{}, k)

	for i := 0; i < k; i++ {
		sa := s.selectExcluding(context, estimators, exclude)
		picked = append(picked, sa)
		exclude[sa.Action] = struct{}{}
	}

	return picked
}

// selectExcluding runs one epsilon-greedy draw over the catalog minus the
// excluded set.
func (s *Selector) selectExcluding(context []float64, estimators map[ActionID]Estimator, exclude map[ActionID]struct{}) ScoredAction {
	candidates := make([]ActionID, 0, len(catalog))
	for _, a := range catalog {
		if _, skip := exclude[a]; !skip {
			candidates = append(candidates, a)
		}
	}

	scores := make(map[ActionID]float64, len(candidates))
	best := candidates[0]
	for _, a := range candidates {
		scores[a] = s.scoreOf(a, context, estimators)
		if scores[a] > scores[best] {
			best = a
		}
	}

	chosen := best
	if s.explore() {
		chosen = candidates[s.intn(len(candidates))]
		s.logger.Debug().
			Str("action", string(chosen)).
			Str("exploited", string(best)).
			Msg("exploration override")
		metrics.RecordExploration()
	}

	return ScoredAction{Action: chosen, Score: scores[chosen]}
}

// scoreOf predicts one action's reward, substituting the neutral score if
// the estimator is missing or cannot score the context. A prediction
// failure must never abort recommendation generation.
func (s *Selector) scoreOf(action ActionID, context []float64, estimators map[ActionID]Estimator) float64 {
	est, ok := estimators[action]
	if !ok {
		return NeutralScore
	}

	score, err := est.Predict(context)
	if err != nil {
		s.logger.Warn().
			Str("action", string(action)).
			Str("estimator", est.Name()).
			Err(err).
			Msg("prediction failed, using neutral score")
		metrics.RecordPredictionFailure(est.Name())
		return NeutralScore
	}

	return score
}

// explore reports whether this draw should be an exploration override.
func (s *Selector) explore() bool {
	if s.epsilon <= 0 {
		return false
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64() < s.epsilon
}

func (s *Selector) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}
