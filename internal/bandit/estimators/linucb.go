// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package estimators

import (
	"fmt"
	"math"

	"github.com/airwise/airwise/internal/bandit"
)

// LinUCB is an online linear contextual-bandit estimator with an upper
// confidence bound. Its score is the estimated reward plus an exploration
// bonus proportional to the model's uncertainty about the given context,
// so under-explored contexts score higher than their point estimate alone.
//
// Model state per estimator (one estimator per action):
//
//	A = I + sum(x * x^T)   design matrix, D x D
//	b = sum(reward * x)    reward-weighted context sum
//	theta = A^-1 * b       learned coefficient vector
//
// The score for context x is theta.x + alpha*sqrt(x^T * A^-1 * x),
// clamped to [0, 1].
type LinUCB struct {
	baseEstimator

	alpha float64
	dims  int

	// A is the regularized design matrix, b the reward vector.
	A [][]float64
	b []float64
}

// NewLinUCB creates a LinUCB estimator for contexts of the given
// dimensionality. Alpha controls the width of the confidence bonus;
// non-positive values fall back to the default.
func NewLinUCB(alpha float64, dims int) *LinUCB {
	if alpha <= 0 {
		alpha = bandit.DefaultConfig().LinUCB.Alpha
	}
	return &LinUCB{
		baseEstimator: newBaseEstimator(bandit.StrategyLinUCB),
		alpha:         alpha,
		dims:          dims,
		A:             identityMatrix(dims),
		b:             make([]float64, dims),
	}
}

// Predict scores a context with the UCB rule. A fresh estimator with no
// observations returns the neutral score so that untried actions compete
// evenly at cold start.
func (l *LinUCB) Predict(context []float64) (float64, error) {
	if len(context) != l.dims {
		return 0, fmt.Errorf("linucb: context has %d features, expected %d", len(context), l.dims)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.observations == 0 {
		return bandit.NeutralScore, nil
	}

	inv := invertMatrix(l.A)

	theta := make([]float64, l.dims)
	for i := 0; i < l.dims; i++ {
		theta[i] = dot(inv[i], l.b)
	}

	estimate := dot(theta, context)

	var uncertainty float64
	for i := 0; i < l.dims; i++ {
		uncertainty += context[i] * dot(inv[i], context)
	}
	if uncertainty < 0 {
		uncertainty = 0
	}

	return clamp01(estimate + l.alpha*math.Sqrt(uncertainty)), nil
}

// Update folds one observed (context, reward) pair into the model.
// Contexts of the wrong dimensionality are ignored.
func (l *LinUCB) Update(context []float64, reward float64) {
	if len(context) != l.dims {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := 0; i < l.dims; i++ {
		for j := 0; j < l.dims; j++ {
			l.A[i][j] += context[i] * context[j]
		}
		l.b[i] += reward * context[i]
	}

	l.observations++
	l.markTrained()
}

// Retrain resets the model and replays the full sample history. LinUCB's
// update rule is order-independent, so a replay reproduces the same state
// as the equivalent online sequence.
func (l *LinUCB) Retrain(samples []bandit.Sample) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.A = identityMatrix(l.dims)
	l.b = make([]float64, l.dims)
	l.observations = 0

	for _, s := range samples {
		if len(s.Context) != l.dims {
			return fmt.Errorf("linucb: sample has %d features, expected %d", len(s.Context), l.dims)
		}
		for i := 0; i < l.dims; i++ {
			for j := 0; j < l.dims; j++ {
				l.A[i][j] += s.Context[i] * s.Context[j]
			}
			l.b[i] += s.Reward * s.Context[i]
		}
		l.observations++
	}

	if l.observations > 0 {
		l.markTrained()
	} else {
		l.trained = false
	}

	return nil
}

var _ bandit.Estimator = (*LinUCB)(nil)
