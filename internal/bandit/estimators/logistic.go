// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package estimators

import (
	"fmt"

	"github.com/airwise/airwise/internal/bandit"
)

// Logistic is a batch logistic-regression estimator predicting the
// probability of a positive outcome (reward above the neutral score) for
// a context. It accumulates its own example history and refits on the
// full history every RetrainEvery examples, so early feedback is cheap to
// record and the model stays consistent with everything seen so far.
type Logistic struct {
	baseEstimator

	learningRate float64
	epochs       int
	retrainEvery int
	dims         int

	weights []float64
	bias    float64
	samples []bandit.Sample
}

// NewLogistic creates a logistic estimator for contexts of the given
// dimensionality. Non-positive hyperparameters fall back to defaults.
func NewLogistic(learningRate float64, epochs, retrainEvery, dims int) *Logistic {
	def := bandit.DefaultConfig().Logistic
	if learningRate <= 0 {
		learningRate = def.LearningRate
	}
	if epochs <= 0 {
		epochs = def.Epochs
	}
	if retrainEvery <= 0 {
		retrainEvery = def.RetrainEvery
	}
	return &Logistic{
		baseEstimator: newBaseEstimator(bandit.StrategyLogistic),
		learningRate:  learningRate,
		epochs:        epochs,
		retrainEvery:  retrainEvery,
		dims:          dims,
		weights:       make([]float64, dims),
	}
}

// Predict returns the fitted success probability for a context, or the
// neutral score while the model has not been fit yet.
func (l *Logistic) Predict(context []float64) (float64, error) {
	if len(context) != l.dims {
		return 0, fmt.Errorf("logistic: context has %d features, expected %d", len(context), l.dims)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.trained {
		return bandit.NeutralScore, nil
	}

	return sigmoid(dot(l.weights, context) + l.bias), nil
}

// Update records one observed (context, reward) pair and refits the model
// once the configured cadence is reached. Contexts of the wrong
// dimensionality are ignored.
func (l *Logistic) Update(context []float64, reward float64) {
	if len(context) != l.dims {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ctx := make([]float64, l.dims)
	copy(ctx, context)
	l.samples = append(l.samples, bandit.Sample{Context: ctx, Reward: reward})
	l.observations++

	if l.observations%l.retrainEvery == 0 {
		l.fit()
	}
}

// Retrain replaces the sample history and fits immediately.
func (l *Logistic) Retrain(samples []bandit.Sample) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range samples {
		if len(s.Context) != l.dims {
			return fmt.Errorf("logistic: sample has %d features, expected %d", len(s.Context), l.dims)
		}
	}

	l.samples = make([]bandit.Sample, len(samples))
	copy(l.samples, samples)
	l.observations = len(samples)

	if len(l.samples) == 0 {
		l.weights = make([]float64, l.dims)
		l.bias = 0
		l.trained = false
		return nil
	}

	l.fit()
	return nil
}

// fit runs full-batch gradient descent over the accumulated history with
// binarized labels (1 when reward exceeds the neutral score, else 0).
// Must be called while holding the exclusive lock.
func (l *Logistic) fit() {
	n := len(l.samples)
	if n == 0 {
		return
	}

	weights := make([]float64, l.dims)
	var bias float64

	labels := make([]float64, n)
	for i, s := range l.samples {
		if s.Reward > bandit.NeutralScore {
			labels[i] = 1.0
		}
	}

	for epoch := 0; epoch < l.epochs; epoch++ {
		gradW := make([]float64, l.dims)
		var gradB float64

		for i, s := range l.samples {
			pred := sigmoid(dot(weights, s.Context) + bias)
			errTerm := pred - labels[i]
			for j := 0; j < l.dims; j++ {
				gradW[j] += errTerm * s.Context[j]
			}
			gradB += errTerm
		}

		scale := l.learningRate / float64(n)
		for j := 0; j < l.dims; j++ {
			weights[j] -= scale * gradW[j]
		}
		bias -= scale * gradB
	}

	l.weights = weights
	l.bias = bias
	l.markTrained()
}

var _ bandit.Estimator = (*Logistic)(nil)
