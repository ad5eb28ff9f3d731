// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

// Package estimators implements per-action reward models for the bandit
// engine.
//
// Each estimator implements the bandit.Estimator interface. Two strategies
// are provided:
//
//   - LinUCB: an online linear contextual-bandit estimator whose score
//     carries its own exploration bonus. Preferred default.
//   - Logistic: a batch logistic-regression fallback predicting
//     P(reward > 0.5 | context), refit on a fixed example cadence.
//
// The strategy is chosen by configuration at wiring time; there is no
// runtime library probing.
//
// # Thread Safety
//
// Estimators guard their model state with an RWMutex: updates and retrains
// take the exclusive lock, predictions the shared lock. The engine
// additionally serializes all calls for one user, so the internal locking
// only matters for callers driving an estimator directly.
package estimators

import (
	"math"
	"sync"
	"time"
)

// baseEstimator provides the bookkeeping shared by all strategies.
type baseEstimator struct {
	name          string
	trained       bool
	version       int
	lastTrainedAt time.Time
	observations  int
	mu            sync.RWMutex
}

func newBaseEstimator(name string) baseEstimator {
	return baseEstimator{name: name}
}

// Name returns the strategy identifier.
func (b *baseEstimator) Name() string {
	return b.name
}

// IsTrained reports whether the model has completed at least one fit.
func (b *baseEstimator) IsTrained() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.trained
}

// Version returns the model version, incremented on each fit.
func (b *baseEstimator) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// LastTrainedAt returns when the model was last fit.
func (b *baseEstimator) LastTrainedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastTrainedAt
}

// Observations returns the number of examples seen.
func (b *baseEstimator) Observations() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.observations
}

// markTrained updates the trained state.
// Must be called while holding the exclusive lock.
func (b *baseEstimator) markTrained() {
	b.trained = true
	b.version++
	b.lastTrainedAt = time.Now()
}

// clamp01 bounds a score to [0, 1]. NaN maps to 0 so a degenerate
// model can never leak an unordered score to the selector.
func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// sigmoid is the logistic function.
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// identityMatrix creates an n x n identity matrix.
func identityMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1.0
	}
	return m
}

// invertMatrix computes the inverse of a matrix using Gaussian elimination
// with partial pivoting. Near-singular pivots are regularized rather than
// failing, since the design matrix starts at identity and stays positive
// definite in normal operation.
//
//nolint:gocritic // A follows standard linear algebra notation
func invertMatrix(A [][]float64) [][]float64 {
	n := len(A)
	if n == 0 {
		return nil
	}

	// Augmented matrix [A|I]
	augmented := make([][]float64, n)
	for i := range augmented {
		augmented[i] = make([]float64, 2*n)
		copy(augmented[i], A[i])
		augmented[i][n+i] = 1.0
	}

	// Forward elimination
	for i := 0; i < n; i++ {
		maxRow := i
		for k := i + 1; k < n; k++ {
			if math.Abs(augmented[k][i]) > math.Abs(augmented[maxRow][i]) {
				maxRow = k
			}
		}
		augmented[i], augmented[maxRow] = augmented[maxRow], augmented[i]

		if math.Abs(augmented[i][i]) < 1e-10 {
			augmented[i][i] = 1e-10
		}

		for k := i + 1; k < n; k++ {
			factor := augmented[k][i] / augmented[i][i]
			for j := i; j < 2*n; j++ {
				augmented[k][j] -= factor * augmented[i][j]
			}
		}
	}

	// Back substitution
	for i := n - 1; i >= 0; i-- {
		pivot := augmented[i][i]
		for j := i; j < 2*n; j++ {
			augmented[i][j] /= pivot
		}
		for k := 0; k < i; k++ {
			factor := augmented[k][i]
			for j := i; j < 2*n; j++ {
				augmented[k][j] -= factor * augmented[i][j]
			}
		}
	}

	inv := make([][]float64, n)
	for i := range inv {
		inv[i] = make([]float64, n)
		copy(inv[i], augmented[i][n:])
	}

	return inv
}
