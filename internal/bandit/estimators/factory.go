// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package estimators

import (
	"github.com/airwise/airwise/internal/bandit"
)

// NewFactory returns an estimator factory for the configured strategy.
// The factory is invoked once per action when a user's state is created,
// so every user carries an independent model per action. Unrecognized
// strategies fall back to LinUCB; config validation rejects them earlier.
func NewFactory(cfg *bandit.Config) bandit.EstimatorFactory {
	switch cfg.Estimator {
	case bandit.StrategyLogistic:
		lr := cfg.Logistic.LearningRate
		epochs := cfg.Logistic.Epochs
		every := cfg.Logistic.RetrainEvery
		return func(_ bandit.ActionID) bandit.Estimator {
			return NewLogistic(lr, epochs, every, bandit.NumFeatures)
		}
	default:
		alpha := cfg.LinUCB.Alpha
		return func(_ bandit.ActionID) bandit.Estimator {
			return NewLinUCB(alpha, bandit.NumFeatures)
		}
	}
}
