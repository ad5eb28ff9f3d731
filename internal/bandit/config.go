// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package bandit

import (
	"fmt"
	"time"
)

// Estimator strategy identifiers accepted by Config.Estimator.
const (
	// StrategyLinUCB is the online linear contextual-bandit estimator.
	StrategyLinUCB = "linucb"

	// StrategyLogistic is the batch logistic-regression fallback.
	StrategyLogistic = "logistic"
)

// Config contains all configuration for the personalization engine.
type Config struct {
	// Estimator selects the per-arm model strategy: "linucb" or "logistic".
	// Default: "linucb".
	Estimator string `json:"estimator" koanf:"estimator"`

	// Epsilon is the forced-exploration probability for the selector.
	// 0 disables exploration entirely. Default: 0.10.
	Epsilon float64 `json:"epsilon" koanf:"epsilon"`

	// TopK is the number of recommendations returned per request.
	// Default: 3.
	TopK int `json:"top_k" koanf:"top_k"`

	// Seed is the random seed for deterministic exploration draws.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed" koanf:"seed"`

	// MaxHistory is the per-user reward history retention (ring buffer).
	// Default: 1000.
	MaxHistory int `json:"max_history" koanf:"max_history"`

	// UserTTL is how long idle per-user state is retained before the
	// eviction sweep reclaims it. Default: 24h.
	UserTTL time.Duration `json:"user_ttl" koanf:"user_ttl"`

	// SweepInterval is how often the background sweeper scans for idle
	// users. Default: 10m.
	SweepInterval time.Duration `json:"sweep_interval" koanf:"sweep_interval"`

	// LinUCB contains parameters for the LinUCB strategy.
	LinUCB LinUCBConfig `json:"linucb" koanf:"linucb"`

	// Logistic contains parameters for the logistic fallback strategy.
	Logistic LogisticConfig `json:"logistic" koanf:"logistic"`
}

// LinUCBConfig contains parameters for the LinUCB estimator.
type LinUCBConfig struct {
	// Alpha controls exploration vs exploitation inside the UCB score.
	// Higher values widen the confidence bonus. Typical range: 0.1-2.0.
	// Default: 0.5.
	Alpha float64 `json:"alpha" koanf:"alpha"`
}

// LogisticConfig contains parameters for the batch logistic estimator.
type LogisticConfig struct {
	// LearningRate is the gradient descent step size. Default: 0.1.
	LearningRate float64 `json:"learning_rate" koanf:"learning_rate"`

	// Epochs is the number of full-batch passes per fit. Default: 200.
	Epochs int `json:"epochs" koanf:"epochs"`

	// RetrainEvery is the per-action example cadence between refits. The
	// full accumulated history is reused on each fit, not a sliding
	// window. Default: 10.
	RetrainEvery int `json:"retrain_every" koanf:"retrain_every"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Estimator:     StrategyLinUCB,
		Epsilon:       0.10,
		TopK:          3,
		Seed:          42,
		MaxHistory:    1000,
		UserTTL:       24 * time.Hour,
		SweepInterval: 10 * time.Minute,
		LinUCB: LinUCBConfig{
			Alpha: 0.5,
		},
		Logistic: LogisticConfig{
			LearningRate: 0.1,
			Epochs:       200,
			RetrainEvery: 10,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Estimator != StrategyLinUCB && c.Estimator != StrategyLogistic {
		return fmt.Errorf("estimator must be %q or %q, got %q", StrategyLinUCB, StrategyLogistic, c.Estimator)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %f", c.Epsilon)
	}
	if c.TopK < 1 || c.TopK > CatalogSize {
		return fmt.Errorf("top_k must be in [1, %d], got %d", CatalogSize, c.TopK)
	}
	if c.MaxHistory < 1 {
		return fmt.Errorf("max_history must be positive, got %d", c.MaxHistory)
	}
	if c.UserTTL <= 0 {
		return fmt.Errorf("user_ttl must be positive, got %v", c.UserTTL)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive, got %v", c.SweepInterval)
	}
	if c.LinUCB.Alpha < 0 {
		return fmt.Errorf("linucb.alpha must be non-negative, got %f", c.LinUCB.Alpha)
	}
	if c.Logistic.LearningRate <= 0 {
		return fmt.Errorf("logistic.learning_rate must be positive, got %f", c.Logistic.LearningRate)
	}
	if c.Logistic.Epochs < 1 {
		return fmt.Errorf("logistic.epochs must be positive, got %d", c.Logistic.Epochs)
	}
	if c.Logistic.RetrainEvery < 1 {
		return fmt.Errorf("logistic.retrain_every must be positive, got %d", c.Logistic.RetrainEvery)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	out := *c
	return &out
}
