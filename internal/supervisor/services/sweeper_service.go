// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/airwise/airwise/internal/bandit"
)

// SweeperService periodically evicts idle per-user bandit state from
// the registry. It runs under the engine-layer supervisor.
type SweeperService struct {
	registry *bandit.Registry
	interval time.Duration
	logger   zerolog.Logger
	name     string

	// now is the clock source; replaced in tests.
	now func() time.Time
}

// NewSweeperService creates an eviction sweeper over the given
// registry.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSweeperService(registry *bandit.Registry, interval time.Duration, logger zerolog.Logger) *SweeperService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &SweeperService{
		registry: registry,
		interval: interval,
		logger:   logger.With().Str("component", "sweeper").Logger(),
		name:     "registry-sweeper",
		now:      time.Now,
	}
}

// Serve implements suture.Service. It ticks at the configured interval
// and sweeps expired user state until the context is canceled.
func (s *SweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("Registry sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Registry sweeper stopping")
			return ctx.Err()
		case <-ticker.C:
			evicted := s.registry.Sweep(s.now())
			if evicted > 0 {
				s.logger.Info().
					Int("evicted", evicted).
					Int("remaining", s.registry.Len()).
					Msg("Evicted idle user state")
			}
		}
	}
}

// String implements fmt.Stringer for suture log messages.
func (s *SweeperService) String() string {
	return s.name
}
