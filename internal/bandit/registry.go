// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

package bandit

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/airwise/airwise/internal/logging"
	"github.com/airwise/airwise/internal/metrics"
)

// UserState is the complete bandit state for one user: an estimator per
// catalog action plus the feedback ledger. The Registry is its sole owner;
// other components hold it only transiently during a single call.
//
// Callers must hold mu across any use of Estimators or Ledger so that
// concurrent record and select calls for the same user are serialized.
type UserState struct {
	mu sync.Mutex

	estimators map[ActionID]Estimator
	ledger     *Ledger

	// lastAccess is guarded by the registry's lock, not mu; the sweeper
	// reads it without touching per-user state.
	lastAccess time.Time
}

// Lock acquires the per-user mutex.
func (u *UserState) Lock() { u.mu.Lock() }

// Unlock releases the per-user mutex.
func (u *UserState) Unlock() { u.mu.Unlock() }

// Estimators returns the per-action estimator set. The caller must hold
// the user lock.
func (u *UserState) Estimators() map[ActionID]Estimator { return u.estimators }

// Ledger returns the user's feedback ledger. The caller must hold the
// user lock.
func (u *UserState) Ledger() *Ledger { return u.ledger }

// Registry owns all per-user bandit state, keyed by user id. State is
// created lazily on first access and reclaimed by Sweep after UserTTL of
// inactivity, so memory is bounded by the active-user working set instead
// of growing for the process lifetime.
type Registry struct {
	mu     sync.RWMutex
	users  map[string]*UserState
	logger zerolog.Logger

	factory    EstimatorFactory
	maxHistory int
	ttl        time.Duration
}

// NewRegistry creates an empty registry. The factory is invoked once per
// (user, action) pair when a user's state is first created.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRegistry(factory EstimatorFactory, maxHistory int, ttl time.Duration, logger zerolog.Logger) *Registry {
	return &Registry{
		users:      make(map[string]*UserState),
		logger:     logger.With().Str("component", "registry").Logger(),
		factory:    factory,
		maxHistory: maxHistory,
		ttl:        ttl,
	}
}

// GetOrCreate returns the state for userID, creating it on first use.
// It is idempotent: repeated calls with the same id return the same state
// object.
func (r *Registry) GetOrCreate(userID string) *UserState {
	now := time.Now()

	r.mu.RLock()
	state, ok := r.users[userID]
	r.mu.RUnlock()
	if ok {
		r.touch(userID, now)
		return state
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under the write lock: another goroutine may have created
	// the state between the two lock acquisitions.
	if state, ok := r.users[userID]; ok {
		state.lastAccess = now
		return state
	}

	estimators := make(map[ActionID]Estimator, len(catalog))
	for _, a := range catalog {
		estimators[a] = r.factory(a)
	}

	state = &UserState{
		estimators: estimators,
		ledger:     NewLedger(r.maxHistory),
		lastAccess: now,
	}
	r.users[userID] = state

	r.logger.Debug().Str("user_id", logging.SanitizeUserID(userID)).Msg("created user bandit state")
	metrics.SetTrackedUsers(len(r.users))

	return state
}

// Get returns the state for userID without creating it.
func (r *Registry) Get(userID string) (*UserState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.users[userID]
	return state, ok
}

// Len returns the number of tracked users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// Sweep evicts users idle longer than the TTL and returns how many were
// removed. The background sweeper service calls it periodically, keeping
// eviction off the request path.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, state := range r.users {
		if now.Sub(state.lastAccess) > r.ttl {
			delete(r.users, id)
			evicted++
		}
	}

	if evicted > 0 {
		r.logger.Info().
			Int("evicted", evicted).
			Int("remaining", len(r.users)).
			Msg("evicted idle user state")
		metrics.RecordEviction(evicted)
	}
	metrics.SetTrackedUsers(len(r.users))

	return evicted
}

// touch refreshes a user's last-access time.
func (r *Registry) touch(userID string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state, ok := r.users[userID]; ok {
		state.lastAccess = now
	}
}
