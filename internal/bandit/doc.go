// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

// Package bandit implements the contextual-bandit personalization engine.
//
// The engine decides which coaching action (close windows, use rescue
// inhaler, go for a walk, ...) to present to a user at a given moment and
// improves its choices over time from reward feedback, without a labeled
// training set up front.
//
// # Architecture
//
//   - Featurize converts a user profile and an environmental snapshot into
//     a fixed-length context vector.
//   - Estimator (one per action, per user) predicts expected reward for a
//     context. Two interchangeable strategies live in the estimators
//     subpackage: LinUCB (online) and Logistic (batch fallback).
//   - Selector picks the action to present, balancing exploitation against
//     epsilon-greedy exploration.
//   - Ledger stores per-user reward history and aggregate statistics.
//   - Registry owns all per-user state, created lazily and evicted after
//     a configurable idle TTL.
//   - Engine wires the pieces together behind three operations: Recommend,
//     RecordFeedback, and UserInsights.
//
// # Thread Safety
//
// All Engine operations are safe for concurrent use. Operations touching
// one user's estimators and history are serialized by a per-user mutex;
// state for different users is fully partitioned, so cross-user calls
// never contend.
package bandit
