// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

// Package services contains the suture.Service implementations run by
// the supervisor tree: the HTTP server wrapper and the registry
// eviction sweeper.
package services
