// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

// Package supervisor builds the suture v4 supervision tree that runs
// the service's long-lived components.
//
// The tree has a root supervisor with two child layers: the engine
// layer runs background maintenance (the registry eviction sweeper),
// and the api layer runs the HTTP server. Supervisor events are logged
// through sutureslog into the application's structured logger.
//
// Concrete supervised services live in the services subpackage.
package supervisor
