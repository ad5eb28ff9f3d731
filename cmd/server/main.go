// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

// Package main is the entry point for the Airwise personalization
// server.
//
// Airwise serves personalized environmental-health coaching to
// subscribers with respiratory conditions. For each request it combines
// the user's health profile with the current environmental snapshot
// (air quality, weather, pollen), scores a fixed catalog of ten
// coaching actions with a per-user contextual bandit, and returns
// rendered recommendations. Reward feedback flows back through the
// same API and updates the user's models online.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered loading from defaults, config.yaml, and
//     environment variables (Koanf v2)
//  2. Logging: zerolog, configured from the logging section
//  3. Engine: bandit engine with the configured estimator strategy
//  4. Supervisor tree: suture v4 running the registry eviction sweeper
//     and the HTTP server
//
// # Configuration
//
// All settings have working defaults; common overrides:
//
//	export HTTP_PORT=8080
//	export BANDIT_ESTIMATOR=linucb   # or logistic
//	export BANDIT_EPSILON=0.10
//	export LOG_LEVEL=info
//	./airwise
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting new connections, drains in-flight requests within the
// configured shutdown timeout, and stops the supervisor tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/airwise/airwise/internal/api"
	"github.com/airwise/airwise/internal/bandit"
	"github.com/airwise/airwise/internal/bandit/estimators"
	"github.com/airwise/airwise/internal/config"
	"github.com/airwise/airwise/internal/logging"
	"github.com/airwise/airwise/internal/supervisor"
	"github.com/airwise/airwise/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("estimator", cfg.Bandit.Estimator).
		Float64("epsilon", cfg.Bandit.Epsilon).
		Int("top_k", cfg.Bandit.TopK).
		Msg("Starting Airwise personalization server")

	engine, err := bandit.NewEngine(&cfg.Bandit, estimators.NewFactory(&cfg.Bandit), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize bandit engine")
	}

	handlers := api.NewHandlers(engine, logging.Logger())
	router := api.NewRouter(cfg, handlers)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Supervisor events go through the zerolog-backed slog adapter.
	slogLogger := logging.NewSlogLogger()
	tree := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	tree.AddEngineService(services.NewSweeperService(engine.Registry(), cfg.Bandit.SweepInterval, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished).
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
