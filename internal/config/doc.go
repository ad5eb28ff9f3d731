// Airwise - Personalized Environmental Health Coaching Backend
// Copyright 2026 Airwise Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airwise/airwise

/*
Package config provides centralized configuration management for Airwise.

This package handles loading, validation, and parsing of layered configuration
for all application components. It ensures consistent configuration across the
backend and provides sensible defaults for every setting.

# Configuration Sources

Configuration is loaded via Koanf v2 with clear precedence:

 1. Built-in defaults
 2. Optional YAML config file (config.yaml, /etc/airwise/config.yaml,
    or the path in CONFIG_PATH)
 3. Environment variables (highest priority)

# Configuration Structure

The package organizes configuration into logical groups:

  - ServerConfig: HTTP server settings (host, port, timeouts)
  - SecurityConfig: Rate limiting and CORS
  - bandit.Config: Recommendation engine (strategy, epsilon, history)
  - LoggingConfig: Log level and output format

# Environment Variables

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_TIMEOUT: Request timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown window (default: 10s)

Security:
  - RATE_LIMIT_REQUESTS: Requests per window (default: 100)
  - RATE_LIMIT_WINDOW: Window duration (default: 1m)
  - DISABLE_RATE_LIMIT: Disable rate limiting (default: false)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)

Bandit Engine:
  - BANDIT_ESTIMATOR: Estimator strategy: linucb, logistic (default: linucb)
  - BANDIT_EPSILON: Exploration probability (default: 0.10)
  - BANDIT_TOP_K: Recommendations per request (default: 3)
  - BANDIT_MAX_HISTORY: Feedback entries kept per user (default: 1000)
  - BANDIT_USER_TTL: Idle user state lifetime (default: 24h)
  - BANDIT_SWEEP_INTERVAL: Eviction sweep cadence (default: 10m)
  - BANDIT_LINUCB_ALPHA: LinUCB confidence width (default: 0.5)
  - BANDIT_LOGISTIC_LEARNING_RATE: Gradient descent step (default: 0.1)
  - BANDIT_LOGISTIC_EPOCHS: Fit epochs (default: 200)
  - BANDIT_LOGISTIC_RETRAIN_EVERY: Examples between refits (default: 10)

Logging:
  - LOG_LEVEL: Minimum level (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("invalid configuration")
	}

# Validation

LoadWithKoanf validates the assembled configuration and fails fast on
malformed values (out-of-range ports, unknown strategies, non-positive
durations) so misconfiguration is caught at startup rather than at
request time.

# Thread Safety

Config is immutable after load and safe for concurrent reads.
*/
package config
