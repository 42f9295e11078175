// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"github.com/rs/zerolog"
)

// Static logger getters that map directly to config.yaml log.levels

// GetTUILogger returns a logger for TUI components
func GetTUILogger() zerolog.Logger {
	return GetLogger("tui")
}

// GetClientLogger returns a logger for the backend API client
func GetClientLogger() zerolog.Logger {
	return GetLogger("client")
}

// GetOrchestratorLogger returns a logger for the command orchestrator
func GetOrchestratorLogger() zerolog.Logger {
	return GetLogger("orchestrator")
}

// GetAPILogger returns a logger for the reference HTTP server
func GetAPILogger() zerolog.Logger {
	return GetLogger("api")
}

// GetDatabaseLogger returns a logger for database operations
func GetDatabaseLogger() zerolog.Logger {
	return GetLogger("database")
}

// GetTelemetryLogger returns a logger for tracing setup
func GetTelemetryLogger() zerolog.Logger {
	return GetLogger("telemetry")
}
