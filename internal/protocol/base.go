// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

// CurrentProtocolVersion is stamped on every command and event.
const CurrentProtocolVersion = "v1.0.0"

// Metadata travels with every command (UI → orchestrator) and event
// (orchestrator → UI).
type Metadata struct {
	// RequestID ties the events a command produces back to that command.
	RequestID string `json:"request_id,omitempty"`

	// IdempotencyKey names a fact that can reach the UI twice, once as a
	// command result and once from the event stream. Empty keys never dedupe.
	IdempotencyKey string `json:"idempotency_key,omitempty"`

	Version string `json:"version"`
}

// Event is anything the orchestrator sends to the UI.
type Event interface {
	GetMetadata() Metadata
}
