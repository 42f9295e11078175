// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Here lies the definition of the data that orchestrator can receive from the UI
// All data that is received by orchestrator from UI will be named: Command
//
// Commands should be simple high level objects which tell orchestrator which end goal is required.
// Ids assigned by the backend (project ids) never appear in Write commands.
//
// Commands are separated into Read and ReadWrite commands and grouped together below.
package protocol

// Command represents commands that can be sent to the orchestrator
type Command interface {
	// All commands must embed Metadata for correlation and versioning
	GetBaseMessage() Metadata
}

// Read commands

// LoadProjectsCommand requests loading all projects
type LoadProjectsCommand struct {
	Metadata
}

func (c LoadProjectsCommand) GetBaseMessage() Metadata {
	return c.Metadata
}

// ReadWrite commands

// CreateProjectCommand creates a new project
type CreateProjectCommand struct {
	Metadata
	Name        string
	Description string
}

func (c CreateProjectCommand) GetBaseMessage() Metadata {
	return c.Metadata
}

// SendMessageCommand sends one chat message to a project.
// Epoch is the chat epoch the message was typed in; it is echoed back on the
// reply so the UI can drop replies that belong to an abandoned transcript.
type SendMessageCommand struct {
	Metadata  // RequestID identifies this exchange
	ProjectID string
	Text      string
	Epoch     uint64
}

func (c SendMessageCommand) GetBaseMessage() Metadata {
	return c.Metadata
}
