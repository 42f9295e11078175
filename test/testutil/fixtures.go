// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package testutil

import (
	"github.com/noldarim/chatdeck/internal/models"
	"github.com/noldarim/chatdeck/internal/protocol"
)

// Sample data creators for consistent testing

// SampleProjects returns three projects in backend order.
func SampleProjects() []models.Project {
	return []models.Project{
		{
			ID:          "proj1",
			Name:        "Test Project 1",
			Description: "First test project",
		},
		{
			ID:          "proj2",
			Name:        "Test Project 2",
			Description: "Second test project",
		},
		{
			ID:          "proj3",
			Name:        "Empty Project",
			Description: "Project with no messages",
		},
	}
}

// ProjectsLoadedEvent creates a sample ProjectsLoadedEvent
func ProjectsLoadedEvent() protocol.ProjectsLoadedEvent {
	return protocol.ProjectsLoadedEvent{
		Projects: SampleProjects(),
	}
}

// ProjectCreatedEvent wraps p the way the orchestrator reports a command result.
func ProjectCreatedEvent(p models.Project, requestID string) protocol.ProjectCreatedEvent {
	event := protocol.NewProjectCreatedEvent(p)
	event.RequestID = requestID
	return event
}
