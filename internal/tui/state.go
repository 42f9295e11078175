// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"github.com/noldarim/chatdeck/internal/models"
	"github.com/samber/lo"
)

// State is the coordinator's view of the world. It is owned by MainModel and
// only changes inside Update.
type State struct {
	// CurrentProjectID is empty until the user selects a project.
	CurrentProjectID string
	// Projects keeps backend order; created projects are appended.
	Projects []models.Project
}

// HasSelection reports whether a project is selected.
func (s State) HasSelection() bool {
	return s.CurrentProjectID != ""
}

// SetProjects replaces the known projects. A selection that no longer exists is dropped.
func (s *State) SetProjects(projects []models.Project) {
	s.Projects = append([]models.Project(nil), projects...)
	if s.HasSelection() {
		if _, ok := s.Project(s.CurrentProjectID); !ok {
			s.CurrentProjectID = ""
		}
	}
}

// Select makes id the current project. Unknown ids are rejected.
func (s *State) Select(id string) bool {
	if _, ok := s.Project(id); !ok {
		return false
	}
	s.CurrentProjectID = id
	return true
}

// AddProject appends p unless a project with the same id is already known.
func (s *State) AddProject(p models.Project) bool {
	if _, ok := s.Project(p.ID); ok {
		return false
	}
	s.Projects = append(s.Projects, p)
	return true
}

// Project looks up a known project by id.
func (s State) Project(id string) (models.Project, bool) {
	return lo.Find(s.Projects, func(p models.Project) bool {
		return p.ID == id
	})
}

// Current returns the selected project, if any.
func (s State) Current() (models.Project, bool) {
	if !s.HasSelection() {
		return models.Project{}, false
	}
	return s.Project(s.CurrentProjectID)
}
