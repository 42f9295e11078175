// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectcreation

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/noldarim/chatdeck/internal/logger"
	"github.com/noldarim/chatdeck/internal/protocol"
	"github.com/noldarim/chatdeck/internal/tui/messages"
)

// Update drives the form while the dialog is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.Hide()
		return m, func() tea.Msg { return messages.ProjectFormCancelledMsg{} }
	}

	if m.IsSubmitting() {
		// waiting for the backend
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.Submit()
	case huh.StateAborted:
		m.Hide()
		return m, func() tea.Msg { return messages.ProjectFormCancelledMsg{} }
	}

	return m, cmd
}

// Submit sends the entered values as a CreateProjectCommand and leaves the
// dialog open until the result arrives.
func (m *Model) Submit() tea.Cmd {
	log := logger.GetTUILogger().With().Str("component", "projectcreation").Logger()

	name := strings.TrimSpace(m.values.name)
	description := strings.TrimSpace(m.values.description)

	m.pending = uuid.NewString()
	m.pendingName = name

	command := protocol.CreateProjectCommand{
		Metadata:    protocol.Metadata{RequestID: m.pending, Version: protocol.CurrentProtocolVersion},
		Name:        name,
		Description: description,
	}
	log.Info().Str("request_id", m.pending).Str("name", name).Msg("Sending CreateProjectCommand")

	cmdChan := m.cmdChan
	go func() {
		cmdChan <- command
	}()

	requestID := m.pending
	return func() tea.Msg {
		return messages.ProjectFormSubmittedMsg{RequestID: requestID, Name: name}
	}
}
