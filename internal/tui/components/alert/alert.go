// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package alert provides a blocking notice dialog. While it is visible it
// swallows every key except enter and esc, which dismiss it.
package alert

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noldarim/chatdeck/internal/tui/components/card"
	"github.com/noldarim/chatdeck/internal/tui/layout"
	"github.com/noldarim/chatdeck/internal/tui/messages"
)

const dialogWidth = 44

// Model is the alert dialog.
type Model struct {
	message string
	visible bool
}

// New returns a hidden alert.
func New() Model {
	return Model{}
}

// Show displays message until the user dismisses it. A second Show replaces the message.
func (m *Model) Show(message string) {
	m.message = message
	m.visible = true
}

// IsVisible reports whether the alert is on screen.
func (m Model) IsVisible() bool {
	return m.visible
}

// Message returns the text of the current alert.
func (m Model) Message() string {
	return m.message
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc":
			m.visible = false
			return m, func() tea.Msg { return messages.AlertDismissedMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.visible {
		return ""
	}
	style := card.AlertStyle(dialogWidth)
	frameW, _ := style.FrameSize()
	text := lipgloss.NewStyle().Width(dialogWidth - frameW).Render(m.message)
	hint := layout.StatsStyle.Render("[enter] ok")
	return card.Render("⚠ Notice", lipgloss.JoinVertical(lipgloss.Left, "", text, "", hint), style)
}
