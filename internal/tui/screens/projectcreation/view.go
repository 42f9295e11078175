// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectcreation

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/noldarim/chatdeck/internal/tui/components/card"
	"github.com/noldarim/chatdeck/internal/tui/layout"
)

// View renders the dialog box. It is empty while hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	var body string
	if m.IsSubmitting() {
		body = lipgloss.JoinVertical(lipgloss.Left,
			"",
			layout.LoadingStyle.Render("Creating "+m.pendingName+"..."),
			"",
			layout.StatsStyle.Render("[esc] close"),
		)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.form.View(),
			layout.StatsStyle.Render("[esc] cancel"),
		)
	}

	return card.Render("New Project", body, card.DialogStyle(dialogWidth))
}
