// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectlist

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/noldarim/chatdeck/internal/tui/layout"
)

// View renders the sidebar pane
func (m Model) View() string {
	heading := layout.TitleStyle.Render(fmt.Sprintf("Projects (%d)", len(m.list.Items())))

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = layout.StatsStyle.Render("No projects yet.\nPress n to create one.")
	}

	return layout.Pane(m.focused).
		Width(max(m.width-2, 1)).
		Height(max(m.height-2, 1)).
		MaxHeight(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, heading, body))
}
