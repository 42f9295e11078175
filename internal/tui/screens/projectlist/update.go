// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectlist

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/noldarim/chatdeck/internal/tui/messages"
)

// Update moves the cursor and reports selections. Project data only arrives
// through RenderProjects.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if item, ok := m.SelectedItem(); ok {
				return m, func() tea.Msg {
					return messages.ProjectSelectedMsg{ProjectID: item.ID}
				}
			}
			return m, nil

		case "n":
			return m, func() tea.Msg {
				return messages.OpenProjectModalMsg{}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}
