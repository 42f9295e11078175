// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/noldarim/chatdeck/internal/tui/messages"
)

// Update handles input while focused and keeps the loading animation running.
// Submitting only reports the input; the main model decides what happens to it.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		if m.LoadingCount() > 0 {
			m.refresh(m.transcript.AtBottom())
		}
		return m, cmd

	case tea.MouseMsg:
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			text := m.input.Value()
			return m, func() tea.Msg {
				return messages.ChatSubmittedMsg{Text: text}
			}
		case "pgup", "pgdown":
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}
		m.input, cmd = m.input.Update(msg)
		m.autoGrow()
		return m, cmd
	}

	// cursor blink and friends
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
