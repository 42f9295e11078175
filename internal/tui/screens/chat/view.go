// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/noldarim/chatdeck/internal/tui/layout"
)

// View renders the transcript above the input.
func (m Model) View() string {
	input := layout.Pane(m.focused).
		Width(max(m.width-2, 1)).
		Render(m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.transcript.View(), input)
}

func (m Model) renderEntries(width int) string {
	if len(m.entries) == 0 {
		return layout.StatsStyle.Render("No messages yet.")
	}

	// bubbles take at most three quarters of the pane
	bubbleWidth := max(width*3/4, 10)

	blocks := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		switch e.kind {
		case entryUser:
			bubble := fit(layout.UserMessageStyle, e.text, bubbleWidth)
			blocks = append(blocks, lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		case entryAssistant:
			blocks = append(blocks, fit(layout.AssistantMessageStyle, e.text, bubbleWidth))
		case entryLoading:
			blocks = append(blocks, m.spinner.View()+layout.LoadingStyle.Render(" Thinking..."))
		}
	}
	return strings.Join(blocks, "\n\n")
}

// fit renders text with style, wrapping only when it would exceed maxWidth.
func fit(style lipgloss.Style, text string, maxWidth int) string {
	frame := style.GetHorizontalFrameSize()
	if lipgloss.Width(text)+frame > maxWidth {
		style = style.Width(maxWidth)
	}
	return style.Render(text)
}
