// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package card

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/noldarim/chatdeck/internal/tui/layout"
)

// Style defines the visual appearance of a card
type Style struct {
	BorderColor lipgloss.Color
	Border      lipgloss.Border
	PaddingX    int
	PaddingY    int
	TitleColor  lipgloss.Color
	// Width and Height are outer sizes including border and padding. Zero means auto.
	Width  int
	Height int
}

// DefaultStyle is the plain pane look used for the chat transcript.
func DefaultStyle() Style {
	return Style{
		BorderColor: layout.BorderColor,
		Border:      lipgloss.RoundedBorder(),
		PaddingX:    1,
		TitleColor:  layout.SecondaryColor,
	}
}

// DialogStyle is used for modal dialogs such as the new-project form.
func DialogStyle(width int) Style {
	return Style{
		BorderColor: layout.PrimaryColor,
		Border:      lipgloss.ThickBorder(),
		PaddingX:    2,
		PaddingY:    1,
		TitleColor:  layout.TextColor,
		Width:       width,
	}
}

// AlertStyle is used for blocking alerts.
func AlertStyle(width int) Style {
	s := DialogStyle(width)
	s.BorderColor = layout.WarningColor
	s.TitleColor = layout.WarningColor
	return s
}

// FrameSize returns how many columns and rows the border and padding take.
func (s Style) FrameSize() (int, int) {
	return 2 + 2*s.PaddingX, 2 + 2*s.PaddingY
}

// Render creates a bordered card with optional title
func Render(title, content string, style Style) string {
	body := content
	if title != "" {
		titleRendered := lipgloss.NewStyle().
			Foreground(style.TitleColor).
			Bold(true).
			Render(title)
		body = lipgloss.JoinVertical(lipgloss.Left, titleRendered, content)
	}

	box := lipgloss.NewStyle().
		Border(style.Border).
		BorderForeground(style.BorderColor).
		Padding(style.PaddingY, style.PaddingX)

	// lipgloss sizes exclude the border.
	if style.Width > 2 {
		box = box.Width(style.Width - 2)
	}
	if style.Height > 2 {
		box = box.Height(style.Height - 2).MaxHeight(style.Height)
	}

	return box.Render(body)
}
