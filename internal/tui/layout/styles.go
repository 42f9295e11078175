// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette
	PrimaryColor   = lipgloss.Color("#7C3AED")
	SecondaryColor = lipgloss.Color("#A78BFA")
	AccentColor    = lipgloss.Color("#10B981")
	TextColor      = lipgloss.Color("#F3F4F6")
	MutedColor     = lipgloss.Color("#9CA3AF")
	BorderColor    = lipgloss.Color("#4B5563")
	FocusColor     = lipgloss.Color("#22D3EE")
	ErrorColor     = lipgloss.Color("#EF4444")
	WarningColor   = lipgloss.Color("#F59E0B")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			Align(lipgloss.Left)

	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	BreadcrumbSeparator = lipgloss.NewStyle().
				Foreground(BorderColor).
				SetString(" > ")

	StatsStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Footer styles
	FooterStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(1).
			PaddingRight(1)

	HelpTextStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Pane styles: the sidebar and the chat pane swap border color with focus.
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor)

	FocusedPaneStyle = PaneStyle.
				BorderForeground(FocusColor)

	// Project entries
	ProjectNameStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true)

	ProjectDescStyle = lipgloss.NewStyle().
				Foreground(MutedColor)

	ActiveProjectStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	// Transcript entries
	UserMessageStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Padding(0, 1)

	AssistantMessageStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(SecondaryColor).
				PaddingLeft(1)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)

// GetDivider returns a horizontal divider of the specified width
func GetDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(BorderColor).
		Render(strings.Repeat("─", width))
}

// Pane returns the pane style for the given focus state.
func Pane(focused bool) lipgloss.Style {
	if focused {
		return FocusedPaneStyle
	}
	return PaneStyle
}
