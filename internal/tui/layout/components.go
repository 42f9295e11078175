// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

const helpSeparator = " • "

// HelpItem is one key hint in the footer.
type HelpItem struct {
	Key         string
	Description string
}

func (h HelpItem) render() string {
	return "[" + HelpKeyStyle.Render(h.Key) + "] " + HelpTextStyle.Render(h.Description)
}

// RenderHeader draws the title line, the trail of context names after it,
// an optional status line and a closing divider.
func RenderHeader(title string, breadcrumbs []string, status string, width int) string {
	titleLine := TitleStyle.Render(title)
	if trail := lo.Compact(breadcrumbs); len(trail) > 0 {
		titleLine += "  " + BreadcrumbStyle.Render(strings.Join(trail, BreadcrumbSeparator.String()))
	}

	rows := []string{titleLine}
	if status != "" {
		rows = append(rows, StatsStyle.Render(status))
	}
	rows = append(rows, GetDivider(width))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderFooter draws a divider followed by the key hints. It returns "" when
// there is nothing to show.
func RenderFooter(helpItems []HelpItem, width int) string {
	if len(helpItems) == 0 {
		return ""
	}
	hints := lo.Map(helpItems, func(h HelpItem, _ int) string { return h.render() })
	return lipgloss.JoinVertical(lipgloss.Left,
		GetDivider(width),
		FooterStyle.Width(width).Render(strings.Join(hints, helpSeparator)),
	)
}

// PlaceDialog centers a dialog box in a width x height area.
func PlaceDialog(dialog string, width, height int) string {
	if width <= 0 || height <= 0 {
		return dialog
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog,
		lipgloss.WithWhitespaceChars(" "))
}
