// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const (
	// MinimumWidth fits the sidebar next to a usable chat pane.
	MinimumWidth = 60
	// MinimumHeight fits header, footer, input and a few transcript lines.
	MinimumHeight = 14

	SidebarMinWidth = 22
	SidebarMaxWidth = 36
)

// LayoutInfo contains all the information needed to render a layout
type LayoutInfo struct {
	Title       string
	Breadcrumbs []string
	Status      string
	HelpItems   []HelpItem
}

// Dimensions is the space left for content once header and footer are drawn.
type Dimensions struct {
	Width  int
	Height int
	Valid  bool
	Error  string
}

// Split divides the content area into the project sidebar and the chat pane.
func (d Dimensions) Split() (sidebar, main Dimensions) {
	sw := SidebarWidth(d.Width)
	sidebar = Dimensions{Width: sw, Height: d.Height, Valid: d.Valid}
	main = Dimensions{Width: d.Width - sw, Height: d.Height, Valid: d.Valid}
	return sidebar, main
}

// ValidateSpace checks if the terminal has enough space to render properly
func ValidateSpace(width, height int) Dimensions {
	dims := Dimensions{Width: width, Height: height, Valid: true}
	switch {
	case width < MinimumWidth:
		dims.Valid = false
		dims.Error = fmt.Sprintf("Terminal too narrow (%d cols). Minimum: %d cols", width, MinimumWidth)
	case height < MinimumHeight:
		dims.Valid = false
		dims.Error = fmt.Sprintf("Terminal too short (%d lines). Minimum: %d lines", height, MinimumHeight)
	}
	return dims
}

// chrome renders the header and, when there are help items, the footer.
func chrome(info LayoutInfo, width int) (header, footer string) {
	header = RenderHeader(info.Title, info.Breadcrumbs, info.Status, width)
	if len(info.HelpItems) > 0 {
		footer = RenderFooter(info.HelpItems, width)
	}
	return header, footer
}

func contentHeight(total int, header, footer string) int {
	h := total - lipgloss.Height(header)
	if footer != "" {
		h -= lipgloss.Height(footer)
	}
	return max(h, 1)
}

// RenderLayout frames content between header and footer, or explains why the
// terminal is too small.
func RenderLayout(content string, info LayoutInfo, width, height int) string {
	dims := ValidateSpace(width, height)
	if !dims.Valid {
		return renderSpaceError(dims.Error, width, height)
	}

	header, footer := chrome(info, width)
	h := contentHeight(height, header, footer)

	body := lipgloss.NewStyle().
		Width(width).
		Height(h).
		MaxHeight(h).
		Align(lipgloss.Left, lipgloss.Top).
		Render(content)

	if footer == "" {
		return lipgloss.JoinVertical(lipgloss.Left, header, body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// GetContentArea reports the space RenderLayout leaves for content.
func GetContentArea(info LayoutInfo, totalWidth, totalHeight int) Dimensions {
	dims := ValidateSpace(totalWidth, totalHeight)
	if !dims.Valid {
		return dims
	}
	header, footer := chrome(info, totalWidth)
	dims.Height = contentHeight(totalHeight, header, footer)
	return dims
}

// SidebarWidth is a third of the terminal, clamped to the sidebar bounds.
func SidebarWidth(totalWidth int) int {
	return min(max(totalWidth/3, SidebarMinWidth), SidebarMaxWidth)
}

func renderSpaceError(message string, width, height int) string {
	title := lipgloss.NewStyle().Foreground(ErrorColor).Bold(true).Render("⚠ Terminal Too Small ⚠")
	detail := lipgloss.NewStyle().Foreground(TextColor).Render(message)
	sizes := StatsStyle.Render(fmt.Sprintf("Current: %dx%d  Minimum: %dx%d", width, height, MinimumWidth, MinimumHeight))

	box := lipgloss.JoinVertical(lipgloss.Center, title, "", detail, "", sizes, "", "Please resize your terminal")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
