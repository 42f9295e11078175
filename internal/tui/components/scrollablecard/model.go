// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package scrollablecard

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noldarim/chatdeck/internal/tui/components/card"
	"github.com/noldarim/chatdeck/internal/tui/layout"
)

// Model is a titled card around a viewport. Width and height are outer sizes.
type Model struct {
	title    string
	viewport viewport.Model
	focused  bool
	style    card.Style
	width    int
	height   int
}

// New creates a new scrollable card
func New(title string, width, height int) Model {
	m := Model{
		title:    title,
		viewport: viewport.New(0, 0),
		style:    card.DefaultStyle(),
	}
	m.SetSize(width, height)
	return m
}

// Init initializes the scrollable card
func (m Model) Init() tea.Cmd {
	return nil
}

// Update forwards scroll keys and mouse wheel events to the viewport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the scrollable card
func (m Model) View() string {
	style := m.style
	style.Width = m.width
	style.Height = m.height
	if m.focused {
		style.BorderColor = layout.FocusColor
	}
	return card.Render(m.title, m.viewport.View(), style)
}

// SetFocus sets the focus state of the card
func (m *Model) SetFocus(focused bool) {
	m.focused = focused
}

// IsFocused returns whether the card is focused
func (m Model) IsFocused() bool {
	return m.focused
}

// SetSize updates the card's outer dimensions and resizes the viewport to fit inside.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	frameW, frameH := m.style.FrameSize()
	if m.title != "" {
		frameH += lipgloss.Height(m.title)
	}
	m.viewport.Width = max(width-frameW, 1)
	m.viewport.Height = max(height-frameH, 1)
}

// ContentWidth returns the usable width inside the card.
func (m Model) ContentWidth() int {
	return m.viewport.Width
}

// SetContent replaces the card content. With follow set the view jumps to the last line.
func (m *Model) SetContent(content string, follow bool) {
	m.viewport.SetContent(content)
	if follow {
		m.viewport.GotoBottom()
	}
}

// SetTitle updates the card title
func (m *Model) SetTitle(title string) {
	m.title = title
	m.SetSize(m.width, m.height)
}

// GetTitle returns the card title
func (m Model) GetTitle() string {
	return m.title
}

// AtBottom returns true if viewport is at the bottom
func (m Model) AtBottom() bool {
	return m.viewport.AtBottom()
}
