// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/noldarim/chatdeck/internal/models"
	"github.com/noldarim/chatdeck/internal/protocol"
	"github.com/noldarim/chatdeck/internal/tui/layout"
	"github.com/samber/lo"
)

// ProjectItem represents a project in the sidebar
type ProjectItem struct {
	ID     string
	Name   string
	Desc   string
	Active bool
}

// FilterValue returns the value to filter against
func (p ProjectItem) FilterValue() string {
	return p.Name
}

// Title returns the project name
func (p ProjectItem) Title() string {
	return p.Name
}

// Description returns the project description
func (p ProjectItem) Description() string {
	return p.Desc
}

// String returns a string representation of the project item
func (p ProjectItem) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Desc)
}

// Model is the project sidebar.
type Model struct {
	list    list.Model
	cmdChan chan<- protocol.Command
	focused bool
	width   int
	height  int
}

// NewModel creates a new project list model
func NewModel(cmdChan chan<- protocol.Command) Model {
	l := list.New([]list.Item{}, itemDelegate{}, 30, 10)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()

	return Model{
		list:    l,
		cmdChan: cmdChan,
		width:   30,
		height:  10,
	}
}

func (m Model) Init() tea.Cmd {
	go func() {
		m.cmdChan <- protocol.LoadProjectsCommand{}
	}()
	return nil
}

// RenderProjects replaces the sidebar entries with one per project, in the
// given order, marking currentID active. The cursor stays where it was when
// possible.
func (m *Model) RenderProjects(projects []models.Project, currentID string) {
	items := lo.Map(projects, func(p models.Project, _ int) list.Item {
		return ProjectItem{
			ID:     p.ID,
			Name:   p.Name,
			Desc:   p.Description,
			Active: p.ID == currentID,
		}
	})
	index := m.list.Index()
	m.list.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		m.list.Select(index)
	}
}

// Items returns the rendered entries in display order.
func (m Model) Items() []ProjectItem {
	return lo.FilterMap(m.list.Items(), func(item list.Item, _ int) (ProjectItem, bool) {
		p, ok := item.(ProjectItem)
		return p, ok
	})
}

// ActiveID returns the id of the entry marked active, or "".
func (m Model) ActiveID() string {
	active, ok := lo.Find(m.Items(), func(p ProjectItem) bool { return p.Active })
	if !ok {
		return ""
	}
	return active.ID
}

// SelectedItem returns the entry under the cursor.
func (m Model) SelectedItem() (ProjectItem, bool) {
	item, ok := m.list.SelectedItem().(ProjectItem)
	return item, ok
}

// SetFocus controls whether key input drives the cursor.
func (m *Model) SetFocus(focused bool) {
	m.focused = focused
}

// SetSize updates the sidebar's outer dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	// border + one line heading
	m.list.SetWidth(max(width-2, 1))
	m.list.SetHeight(max(height-3, 1))
}

// GetLayoutInfo returns the help entries the sidebar contributes.
func (m Model) GetLayoutInfo() layout.LayoutInfo {
	return layout.LayoutInfo{
		HelpItems: []layout.HelpItem{
			{Key: "↑/↓", Description: "navigate"},
			{Key: "enter", Description: "open"},
			{Key: "n", Description: "new project"},
			{Key: "tab", Description: "chat"},
			{Key: "q", Description: "quit"},
		},
	}
}
