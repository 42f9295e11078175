// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noldarim/chatdeck/internal/tui/layout"
)

const activeMarker = "●"

// itemDelegate renders a project as name + description with an active marker.
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 2 }
func (d itemDelegate) Spacing() int                            { return 1 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(ProjectItem)
	if !ok {
		return
	}

	marker := " "
	nameStyle := layout.ProjectNameStyle
	if item.Active {
		marker = layout.ActiveProjectStyle.Render(activeMarker)
		nameStyle = layout.ActiveProjectStyle
	}

	cursor := "  "
	if index == m.Index() {
		cursor = layout.HelpKeyStyle.Render("▌ ")
	}

	// cursor (2) + marker (1) + space (1)
	textWidth := max(m.Width()-4, 1)
	name := nameStyle.MaxWidth(textWidth).Render(item.Name)
	desc := layout.ProjectDescStyle.MaxWidth(textWidth).Render(item.Desc)

	fmt.Fprint(w, lipgloss.JoinVertical(lipgloss.Left,
		cursor+marker+" "+name,
		"    "+desc,
	))
}
