// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectlist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noldarim/chatdeck/internal/models"
	"github.com/noldarim/chatdeck/internal/protocol"
	"github.com/noldarim/chatdeck/internal/tui/messages"
	"github.com/noldarim/chatdeck/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectItem(t *testing.T) {
	item := ProjectItem{
		ID:   "test-id",
		Name: "Test Project",
		Desc: "Test Description",
	}

	assert.Equal(t, "Test Project", item.FilterValue())
	assert.Equal(t, "Test Project", item.Title())
	assert.Equal(t, "Test Description", item.Description())
	assert.Equal(t, "Test Project: Test Description", item.String())
}

func TestModelInit(t *testing.T) {
	t.Run("sends LoadProjectsCommand on init", func(t *testing.T) {
		capture := testutil.NewCommandCapture()
		defer capture.Close()

		model := NewModel(capture.Channel())
		cmd := model.Init()

		// Init returns nil, the command goes out through the channel
		assert.Nil(t, cmd)

		require.True(t, capture.WaitForCommands(1))
		testutil.AssertLoadProjectsCommand(t, capture)
	})
}

func TestRenderProjects(t *testing.T) {
	t.Run("one entry per project in backend order", func(t *testing.T) {
		model := NewModel(make(chan protocol.Command, 1))
		model.RenderProjects(testutil.SampleProjects(), "")

		items := model.Items()
		require.Len(t, items, 3)
		assert.Equal(t, []string{"proj1", "proj2", "proj3"}, []string{items[0].ID, items[1].ID, items[2].ID})
		assert.Equal(t, "Test Project 1", items[0].Name)
		assert.Equal(t, "First test project", items[0].Desc)
		assert.Empty(t, model.ActiveID())
	})

	t.Run("marks exactly the current project active", func(t *testing.T) {
		model := NewModel(make(chan protocol.Command, 1))
		model.RenderProjects(testutil.SampleProjects(), "proj2")

		active := 0
		for _, item := range model.Items() {
			if item.Active {
				active++
			}
		}
		assert.Equal(t, 1, active)
		assert.Equal(t, "proj2", model.ActiveID())
	})

	t.Run("is idempotent", func(t *testing.T) {
		model := NewModel(make(chan protocol.Command, 1))
		model.RenderProjects(testutil.SampleProjects(), "proj1")
		first := model.Items()
		model.RenderProjects(testutil.SampleProjects(), "proj1")
		assert.Equal(t, first, model.Items())
	})

	t.Run("nil renders an empty list", func(t *testing.T) {
		model := NewModel(make(chan protocol.Command, 1))
		model.RenderProjects(testutil.SampleProjects(), "proj1")
		model.RenderProjects(nil, "")

		assert.Empty(t, model.Items())
		assert.Empty(t, model.ActiveID())
		assert.Contains(t, model.View(), "No projects yet")
	})

	t.Run("unknown current id marks nothing", func(t *testing.T) {
		model := NewModel(make(chan protocol.Command, 1))
		model.RenderProjects([]models.Project{{ID: "a", Name: "A"}}, "missing")
		assert.Empty(t, model.ActiveID())
	})
}

func TestModelUpdate_KeyHandling(t *testing.T) {
	newFocused := func() Model {
		model := NewModel(make(chan protocol.Command, 1))
		model.SetSize(30, 20)
		model.SetFocus(true)
		model.RenderProjects(testutil.SampleProjects(), "")
		return model
	}

	t.Run("enter selects the project under the cursor", func(t *testing.T) {
		model := newFocused()
		_, cmd := model.Update(testutil.SpecialKey(tea.KeyEnter))
		require.NotNil(t, cmd)
		assert.Equal(t, messages.ProjectSelectedMsg{ProjectID: "proj1"}, cmd())
	})

	t.Run("down then enter selects the next project", func(t *testing.T) {
		model := newFocused()
		model, _ = model.Update(testutil.SpecialKey(tea.KeyDown))
		_, cmd := model.Update(testutil.SpecialKey(tea.KeyEnter))
		require.NotNil(t, cmd)
		assert.Equal(t, messages.ProjectSelectedMsg{ProjectID: "proj2"}, cmd())
	})

	t.Run("enter on an empty list does nothing", func(t *testing.T) {
		model := NewModel(make(chan protocol.Command, 1))
		model.SetFocus(true)
		_, cmd := model.Update(testutil.SpecialKey(tea.KeyEnter))
		assert.Nil(t, cmd)
	})

	t.Run("n opens the new project dialog", func(t *testing.T) {
		model := newFocused()
		_, cmd := model.Update(testutil.KeyPress("n"))
		require.NotNil(t, cmd)
		assert.IsType(t, messages.OpenProjectModalMsg{}, cmd())
	})

	t.Run("unfocused sidebar ignores keys", func(t *testing.T) {
		model := newFocused()
		model.SetFocus(false)
		_, cmd := model.Update(testutil.SpecialKey(tea.KeyEnter))
		assert.Nil(t, cmd)
	})
}

func TestModelView(t *testing.T) {
	model := NewModel(make(chan protocol.Command, 1))
	model.SetSize(40, 20)
	model.RenderProjects(testutil.SampleProjects(), "proj1")

	view := model.View()
	assert.Contains(t, view, "Projects (3)")
	assert.Contains(t, view, "Test Project 1")
	assert.Contains(t, view, activeMarker)
}
