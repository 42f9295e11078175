// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectcreation

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/noldarim/chatdeck/internal/protocol"
	"github.com/noldarim/chatdeck/internal/tui/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillAndComplete puts values into the form and marks it completed the way
// huh does after the last field is confirmed.
func fillAndComplete(m *Model, name, description string) {
	m.SetValues(name, description)
	m.form.State = huh.StateCompleted
}

func TestNewModel(t *testing.T) {
	model := NewModel(make(chan protocol.Command, 1))

	assert.False(t, model.IsVisible())
	assert.False(t, model.IsSubmitting())
	assert.NotNil(t, model.form)
	assert.Empty(t, model.View())
}

func TestShowHide(t *testing.T) {
	model := NewModel(make(chan protocol.Command, 1))

	model.Show()
	assert.True(t, model.IsVisible())
	assert.Contains(t, model.View(), "New Project")

	model.values.name = "Draft"
	model.Hide()
	assert.False(t, model.IsVisible())

	name, desc := model.Values()
	assert.Empty(t, name, "Hide resets the form")
	assert.Empty(t, desc)
}

func TestEscapeCancels(t *testing.T) {
	model := NewModel(make(chan protocol.Command, 1))
	model.Show()
	model.values.name = "Half typed"

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEscape})

	assert.False(t, model.IsVisible())
	require.NotNil(t, cmd)
	assert.IsType(t, messages.ProjectFormCancelledMsg{}, cmd())
	name, _ := model.Values()
	assert.Empty(t, name)
}

func TestHiddenIgnoresInput(t *testing.T) {
	model := NewModel(make(chan protocol.Command, 1))
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, model.IsVisible())
}

func TestFormSubmissionSendsCommand(t *testing.T) {
	cmdChan := make(chan protocol.Command, 1)
	model := NewModel(cmdChan)
	model.Show()
	fillAndComplete(&model, "  Foo ", "Bar")

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	submitted, ok := cmd().(messages.ProjectFormSubmittedMsg)
	require.True(t, ok, "expected ProjectFormSubmittedMsg")
	assert.Equal(t, "Foo", submitted.Name)
	assert.NotEmpty(t, submitted.RequestID)

	assert.True(t, model.IsVisible(), "dialog stays open until the result arrives")
	assert.True(t, model.IsSubmitting())
	assert.Contains(t, model.View(), "Creating Foo...")
	assert.NotContains(t, model.View(), "Creating   Foo")

	select {
	case sent := <-cmdChan:
		create, ok := sent.(protocol.CreateProjectCommand)
		require.True(t, ok, "expected CreateProjectCommand")
		assert.Equal(t, "Foo", create.Name)
		assert.Equal(t, "Bar", create.Description)
		assert.Equal(t, submitted.RequestID, create.RequestID)
	case <-time.After(time.Second):
		t.Fatal("no command received")
	}
}

func TestOwns(t *testing.T) {
	model := NewModel(make(chan protocol.Command, 1))
	model.Show()
	assert.False(t, model.Owns("anything", "Foo"), "nothing pending")

	fillAndComplete(&model, "Foo", "")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, model.Owns(model.pending, "Other"))
	assert.False(t, model.Owns("someone-else", "Foo"))
	assert.True(t, model.Owns("", "Foo"), "stream events match by name")
	assert.False(t, model.Owns("", "Other"))
}

func TestReopenKeepsValues(t *testing.T) {
	model := NewModel(make(chan protocol.Command, 1))
	model.Show()
	fillAndComplete(&model, "Foo", "Bar")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, model.IsSubmitting())

	model.Reopen()

	assert.True(t, model.IsVisible())
	assert.False(t, model.IsSubmitting())
	assert.Equal(t, huh.StateNormal, model.form.State)
	name, desc := model.Values()
	assert.Equal(t, "Foo", name)
	assert.Equal(t, "Bar", desc)
}

func TestReopenOnHiddenDialogDoesNothing(t *testing.T) {
	model := NewModel(make(chan protocol.Command, 1))
	assert.Nil(t, model.Reopen())
	assert.False(t, model.IsVisible())
}
