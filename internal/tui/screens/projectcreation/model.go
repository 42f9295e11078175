// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectcreation

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/noldarim/chatdeck/internal/models"
	"github.com/noldarim/chatdeck/internal/protocol"
)

const dialogWidth = 56

// formValues lives on the heap so the huh fields keep writing to the same
// place when bubbletea copies the Model.
type formValues struct {
	name        string
	description string
}

// Model is the new-project dialog.
type Model struct {
	form    *huh.Form
	values  *formValues
	visible bool
	// pending is the request id of the CreateProjectCommand in flight, if any.
	pending     string
	pendingName string
	cmdChan     chan<- protocol.Command
}

// NewModel creates a hidden dialog.
func NewModel(cmdChan chan<- protocol.Command) Model {
	m := Model{
		values:  &formValues{},
		cmdChan: cmdChan,
	}
	m.initForm()
	return m
}

// initForm builds a fresh form over the current values.
func (m *Model) initForm() {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Placeholder("Project name").
				Value(&m.values.name).
				Validate(func(s string) error {
					return models.CreateProjectRequest{Name: s}.Validate()
				}),

			huh.NewText().
				Key("description").
				Title("Description").
				Placeholder("What is this project about?").
				Lines(3).
				Value(&m.values.description),
		),
	).
		WithTheme(huh.ThemeCharm()).
		WithWidth(dialogWidth - 6).
		WithShowHelp(true)
}

// Show opens the dialog with whatever values it currently holds.
func (m *Model) Show() tea.Cmd {
	m.visible = true
	m.pending = ""
	m.pendingName = ""
	m.initForm()
	return m.form.Init()
}

// Hide closes the dialog and resets the form.
func (m *Model) Hide() {
	m.visible = false
	m.pending = ""
	m.pendingName = ""
	*m.values = formValues{}
	m.initForm()
}

// Reopen makes a submitted form editable again, keeping the entered values.
func (m *Model) Reopen() tea.Cmd {
	if !m.visible {
		return nil
	}
	return m.Show()
}

// IsVisible reports whether the dialog is open.
func (m Model) IsVisible() bool {
	return m.visible
}

// IsSubmitting reports whether a CreateProjectCommand is waiting for its result.
func (m Model) IsSubmitting() bool {
	return m.pending != ""
}

// Owns reports whether a created project answers this dialog's pending request.
// Events relayed from the backend stream carry no request id, so the name is
// the fallback match.
func (m Model) Owns(requestID, name string) bool {
	if !m.IsSubmitting() {
		return false
	}
	if requestID != "" {
		return requestID == m.pending
	}
	return name == m.pendingName
}

// SetValues fills the form, replacing anything typed so far.
func (m *Model) SetValues(name, description string) {
	m.values.name = name
	m.values.description = description
	m.initForm()
}

// Values returns the entered name and description.
func (m Model) Values() (string, string) {
	return m.values.name, m.values.description
}
