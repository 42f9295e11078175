// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noldarim/chatdeck/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertCommandSent verifies that a command of the expected type was sent
func AssertCommandSent(t *testing.T, capture *CommandCapture, expectedType interface{}) {
	t.Helper()
	assert.True(t, capture.CommandCount() > 0, "Expected at least one command to be sent")
	lastCmd := capture.LastCommand()
	assert.IsType(t, expectedType, lastCmd, "Command type mismatch")
}

// AssertLoadProjectsCommand verifies that a LoadProjectsCommand was sent
func AssertLoadProjectsCommand(t *testing.T, capture *CommandCapture) {
	t.Helper()
	AssertCommandSent(t, capture, protocol.LoadProjectsCommand{})
}

// AssertCreateProjectCommand verifies the last command creates a project with the given fields.
func AssertCreateProjectCommand(t *testing.T, capture *CommandCapture, name, description string) protocol.CreateProjectCommand {
	t.Helper()
	cmd, ok := capture.LastCommand().(protocol.CreateProjectCommand)
	require.True(t, ok, "Expected CreateProjectCommand, got %T", capture.LastCommand())
	assert.Equal(t, name, cmd.Name, "CreateProjectCommand name mismatch")
	assert.Equal(t, description, cmd.Description, "CreateProjectCommand description mismatch")
	return cmd
}

// AssertSendMessageCommand verifies the last command sends text to projectID.
func AssertSendMessageCommand(t *testing.T, capture *CommandCapture, projectID, text string) protocol.SendMessageCommand {
	t.Helper()
	cmd, ok := capture.LastCommand().(protocol.SendMessageCommand)
	require.True(t, ok, "Expected SendMessageCommand, got %T", capture.LastCommand())
	assert.Equal(t, projectID, cmd.ProjectID, "SendMessageCommand project ID mismatch")
	assert.Equal(t, text, cmd.Text, "SendMessageCommand text mismatch")
	assert.NotEmpty(t, cmd.RequestID, "SendMessageCommand needs a request id")
	return cmd
}

// AssertQuitMessage verifies that a quit message was generated
func AssertQuitMessage(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd, "Expected a command to be generated")
	msg := cmd()
	assert.IsType(t, tea.QuitMsg{}, msg, "Expected quit message")
}

// AssertCommandCount verifies the exact number of commands captured
func AssertCommandCount(t *testing.T, capture *CommandCapture, expected int) {
	t.Helper()
	actual := capture.CommandCount()
	assert.Equal(t, expected, actual, "Command count mismatch")
}

// AssertNoCommands waits briefly and verifies that no commands were sent
func AssertNoCommands(t *testing.T, capture *CommandCapture) {
	t.Helper()
	capture.Settle()
	AssertCommandCount(t, capture, 0)
}
