// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package alert

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noldarim/chatdeck/internal/tui/messages"
	"github.com/noldarim/chatdeck/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlert_ShowAndDismiss(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEnter, tea.KeyEsc} {
		m := New()
		m.Show("Please select a project first")
		require.True(t, m.IsVisible())
		assert.Contains(t, m.View(), "Please select a project first")

		m, cmd := m.Update(testutil.SpecialKey(key))
		assert.False(t, m.IsVisible())
		require.NotNil(t, cmd)
		assert.IsType(t, messages.AlertDismissedMsg{}, cmd())
		assert.Empty(t, m.View())
	}
}

func TestAlert_SwallowsOtherKeys(t *testing.T) {
	m := New()
	m.Show("Failed to create project")

	m, cmd := m.Update(testutil.KeyPress("q"))
	assert.True(t, m.IsVisible())
	assert.Nil(t, cmd)

	m, cmd = m.Update(testutil.SpecialKey(tea.KeyTab))
	assert.True(t, m.IsVisible())
	assert.Nil(t, cmd)
}

func TestAlert_HiddenIgnoresInput(t *testing.T) {
	m := New()
	m, cmd := m.Update(testutil.SpecialKey(tea.KeyEnter))
	assert.False(t, m.IsVisible())
	assert.Nil(t, cmd)
}
