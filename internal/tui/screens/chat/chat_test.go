// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noldarim/chatdeck/internal/models"
	"github.com/noldarim/chatdeck/internal/tui/messages"
	"github.com/noldarim/chatdeck/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func focusedModel(t *testing.T, maxInputHeight int) Model {
	t.Helper()
	m := NewModel(maxInputHeight)
	m.SetSize(80, 30)
	m.SetFocus(true)
	return m
}

func TestAddMessage(t *testing.T) {
	m := NewModel(6)
	m.AddMessage("hello", true)
	m.AddMessage("hi there", false)

	assert.Equal(t, []models.ChatMessage{
		{Text: "hello", IsUser: true},
		{Text: "hi there", IsUser: false},
	}, m.Messages())

	testutil.AssertInOrder(t, m.View(), "hello", "hi there")
}

func TestAddMessage_KeepsLatestInView(t *testing.T) {
	m := NewModel(6)
	m.SetSize(60, 14)
	for i := 0; i < 30; i++ {
		m.AddMessage("filler", false)
	}
	m.AddMessage("the latest one", true)

	assert.True(t, m.transcript.AtBottom())
	assert.Contains(t, m.View(), "the latest one")
}

func TestClearChat(t *testing.T) {
	m := NewModel(6)
	m.AddMessage("one", true)
	m.ShowLoading()
	m.ClearChat()

	assert.Empty(t, m.Messages())
	assert.Zero(t, m.LoadingCount())
	assert.Contains(t, m.View(), "No messages yet")
}

func TestLoadingMarker(t *testing.T) {
	t.Run("show then remove", func(t *testing.T) {
		m := NewModel(6)
		m.AddMessage("question", true)
		m.ShowLoading()
		assert.Equal(t, 1, m.LoadingCount())
		assert.Contains(t, m.View(), "Thinking...")

		m.RemoveLoading()
		assert.Zero(t, m.LoadingCount())
		assert.NotContains(t, m.View(), "Thinking...")
		assert.Len(t, m.Messages(), 1)
	})

	t.Run("remove without a marker is a no-op", func(t *testing.T) {
		m := NewModel(6)
		m.AddMessage("only", false)
		m.RemoveLoading()
		assert.Equal(t, []models.ChatMessage{{Text: "only"}}, m.Messages())
	})

	t.Run("remove takes the oldest marker first", func(t *testing.T) {
		m := NewModel(6)
		m.AddMessage("first", true)
		m.ShowLoading()
		m.AddMessage("second", true)
		m.ShowLoading()

		m.RemoveLoading()
		require.Equal(t, 1, m.LoadingCount())
		assert.Equal(t, entryUser, m.entries[0].kind)
		assert.Equal(t, entryUser, m.entries[1].kind)
		assert.Equal(t, entryLoading, m.entries[2].kind)
	})
}

func TestUpdate_EnterReportsRawInput(t *testing.T) {
	m := focusedModel(t, 6)
	m, _ = m.Update(testutil.KeyPress("  hi  "))
	assert.Equal(t, "  hi  ", m.InputValue())

	_, cmd := m.Update(testutil.SpecialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ChatSubmittedMsg{Text: "  hi  "}, cmd())
}

func TestUpdate_UnfocusedIgnoresKeys(t *testing.T) {
	m := NewModel(6)
	m, cmd := m.Update(testutil.KeyPress("x"))
	assert.Nil(t, cmd)
	assert.Empty(t, m.InputValue())
}

func TestInputAutoGrow(t *testing.T) {
	newline := testutil.NewlineKey()

	t.Run("grows with each line", func(t *testing.T) {
		m := focusedModel(t, 6)
		assert.Equal(t, 1, m.InputHeight())

		m, _ = m.Update(testutil.KeyPress("line one"))
		m, _ = m.Update(newline)
		m, _ = m.Update(testutil.KeyPress("line two"))
		assert.Equal(t, 2, m.InputHeight())

		m, _ = m.Update(newline)
		assert.Equal(t, 3, m.InputHeight())
	})

	t.Run("clamps to the configured maximum", func(t *testing.T) {
		m := focusedModel(t, 3)
		for i := 0; i < 6; i++ {
			m, _ = m.Update(testutil.KeyPress("x"))
			m, _ = m.Update(newline)
		}
		assert.Equal(t, 3, m.InputHeight())
	})

	t.Run("grows for a long wrapped line", func(t *testing.T) {
		m := NewModel(5)
		m.SetSize(30, 20)
		m.SetFocus(true)

		m, _ = m.Update(testutil.KeyPress(strings.Repeat("a", 40)))
		assert.Equal(t, 2, m.InputHeight())

		m, _ = m.Update(testutil.KeyPress(strings.Repeat("b", 110)))
		assert.Equal(t, 5, m.InputHeight(), "150 columns of text clamps at the maximum")
	})

	t.Run("shrinks back after clearing", func(t *testing.T) {
		m := focusedModel(t, 6)
		m, _ = m.Update(testutil.KeyPress("a"))
		m, _ = m.Update(newline)
		m, _ = m.Update(testutil.KeyPress("b"))
		require.Equal(t, 2, m.InputHeight())

		m.ClearInput()
		assert.Empty(t, m.InputValue())
		assert.Equal(t, 1, m.InputHeight())
	})
}

func TestWrappedRows(t *testing.T) {
	assert.Equal(t, 1, wrappedRows("", 10))
	assert.Equal(t, 1, wrappedRows("short", 10))
	assert.Equal(t, 1, wrappedRows(strings.Repeat("x", 9), 10))
	assert.Equal(t, 2, wrappedRows(strings.Repeat("x", 10), 10), "cursor wraps to its own row")
	assert.Equal(t, 5, wrappedRows(strings.Repeat("x", 25)+"\n\nend", 10))
}

func TestSetTitle(t *testing.T) {
	m := NewModel(6)
	m.SetSize(60, 20)
	m.SetTitle("Website")
	assert.Contains(t, m.View(), "Website")

	m.SetTitle("")
	assert.Contains(t, m.View(), defaultTitle)
}
