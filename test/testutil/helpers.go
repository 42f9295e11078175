// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package testutil

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

// KeyPress types the given text as a single rune key message.
func KeyPress(text string) tea.KeyMsg {
	return tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune(text),
	}
}

// SpecialKey creates non-rune key messages (Enter, Esc, Tab...).
func SpecialKey(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

// NewlineKey is alt+enter, which inserts a line break in the message input
// instead of submitting it.
func NewlineKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
}

// WindowSizeMsg creates a window size message for testing
func WindowSizeMsg(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  width,
		Height: height,
	}
}

// AssertInOrder checks that every fragment appears in view, each one after the
// previous.
func AssertInOrder(t *testing.T, view string, fragments ...string) bool {
	t.Helper()
	rest := view
	for _, f := range fragments {
		idx := strings.Index(rest, f)
		if !assert.GreaterOrEqual(t, idx, 0, "%q missing or out of order in view", f) {
			return false
		}
		rest = rest[idx+len(f):]
	}
	return true
}
