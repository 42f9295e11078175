// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noldarim/chatdeck/internal/models"
	"github.com/noldarim/chatdeck/internal/tui/components/scrollablecard"
	"github.com/noldarim/chatdeck/internal/tui/layout"
	"github.com/samber/lo"
)

const defaultTitle = "Chat"

type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entryLoading
)

type entry struct {
	kind entryKind
	text string
}

// Model is the chat pane: a scrolling transcript above a message input.
type Model struct {
	transcript     scrollablecard.Model
	input          textarea.Model
	spinner        spinner.Model
	entries        []entry
	maxInputHeight int
	focused        bool
	width          int
	height         int
}

// NewModel creates an empty chat pane. The input grows up to maxInputHeight lines.
func NewModel(maxInputHeight int) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.ShowLineNumbers = false
	ta.Prompt = "┃ "
	ta.CharLimit = 4000
	ta.SetHeight(1)
	// enter submits, so newlines need a modifier
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Blur()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = layout.LoadingStyle

	m := Model{
		transcript:     scrollablecard.New(defaultTitle, 60, 20),
		input:          ta,
		spinner:        sp,
		maxInputHeight: max(maxInputHeight, 1),
		width:          60,
		height:         20,
	}
	m.layout()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// AddMessage appends a transcript entry and scrolls to it.
func (m *Model) AddMessage(text string, isUser bool) {
	kind := entryAssistant
	if isUser {
		kind = entryUser
	}
	m.entries = append(m.entries, entry{kind: kind, text: text})
	m.refresh(true)
}

// ClearChat empties the transcript, loading markers included.
func (m *Model) ClearChat() {
	m.entries = nil
	m.refresh(true)
}

// ShowLoading appends a loading marker.
func (m *Model) ShowLoading() {
	m.entries = append(m.entries, entry{kind: entryLoading})
	m.refresh(true)
}

// RemoveLoading removes the oldest loading marker. Without one it does nothing.
func (m *Model) RemoveLoading() {
	_, index, ok := lo.FindIndexOf(m.entries, func(e entry) bool {
		return e.kind == entryLoading
	})
	if !ok {
		return
	}
	m.entries = append(m.entries[:index:index], m.entries[index+1:]...)
	m.refresh(true)
}

// Messages returns the transcript without loading markers, oldest first.
func (m Model) Messages() []models.ChatMessage {
	return lo.FilterMap(m.entries, func(e entry, _ int) (models.ChatMessage, bool) {
		return models.ChatMessage{Text: e.text, IsUser: e.kind == entryUser}, e.kind != entryLoading
	})
}

// LoadingCount returns how many loading markers are in the transcript.
func (m Model) LoadingCount() int {
	return lo.CountBy(m.entries, func(e entry) bool {
		return e.kind == entryLoading
	})
}

// InputValue returns the message input content as typed.
func (m Model) InputValue() string {
	return m.input.Value()
}

// InputHeight returns the current height of the message input in lines.
func (m Model) InputHeight() int {
	return m.input.Height()
}

// ClearInput empties the message input and shrinks it back to one line.
func (m *Model) ClearInput() {
	m.input.Reset()
	m.autoGrow()
}

// SetTitle names the transcript pane after the open project. Empty restores the default.
func (m *Model) SetTitle(title string) {
	if title == "" {
		title = defaultTitle
	}
	m.transcript.SetTitle(title)
	m.refresh(true)
}

// SetFocus moves keyboard focus in or out of the message input.
func (m *Model) SetFocus(focused bool) tea.Cmd {
	m.focused = focused
	if focused {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// SetSize updates the pane's outer dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.layout()
	m.autoGrow()
}

// layout splits the pane between transcript and input.
func (m *Model) layout() {
	// input pane border
	m.input.SetWidth(max(m.width-2, 1))
	inputHeight := m.input.Height() + 2
	m.transcript.SetSize(m.width, max(m.height-inputHeight, 3))
	m.refresh(m.transcript.AtBottom())
}

// autoGrow fits the input height to its wrapped content, clamped to
// [1, maxInputHeight].
func (m *Model) autoGrow() {
	h := min(max(wrappedRows(m.input.Value(), m.input.Width()), 1), m.maxInputHeight)
	if h != m.input.Height() {
		m.input.SetHeight(h)
		m.layout()
	}
}

// wrappedRows counts the display rows text occupies in a textarea of the
// given width. The cursor cell after the last character counts too.
func wrappedRows(text string, width int) int {
	width = max(width, 1)
	return lo.SumBy(strings.Split(text, "\n"), func(line string) int {
		return lipgloss.Width(line)/width + 1
	})
}

func (m *Model) refresh(follow bool) {
	m.transcript.SetContent(m.renderEntries(m.transcript.ContentWidth()), follow)
}
