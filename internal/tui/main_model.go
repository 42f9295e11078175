// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"strconv"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/noldarim/chatdeck/internal/config"
	"github.com/noldarim/chatdeck/internal/logger"
	"github.com/noldarim/chatdeck/internal/protocol"
	"github.com/noldarim/chatdeck/internal/tui/components/alert"
	"github.com/noldarim/chatdeck/internal/tui/layout"
	"github.com/noldarim/chatdeck/internal/tui/messages"
	"github.com/noldarim/chatdeck/internal/tui/screens/chat"
	"github.com/noldarim/chatdeck/internal/tui/screens/projectcreation"
	"github.com/noldarim/chatdeck/internal/tui/screens/projectlist"
	"github.com/rs/zerolog"
)

const (
	alertNoProject     = "Please select a project first"
	alertCreateFailed  = "Failed to create project"
	replyFailedMessage = "Error: Failed to get response from AI"
)

var (
	log     zerolog.Logger
	logOnce sync.Once
)

func getLog() *zerolog.Logger {
	logOnce.Do(func() {
		log = logger.GetTUILogger().With().Str("component", "main_model").Logger()
	})
	return &log
}

// Focus is the pane receiving key input.
type Focus int

const (
	FocusSidebar Focus = iota
	FocusInput
)

// MainModel coordinates the sidebar, the chat pane and the dialogs. It owns
// State and is the only place user intent turns into commands.
type MainModel struct {
	state State
	// epoch increases on every project switch; replies from an older epoch are dropped.
	epoch uint64
	focus Focus

	projectList     projectlist.Model
	chat            chat.Model
	projectCreation projectcreation.Model
	alert           alert.Model

	status        string
	statusIsError bool

	width, height int
	cmdChan       chan<- protocol.Command
	eventChan     <-chan protocol.Event
}

// NewMainModel creates the coordinator in the NoProjectSelected state.
func NewMainModel(cmdChan chan<- protocol.Command, eventChan <-chan protocol.Event, cfg config.TUIConfig) MainModel {
	m := MainModel{
		focus:           FocusSidebar,
		projectList:     projectlist.NewModel(cmdChan),
		chat:            chat.NewModel(cfg.MaxInputHeight),
		projectCreation: projectcreation.NewModel(cmdChan),
		alert:           alert.New(),
		status:          "Loading projects...",
		cmdChan:         cmdChan,
		eventChan:       eventChan,
	}
	m.projectList.SetFocus(true)
	return m
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(
		m.projectList.Init(),
		m.chat.Init(),
	)
}

// State returns a copy of the coordinator state.
func (m MainModel) State() State {
	return m.state
}

// Epoch returns the current chat epoch.
func (m MainModel) Epoch() uint64 {
	return m.epoch
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	// Intent reported by sub-models
	case messages.ProjectSelectedMsg:
		return m, m.selectProject(msg.ProjectID)

	case messages.OpenProjectModalMsg:
		return m, m.projectCreation.Show()

	case messages.ChatSubmittedMsg:
		return m, m.submitChat(msg.Text)

	case messages.ProjectFormSubmittedMsg:
		m.setStatus("Creating project "+msg.Name+"...", false)
		return m, nil

	case messages.ProjectFormCancelledMsg, messages.AlertDismissedMsg:
		return m, nil

	// Events from the orchestrator
	case protocol.ProjectsLoadedEvent:
		m.state.SetProjects(msg.Projects)
		m.renderProjects()
		m.setStatus(projectCount(len(m.state.Projects)), false)
		return m, nil

	case protocol.ProjectCreatedEvent:
		return m, m.handleProjectCreated(msg)

	case protocol.ProjectCreateFailedEvent:
		getLog().Warn().Str("name", msg.Name).Str("error", msg.Error).Msg("Project creation failed")
		if !m.projectCreation.Owns(msg.RequestID, msg.Name) {
			getLog().Debug().Str("request_id", msg.RequestID).Msg("Failure for a request no longer pending")
			return m, nil
		}
		m.alert.Show(alertCreateFailed)
		m.setStatus("", false)
		return m, m.projectCreation.Reopen()

	case protocol.MessageReplyEvent:
		if m.isCurrentExchange(msg.ProjectID, msg.Epoch, msg.RequestID) {
			m.chat.RemoveLoading()
			m.chat.AddMessage(msg.Reply, false)
		}
		return m, nil

	case protocol.MessageFailedEvent:
		if m.isCurrentExchange(msg.ProjectID, msg.Epoch, msg.RequestID) {
			m.chat.RemoveLoading()
			m.chat.AddMessage(replyFailedMessage, false)
		}
		return m, nil

	case protocol.EventStreamStatusEvent:
		if msg.Connected {
			m.setStatus("Live updates connected", false)
		} else {
			m.setStatus("Live updates stopped: "+msg.Error, true)
		}
		return m, nil

	case protocol.ErrorEvent:
		getLog().Error().Str("context", msg.Context).Msg(msg.Message)
		m.setStatus(msg.Message, true)
		return m, nil
	}

	// Everything else (spinner ticks, cursor blinks, huh internals) goes to
	// the sub-models that animate.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	cmds = append(cmds, cmd)
	if m.projectCreation.IsVisible() {
		m.projectCreation, cmd = m.projectCreation.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKey routes a key press to whatever currently holds the keyboard:
// the alert, then the dialog, then the focused pane.
func (m MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.alert.IsVisible() {
		m.alert, cmd = m.alert.Update(msg)
		return m, cmd
	}
	if m.projectCreation.IsVisible() {
		m.projectCreation, cmd = m.projectCreation.Update(msg)
		return m, cmd
	}

	if msg.String() == "tab" {
		if m.focus == FocusSidebar {
			return m, m.setFocus(FocusInput)
		}
		return m, m.setFocus(FocusSidebar)
	}

	switch m.focus {
	case FocusSidebar:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		m.projectList, cmd = m.projectList.Update(msg)
	case FocusInput:
		if msg.String() == "esc" {
			return m, m.setFocus(FocusSidebar)
		}
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

// selectProject switches the chat to id. The transcript is cleared and the
// epoch bumped so replies still in flight for the old chat are discarded.
func (m *MainModel) selectProject(id string) tea.Cmd {
	if !m.state.Select(id) {
		getLog().Warn().Str("project_id", id).Msg("Ignoring selection of unknown project")
		return nil
	}
	m.epoch++
	m.renderProjects()
	m.chat.ClearChat()

	project, _ := m.state.Current()
	m.chat.SetTitle(project.Name)
	getLog().Debug().Str("project_id", id).Uint64("epoch", m.epoch).Msg("Project selected")
	return m.setFocus(FocusInput)
}

// submitChat turns the input into a SendMessageCommand. Without a project an
// alert is shown; blank input is ignored.
func (m *MainModel) submitChat(raw string) tea.Cmd {
	if !m.state.HasSelection() {
		m.alert.Show(alertNoProject)
		return nil
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	m.chat.AddMessage(text, true)
	m.chat.ClearInput()
	m.chat.ShowLoading()

	command := protocol.SendMessageCommand{
		Metadata: protocol.Metadata{
			RequestID: uuid.NewString(),
			Version:   protocol.CurrentProtocolVersion,
		},
		ProjectID: m.state.CurrentProjectID,
		Text:      text,
		Epoch:     m.epoch,
	}
	cmdChan := m.cmdChan
	go func() {
		cmdChan <- command
	}()
	return nil
}

func (m *MainModel) handleProjectCreated(event protocol.ProjectCreatedEvent) tea.Cmd {
	if m.state.AddProject(event.Project) {
		m.renderProjects()
		m.setStatus(projectCount(len(m.state.Projects)), false)
	}
	if m.projectCreation.Owns(event.RequestID, event.Project.Name) {
		m.projectCreation.Hide()
	}
	return nil
}

// isCurrentExchange reports whether a reply belongs to the chat on screen.
func (m MainModel) isCurrentExchange(projectID string, epoch uint64, requestID string) bool {
	if epoch == m.epoch && projectID == m.state.CurrentProjectID {
		return true
	}
	getLog().Info().
		Str("request_id", requestID).
		Str("project_id", projectID).
		Uint64("reply_epoch", epoch).
		Uint64("current_epoch", m.epoch).
		Msg("Discarding reply for an abandoned chat")
	return false
}

func (m *MainModel) renderProjects() {
	m.projectList.RenderProjects(m.state.Projects, m.state.CurrentProjectID)
}

func (m *MainModel) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.projectList.SetFocus(f == FocusSidebar)
	return m.chat.SetFocus(f == FocusInput)
}

func (m *MainModel) setStatus(status string, isError bool) {
	m.status = status
	m.statusIsError = isError
}

// setSize splits the content area between the sidebar and the chat pane.
func (m *MainModel) setSize(width, height int) {
	m.width = width
	m.height = height

	dims := layout.GetContentArea(m.layoutInfo(), width, height)
	if !dims.Valid {
		return
	}
	sidebar, main := dims.Split()
	m.projectList.SetSize(sidebar.Width, sidebar.Height)
	m.chat.SetSize(main.Width, main.Height)
}

func (m MainModel) layoutInfo() layout.LayoutInfo {
	var breadcrumbs []string
	if project, ok := m.state.Current(); ok {
		breadcrumbs = []string{project.Name}
	}

	status := m.status
	if m.statusIsError {
		status = layout.ErrorStyle.Render(status)
	}

	var help []layout.HelpItem
	switch {
	case m.alert.IsVisible():
		help = []layout.HelpItem{{Key: "enter", Description: "dismiss"}}
	case m.projectCreation.IsVisible():
		help = []layout.HelpItem{
			{Key: "tab", Description: "next field"},
			{Key: "enter", Description: "submit"},
			{Key: "esc", Description: "cancel"},
		}
	case m.focus == FocusSidebar:
		help = m.projectList.GetLayoutInfo().HelpItems
	default:
		help = []layout.HelpItem{
			{Key: "enter", Description: "send"},
			{Key: "alt+enter", Description: "newline"},
			{Key: "pgup/pgdn", Description: "scroll"},
			{Key: "esc", Description: "projects"},
		}
	}

	return layout.LayoutInfo{
		Title:       "chatdeck",
		Breadcrumbs: breadcrumbs,
		// keep the header height stable
		Status:    status + " ",
		HelpItems: help,
	}
}

func (m MainModel) View() string {
	info := m.layoutInfo()
	dims := layout.GetContentArea(info, m.width, m.height)

	var content string
	switch {
	case m.alert.IsVisible():
		content = layout.PlaceDialog(m.alert.View(), dims.Width, dims.Height)
	case m.projectCreation.IsVisible():
		content = layout.PlaceDialog(m.projectCreation.View(), dims.Width, dims.Height)
	default:
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.projectList.View(), m.chat.View())
	}

	return layout.RenderLayout(content, info, m.width, m.height)
}

func projectCount(n int) string {
	if n == 1 {
		return "1 project"
	}
	return strconv.Itoa(n) + " projects"
}
