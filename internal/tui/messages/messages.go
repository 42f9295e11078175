// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package messages holds the tea.Msg values the sub-models use to report
// user intent to the main model. Sub-models never change shared state
// themselves; they describe what happened and the main model decides.
package messages

// ProjectSelectedMsg is emitted when the user picks a project in the sidebar.
type ProjectSelectedMsg struct {
	ProjectID string
}

// ChatSubmittedMsg carries the raw (untrimmed) content of the message input.
type ChatSubmittedMsg struct {
	Text string
}

// OpenProjectModalMsg asks for the new-project dialog.
type OpenProjectModalMsg struct{}

// ProjectFormSubmittedMsg is emitted once the new-project form has sent its
// CreateProjectCommand.
type ProjectFormSubmittedMsg struct {
	RequestID string
	Name      string
}

// ProjectFormCancelledMsg is emitted when the new-project dialog is closed without submitting.
type ProjectFormCancelledMsg struct{}

// AlertDismissedMsg is emitted when the blocking alert is acknowledged.
type AlertDismissedMsg struct{}
