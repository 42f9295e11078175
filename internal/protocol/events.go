// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Here lies the definition of the data that orchestrator can send to the UI
// All data that UI can receive from the orchestrator will be named: Event
// Events usually originate from Commands, eg. CreateProjectCommand results in
// ProjectCreatedEvent or ProjectCreateFailedEvent.
// Events can also originate from independent sources: the backend event stream
// produces ProjectCreatedEvent for projects created by other clients.
package protocol

import (
	"github.com/noldarim/chatdeck/internal/models"
)

// GetIdempotencyKey extracts the idempotency key from any event
func GetIdempotencyKey(event Event) string {
	return event.GetMetadata().IdempotencyKey
}

// ProjectCreatedKey is the idempotency key shared by every source that reports
// the creation of the project with the given id.
func ProjectCreatedKey(projectID string) string {
	return "project_created:" + projectID
}

// ProjectsLoadedEvent is sent when projects have been loaded
type ProjectsLoadedEvent struct {
	Metadata
	Projects []models.Project // backend order is display order
}

func (e ProjectsLoadedEvent) GetMetadata() Metadata {
	return e.Metadata
}

// ProjectCreatedEvent is sent when a project has been created
type ProjectCreatedEvent struct {
	Metadata
	Project models.Project `json:"project"`
}

func (e ProjectCreatedEvent) GetMetadata() Metadata {
	return e.Metadata
}

// NewProjectCreatedEvent builds a ProjectCreatedEvent carrying the shared idempotency key.
func NewProjectCreatedEvent(project models.Project) ProjectCreatedEvent {
	return ProjectCreatedEvent{
		Metadata: Metadata{
			IdempotencyKey: ProjectCreatedKey(project.ID),
			Version:        CurrentProtocolVersion,
		},
		Project: project,
	}
}

// ProjectCreateFailedEvent is sent when the backend rejected or never received
// a CreateProjectCommand.
type ProjectCreateFailedEvent struct {
	Metadata
	Name  string
	Error string
}

func (e ProjectCreateFailedEvent) GetMetadata() Metadata {
	return e.Metadata
}

// MessageReplyEvent carries the backend's reply to a SendMessageCommand.
type MessageReplyEvent struct {
	Metadata
	ProjectID string
	Epoch     uint64
	Reply     string
}

func (e MessageReplyEvent) GetMetadata() Metadata {
	return e.Metadata
}

// MessageFailedEvent is sent when a SendMessageCommand could not get a reply.
type MessageFailedEvent struct {
	Metadata
	ProjectID string
	Epoch     uint64
	Error     string
}

func (e MessageFailedEvent) GetMetadata() Metadata {
	return e.Metadata
}

// EventStreamStatusEvent reports the state of the backend event stream.
type EventStreamStatusEvent struct {
	Metadata
	Connected bool
	Error     string
}

func (e EventStreamStatusEvent) GetMetadata() Metadata {
	return e.Metadata
}

type ErrorEvent struct {
	Metadata
	Message string
	Context string
}

func (e ErrorEvent) GetMetadata() Metadata {
	return e.Metadata
}

type CriticalErrorEvent struct {
	Metadata
	Message string
	Context string
}

func (e CriticalErrorEvent) GetMetadata() Metadata {
	return e.Metadata
}
