// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/noldarim/chatdeck/internal/config"
	"github.com/noldarim/chatdeck/internal/logger"
	"github.com/noldarim/chatdeck/internal/models"
	"github.com/noldarim/chatdeck/internal/protocol"

	"github.com/rs/zerolog"
)

var (
	log     *zerolog.Logger
	logOnce sync.Once
)

func getLog() *zerolog.Logger {
	logOnce.Do(func() {
		l := logger.GetOrchestratorLogger()
		log = &l
	})
	return log
}

// BackendAPI is the part of the API client the orchestrator drives.
type BackendAPI interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error)
	SendMessage(ctx context.Context, projectID, text string) (*models.ChatReply, error)
}

// EventSource is implemented by backends that push events.
type EventSource interface {
	WatchEvents(ctx context.Context, handler func(protocol.Event)) error
}

// Orchestrator turns UI commands into backend calls and backend results into events.
type Orchestrator struct {
	cmdChan           <-chan protocol.Command
	eventChan         chan<- protocol.Event
	internalEventChan chan protocol.Event
	api               BackendAPI
	config            *config.AppConfig
	inflight          sync.WaitGroup
}

// New creates a new orchestrator instance
func New(cmdChan <-chan protocol.Command, eventChan chan<- protocol.Event, api BackendAPI, cfg *config.AppConfig) (*Orchestrator, error) {
	if api == nil {
		return nil, fmt.Errorf("orchestrator requires a backend API")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Orchestrator{
		cmdChan:           cmdChan,
		eventChan:         eventChan,
		internalEventChan: make(chan protocol.Event, 100),
		api:               api,
		config:            cfg,
	}, nil
}

// Run starts the orchestrator's main loop
func (o *Orchestrator) Run(ctx context.Context) {
	getLog().Info().Msg("Orchestrator started")

	if o.config.API.WatchEvents {
		if src, ok := o.api.(EventSource); ok {
			o.inflight.Add(1)
			go o.watchEvents(ctx, src)
		} else {
			getLog().Warn().Msg("Event stream requested but backend does not support it")
		}
	}

	for {
		select {
		case <-ctx.Done():
			getLog().Info().Err(ctx.Err()).Msg("Orchestrator shutting down")
			return
		case cmd, ok := <-o.cmdChan:
			if !ok {
				getLog().Info().Msg("Command channel closed")
				return
			}
			getLog().Debug().Str("command_type", fmt.Sprintf("%T", cmd)).Msg("Processing command")
			o.handleCommand(ctx, cmd)
		case event, ok := <-o.internalEventChan:
			if !ok {
				getLog().Info().Msg("Internal event channel closed")
				return
			}
			getLog().Debug().Str("event_type", fmt.Sprintf("%T", event)).Msg("Forwarding stream event")
			o.emit(ctx, event)
		}
	}
}

// handleCommand dispatches a command. Writes run on their own goroutine so a
// slow backend never blocks later commands.
func (o *Orchestrator) handleCommand(ctx context.Context, cmd protocol.Command) {
	switch c := cmd.(type) {
	case protocol.LoadProjectsCommand:
		o.handleLoadProjects(ctx, c.Metadata)
	case protocol.CreateProjectCommand:
		o.spawn(func() { o.handleCreateProject(ctx, c) })
	case protocol.SendMessageCommand:
		o.spawn(func() { o.handleSendMessage(ctx, c) })
	default:
		getLog().Warn().Str("command_type", fmt.Sprintf("%T", cmd)).Msg("Unknown command type")
	}
}

func (o *Orchestrator) spawn(fn func()) {
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		fn()
	}()
}

// emit delivers an event unless the orchestrator is shutting down.
func (o *Orchestrator) emit(ctx context.Context, event protocol.Event) {
	select {
	case o.eventChan <- event:
	case <-ctx.Done():
		getLog().Debug().Str("event_type", fmt.Sprintf("%T", event)).Msg("Dropping event during shutdown")
	}
}

func (o *Orchestrator) handleLoadProjects(ctx context.Context, metadata protocol.Metadata) {
	projects, err := o.api.ListProjects(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		o.emit(ctx, protocol.ErrorEvent{Metadata: metadata, Message: "Failed to load projects", Context: err.Error()})
		return
	}
	o.emit(ctx, protocol.ProjectsLoadedEvent{Metadata: metadata, Projects: projects})
}

func (o *Orchestrator) handleCreateProject(ctx context.Context, cmd protocol.CreateProjectCommand) {
	project, err := o.api.CreateProject(ctx, models.CreateProjectRequest{Name: cmd.Name, Description: cmd.Description})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		o.emit(ctx, protocol.ProjectCreateFailedEvent{Metadata: cmd.Metadata, Name: cmd.Name, Error: err.Error()})
		return
	}

	event := protocol.NewProjectCreatedEvent(*project)
	event.RequestID = cmd.RequestID
	o.emit(ctx, event)
}

func (o *Orchestrator) handleSendMessage(ctx context.Context, cmd protocol.SendMessageCommand) {
	reply, err := o.api.SendMessage(ctx, cmd.ProjectID, cmd.Text)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		o.emit(ctx, protocol.MessageFailedEvent{
			Metadata:  cmd.Metadata,
			ProjectID: cmd.ProjectID,
			Epoch:     cmd.Epoch,
			Error:     err.Error(),
		})
		return
	}
	o.emit(ctx, protocol.MessageReplyEvent{
		Metadata:  cmd.Metadata,
		ProjectID: cmd.ProjectID,
		Epoch:     cmd.Epoch,
		Reply:     reply.Message,
	})
}

// watchEvents feeds backend stream events into the main loop. The stream is
// not reconnected; the UI is told once it is gone.
func (o *Orchestrator) watchEvents(ctx context.Context, src EventSource) {
	defer o.inflight.Done()

	err := src.WatchEvents(ctx, func(event protocol.Event) {
		select {
		case o.internalEventChan <- event:
		case <-ctx.Done():
		}
	})
	if ctx.Err() != nil {
		return
	}

	status := protocol.EventStreamStatusEvent{Connected: false}
	if err != nil {
		status.Error = err.Error()
	}
	getLog().Warn().Err(err).Msg("Event stream ended")
	o.emit(ctx, status)
}

// Close waits for in-flight backend calls to finish.
func (o *Orchestrator) Close() error {
	o.inflight.Wait()
	getLog().Info().Msg("Orchestrator closed")
	return nil
}
