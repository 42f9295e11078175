// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server is a small reference backend for the chat client. It serves
// the project and chat endpoints over REST and broadcasts project creations
// to WebSocket subscribers.
package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/noldarim/chatdeck/internal/logger"
	"github.com/noldarim/chatdeck/internal/protocol"

	"github.com/rs/zerolog"
)

var (
	log     *zerolog.Logger
	logOnce sync.Once
)

func getLog() *zerolog.Logger {
	logOnce.Do(func() {
		l := logger.GetAPILogger()
		log = &l
	})
	return log
}

const eventBufferSize = 64

// EventBroadcaster reads events published by the handlers and fans them out
// to all connected WebSocket clients.
type EventBroadcaster struct {
	events  chan protocol.Event
	clients *ClientRegistry
}

// NewEventBroadcaster creates a broadcaster with its own buffered queue.
func NewEventBroadcaster(clients *ClientRegistry) *EventBroadcaster {
	return &EventBroadcaster{
		events:  make(chan protocol.Event, eventBufferSize),
		clients: clients,
	}
}

// Publish queues an event for broadcast. It never blocks: when the queue is
// full the event is dropped and logged.
func (b *EventBroadcaster) Publish(event protocol.Event) {
	select {
	case b.events <- event:
	default:
		getLog().Warn().Str("event_type", fmt.Sprintf("%T", event)).Msg("Event queue full, dropping event")
	}
}

// Run dispatches queued events until the context is cancelled.
func (b *EventBroadcaster) Run(ctx context.Context) {
	for {
		select {
		case event := <-b.events:
			b.dispatch(event)
		case <-ctx.Done():
			getLog().Info().Msg("Event broadcaster stopped (context cancelled)")
			return
		}
	}
}

func (b *EventBroadcaster) dispatch(event protocol.Event) {
	if b.clients != nil {
		b.clients.Broadcast(event)
	}
}
