// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noldarim/chatdeck/internal/config"
	"github.com/noldarim/chatdeck/internal/protocol"
)

// CriticalError is returned by StartTUI when the orchestrator reported a
// failure the UI cannot continue after.
type CriticalError struct {
	Message string
	Context string
}

func (e *CriticalError) Error() string {
	if e.Context == "" {
		return "critical error: " + e.Message
	}
	return fmt.Sprintf("critical error: %s (%s)", e.Message, e.Context)
}

// sender is the part of *tea.Program the event forwarder drives.
type sender interface {
	Send(msg tea.Msg)
}

// StartTUI runs the terminal UI until the user quits. Events from the
// orchestrator are deduplicated and delivered to the model as tea messages.
func StartTUI(cmdChan chan<- protocol.Command, eventChan <-chan protocol.Event, cfg config.TUIConfig) error {
	deduplicator := NewEventDeduplicator()
	defer deduplicator.Stop()

	var opts []tea.ProgramOption
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(NewMainModel(cmdChan, eventChan, cfg), opts...)

	critical := make(chan *CriticalError, 1)
	go func() {
		if ce := forwardEvents(p, eventChan, deduplicator); ce != nil {
			critical <- ce
			p.Kill()
		}
	}()

	_, err := p.Run()
	select {
	case ce := <-critical:
		return ce
	default:
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// forwardEvents pumps events into p until the channel closes or a critical
// error arrives, which is returned.
func forwardEvents(p sender, events <-chan protocol.Event, dedup *EventDeduplicator) *CriticalError {
	for event := range events {
		if ce, ok := event.(protocol.CriticalErrorEvent); ok {
			getLog().Error().Str("context", ce.Context).Msg(ce.Message)
			return &CriticalError{Message: ce.Message, Context: ce.Context}
		}
		if !dedup.ShouldProcess(event) {
			getLog().Debug().Str("key", event.GetMetadata().IdempotencyKey).Msg("Duplicate event dropped")
			continue
		}
		p.Send(event)
	}
	return nil
}
