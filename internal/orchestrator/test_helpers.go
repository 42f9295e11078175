// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/noldarim/chatdeck/internal/config"
	"github.com/noldarim/chatdeck/internal/protocol"

	"github.com/stretchr/testify/require"
)

// OrchestratorFixture represents a running orchestrator with its channels
type OrchestratorFixture struct {
	Orchestrator *Orchestrator
	CmdChan      chan protocol.Command
	EventChan    chan protocol.Event
	Cleanup      func()
}

// WithOrchestrator starts an orchestrator over api and returns its fixture.
func WithOrchestrator(t *testing.T, api BackendAPI, cfg *config.AppConfig) *OrchestratorFixture {
	t.Helper()
	cmdChan := make(chan protocol.Command, 10)
	eventChan := make(chan protocol.Event, 10)

	orch, err := New(cmdChan, eventChan, api, cfg)
	require.NoError(t, err, "Failed to create orchestrator")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		orch.Run(ctx)
		close(done)
	}()

	return &OrchestratorFixture{
		Orchestrator: orch,
		CmdChan:      cmdChan,
		EventChan:    eventChan,
		Cleanup: func() {
			cancel()
			<-done
			orch.Close()
		},
	}
}

// NextEvent waits for the next event or fails the test.
func (f *OrchestratorFixture) NextEvent(t *testing.T) protocol.Event {
	t.Helper()
	select {
	case e := <-f.EventChan:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}
