// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package testutil

import (
	"sync"
	"time"

	"github.com/noldarim/chatdeck/internal/protocol"
)

// DefaultWait bounds how long helpers wait for asynchronously sent commands.
const DefaultWait = 2 * time.Second

// CommandCapture captures commands sent through a channel
type CommandCapture struct {
	Commands []protocol.Command
	ch       chan protocol.Command
	mu       sync.Mutex
	arrived  chan struct{}
}

// NewCommandCapture creates a new command capture instance
func NewCommandCapture() *CommandCapture {
	capture := &CommandCapture{
		Commands: make([]protocol.Command, 0),
		ch:       make(chan protocol.Command, 100),
		arrived:  make(chan struct{}, 1),
	}

	go func() {
		for cmd := range capture.ch {
			capture.mu.Lock()
			capture.Commands = append(capture.Commands, cmd)
			capture.mu.Unlock()

			select {
			case capture.arrived <- struct{}{}:
			default:
			}
		}
	}()

	return capture
}

// Channel returns the send channel for commands
func (c *CommandCapture) Channel() chan<- protocol.Command {
	return c.ch
}

// LastCommand returns the most recent command sent, or nil if none
func (c *CommandCapture) LastCommand() protocol.Command {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.Commands) == 0 {
		return nil
	}
	return c.Commands[len(c.Commands)-1]
}

// CommandCount returns the number of commands captured
func (c *CommandCapture) CommandCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Commands)
}

// Clear clears all captured commands
func (c *CommandCapture) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Commands = c.Commands[:0]
}

// Close closes the capture channel
func (c *CommandCapture) Close() {
	close(c.ch)
}

// WaitForCommands blocks until at least n commands have been captured or
// DefaultWait passes. It reports whether n was reached.
func (c *CommandCapture) WaitForCommands(n int) bool {
	deadline := time.NewTimer(DefaultWait)
	defer deadline.Stop()

	for {
		if c.CommandCount() >= n {
			return true
		}
		select {
		case <-c.arrived:
		case <-deadline.C:
			return c.CommandCount() >= n
		}
	}
}

// Settle gives goroutines that might send a command a moment to do so. Use it
// before asserting that nothing was sent.
func (c *CommandCapture) Settle() {
	time.Sleep(50 * time.Millisecond)
}
