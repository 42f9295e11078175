// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"sync"
	"time"

	"github.com/noldarim/chatdeck/internal/protocol"
)

const (
	defaultDedupTTL      = 10 * time.Minute
	defaultDedupInterval = 5 * time.Minute
)

// EventDeduplicator drops events whose idempotency key was already seen. A
// project created by this client reaches the TUI twice, once as the command
// result and once from the backend event stream.
type EventDeduplicator struct {
	processedEvents sync.Map // idempotencyKey -> time.Time
	ttl             time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

// NewEventDeduplicator creates a new event deduplicator
func NewEventDeduplicator() *EventDeduplicator {
	return newEventDeduplicator(defaultDedupTTL, defaultDedupInterval)
}

func newEventDeduplicator(ttl, interval time.Duration) *EventDeduplicator {
	ed := &EventDeduplicator{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go ed.cleanupExpiredEvents(interval)
	return ed
}

// ShouldProcess returns true if the event should be processed (not a duplicate)
func (ed *EventDeduplicator) ShouldProcess(event protocol.Event) bool {
	idempotencyKey := protocol.GetIdempotencyKey(event)
	if idempotencyKey == "" {
		return true
	}

	_, loaded := ed.processedEvents.LoadOrStore(idempotencyKey, time.Now())
	return !loaded
}

// Stop ends the cleanup goroutine.
func (ed *EventDeduplicator) Stop() {
	ed.stopOnce.Do(func() { close(ed.stop) })
}

// cleanupExpiredEvents periodically removes expired event records
func (ed *EventDeduplicator) cleanupExpiredEvents(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ed.stop:
			return
		case now := <-ticker.C:
			ed.expire(now)
		}
	}
}

func (ed *EventDeduplicator) expire(now time.Time) {
	ed.processedEvents.Range(func(key, value interface{}) bool {
		if timestamp, ok := value.(time.Time); ok && now.Sub(timestamp) > ed.ttl {
			ed.processedEvents.Delete(key)
		}
		return true
	})
}
