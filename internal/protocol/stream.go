// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"encoding/json"
	"fmt"
)

// Stream event names used on the backend WebSocket.
const (
	StreamProjectCreated = "project_created"
)

// StreamMessage is the envelope for server → client WebSocket messages.
type StreamMessage struct {
	Type      string          `json:"type"`                 // "event" or "error"
	EventType string          `json:"event_type,omitempty"` // one of the Stream* names
	Payload   json.RawMessage `json:"payload,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// StreamEventName returns the wire name for events that may travel over the
// WebSocket, or "" for events that stay in-process.
func StreamEventName(event Event) string {
	switch event.(type) {
	case ProjectCreatedEvent, *ProjectCreatedEvent:
		return StreamProjectCreated
	default:
		return ""
	}
}

// EncodeStreamEvent wraps event in a StreamMessage.
func EncodeStreamEvent(event Event) ([]byte, error) {
	name := StreamEventName(event)
	if name == "" {
		return nil, fmt.Errorf("event %T is not streamable", event)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", name, err)
	}
	return json.Marshal(StreamMessage{Type: "event", EventType: name, Payload: payload})
}

// DecodeStreamEvent turns a StreamMessage back into a typed event. Unknown
// event names return (nil, nil) so newer servers do not break older clients.
func DecodeStreamEvent(msg StreamMessage) (Event, error) {
	if msg.Type != "event" {
		return nil, nil
	}
	switch msg.EventType {
	case StreamProjectCreated:
		var e ProjectCreatedEvent
		if err := json.Unmarshal(msg.Payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", msg.EventType, err)
		}
		if e.IdempotencyKey == "" {
			e.IdempotencyKey = ProjectCreatedKey(e.Project.ID)
		}
		return e, nil
	default:
		return nil, nil
	}
}
