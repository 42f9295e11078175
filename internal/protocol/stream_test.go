// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"encoding/json"
	"testing"

	"github.com/noldarim/chatdeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeStreamEvent_ProjectCreated(t *testing.T) {
	event := NewProjectCreatedEvent(models.Project{ID: "p1", Name: "Foo", Description: "Bar"})

	data, err := EncodeStreamEvent(event)
	require.NoError(t, err)

	var msg StreamMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "event", msg.Type)
	assert.Equal(t, StreamProjectCreated, msg.EventType)

	decoded, err := DecodeStreamEvent(msg)
	require.NoError(t, err)
	created, ok := decoded.(ProjectCreatedEvent)
	require.True(t, ok, "expected ProjectCreatedEvent, got %T", decoded)
	assert.Equal(t, event.Project, created.Project)
	assert.Equal(t, ProjectCreatedKey("p1"), created.IdempotencyKey)
}

func TestEncodeStreamEvent_NotStreamable(t *testing.T) {
	_, err := EncodeStreamEvent(MessageReplyEvent{Reply: "hi"})
	assert.Error(t, err)
}

func TestDecodeStreamEvent(t *testing.T) {
	t.Run("missing key is derived from project id", func(t *testing.T) {
		msg := StreamMessage{
			Type:      "event",
			EventType: StreamProjectCreated,
			Payload:   json.RawMessage(`{"project":{"id":"abc","name":"n","description":"d"}}`),
		}
		event, err := DecodeStreamEvent(msg)
		require.NoError(t, err)
		assert.Equal(t, "project_created:abc", GetIdempotencyKey(event))
	})

	t.Run("unknown event type is ignored", func(t *testing.T) {
		event, err := DecodeStreamEvent(StreamMessage{Type: "event", EventType: "project_renamed"})
		assert.NoError(t, err)
		assert.Nil(t, event)
	})

	t.Run("error envelope is ignored", func(t *testing.T) {
		event, err := DecodeStreamEvent(StreamMessage{Type: "error", Message: "slow consumer"})
		assert.NoError(t, err)
		assert.Nil(t, event)
	})

	t.Run("bad payload", func(t *testing.T) {
		_, err := DecodeStreamEvent(StreamMessage{
			Type:      "event",
			EventType: StreamProjectCreated,
			Payload:   json.RawMessage(`{"project":"nope"}`),
		})
		assert.Error(t, err)
	})
}
