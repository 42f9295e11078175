// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/noldarim/chatdeck/internal/protocol"

	"github.com/gorilla/websocket"
)

// WatchEvents streams backend events and invokes handler for each one until
// the context is cancelled or the server closes the connection.
func (c *Client) WatchEvents(ctx context.Context, handler func(protocol.Event)) error {
	target := c.streamURL()

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 10 * time.Second,
	}
	conn, resp, err := dialer.DialContext(ctx, target, nil)
	if resp != nil {
		resp.Body.Close()
	}
	if err != nil {
		reqErr := &RequestError{Op: OpWatchEvents, Err: fmt.Errorf("dial %s: %w", target, err)}
		if resp != nil {
			reqErr.StatusCode = resp.StatusCode
		}
		getLog().Error().Err(err).Str("url", target).Msg("Event stream dial failed")
		return reqErr
	}
	defer conn.Close()

	getLog().Info().Str("url", target).Msg("Event stream connected")

	// Closing the connection unblocks ReadMessage when ctx ends.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				getLog().Info().Msg("Event stream closed by server")
				return nil
			}
			getLog().Error().Err(err).Msg("Event stream read failed")
			return &RequestError{Op: OpWatchEvents, Err: err}
		}

		var msg protocol.StreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			getLog().Warn().Err(err).Msg("Invalid event stream message")
			continue
		}
		if msg.Type == "error" {
			getLog().Warn().Str("message", msg.Message).Msg("Event stream reported an error")
			continue
		}

		event, err := protocol.DecodeStreamEvent(msg)
		if err != nil {
			getLog().Warn().Err(err).Str("event_type", msg.EventType).Msg("Undecodable stream event")
			continue
		}
		if event == nil {
			getLog().Debug().Str("event_type", msg.EventType).Msg("Ignoring unknown stream event")
			continue
		}
		handler(event)
	}
}

func (c *Client) streamURL() string {
	u := c.baseURL.ResolveReference(&url.URL{Path: "/ws"})
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	return u.String()
}
