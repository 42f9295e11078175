// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/noldarim/chatdeck/internal/protocol"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

const (
	maxMessageSize = 4096
	maxFilters     = 50
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	writeWait      = 10 * time.Second
	maxClients     = 1000
	sendBuffer     = 64
)

// newUpgrader accepts any origin when allowedOrigins is empty, otherwise only
// the listed ones.
func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(allowedOrigins, r.Header.Get("Origin"))
		},
	}
}

// SubscriptionFilter narrows the events a client receives. An empty
// ProjectID matches every project.
type SubscriptionFilter struct {
	ProjectID string `json:"project_id,omitempty"`
}

type wsClient struct {
	conn    *websocket.Conn
	send    chan []byte
	filters []SubscriptionFilter
	mu      sync.RWMutex
}

// ClientRegistry tracks connected WebSocket clients.
type ClientRegistry struct {
	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{
		clients: make(map[*wsClient]struct{}),
	}
}

// Count returns the number of connected clients.
func (r *ClientRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Broadcast sends a streamable event to every client whose filters match.
// Events with no wire name are skipped.
func (r *ClientRegistry) Broadcast(event protocol.Event) {
	if protocol.StreamEventName(event) == "" {
		return
	}
	data, err := protocol.EncodeStreamEvent(event)
	if err != nil {
		getLog().Error().Err(err).Msg("Failed to encode event for WebSocket broadcast")
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for c := range r.clients {
		if !c.matchesAny(event) {
			continue
		}
		select {
		case c.send <- data:
		default:
			getLog().Warn().Msg("Dropping event for slow WebSocket client")
		}
	}
}

func (r *ClientRegistry) add(c *wsClient) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.clients) >= maxClients {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

func (r *ClientRegistry) remove(c *wsClient) {
	r.mu.Lock()
	delete(r.clients, c)
	r.mu.Unlock()
}

// matchesAny reports whether the event passes any filter. A client without
// filters receives everything.
func (c *wsClient) matchesAny(event protocol.Event) bool {
	c.mu.RLock()
	filters := append([]SubscriptionFilter(nil), c.filters...)
	c.mu.RUnlock()

	if len(filters) == 0 {
		return true
	}

	projectID := eventProjectID(event)
	return lo.ContainsBy(filters, func(f SubscriptionFilter) bool {
		return f.ProjectID == "" || f.ProjectID == projectID
	})
}

type projectScoped interface {
	GetProjectID() string
}

func eventProjectID(event protocol.Event) string {
	if ps, ok := event.(projectScoped); ok {
		return ps.GetProjectID()
	}
	return ""
}

// wsMessage is the envelope for client → server WebSocket messages.
type wsMessage struct {
	Type    string             `json:"type"` // "subscribe" or "unsubscribe"
	Filters SubscriptionFilter `json:"filters"`
}

func errorFrame(message string) []byte {
	data, _ := json.Marshal(protocol.StreamMessage{Type: "error", Message: message})
	return data
}

// HandleWebSocket upgrades an HTTP connection and manages the client lifecycle.
func HandleWebSocket(registry *ClientRegistry, allowedOrigins []string) http.HandlerFunc {
	upgrader := newUpgrader(allowedOrigins)

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			requestLog(r).Error().Err(err).Msg("WebSocket upgrade failed")
			return
		}

		client := &wsClient{
			conn: conn,
			send: make(chan []byte, sendBuffer),
		}
		if !registry.add(client) {
			getLog().Warn().Msg("WebSocket connection limit reached")
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many connections"))
			conn.Close()
			return
		}
		requestLog(r).Info().Str("remote", r.RemoteAddr).Msg("WebSocket client connected")

		go client.writePump()
		client.readPump(registry)
	}
}

func (c *wsClient) readPump(registry *ClientRegistry) {
	defer func() {
		registry.remove(c)
		close(c.send)
		c.conn.Close()
		getLog().Info().Msg("WebSocket client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				getLog().Error().Err(err).Msg("WebSocket read error")
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			getLog().Warn().Err(err).Msg("Invalid WebSocket message")
			c.trySend(errorFrame("invalid message"))
			continue
		}

		c.mu.Lock()
		switch msg.Type {
		case "subscribe":
			if len(c.filters) >= maxFilters {
				getLog().Warn().Msg("WebSocket client hit max filter limit")
			} else {
				c.filters = append(c.filters, msg.Filters)
				getLog().Debug().Str("project_id", msg.Filters.ProjectID).Msg("WebSocket client subscribed")
			}
		case "unsubscribe":
			c.filters = lo.Without(c.filters, msg.Filters)
			getLog().Debug().Str("project_id", msg.Filters.ProjectID).Msg("WebSocket client unsubscribed")
		default:
			getLog().Warn().Str("type", msg.Type).Msg("Unknown WebSocket message type")
		}
		c.mu.Unlock()
	}
}

func (c *wsClient) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				getLog().Error().Err(err).Msg("WebSocket write error")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
