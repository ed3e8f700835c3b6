// Package stream fans domain events out to long-lived server-sent-event
// connections. Each connection owns a copy of the ambient request context
// captured when its handshake completed; pushes that happen long after the
// originating request has ended still format payloads with that context.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soklet/toystore-app-sub001/internal/events"
	"github.com/soklet/toystore-app-sub001/internal/reqctx"
)

// Connection is one subscriber's live event-stream.
type Connection struct {
	id     string
	frames chan []byte
	rc     *reqctx.RequestContext
}

// ID returns the connection identifier.
func (c *Connection) ID() string { return c.id }

// Frames returns the channel of wire-ready SSE frames for this connection.
func (c *Connection) Frames() <-chan []byte { return c.frames }

// RequestContext returns the ambient context captured at handshake time.
func (c *Connection) RequestContext() *reqctx.RequestContext { return c.rc }

// Hub tracks live connections and broadcasts events to them.
type Hub struct {
	mu         sync.RWMutex
	conns      map[string]*Connection
	bufferSize int
	logger     *zap.Logger
}

// NewHub builds a hub and subscribes it to every event the dispatcher sees.
func NewHub(dispatcher events.Dispatcher, bufferSize int, logger *zap.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	h := &Hub{
		conns:      make(map[string]*Connection),
		bufferSize: bufferSize,
		logger:     logger,
	}
	dispatcher.SubscribeAll(h.broadcast)
	return h
}

// Subscribe registers a connection carrying the given request context.
func (h *Hub) Subscribe(rc *reqctx.RequestContext) *Connection {
	conn := &Connection{
		id:     uuid.NewString(),
		frames: make(chan []byte, h.bufferSize),
		rc:     rc,
	}
	h.mu.Lock()
	h.conns[conn.id] = conn
	h.mu.Unlock()

	h.logger.Info("event-stream connected", zap.String("connection_id", conn.id))
	return conn
}

// Unsubscribe removes a connection and closes its frame channel.
func (h *Hub) Unsubscribe(conn *Connection) {
	h.mu.Lock()
	_, present := h.conns[conn.id]
	delete(h.conns, conn.id)
	h.mu.Unlock()

	if present {
		close(conn.frames)
		h.logger.Info("event-stream disconnected", zap.String("connection_id", conn.id))
	}
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// broadcast renders the event once per connection, using each connection's
// captured context, and drops subscribers that cannot keep up rather than
// blocking the publisher. Sends happen under the read lock while Unsubscribe
// closes frame channels under the write lock, so a send never races a close.
func (h *Hub) broadcast(_ context.Context, event events.Event) error {
	var slow []*Connection

	h.mu.RLock()
	for _, conn := range h.conns {
		frame, err := renderFrame(event, conn.rc)
		if err != nil {
			h.logger.Warn("render event frame", zap.Error(err))
			continue
		}
		select {
		case conn.frames <- frame:
		default:
			slow = append(slow, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range slow {
		h.logger.Warn("event-stream subscriber too slow, dropping",
			zap.String("connection_id", conn.id))
		h.Unsubscribe(conn)
	}
	return nil
}

// envelope is the JSON body of one SSE data line. Timestamp and locale are
// rendered per connection from its captured request context.
type envelope struct {
	ID        string           `json:"id"`
	Type      events.EventType `json:"type"`
	Actor     events.Actor     `json:"actor"`
	Timestamp string           `json:"timestamp"`
	Locale    string           `json:"locale"`
	Payload   interface{}      `json:"payload"`
}

func renderFrame(event events.Event, rc *reqctx.RequestContext) ([]byte, error) {
	body, err := json.Marshal(envelope{
		ID:        event.ID,
		Type:      event.Type,
		Actor:     event.Actor,
		Timestamp: event.Timestamp.In(rc.TimeZone()).Format(time.RFC3339Nano),
		Locale:    rc.Locale().String(),
		Payload:   event.Payload,
	})
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Type, body)), nil
}

// Heartbeat is the comment frame written periodically to keep intermediaries
// from idling out the connection.
var Heartbeat = []byte(": heartbeat\n\n")
