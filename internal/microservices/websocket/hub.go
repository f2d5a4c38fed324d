// Package websocket pushes notification feed entries to connected users.
//
// Each connection runs a read and a write goroutine. They talk to the Hub only
// through channels, and the Hub goroutine owns the client index.
package websocket

import (
	"context"
	"sync/atomic"

	"unionhub/internal/metrics"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/pkg/logger"
)

const publishBuffer = 256

type delivery struct {
	userID string
	event  *Event
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	publish    chan delivery
	done       chan struct{}

	clients   map[string]map[*Client]struct{} // userID -> open connections
	connected atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan delivery, publishBuffer),
		done:       make(chan struct{}),
		clients:    make(map[string]map[*Client]struct{}),
	}
}

// Run serves register, unregister and publish requests until ctx is cancelled,
// then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					h.drop(c)
				}
			}
			return

		case c := <-h.register:
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			h.connected.Add(1)
			metrics.WSConnections.Inc()
			h.send(c, NewSystemEvent("connected"))

		case c := <-h.unregister:
			h.drop(c)

		case d := <-h.publish:
			for c := range h.clients[d.userID] {
				h.send(c, d.event)
			}
			if d.event.Type == TypeNotification {
				metrics.NotificationsPushed.Inc()
			}
		}
	}
}

// PublishNotification queues n for every open connection of userID. It never
// blocks: when the queue is full the push is dropped and the entry is still
// available from the notification list endpoint.
func (h *Hub) PublishNotification(userID string, n dto.NotificationResponse) {
	select {
	case h.publish <- delivery{userID: userID, event: NewNotificationEvent(n)}:
	default:
		logger.Warn().Str("user_id", userID).Msg("notification push queue full, dropping")
	}
}

// Connected returns the number of open connections.
func (h *Hub) Connected() int {
	return int(h.connected.Load())
}

// send must only be called from Run. A client whose buffer is full is disconnected.
func (h *Hub) send(c *Client, e *Event) {
	data, err := e.ToJSON()
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode websocket event")
		return
	}
	select {
	case c.send <- data:
	default:
		logger.Warn().Str("user_id", c.userID).Msg("websocket client too slow, disconnecting")
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
	h.connected.Add(-1)
	metrics.WSConnections.Dec()
}

func (h *Hub) enter(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
