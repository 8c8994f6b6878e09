// Package ws provides the websocket relay hub that pushes order and driver
// location events to connected viewers.
package ws

import (
	"context"
	"encoding/json"

	"foodcourt/internal/core/application/events"

	"github.com/labstack/gommon/log"
)

// envelope is the wire frame sent to viewers.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub maintains the set of connected viewers and fans events out to them.
// Delivery is at-most-once with no history; a viewer that cannot keep up is
// disconnected rather than allowed to block the rest.
//
// A single Hub instance is created at startup and handed to the components
// that need it. Run must be started before the first Publish.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub creates a relay hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes registrations and broadcasts until the context is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow viewer; drop it instead of blocking the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Publish implements events.Publisher. The event is framed and queued for
// broadcast; if the queue is full the event is dropped.
func (h *Hub) Publish(event events.Event) {
	frame, err := json.Marshal(envelope{
		Event: event.EventName(),
		Data:  event.EventPayload(),
	})
	if err != nil {
		log.Errorf("ws: marshal %s event: %v", event.EventName(), err)
		return
	}

	select {
	case h.broadcast <- frame:
	default:
		log.Warnf("ws: broadcast queue full, dropping %s event", event.EventName())
	}
}
