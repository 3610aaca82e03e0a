package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub tracks which clients are attached to which room and fans events out to
// them. Clients are kept in attachment order so every participant observes
// broadcasts in the same sequence the server applied them.
type Hub struct {
	mu     sync.Mutex
	rooms  map[string][]*Client
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string][]*Client),
		logger: logger.With("component", "hub"),
	}
}

func (h *Hub) Attach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.rooms[c.gameID] = append(h.rooms[c.gameID], c)
	h.logger.Info("connection attached", "game_id", c.gameID, "conn_id", c.id, "total", len(h.rooms[c.gameID]))
}

// Detach removes the client from its room and closes its send queue. The
// room entry itself stays; registry teardown is the reaper's job.
func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *Client) {
	clients := h.rooms[c.gameID]
	for i, other := range clients {
		if other == c {
			h.rooms[c.gameID] = append(clients[:i], clients[i+1:]...)
			c.closed = true
			close(c.send)
			h.logger.Info("connection detached", "game_id", c.gameID, "conn_id", c.id, "remaining", len(h.rooms[c.gameID]))
			return
		}
	}
}

// Broadcast delivers the event to every client attached to the room, in
// attachment order. Enqueueing is non-blocking: a client whose queue is full
// is dropped so the rest of the room still receives the event.
func (h *Hub) Broadcast(gameID string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", "type", event.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range append([]*Client(nil), h.rooms[gameID]...) {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow connection", "game_id", gameID, "conn_id", c.id)
			h.detachLocked(c)
		}
	}
}

// Send delivers the event to a single client only.
func (h *Hub) Send(c *Client, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", "type", event.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		h.logger.Warn("dropping slow connection", "game_id", c.gameID, "conn_id", c.id)
		h.detachLocked(c)
	}
}
