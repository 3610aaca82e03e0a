package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Per-connection outbound queue. A client that falls this far behind is
	// dropped rather than allowed to stall the room's fan-out.
	sendQueueSize = 256
)

// Client is one WebSocket connection attached to a room. Outbound traffic
// goes through the buffered send channel so a slow consumer never blocks
// broadcasts to the rest of the room.
type Client struct {
	id     string
	gameID string
	conn   *websocket.Conn
	send   chan []byte

	// closed is guarded by the hub mutex; set once the send channel is closed
	// so late sender-only replies are discarded instead of panicking.
	closed bool
}

// readPump delivers inbound frames to the handler. It owns the connection's
// read side; when the peer goes away it triggers the disconnect path.
func (c *Client) readPump(h *Handler) {
	defer func() {
		h.onDisconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		h.dispatch(c, data)
	}
}

// writePump drains the send channel onto the wire, one frame per queued
// message, and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
