package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newQueuedClient(gameID, id string, queue int) *Client {
	return &Client{id: id, gameID: gameID, send: make(chan []byte, queue)}
}

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()

	select {
	case data := <-c.send:
		var ev Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	default:
		t.Fatalf("client %s has no queued event", c.id)
		return Event{}
	}
}

func TestHubBroadcast(t *testing.T) {
	t.Run("delivers to every client in the room", func(t *testing.T) {
		h := newTestHub()
		a := newQueuedClient("room-1", "a", 4)
		b := newQueuedClient("room-1", "b", 4)
		other := newQueuedClient("room-2", "c", 4)
		h.Attach(a)
		h.Attach(b)
		h.Attach(other)

		h.Broadcast("room-1", Event{Type: "move_made", Move: "P1:F"})

		assert.Equal(t, "P1:F", recvEvent(t, a).Move)
		assert.Equal(t, "P1:F", recvEvent(t, b).Move)
		assert.Empty(t, other.send, "other rooms receive nothing")
	})

	t.Run("clients observe broadcasts in the same order", func(t *testing.T) {
		h := newTestHub()
		a := newQueuedClient("room-1", "a", 4)
		b := newQueuedClient("room-1", "b", 4)
		h.Attach(a)
		h.Attach(b)

		h.Broadcast("room-1", Event{Type: "move_made", Move: "P1:F"})
		h.Broadcast("room-1", Event{Type: "move_made", Move: "P2:F"})

		for _, c := range []*Client{a, b} {
			assert.Equal(t, "P1:F", recvEvent(t, c).Move)
			assert.Equal(t, "P2:F", recvEvent(t, c).Move)
		}
	})

	t.Run("a full client is dropped without blocking the room", func(t *testing.T) {
		h := newTestHub()
		slow := newQueuedClient("room-1", "slow", 0)
		fast := newQueuedClient("room-1", "fast", 4)
		h.Attach(slow)
		h.Attach(fast)

		h.Broadcast("room-1", Event{Type: "move_made", Move: "P1:F"})

		assert.Equal(t, "P1:F", recvEvent(t, fast).Move)
		assert.True(t, slow.closed)

		// A later broadcast still reaches the survivor.
		h.Broadcast("room-1", Event{Type: "move_made", Move: "P2:F"})
		assert.Equal(t, "P2:F", recvEvent(t, fast).Move)
	})
}

func TestHubDetach(t *testing.T) {
	t.Run("detached clients stop receiving and detach is idempotent", func(t *testing.T) {
		h := newTestHub()
		a := newQueuedClient("room-1", "a", 4)
		b := newQueuedClient("room-1", "b", 4)
		h.Attach(a)
		h.Attach(b)

		h.Detach(a)
		h.Detach(a)

		h.Broadcast("room-1", Event{Type: "move_made", Move: "P1:F"})
		assert.Equal(t, "P1:F", recvEvent(t, b).Move)
	})

	t.Run("late sends to a detached client are discarded", func(t *testing.T) {
		h := newTestHub()
		a := newQueuedClient("room-1", "a", 4)
		h.Attach(a)
		h.Detach(a)

		h.Send(a, Event{Type: "error", Message: "late"})
	})
}
