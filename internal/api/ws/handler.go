package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"hero-chess/internal/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Handler owns the message protocol: it upgrades connections, dispatches
// inbound frames by type and drives the registry, sessions and hub.
type Handler struct {
	registry *room.Registry
	hub      *Hub
	logger   *slog.Logger

	handlers map[string]func(c *Client, msg inboundMessage)
}

func NewHandler(registry *room.Registry, hub *Hub, logger *slog.Logger) *Handler {
	h := &Handler{
		registry: registry,
		hub:      hub,
		logger:   logger.With("component", "ws"),
		handlers: make(map[string]func(*Client, inboundMessage)),
	}

	h.handlers["create_game"] = h.handleCreateGame
	h.handlers["join_game"] = h.handleJoinGame
	h.handlers["initialize_game"] = h.handleInitializeGame
	h.handlers["make_move"] = h.handleMakeMove

	return h
}

// ServeWS upgrades the request and runs the connection's pumps. The room id
// is the :game_id path parameter.
func (h *Handler) ServeWS(c *gin.Context) {
	gameID := c.Param("game_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "game_id", gameID, "error", err)
		return
	}

	client := &Client{
		id:     uuid.NewString(),
		gameID: gameID,
		conn:   conn,
		send:   make(chan []byte, sendQueueSize),
	}

	h.hub.Attach(client)

	go client.writePump()
	go client.readPump(h)
}

// dispatch routes one inbound frame. Errors never close the connection: they
// are reported to the sender and the loop keeps reading.
func (h *Handler) dispatch(c *Client, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while processing message", "game_id", c.gameID, "conn_id", c.id, "panic", r)
			h.hub.Send(c, errorEvent("An unexpected error occurred"))
		}
	}()

	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.logger.Error("invalid JSON received", "game_id", c.gameID, "error", err)
		h.hub.Send(c, errorEvent("Invalid JSON"))
		return
	}

	handler, ok := h.handlers[msg.Type]
	if !ok {
		h.logger.Warn("unknown message type", "game_id", c.gameID, "type", msg.Type)
		return
	}

	handler(c, msg)
}

func (h *Handler) handleCreateGame(c *Client, _ inboundMessage) {
	session, err := h.registry.Create(c.gameID)
	if err != nil {
		h.hub.Send(c, errorEvent(err.Error()))
		return
	}

	role := session.AssignRole(c.id)
	h.hub.Send(c, Event{Type: eventGameCreated, GameID: c.gameID})
	h.hub.Send(c, Event{Type: eventPlayerAssigned, Player: role})
}

func (h *Handler) handleJoinGame(c *Client, _ inboundMessage) {
	session, ok := h.registry.Get(c.gameID)
	if !ok {
		h.hub.Send(c, errorEvent(room.ErrGameNotFound.Error()))
		return
	}

	role := session.AssignRole(c.id)
	h.hub.Send(c, Event{Type: eventPlayerAssigned, Player: role})
}

func (h *Handler) handleInitializeGame(c *Client, msg inboundMessage) {
	session, ok := h.registry.Get(c.gameID)
	if !ok {
		h.hub.Send(c, errorEvent(room.ErrGameNotFound.Error()))
		return
	}

	err := session.Initialize(msg.SetupA, msg.SetupB, func(snap room.Snapshot) {
		h.hub.Broadcast(c.gameID, Event{
			Type:          eventGameInitialized,
			GameID:        c.gameID,
			Board:         snap.Board,
			CurrentPlayer: snap.CurrentPlayer,
		})
	})
	if err != nil {
		h.hub.Send(c, errorEvent("Error initializing game: "+err.Error()))
		return
	}

	h.logger.Info("game initialized", "game_id", c.gameID)
}

func (h *Handler) handleMakeMove(c *Client, msg inboundMessage) {
	session, ok := h.registry.Get(c.gameID)
	if !ok {
		h.hub.Send(c, errorEvent(room.ErrGameNotFound.Error()))
		return
	}

	result, err := session.Move(c.id, msg.Move, func(snap room.Snapshot) {
		h.hub.Broadcast(c.gameID, Event{
			Type:          eventMoveMade,
			GameID:        c.gameID,
			Board:         snap.Board,
			CurrentPlayer: snap.CurrentPlayer,
			Move:          msg.Move,
		})
	})
	if err != nil {
		h.hub.Send(c, errorEvent(err.Error()))
		return
	}

	h.logger.Info("move applied", "game_id", c.gameID, "move", msg.Move, "result", result)
}

// onDisconnect prunes the connection and tells the rest of the room which
// role left. The session itself stays for the registry reaper.
func (h *Handler) onDisconnect(c *Client) {
	h.hub.Detach(c)

	role := room.RoleUnknown
	if session, ok := h.registry.Get(c.gameID); ok {
		role = session.Role(c.id)
		session.ReleaseRole(c.id)
	}

	h.hub.Broadcast(c.gameID, Event{
		Type:   eventPlayerDisconnected,
		GameID: c.gameID,
		Player: role,
	})
}
