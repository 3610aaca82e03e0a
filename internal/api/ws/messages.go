package ws

// inboundMessage is one client frame; Type selects the handler and the other
// fields are populated per message type.
type inboundMessage struct {
	Type   string   `json:"type"`
	SetupA []string `json:"setupA,omitempty"`
	SetupB []string `json:"setupB,omitempty"`
	Move   string   `json:"move,omitempty"`
}

// Event is one server frame, sent to a single connection or fanned out to a
// whole room. Field names follow the client protocol.
type Event struct {
	Type          string     `json:"type"`
	GameID        string     `json:"game_id,omitempty"`
	Player        string     `json:"player,omitempty"`
	Board         [][]string `json:"board,omitempty"`
	CurrentPlayer string     `json:"current_player,omitempty"`
	Move          string     `json:"move,omitempty"`
	Message       string     `json:"message,omitempty"`
}

const (
	eventGameCreated        = "game_created"
	eventPlayerAssigned     = "player_assigned"
	eventGameInitialized    = "game_initialized"
	eventMoveMade           = "move_made"
	eventPlayerDisconnected = "player_disconnected"
	eventError              = "error"
)

func errorEvent(message string) Event {
	return Event{Type: eventError, Message: message}
}
