package room

import (
	"errors"
	"sync"
	"time"

	"hero-chess/internal/game"
)

const (
	RoleSpectator = "spectator"
	RoleUnknown   = "unknown"
)

// ErrNotYourTurn is the session-level turn gate, distinct from the rules
// engine's own check: it fires before the move command is even parsed.
var ErrNotYourTurn = errors.New("It's not your turn")

// Snapshot is an immutable view of the game captured under the session lock,
// safe to hand to the broadcast fan-out after the lock is released.
type Snapshot struct {
	Board         [][]string
	CurrentPlayer string
	Winner        string
	Over          bool
}

// Session couples one game with the connection-to-role assignments of its
// room. All game and role state is guarded by a single mutex, so concurrent
// messages racing for the same room serialize here while rooms stay
// independent of each other.
type Session struct {
	mu    sync.Mutex
	game  *game.GameState
	roles map[string]string

	// seats counts every assignment ever made; a vacated A or B seat is not
	// handed back to later connections.
	seats      int
	createdAt  time.Time
	emptySince time.Time
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		game:       game.NewGame(),
		roles:      make(map[string]string),
		createdAt:  now,
		emptySince: now,
	}
}

// AssignRole gives the connection a role by arrival order: the first becomes
// player A, the second player B, everyone after that a spectator.
func (s *Session) AssignRole(connID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var role string
	switch s.seats {
	case 0:
		role = game.PlayerA
	case 1:
		role = game.PlayerB
	default:
		role = RoleSpectator
	}

	s.roles[connID] = role
	s.seats++
	s.emptySince = time.Time{}
	return role
}

// Role returns the connection's assigned role, or RoleUnknown when the
// connection never joined this room.
func (s *Session) Role(connID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if role, ok := s.roles[connID]; ok {
		return role
	}
	return RoleUnknown
}

// ReleaseRole forgets the connection's assignment. The seat itself is not
// reclaimed. When the last assignment goes away the session starts its
// empty-room clock for the registry reaper.
func (s *Session) ReleaseRole(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.roles, connID)
	if len(s.roles) == 0 {
		s.emptySince = time.Now()
	}
}

// Initialize sets up both home ranks. On success publish is invoked with the
// resulting snapshot while the lock is still held, so state-change events for
// one room are emitted in the order the mutations were applied.
func (s *Session) Initialize(setupA, setupB []string, publish func(Snapshot)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.Initialize(setupA, setupB); err != nil {
		return err
	}
	if publish != nil {
		publish(s.snapshot())
	}
	return nil
}

// Move applies a move command for the given connection. The role gate, the
// rules-engine call and the publish of the new snapshot all happen under one
// lock hold, so every participant observes moves in server-applied order.
func (s *Session) Move(connID, move string, publish func(Snapshot)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roles[connID] != s.game.CurrentPlayer() {
		return "", ErrNotYourTurn
	}

	msg, err := game.ProcessMove(s.game, s.roles[connID], move)
	if err != nil {
		return "", err
	}
	if publish != nil {
		publish(s.snapshot())
	}
	return msg, nil
}

// Empty reports whether the session has no role assignments and for how long.
func (s *Session) Empty() (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.roles) > 0 {
		return false, 0
	}
	return true, time.Since(s.emptySince)
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Board:         s.game.BoardState(),
		CurrentPlayer: s.game.CurrentPlayer(),
		Winner:        s.game.Winner(),
		Over:          s.game.Status() == game.StatusFinished,
	}
}
