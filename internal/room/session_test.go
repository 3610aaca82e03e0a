package room

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hero-chess/internal/game"
)

var testSetup = []string{"P1", "P2", "P3", "P4", "P5"}

func TestAssignRole(t *testing.T) {
	t.Run("assigns A, B, then spectators by arrival order", func(t *testing.T) {
		s := NewSession()

		assert.Equal(t, game.PlayerA, s.AssignRole("conn-1"))
		assert.Equal(t, game.PlayerB, s.AssignRole("conn-2"))
		assert.Equal(t, RoleSpectator, s.AssignRole("conn-3"))
		assert.Equal(t, RoleSpectator, s.AssignRole("conn-4"))
	})

	t.Run("a vacated seat is not handed back", func(t *testing.T) {
		s := NewSession()
		s.AssignRole("conn-1")
		s.ReleaseRole("conn-1")

		assert.Equal(t, game.PlayerB, s.AssignRole("conn-2"))
	})

	t.Run("unassigned connections have unknown role", func(t *testing.T) {
		s := NewSession()

		assert.Equal(t, RoleUnknown, s.Role("conn-1"))
	})
}

func TestSessionInitialize(t *testing.T) {
	t.Run("publishes the starting position", func(t *testing.T) {
		s := NewSession()

		var snap Snapshot
		err := s.Initialize(testSetup, testSetup, func(sn Snapshot) { snap = sn })

		require.NoError(t, err)
		assert.Equal(t, game.PlayerA, snap.CurrentPlayer)
		assert.Equal(t, "A-P1", snap.Board[0][0])
		assert.Equal(t, "B-P5", snap.Board[4][4])
	})

	t.Run("rejects re-initialization and publishes nothing", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.Initialize(testSetup, testSetup, nil))

		published := false
		err := s.Initialize(testSetup, testSetup, func(Snapshot) { published = true })

		assert.ErrorIs(t, err, game.ErrAlreadyInitialized)
		assert.False(t, published)
	})
}

func TestSessionMove(t *testing.T) {
	newInitializedSession := func(t *testing.T) *Session {
		t.Helper()
		s := NewSession()
		s.AssignRole("a")
		s.AssignRole("b")
		require.NoError(t, s.Initialize(testSetup, testSetup, nil))
		return s
	}

	t.Run("rejects a move from the non-current player", func(t *testing.T) {
		s := newInitializedSession(t)

		_, err := s.Move("b", "P1:F", nil)

		assert.ErrorIs(t, err, ErrNotYourTurn)
	})

	t.Run("rejects a move from a spectator", func(t *testing.T) {
		s := newInitializedSession(t)
		s.AssignRole("watcher")

		_, err := s.Move("watcher", "P1:F", nil)

		assert.ErrorIs(t, err, ErrNotYourTurn)
	})

	t.Run("rejects a move from an unassigned connection", func(t *testing.T) {
		s := newInitializedSession(t)

		_, err := s.Move("stranger", "P1:F", nil)

		assert.ErrorIs(t, err, ErrNotYourTurn)
	})

	t.Run("applies a legal move and publishes the result", func(t *testing.T) {
		s := newInitializedSession(t)

		var snap Snapshot
		msg, err := s.Move("a", "P1:F", func(sn Snapshot) { snap = sn })

		require.NoError(t, err)
		assert.Equal(t, "Move successful", msg)
		assert.Equal(t, game.PlayerB, snap.CurrentPlayer)
		assert.Empty(t, snap.Board[0][0])
		assert.Equal(t, "A-P1", snap.Board[1][0])
	})

	t.Run("surfaces rules errors unchanged and publishes nothing", func(t *testing.T) {
		s := newInitializedSession(t)

		published := false
		_, err := s.Move("a", "P9:F", func(Snapshot) { published = true })

		assert.ErrorIs(t, err, game.ErrInvalidCharacter)
		assert.False(t, published)
	})
}

func TestSessionSerialization(t *testing.T) {
	// Hammer one session from many goroutines. The per-session lock must keep
	// the published snapshots in applied order: every published current_player
	// alternates, because each successful move flips the turn.
	s := NewSession()
	s.AssignRole("a")
	s.AssignRole("b")
	require.NoError(t, s.Initialize(testSetup, testSetup, nil))

	var publishMu sync.Mutex
	var turns []string

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		conn := "a"
		if i%2 == 1 {
			conn = "b"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, _ = s.Move(conn, fmt.Sprintf("P%d:F", j%5+1), func(snap Snapshot) {
					publishMu.Lock()
					turns = append(turns, snap.CurrentPlayer)
					publishMu.Unlock()
				})
			}
		}()
	}
	wg.Wait()

	for i := 1; i < len(turns); i++ {
		assert.NotEqual(t, turns[i-1], turns[i], "snapshots must alternate turns")
	}
}
