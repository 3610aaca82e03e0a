package game

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors carry the exact client-facing text of the wire protocol.
var (
	ErrNotYourTurn        = errors.New("Not your turn")
	ErrInvalidCharacter   = errors.New("Invalid character")
	ErrInvalidDirection   = errors.New("Invalid direction")
	ErrInvalidMove        = errors.New("Invalid move")
	ErrGameFinished       = errors.New("Game is already over")
	ErrAlreadyInitialized = errors.New("Game is already initialized")
	ErrInvalidSetup       = errors.New("setup must contain exactly 5 character names per player")
)

// GameState is the authoritative state of one match: the board, whose turn it
// is, and the live-character index. It has no locking of its own; callers
// serialize access per room.
type GameState struct {
	board         [BoardSize][BoardSize]*Character
	currentPlayer string
	characters    map[string]*Character
	status        string
	winner        string
}

func NewGame() *GameState {
	return &GameState{
		currentPlayer: PlayerA,
		characters:    make(map[string]*Character),
		status:        StatusWaiting,
	}
}

// Initialize places setupA on row 0 (player A's home rank) and setupB on
// row 4, left to right. A game may only be initialized once.
func (g *GameState) Initialize(setupA, setupB []string) error {
	if g.status != StatusWaiting {
		return ErrAlreadyInitialized
	}

	if len(setupA) != BoardSize || len(setupB) != BoardSize {
		return ErrInvalidSetup
	}

	for i, name := range setupA {
		c := &Character{Name: name, Type: TypeForName(name), Player: PlayerA}
		g.board[0][i] = c
		g.characters[c.Key()] = c
	}

	for i, name := range setupB {
		c := &Character{Name: name, Type: TypeForName(name), Player: PlayerB}
		g.board[BoardSize-1][i] = c
		g.characters[c.Key()] = c
	}

	g.status = StatusOngoing
	return nil
}

func (g *GameState) CurrentPlayer() string {
	return g.currentPlayer
}

func (g *GameState) Status() string {
	return g.status
}

func (g *GameState) Winner() string {
	return g.winner
}

// Character looks up a live character by its "{player}-{name}" key. Captured
// characters are no longer reachable.
func (g *GameState) Character(key string) (*Character, bool) {
	c, ok := g.characters[key]
	return c, ok
}

// CharacterPosition scans the board for the character's cell. Returns
// (-1, -1) when the character is not on the board.
func (g *GameState) CharacterPosition(c *Character) (int, int) {
	for row := range g.board {
		for col := range g.board[row] {
			if g.board[row][col] == c {
				return row, col
			}
		}
	}
	return -1, -1
}

// targetCell computes the cell a move would land on. Both validation and
// application go through here so the delta arithmetic exists once. The second
// return is false when the direction is not legal for the character's type or
// the character is not on the board.
func (g *GameState) targetCell(c *Character, dir Direction) (int, int, bool) {
	row, col := g.CharacterPosition(c)
	if row == -1 {
		return 0, 0, false
	}

	d, ok := moveDeltas[c.Type][dir]
	if !ok {
		return 0, 0, false
	}

	// Forward for A is increasing row, for B decreasing.
	if c.Player == PlayerB {
		d.Row = -d.Row
	}

	return row + d.Row, col + d.Col, true
}

// IsValidMove reports whether the character can move in the given direction:
// the target must be on the board and not held by a friendly character. An
// opposing character on the target is legal (a capture).
func (g *GameState) IsValidMove(c *Character, dir Direction) bool {
	row, col, ok := g.targetCell(c, dir)
	if !ok {
		return false
	}

	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return false
	}

	if occupant := g.board[row][col]; occupant != nil && occupant.Player == c.Player {
		return false
	}

	return true
}

// ApplyMove re-validates and applies the move, removing a captured opposing
// character from the live index. Returns false without mutating anything when
// the move is invalid.
func (g *GameState) ApplyMove(c *Character, dir Direction) bool {
	if !g.IsValidMove(c, dir) {
		return false
	}

	oldRow, oldCol := g.CharacterPosition(c)
	newRow, newCol, _ := g.targetCell(c, dir)

	if occupant := g.board[newRow][newCol]; occupant != nil {
		delete(g.characters, occupant.Key())
	}

	g.board[oldRow][oldCol] = nil
	g.board[newRow][newCol] = c
	return true
}

// SwitchTurn toggles the current player. Called only after a successful move.
func (g *GameState) SwitchTurn() {
	if g.currentPlayer == PlayerA {
		g.currentPlayer = PlayerB
	} else {
		g.currentPlayer = PlayerA
	}
}

// CheckWinner counts live characters per side by scanning the board. A side
// with none left loses; with both sides alive there is no winner yet.
func (g *GameState) CheckWinner() string {
	counts := map[string]int{PlayerA: 0, PlayerB: 0}
	for row := range g.board {
		for col := range g.board[row] {
			if c := g.board[row][col]; c != nil {
				counts[c.Player]++
			}
		}
	}

	switch {
	case counts[PlayerA] == 0 && counts[PlayerB] == 0:
		return ""
	case counts[PlayerA] == 0:
		return PlayerB
	case counts[PlayerB] == 0:
		return PlayerA
	default:
		return ""
	}
}

// BoardState renders the board as a 5x5 grid of display strings, each cell
// either "{player}-{name}" or empty.
func (g *GameState) BoardState() [][]string {
	out := make([][]string, BoardSize)
	for row := range g.board {
		out[row] = make([]string, BoardSize)
		for col := range g.board[row] {
			if c := g.board[row][col]; c != nil {
				out[row][col] = c.Key()
			}
		}
	}
	return out
}

// ProcessMove is the move protocol adapter: it parses a "{name}:{direction}"
// command for the acting player, applies it, switches the turn and evaluates
// the win condition. On success the returned message is either a plain
// confirmation or the game-over announcement.
func ProcessMove(g *GameState, player, move string) (string, error) {
	if g.status == StatusFinished {
		return "", ErrGameFinished
	}

	if g.currentPlayer != player {
		return "", ErrNotYourTurn
	}

	name, code, ok := strings.Cut(move, ":")
	if !ok {
		return "", ErrInvalidMove
	}

	c, ok := g.Character(fmt.Sprintf("%s-%s", player, name))
	if !ok {
		return "", ErrInvalidCharacter
	}

	dir, ok := ParseDirection(code)
	if !ok {
		return "", ErrInvalidDirection
	}

	if !g.ApplyMove(c, dir) {
		return "", ErrInvalidMove
	}

	g.SwitchTurn()

	if winner := g.CheckWinner(); winner != "" {
		g.status = StatusFinished
		g.winner = winner
		return fmt.Sprintf("Game over. Player %s wins!", winner), nil
	}

	return "Move successful", nil
}
