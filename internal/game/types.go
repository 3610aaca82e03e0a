package game

import "fmt"

const BoardSize = 5

const (
	PlayerA = "A"
	PlayerB = "B"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

type CharacterType string

const (
	Pawn  CharacterType = "P"
	Hero1 CharacterType = "H1"
	Hero2 CharacterType = "H2"
)

type Direction string

const (
	Left          Direction = "L"
	Right         Direction = "R"
	Forward       Direction = "F"
	Backward      Direction = "B"
	ForwardLeft   Direction = "FL"
	ForwardRight  Direction = "FR"
	BackwardLeft  Direction = "BL"
	BackwardRight Direction = "BR"
)

type Character struct {
	Name   string        `json:"name"`
	Type   CharacterType `json:"type"`
	Player string        `json:"player"`
}

// Key returns the "{player}-{name}" form used on the board and in the
// live-character index.
func (c *Character) Key() string {
	return fmt.Sprintf("%s-%s", c.Player, c.Name)
}

type delta struct {
	Row int // along the owner's forward axis, flipped for player B
	Col int
}

// moveDeltas maps character type and direction to a displacement. Directions
// missing for a type are illegal; lookups for them fail.
var moveDeltas = map[CharacterType]map[Direction]delta{
	Pawn: {
		Left:     {0, -1},
		Right:    {0, 1},
		Forward:  {1, 0},
		Backward: {-1, 0},
	},
	Hero1: {
		Left:     {0, -2},
		Right:    {0, 2},
		Forward:  {2, 0},
		Backward: {-2, 0},
	},
	Hero2: {
		ForwardLeft:   {2, -2},
		ForwardRight:  {2, 2},
		BackwardLeft:  {-2, -2},
		BackwardRight: {-2, 2},
	},
}

// ParseDirection maps a wire code to a Direction.
func ParseDirection(code string) (Direction, bool) {
	switch d := Direction(code); d {
	case Left, Right, Forward, Backward, ForwardLeft, ForwardRight, BackwardLeft, BackwardRight:
		return d, true
	default:
		return "", false
	}
}

// TypeForName derives the character type from the name prefix: "P..." is a
// pawn, "H1..." is a Hero1, anything else is a Hero2.
func TypeForName(name string) CharacterType {
	switch {
	case len(name) > 0 && name[0] == 'P':
		return Pawn
	case len(name) >= 2 && name[:2] == "H1":
		return Hero1
	default:
		return Hero2
	}
}
