// Package engine implements the rules of the falling-block game as a pure
// state-transition function. It owns the grid, the active piece, the piece
// supply, scoring, hold, lock delay and the pause/game-over lifecycle.
//
// Nothing in this package blocks, sleeps or touches a terminal: callers feed
// one Action at a time into Reduce and render the State they get back.
package engine

// Grid geometry and spawn rules.
const (
	GameWidth  = 10
	GameHeight = 20

	// LockDelayFrames is how many UpdateLockDelay calls a resting piece may
	// accrue before the next Tick forces it to lock.
	LockDelayFrames = 200

	// MaxLockDelayResets bounds how often sliding off a ledge restarts the
	// lock countdown for a single piece.
	MaxLockDelayResets = 10
)

// InitialPosition is where every new piece spawns, rotation 0.
var InitialPosition = Position{X: GameWidth/2 - 1, Y: 0}

// PieceType identifies one of the seven tetromino shapes.
type PieceType uint8

const (
	PieceI PieceType = iota + 1
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// AllPieceTypes returns the seven piece types in canonical order.
func AllPieceTypes() []PieceType {
	return []PieceType{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}
}

// String returns the single-letter name of the piece type.
func (t PieceType) String() string {
	switch t {
	case PieceI:
		return "I"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceO:
		return "O"
	case PieceS:
		return "S"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	default:
		return "?"
	}
}

// Valid reports whether t is one of the seven shapes.
func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceZ
}

// Shape is one rotation state of a piece: a boolean sub-grid indexed [row][col].
type Shape [][]bool

// shapes holds four rotation states per piece, clockwise order.
var shapes = map[PieceType][4]Shape{
	PieceI: {
		parseShape("....", "####", "....", "...."),
		parseShape("..#.", "..#.", "..#.", "..#."),
		parseShape("....", "....", "####", "...."),
		parseShape(".#..", ".#..", ".#..", ".#.."),
	},
	PieceJ: {
		parseShape("#..", "###", "..."),
		parseShape(".##", ".#.", ".#."),
		parseShape("...", "###", "..#"),
		parseShape(".#.", ".#.", "##."),
	},
	PieceL: {
		parseShape("..#", "###", "..."),
		parseShape(".#.", ".#.", ".##"),
		parseShape("...", "###", "#.."),
		parseShape("##.", ".#.", ".#."),
	},
	PieceO: {
		parseShape("##", "##"),
		parseShape("##", "##"),
		parseShape("##", "##"),
		parseShape("##", "##"),
	},
	PieceS: {
		parseShape(".##", "##.", "..."),
		parseShape(".#.", ".##", "..#"),
		parseShape("...", ".##", "##."),
		parseShape("#..", "##.", ".#."),
	},
	PieceT: {
		parseShape(".#.", "###", "..."),
		parseShape(".#.", ".##", ".#."),
		parseShape("...", "###", ".#."),
		parseShape(".#.", "##.", ".#."),
	},
	PieceZ: {
		parseShape("##.", ".##", "..."),
		parseShape("..#", ".##", ".#."),
		parseShape("...", "##.", ".##"),
		parseShape(".#.", "##.", "#.."),
	},
}

// parseShape builds a Shape from rows where '#' marks an occupied cell.
func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, c := range row {
			s[y][x] = c == '#'
		}
	}
	return s
}

// ShapeOf returns the shape of t at the given rotation (taken mod 4).
// The returned slice is shared and must not be modified.
func ShapeOf(t PieceType, rotation int) Shape {
	if !t.Valid() {
		return nil
	}
	return shapes[t][((rotation%4)+4)%4]
}
