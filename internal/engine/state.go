package engine

import "math/rand/v2"

// Status is the lifecycle phase of a game.
type Status int

const (
	StatusPlaying Status = iota
	StatusPaused
	StatusGameOver
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Animation is the blocking visual effect currently in flight.
// While one is armed, gameplay actions are ignored until the matching
// completion action arrives.
type Animation int

const (
	AnimationNone Animation = iota
	AnimationClearingLines
	AnimationDroppingPiece
)

// String returns a human-readable name for the animation.
func (a Animation) String() string {
	switch a {
	case AnimationNone:
		return "none"
	case AnimationClearingLines:
		return "clearing_lines"
	case AnimationDroppingPiece:
		return "dropping_piece"
	default:
		return "unknown"
	}
}

// Settings maps each control to the key that triggers it. Keys are opaque
// strings owned by the input layer; the engine stores them verbatim.
type Settings struct {
	MoveDown    string `yaml:"move_down"`
	MoveLeft    string `yaml:"move_left"`
	MoveRight   string `yaml:"move_right"`
	RotateLeft  string `yaml:"rotate_left"`
	RotateRight string `yaml:"rotate_right"`
	HardDrop    string `yaml:"hard_drop"`
	HoldPiece   string `yaml:"hold_piece"`
}

// DefaultSettings returns the stock key bindings.
func DefaultSettings() Settings {
	return Settings{
		MoveDown:    "down",
		MoveLeft:    "left",
		MoveRight:   "right",
		RotateLeft:  "z",
		RotateRight: "up",
		HardDrop:    " ",
		HoldPiece:   "c",
	}
}

// State is an immutable snapshot of a game. Reduce never modifies the State
// it is given; any grid or queue that changes is copied first.
type State struct {
	Status Status
	Grid   Grid

	Current Piece
	Hold    PieceType // zero when the hold slot is empty
	CanHold bool
	Queue   []PieceType

	Score        int
	LinesCleared int
	FullLines    []int // rows waiting for ClearFullLines
	Animation    Animation

	LockDelayCounter int
	LockDelayResets  int

	Settings          Settings
	SettingsModalOpen bool

	rng rand.PCG
}

// Init returns a fresh game seeded with seed and default key bindings.
func Init(seed uint64) State {
	return InitWithSettings(seed, DefaultSettings())
}

// InitWithSettings returns a fresh game seeded with seed.
func InitWithSettings(seed uint64, settings Settings) State {
	return newGame(*rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), settings)
}

// newGame builds a fresh Playing state that continues the given random stream.
func newGame(src rand.PCG, settings Settings) State {
	s := State{
		Status:   StatusPlaying,
		Grid:     NewGrid(),
		CanHold:  true,
		Settings: settings,
		rng:      src,
	}
	s.Current, s.Queue = DrawNext(NewQueue(s.random()), s.random())
	return s
}

// random returns a generator that advances s's own random stream.
func (s *State) random() *rand.Rand {
	return rand.New(&s.rng)
}

// HasHold reports whether a piece type is stashed in the hold slot.
func (s State) HasHold() bool {
	return s.Hold != 0
}

// Level is the current level derived from total lines cleared.
func (s State) Level() int {
	return Level(s.LinesCleared)
}

// Next returns up to n upcoming piece types.
func (s State) Next(n int) []PieceType {
	return Preview(s.Queue, n)
}

// Board returns the grid with the ghost and current piece drawn on top.
func (s State) Board() Grid {
	return RenderBoard(s.Grid, s.Current, s.Animation)
}

// canAct reports whether gameplay actions are accepted.
func (s State) canAct() bool {
	return s.Status == StatusPlaying && s.Animation == AnimationNone
}
