package blockfall

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/engine"
)

// Snapshot is a copy of the game at one tick, for replays and tests.
type Snapshot struct {
	Tick      uint64
	Mode      Mode
	Status    engine.Status
	Animation engine.Animation
	Score     int
	Lines     int
	Level     int
	Elapsed   time.Duration
	Finished  bool
	Grid      engine.Grid
	Current   engine.Piece
	Hold      engine.PieceType
	CanHold   bool
	Queue     []engine.PieceType
}

// Snapshot captures the current state. The returned grid and queue are
// copies.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		Mode:      g.mode,
		Status:    g.state.Status,
		Animation: g.state.Animation,
		Score:     g.state.Score,
		Lines:     g.state.LinesCleared,
		Level:     g.state.Level(),
		Elapsed:   g.elapsed,
		Finished:  g.finished,
		Grid:      g.state.Grid.Clone(),
		Current:   g.state.Current,
		Hold:      g.state.Hold,
		CanHold:   g.state.CanHold,
		Queue:     append([]engine.PieceType(nil), g.state.Queue...),
	}
}
