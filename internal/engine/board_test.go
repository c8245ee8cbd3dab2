package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRow marks every column of row y as locked except the listed holes.
func fillRow(g Grid, y int, holes ...int) {
	skip := make(map[int]bool, len(holes))
	for _, x := range holes {
		skip[x] = true
	}
	for x := 0; x < GameWidth; x++ {
		if !skip[x] {
			g[y][x] = Cell{Type: PieceZ}
		}
	}
}

func TestIsPlacementValid(t *testing.T) {
	blocked := NewGrid()
	blocked[10][4] = Cell{Type: PieceT}
	ghosted := NewGrid()
	ghosted[10][4] = Cell{Type: PieceT, Ghost: true}

	tests := []struct {
		name  string
		grid  Grid
		piece Piece
		want  bool
	}{
		{"spawn on empty grid", NewGrid(), SpawnPiece(PieceT), true},
		{"past left wall", NewGrid(), Piece{Type: PieceO, Position: Position{X: -1, Y: 5}}, false},
		{"past right wall", NewGrid(), Piece{Type: PieceO, Position: Position{X: GameWidth - 1, Y: 5}}, false},
		{"touching right wall", NewGrid(), Piece{Type: PieceO, Position: Position{X: GameWidth - 2, Y: 5}}, true},
		{"on the floor", NewGrid(), Piece{Type: PieceO, Position: Position{X: 0, Y: GameHeight - 2}}, true},
		{"below the floor", NewGrid(), Piece{Type: PieceO, Position: Position{X: 0, Y: GameHeight - 1}}, false},
		{"above the top", NewGrid(), Piece{Type: PieceO, Position: Position{X: 3, Y: -1}}, true},
		{"overlapping locked cell", blocked, Piece{Type: PieceO, Position: Position{X: 4, Y: 9}}, false},
		{"overlapping ghost cell", ghosted, Piece{Type: PieceO, Position: Position{X: 4, Y: 9}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlacementValid(tt.grid, tt.piece); got != tt.want {
				t.Errorf("IsPlacementValid(%+v) = %v, want %v", tt.piece, got, tt.want)
			}
		})
	}
}

func TestPieceBlocksCoordinates(t *testing.T) {
	for _, pt := range AllPieceTypes() {
		for rot := 0; rot < 4; rot++ {
			coords := PieceBlocksCoordinates(Piece{Type: pt, Rotation: rot})
			assert.Len(t, coords, 4, "%s rotation %d", pt, rot)
		}
	}

	got := PieceBlocksCoordinates(Piece{Type: PieceO, Position: Position{X: 3, Y: 7}})
	assert.ElementsMatch(t, []Position{{3, 7}, {4, 7}, {3, 8}, {4, 8}}, got)
}

func TestLastValidPosition(t *testing.T) {
	g := NewGrid()
	piece := SpawnPiece(PieceO)

	landed := LastValidPosition(g, piece)
	require.Equal(t, Position{X: InitialPosition.X, Y: GameHeight - 2}, landed)

	resting := piece
	resting.Position = landed
	assert.Equal(t, landed, LastValidPosition(g, resting), "resting piece should stay put")

	g[12][4] = Cell{Type: PieceI}
	assert.Equal(t, 10, LastValidPosition(g, piece).Y)
}

func TestCreateGhostPiece(t *testing.T) {
	piece := SpawnPiece(PieceT)
	ghost := CreateGhostPiece(NewGrid(), piece)

	assert.True(t, ghost.Ghost)
	assert.Equal(t, piece.Type, ghost.Type)
	assert.Equal(t, piece.Rotation, ghost.Rotation)
	assert.Equal(t, GameHeight-2, ghost.Position.Y)
	assert.False(t, piece.Ghost, "source piece must not be marked")
}

func TestAddPieceToBoardSkipsOutOfRange(t *testing.T) {
	g := NewGrid()
	AddPieceToBoard(g, Piece{Type: PieceO, Position: Position{X: 0, Y: -1}})

	assert.Equal(t, Cell{Type: PieceO}, g[0][0])
	assert.Equal(t, Cell{Type: PieceO}, g[0][1])
	assert.True(t, g[1][0].Empty())
}

func TestFullLines(t *testing.T) {
	g := NewGrid()
	fillRow(g, 19)
	fillRow(g, 17)
	fillRow(g, 18, 3)
	assert.Equal(t, []int{17, 19}, FullLines(g))

	g[17][0] = Cell{Type: PieceZ, Ghost: true}
	assert.Equal(t, []int{19}, FullLines(g), "ghost cells do not complete a row")

	assert.Empty(t, FullLines(NewGrid()))
}

func TestRemoveFullLines(t *testing.T) {
	g := NewGrid()
	fillRow(g, 19)
	g[18][2] = Cell{Type: PieceL}
	before := g.Clone()

	out, removed := removeFullLines(g)

	require.Equal(t, 1, removed)
	require.Len(t, out, GameHeight)
	assert.Equal(t, Cell{Type: PieceL}, out[19][2], "row above should shift down")
	for x := 0; x < GameWidth; x++ {
		assert.True(t, out[0][x].Empty(), "new top row must be empty")
	}
	assert.Equal(t, before, g, "input grid must not change")
}

func TestRemoveFullLinesMultiple(t *testing.T) {
	g := NewGrid()
	fillRow(g, 19)
	fillRow(g, 17)
	g[18][0] = Cell{Type: PieceJ}
	g[16][9] = Cell{Type: PieceS}

	out, removed := removeFullLines(g)

	require.Equal(t, 2, removed)
	require.Len(t, out, GameHeight)
	assert.Equal(t, Cell{Type: PieceJ}, out[19][0])
	assert.Equal(t, Cell{Type: PieceS}, out[18][9])
	assert.Empty(t, FullLines(out))
}

func TestRenderBoard(t *testing.T) {
	g := NewGrid()
	piece := SpawnPiece(PieceO)

	board := RenderBoard(g, piece, AnimationNone)
	assert.Equal(t, Cell{Type: PieceO}, board[0][4])
	assert.Equal(t, Cell{Type: PieceO, Ghost: true}, board[GameHeight-1][4])
	assert.True(t, g[0][4].Empty(), "source grid must not change")

	board = RenderBoard(g, piece, AnimationDroppingPiece)
	assert.True(t, board[GameHeight-1][4].Empty(), "no ghost while animating")
}

func TestRotationNudge(t *testing.T) {
	// Vertical I hugging the left wall lies flat past it after a turn.
	piece := Piece{Type: PieceI, Position: Position{X: -2, Y: 0}, Rotation: 1}
	require.True(t, IsPlacementValid(NewGrid(), piece))

	nudged := rotationNudge(piece.Rotate(1))
	assert.Equal(t, 0, nudged.Position.X)
	assert.True(t, IsPlacementValid(NewGrid(), nudged))

	open := SpawnPiece(PieceT).Rotate(1)
	assert.Equal(t, open, rotationNudge(open), "pieces inside the walls are left alone")
}

func TestShapeOf(t *testing.T) {
	assert.Nil(t, ShapeOf(PieceType(0), 0))
	assert.Nil(t, ShapeOf(PieceZ+1, 0))
	assert.Equal(t, ShapeOf(PieceT, 1), ShapeOf(PieceT, -3))
	assert.NotNil(t, ShapeOf(PieceI, 0))
}
