package engine

// Cell is a single grid square. The zero value is empty.
type Cell struct {
	Type  PieceType // zero when the cell is empty
	Ghost bool      // landing preview marker, never part of the stack
}

// Empty reports whether nothing, not even a ghost marker, is in the cell.
func (c Cell) Empty() bool {
	return c.Type == 0
}

// Occupied reports whether the cell holds a locked block.
// Ghost markers are passable and do not count.
func (c Cell) Occupied() bool {
	return c.Type != 0 && !c.Ghost
}

// Grid is the playing field, indexed [row][column] with row 0 at the top.
type Grid [][]Cell

// NewGrid returns an empty GameHeight x GameWidth grid.
func NewGrid() Grid {
	g := make(Grid, GameHeight)
	for y := range g {
		g[y] = make([]Cell, GameWidth)
	}
	return g
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = make([]Cell, len(row))
		copy(out[y], row)
	}
	return out
}

// At returns the cell at (x, y), or an empty cell when out of range.
func (g Grid) At(x, y int) Cell {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return Cell{}
	}
	return g[y][x]
}

// Position is a grid coordinate. For pieces it anchors the top-left corner
// of the shape's bounding box.
type Position struct {
	X, Y int
}

// Piece is a positioned, rotated tetromino.
type Piece struct {
	Type     PieceType
	Position Position
	Rotation int // 0-3, clockwise
	Ghost    bool
}

// Translate returns a copy of p moved by (dx, dy).
func (p Piece) Translate(dx, dy int) Piece {
	p.Position = Position{X: p.Position.X + dx, Y: p.Position.Y + dy}
	return p
}

// Rotate returns a copy of p rotated by delta quarter turns (positive is clockwise).
func (p Piece) Rotate(delta int) Piece {
	p.Rotation = ((p.Rotation+delta)%4 + 4) % 4
	return p
}

// IsPlacementValid reports whether every block of piece lies inside the
// column range, above the floor, and off locked cells. Blocks above row 0
// are only checked against the side walls.
func IsPlacementValid(grid Grid, piece Piece) bool {
	for _, c := range PieceBlocksCoordinates(piece) {
		if c.X < 0 || c.X >= GameWidth || c.Y >= GameHeight {
			return false
		}
		if c.Y >= 0 && grid.At(c.X, c.Y).Occupied() {
			return false
		}
	}
	return true
}

// PieceBlocksCoordinates expands the piece's shape into absolute grid coordinates.
func PieceBlocksCoordinates(piece Piece) []Position {
	shape := ShapeOf(piece.Type, piece.Rotation)
	coords := make([]Position, 0, 4)
	for y, row := range shape {
		for x, filled := range row {
			if filled {
				coords = append(coords, Position{X: x + piece.Position.X, Y: y + piece.Position.Y})
			}
		}
	}
	return coords
}

// AddPieceToBoard writes the piece into grid in place. It does not check
// validity, and blocks outside the grid are dropped. Callers own the grid
// they pass and are expected to clone shared grids first.
func AddPieceToBoard(grid Grid, piece Piece) {
	for _, c := range PieceBlocksCoordinates(piece) {
		if c.Y < 0 || c.Y >= len(grid) || c.X < 0 || c.X >= len(grid[c.Y]) {
			continue
		}
		grid[c.Y][c.X] = Cell{Type: piece.Type, Ghost: piece.Ghost}
	}
}

// LastValidPosition simulates a drop and returns where the piece would land.
// A piece that is already invalid keeps its current position.
func LastValidPosition(grid Grid, piece Piece) Position {
	if !IsPlacementValid(grid, piece) {
		return piece.Position
	}
	for IsPlacementValid(grid, piece.Translate(0, 1)) {
		piece = piece.Translate(0, 1)
	}
	return piece.Position
}

// CreateGhostPiece returns the landing preview of piece.
func CreateGhostPiece(grid Grid, piece Piece) Piece {
	ghost := piece
	ghost.Position = LastValidPosition(grid, piece)
	ghost.Ghost = true
	return ghost
}

// FullLines returns the indices of rows made entirely of locked cells,
// in ascending order.
func FullLines(grid Grid) []int {
	var lines []int
	for y, row := range grid {
		full := true
		for _, c := range row {
			if !c.Occupied() {
				full = false
				break
			}
		}
		if full {
			lines = append(lines, y)
		}
	}
	return lines
}

// RenderBoard overlays the ghost preview and the current piece on a copy of
// grid. The ghost is skipped while an animation is running.
func RenderBoard(grid Grid, current Piece, animation Animation) Grid {
	out := grid.Clone()
	if animation == AnimationNone {
		AddPieceToBoard(out, CreateGhostPiece(out, current))
	}
	AddPieceToBoard(out, current)
	return out
}

// removeFullLines drops every full row, shifting the rows above it down and
// inserting empty rows at the top. It returns the new grid and how many rows
// were removed. The input grid is not modified.
func removeFullLines(grid Grid) (Grid, int) {
	out := grid.Clone()
	removed := 0
	for y := 0; y < len(out); y++ {
		full := true
		for _, c := range out[y] {
			if !c.Occupied() {
				full = false
				break
			}
		}
		if !full {
			continue
		}
		copy(out[1:y+1], out[0:y])
		out[0] = make([]Cell, GameWidth)
		removed++
	}
	return out, removed
}

// rotationNudge shifts a rotated piece horizontally by the smallest amount
// that brings all of its blocks back inside the side walls.
func rotationNudge(piece Piece) Piece {
	coords := PieceBlocksCoordinates(piece)
	if len(coords) == 0 {
		return piece
	}
	minX, maxX := coords[0].X, coords[0].X
	for _, c := range coords[1:] {
		minX = min(minX, c.X)
		maxX = max(maxX, c.X)
	}
	switch {
	case minX < 0:
		return piece.Translate(-minX, 0)
	case maxX >= GameWidth:
		return piece.Translate(-(maxX - GameWidth + 1), 0)
	}
	return piece
}
