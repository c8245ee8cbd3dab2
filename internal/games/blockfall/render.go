package blockfall

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

const (
	cellW    = 2 // screen columns per grid cell
	boardW   = engine.GameWidth*cellW + 2
	boardH   = engine.GameHeight + 2
	panelW   = 12
	panelGap = 2
)

// pieceColors gives each piece type its color.
var pieceColors = map[engine.PieceType]core.Color{
	engine.PieceI: core.ColorCyan,
	engine.PieceJ: core.ColorBlue,
	engine.PieceL: core.ColorOrange,
	engine.PieceO: core.ColorYellow,
	engine.PieceS: core.ColorGreen,
	engine.PieceT: core.ColorMagenta,
	engine.PieceZ: core.ColorRed,
}

// layout holds the screen positions of every panel for one frame.
type layout struct {
	title  int
	board  core.Rect
	hold   core.Rect
	stats  core.Rect
	next   core.Rect
	hintsY int
}

func (g *Game) layout() layout {
	originX := (g.screenW - minScreenW) / 2
	top := (g.screenH - minScreenH) / 2

	boardX := originX + panelW + panelGap
	sideX := boardX + boardW + panelGap
	queue := core.Clamp(g.cfg.Preview.QueueSize, 0, 6)

	return layout{
		title:  top,
		board:  core.NewRect(boardX, top+1, boardW, boardH),
		hold:   core.NewRect(originX, top+1, panelW, 6),
		stats:  core.NewRect(originX, top+8, panelW, 14),
		next:   core.NewRect(sideX, top+1, panelW, 2+3*queue),
		hintsY: top + 1 + boardH,
	}
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	g.markShown()

	l := g.layout()
	title := strings.ToUpper(fmt.Sprintf("blockfall · %s", g.mode))
	dst.DrawTextCentered(l.title, title, core.ColorBrightWhite)

	g.renderBoard(dst, l.board)
	g.renderHold(dst, l.hold)
	g.renderStats(dst, l.stats)
	g.renderNext(dst, l.next)
	g.renderHints(dst, l.hintsY)
	g.renderOverlays(dst, l.board)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorBrightRed)
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", minScreenW, minScreenH, g.screenW, g.screenH), core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

// boardView returns the grid to draw: locked cells plus the ghost and the
// active piece. During a hard drop the piece is shown sliding toward its
// landing row.
func (g *Game) boardView() engine.Grid {
	st := g.state
	current := st.Current
	if st.Animation == engine.AnimationDroppingPiece {
		landing := engine.LastValidPosition(st.Grid, current)
		dist := landing.Y - current.Position.Y
		current.Position.Y += int(float64(dist) * easeInQuad(g.animationProgress()))
	}
	return engine.RenderBoard(st.Grid, current, st.Animation)
}

func (g *Game) renderBoard(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)

	grid := g.boardView()
	clearing := g.state.Animation == engine.AnimationClearingLines
	fade := fadeGlyph(g.animationProgress())

	for y, row := range grid {
		flashing := clearing && slices.Contains(g.state.FullLines, y)
		for x, cell := range row {
			sx := r.X + 1 + x*cellW
			sy := r.Y + 1 + y
			switch {
			case flashing:
				drawCell(dst, sx, sy, fade, core.ColorBrightWhite)
			case cell.Empty():
				dst.SetColored(sx, sy, ' ', core.ColorDefault)
				dst.SetColored(sx+1, sy, '·', core.ColorDim)
			case cell.Ghost:
				drawCell(dst, sx, sy, '░', core.ColorDim)
			default:
				drawCell(dst, sx, sy, '█', pieceColors[cell.Type])
			}
		}
	}
}

// fadeGlyph picks the block shade for a clearing row.
func fadeGlyph(progress float64) rune {
	switch {
	case progress < 0.33:
		return '▓'
	case progress < 0.66:
		return '▒'
	default:
		return '░'
	}
}

func drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	dst.SetColored(x, y, r, c)
	dst.SetColored(x+1, y, r, c)
}

// drawMini draws a piece in spawn orientation centered in a w-wide area,
// using only the rows and columns its blocks occupy.
func drawMini(dst *core.Screen, x, y, w int, t engine.PieceType, c core.Color) {
	coords := engine.PieceBlocksCoordinates(engine.Piece{Type: t})
	if len(coords) == 0 {
		return
	}
	minX, maxX := coords[0].X, coords[0].X
	minY := coords[0].Y
	for _, p := range coords[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY = min(minY, p.Y)
	}
	offset := x + (w-(maxX-minX+1)*cellW)/2
	for _, p := range coords {
		drawCell(dst, offset+(p.X-minX)*cellW, y+p.Y-minY, '█', c)
	}
}

func panelTitle(dst *core.Screen, r core.Rect, title string) {
	dst.DrawBox(r, core.ColorGray)
	dst.DrawTextColored(r.X+2, r.Y, " "+title+" ", core.ColorBrightWhite)
}

func (g *Game) renderHold(dst *core.Screen, r core.Rect) {
	panelTitle(dst, r, "HOLD")
	if !g.state.HasHold() {
		return
	}
	color := pieceColors[g.state.Hold]
	if !g.state.CanHold {
		color = core.ColorGray
	}
	drawMini(dst, r.X+1, r.Y+2, r.W-2, g.state.Hold, color)
}

func (g *Game) renderNext(dst *core.Screen, r core.Rect) {
	if r.H <= 2 {
		return
	}
	panelTitle(dst, r, "NEXT")
	for i, t := range g.state.Next((r.H - 2) / 3) {
		drawMini(dst, r.X+1, r.Y+2+i*3, r.W-2, t, pieceColors[t])
	}
}

func (g *Game) renderStats(dst *core.Screen, r core.Rect) {
	level := g.state.Level()
	rows := [][2]string{
		{"SCORE", fmt.Sprintf("%d", g.state.Score)},
		{"LINES", g.linesLabel()},
		{"LEVEL", fmt.Sprintf("%d", level)},
		{"SPEED", fmt.Sprintf("%dms", engine.LevelSpeed(level))},
	}
	if g.mode == ModeSprint {
		rows = append(rows, [2]string{"TIME", formatClock(g.elapsed)})
	}

	y := r.Y
	for _, row := range rows {
		if y+1 >= r.Bottom() {
			break
		}
		dst.DrawTextColored(r.X+1, y, row[0], core.ColorGray)
		dst.DrawTextColored(r.X+1, y+1, row[1], core.ColorBrightWhite)
		y += 3
	}
}

func (g *Game) linesLabel() string {
	if g.mode == ModeSprint {
		return fmt.Sprintf("%d/%d", g.state.LinesCleared, g.cfg.Sprint.Lines)
	}
	return fmt.Sprintf("%d", g.state.LinesCleared)
}

func (g *Game) renderHints(dst *core.Screen, y int) {
	s := g.state.Settings
	hints := fmt.Sprintf("%s/%s move  %s/%s rotate  %s drop  %s hold  p pause  s keys",
		KeyLabel(s.MoveLeft), KeyLabel(s.MoveRight),
		KeyLabel(s.RotateLeft), KeyLabel(s.RotateRight),
		KeyLabel(s.HardDrop), KeyLabel(s.HoldPiece))
	dst.DrawTextCentered(y, hints, core.ColorGray)
}

// KeyLabel returns a short printable name for a key binding.
func KeyLabel(key string) string {
	switch key {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "":
		return "-"
	}
	return key
}

func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	switch {
	case g.finished:
		drawOverlay(dst, board, core.ColorBrightGreen,
			"SPRINT CLEAR",
			fmt.Sprintf("Time %s", formatClock(g.elapsed)),
			fmt.Sprintf("Score %d", g.state.Score),
			"R to play again")
	case g.state.Status == engine.StatusGameOver:
		drawOverlay(dst, board, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score %d", g.state.Score),
			fmt.Sprintf("Lines %d", g.state.LinesCleared),
			"R to restart")
	case g.state.Status == engine.StatusPaused && !g.state.SettingsModalOpen:
		drawOverlay(dst, board, core.ColorBrightYellow, "PAUSED", "P to resume")
	}
}

// drawOverlay draws a boxed message centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, c core.Color, lines ...string) {
	w := 0
	for _, line := range lines {
		w = max(w, len([]rune(line)))
	}
	box := core.Centered(area.W, area.H, w+4, len(lines)+2)
	box.X += area.X
	box.Y += area.Y

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = c
		}
		x := box.X + (box.W-len([]rune(line)))/2
		dst.DrawTextColored(x, box.Y+1+i, line, color)
	}
}

// formatClock renders d as m:ss.cc.
func formatClock(d time.Duration) string {
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, (cs/100)%60, cs%100)
}
