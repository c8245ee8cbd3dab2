package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/blockfall/internal/core"
)

// swatch describes how cells of one core.Color are drawn.
type swatch struct {
	ansi  string
	bold  bool
	faint bool
}

// palette covers every core.Color. Piece colors use the classic guideline
// hues; ColorBrightWhite is bold so flashing rows stand out.
var palette = map[core.Color]swatch{
	core.ColorRed:           {ansi: "1"},
	core.ColorGreen:         {ansi: "2"},
	core.ColorYellow:        {ansi: "3"},
	core.ColorBlue:          {ansi: "4"},
	core.ColorMagenta:       {ansi: "5"},
	core.ColorCyan:          {ansi: "6"},
	core.ColorWhite:         {ansi: "7"},
	core.ColorBrightRed:     {ansi: "9"},
	core.ColorBrightGreen:   {ansi: "10"},
	core.ColorBrightYellow:  {ansi: "11"},
	core.ColorBrightBlue:    {ansi: "12"},
	core.ColorBrightMagenta: {ansi: "13"},
	core.ColorBrightCyan:    {ansi: "14"},
	core.ColorBrightWhite:   {ansi: "15", bold: true},
	core.ColorOrange:        {ansi: "208"},
	core.ColorGray:          {ansi: "245"},
	core.ColorDim:           {ansi: "240", faint: true},
}

// ScreenRenderer turns core.Screen buffers into terminal output. Its styles
// are bound to one lipgloss renderer, so every SSH session is drawn with
// its own client's color profile.
type ScreenRenderer struct {
	styles map[core.Color]lipgloss.Style
}

// NewScreenRenderer builds the styles of r. Nil means the process's
// default renderer.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := make(map[core.Color]lipgloss.Style, len(palette))
	for c, sw := range palette {
		styles[c] = r.NewStyle().
			Foreground(lipgloss.Color(sw.ansi)).
			Bold(sw.bold).
			Faint(sw.faint)
	}
	return &ScreenRenderer{styles: styles}
}

// Render draws s row by row. Each stretch of same-colored cells becomes a
// single styled run; ColorDefault and unknown colors are written bare.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	w, h := s.Width(), s.Height()

	var sb strings.Builder
	sb.Grow(w*h*2 + h)
	run := make([]rune, 0, w)

	for y := range h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; {
			color := s.GetCell(x, y).Color
			run = run[:0]
			for ; x < w && s.GetCell(x, y).Color == color; x++ {
				run = append(run, s.GetCell(x, y).Rune)
			}

			if style, ok := sr.styles[color]; ok {
				sb.WriteString(style.Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
		}
	}
	return sb.String()
}
