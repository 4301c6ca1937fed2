package view

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pong/internal/engine"
)

// Color is a palette index; the terminal layer maps it to real styles.
type Color int

const (
	ColorDefault Color = iota
	ColorPaddle
	ColorBall
	ColorNet
	ColorScore
	ColorBanner
)

// Cell is one character of the canvas.
type Cell struct {
	Rune  rune
	Color Color
}

// Glyphs used when drawing a match.
const (
	PaddleRune = '█'
	BallRune   = '●'
	NetRune    = '│'
)

// Canvas is a fixed-size grid of cells. Writes outside the grid are ignored.
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// NewCanvas returns a blank canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: max(width, 0), height: max(height, 0)}
	c.cells = make([]Cell, c.width*c.height)
	c.Clear()
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Clear fills the canvas with blanks.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' '}
	}
}

// Set writes a single cell.
func (c *Canvas) Set(x, y int, r rune, color Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = Cell{Rune: r, Color: color}
}

// Get returns the cell at (x, y), or a blank outside the grid.
func (c *Canvas) Get(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Cell{Rune: ' '}
	}
	return c.cells[y*c.width+x]
}

// Text writes s starting at (x, y).
func (c *Canvas) Text(x, y int, s string, color Color) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, color)
	}
}

// Rect fills a w x h block whose top-left corner is (x, y).
func (c *Canvas) Rect(x, y, w, h int, r rune, color Color) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			c.Set(x+dx, y+dy, r, color)
		}
	}
}

// String returns the plain text of the canvas, one line per row.
func (c *Canvas) String() string {
	var sb strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y*c.width+x].Rune)
		}
	}
	return sb.String()
}

// Draw renders the mirror onto c. Row 0 carries the scores; the field
// occupies the remaining rows.
func (m *Mirror) Draw(c *Canvas, geom engine.Config) {
	c.Clear()
	if c.Width() == 0 || c.Height() < 2 {
		return
	}

	vp := Viewport{Area: geom.Area, Cols: c.Width(), Rows: c.Height() - 1}
	centre := c.Width() / 2

	for y := 1; y < c.Height(); y += 2 {
		c.Set(centre, y, NetRune, ColorNet)
	}

	for _, s := range m.Sprites() {
		col, row := vp.Cell(s.X, s.Y)
		switch s.Kind {
		case engine.KindLeftPaddle, engine.KindRightPaddle:
			w, h := vp.Span(geom.Paddle.X, geom.Paddle.Y)
			c.Rect(col-w/2, 1+row-h/2, w, h, PaddleRune, ColorPaddle)
		case engine.KindBall:
			c.Set(col, 1+row, BallRune, ColorBall)
		}
	}

	left := fmt.Sprintf("%d", m.leftScore)
	right := fmt.Sprintf("%d", m.rightScore)
	c.Text(centre-2-len(left), 0, left, ColorScore)
	c.Text(centre+3, 0, right, ColorScore)

	switch m.phase {
	case PhaseWaiting:
		banner(c, "SPACE to serve")
	case PhaseScored:
		banner(c, "GOAL! SPACE to serve, R to reset")
	}
}

// banner centres msg a quarter of the way down the field, clear of the
// serve position.
func banner(c *Canvas, msg string) {
	x := (c.Width() - len(msg)) / 2
	c.Text(x, 1+(c.Height()-1)/4, msg, ColorBanner)
}
