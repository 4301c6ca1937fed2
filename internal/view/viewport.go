package view

import "github.com/vovakirdan/tui-pong/internal/engine"

// Viewport maps world coordinates (origin at the centre, y up) onto a grid
// of Cols x Rows cells (origin top-left, row down).
type Viewport struct {
	Area engine.Vec
	Cols int
	Rows int
}

// Cell returns the cell containing world point (x, y), clamped to the grid.
func (v Viewport) Cell(x, y int64) (col, row int) {
	if v.Cols <= 0 || v.Rows <= 0 || v.Area.X <= 0 || v.Area.Y <= 0 {
		return 0, 0
	}
	col = int((x + v.Area.X) * int64(v.Cols-1) / (2 * v.Area.X))
	row = int((v.Area.Y - y) * int64(v.Rows-1) / (2 * v.Area.Y))
	return clampInt(col, 0, v.Cols-1), clampInt(row, 0, v.Rows-1)
}

// Span returns how many cells a box with the given half-extents covers.
// Anything on the field covers at least one cell.
func (v Viewport) Span(halfX, halfY int64) (w, h int) {
	if v.Area.X <= 0 || v.Area.Y <= 0 {
		return 1, 1
	}
	w = int(2 * halfX * int64(v.Cols) / (2 * v.Area.X))
	h = int(2 * halfY * int64(v.Rows) / (2 * v.Area.Y))
	return max(w, 1), max(h, 1)
}

// Relative returns (x, y) as fractions of the playfield half-extents, so
// that the field spans [-1, 1] on both axes.
func Relative(area engine.Vec, x, y int64) (float64, float64) {
	return float64(x) / float64(area.X), float64(y) / float64(area.Y)
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
