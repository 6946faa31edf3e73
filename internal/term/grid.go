package term

import (
	"math"

	"github.com/Garsondee/ricochet-arena/internal/arena"
)

// Grid maps the arena onto a cols x rows block of terminal cells. World +Y
// is up; row 0 is the top of the terminal.
type Grid struct {
	Cols, Rows   int
	HalfW, HalfH float64
}

func (g Grid) cellW() float64 { return 2 * g.HalfW / float64(g.Cols) }
func (g Grid) cellH() float64 { return 2 * g.HalfH / float64(g.Rows) }

// Cell returns the cell containing p, and false when p is off the grid.
func (g Grid) Cell(p arena.Vec2) (int, int, bool) {
	if g.Cols <= 0 || g.Rows <= 0 {
		return 0, 0, false
	}
	col := int(math.Floor((p.X + g.HalfW) / g.cellW()))
	row := int(math.Floor((g.HalfH - p.Y) / g.cellH()))
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return col, row, false
	}
	return col, row, true
}

// World returns the centre of a cell in world coordinates.
func (g Grid) World(col, row int) arena.Vec2 {
	return arena.Vec2{
		X: (float64(col)+0.5)*g.cellW() - g.HalfW,
		Y: g.HalfH - (float64(row)+0.5)*g.cellH(),
	}
}

// Span returns the inclusive cell rectangle covered by a box, clipped to the
// grid. ok is false when nothing is visible.
func (g Grid) Span(center, half arena.Vec2) (c0, r0, c1, r1 int, ok bool) {
	if g.Cols <= 0 || g.Rows <= 0 {
		return 0, 0, 0, 0, false
	}
	c0 = int(math.Floor((center.X - half.X + g.HalfW) / g.cellW()))
	c1 = int(math.Ceil((center.X+half.X+g.HalfW)/g.cellW())) - 1
	r0 = int(math.Floor((g.HalfH - center.Y - half.Y) / g.cellH()))
	r1 = int(math.Ceil((g.HalfH-center.Y+half.Y)/g.cellH())) - 1
	if c1 < 0 || r1 < 0 || c0 >= g.Cols || r0 >= g.Rows {
		return 0, 0, 0, 0, false
	}
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(max(c1, c0), g.Cols-1), min(max(r1, r0), g.Rows-1)
	return c0, r0, c1, r1, true
}
