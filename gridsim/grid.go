package gridsim

import (
	"fmt"

	"github.com/latticesoup/latticesoup/material"
)

// Grid is a fixed-size row-major lattice of cells.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid constructs a width x height grid of Air cells. If walled is
// true, the outermost ring is initialized to Wall (spec.md §4.4).
func NewGrid(width, height int, walled bool) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	if walled {
		for x := 0; x < width; x++ {
			g.At(x, 0).Set(material.Wall, 1)
			g.At(x, height-1).Set(material.Wall, 1)
		}
		for y := 0; y < height; y++ {
			g.At(0, y).Set(material.Wall, 1)
			g.At(width-1, y).Set(material.Wall, 1)
		}
	}
	return g
}

// Width returns the grid's width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid's height in cells.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x,y) is a valid coordinate for this grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns a pointer to the cell at (x,y). Panics on an out-of-bounds
// coordinate: that is a programming error, not a recoverable condition
// (spec.md §4.4).
func (g *Grid) At(x, y int) *Cell {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("gridsim: coordinate (%d,%d) out of bounds for %dx%d grid", x, y, g.width, g.height))
	}
	return &g.cells[y*g.width+x]
}

// TryAt returns a pointer to the cell at (x,y) and true, or nil and
// false if out of bounds. Used by calculators that probe neighbors at
// the grid edge without wanting to panic.
func (g *Grid) TryAt(x, y int) (*Cell, bool) {
	if !g.InBounds(x, y) {
		return nil, false
	}
	return &g.cells[y*g.width+x], true
}

// Each visits every cell in row-major order, calling fn with its
// coordinate and cell pointer.
func (g *Grid) Each(fn func(x, y int, c *Cell)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(x, y, &g.cells[y*g.width+x])
		}
	}
}

// Neighbors8 returns the coordinates of the 8-neighborhood of (x,y)
// that lie within bounds.
func (g *Grid) Neighbors8(x, y int) []struct{ X, Y int } {
	out := make([]struct{ X, Y int }, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if g.InBounds(nx, ny) {
				out = append(out, struct{ X, Y int }{nx, ny})
			}
		}
	}
	return out
}

// Clone returns a deep copy of the grid, safe for a caller to read or
// even mutate without affecting the scheduler's live state (spec.md §6
// "snapshot_request").
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// TotalMass sums mass (density * fill) over every cell, used by
// diagnostics to verify the mass-conservation invariant.
func (g *Grid) TotalMass() float64 {
	var total float64
	for i := range g.cells {
		total += g.cells[i].Mass()
	}
	return total
}
