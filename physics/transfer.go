package physics

import (
	"github.com/latticesoup/latticesoup/gridsim"
)

const comDeflectionThreshold = 0.6

// Move is a queued candidate mutation: a source cell's COM crossed the
// transfer threshold toward a target cell (spec.md §3, §4.10).
// Destroyed at the end of the move-execution phase.
type Move struct {
	FromX, FromY int
	ToX, ToY     int
	Diagonal     bool
}

// DetectTransfers scans every non-empty, non-wall cell for a COM that
// crossed the deflection threshold, emitting the move queue per
// spec.md §4.10's diagonal-first, axis-fallback priority rule.
func DetectTransfers(g *gridsim.Grid) []Move {
	var moves []Move

	g.Each(func(x, y int, c *gridsim.Cell) {
		if c.IsEmpty() || c.IsWall() {
			return
		}

		crossRight := c.COM.X > comDeflectionThreshold
		crossLeft := c.COM.X < -comDeflectionThreshold
		crossDown := c.COM.Y > comDeflectionThreshold
		crossUp := c.COM.Y < -comDeflectionThreshold

		dx, dy := 0, 0
		switch {
		case crossRight:
			dx = 1
		case crossLeft:
			dx = -1
		}
		switch {
		case crossDown:
			dy = 1
		case crossUp:
			dy = -1
		}

		if dx == 0 && dy == 0 {
			return
		}

		if dx != 0 && dy != 0 {
			// Diagonal candidate first; fall back to axis-aligned moves
			// if the diagonal target is out-of-bounds or full.
			if target, ok := g.TryAt(x+dx, y+dy); ok && target.Fill < 1 {
				moves = append(moves, Move{FromX: x, FromY: y, ToX: x + dx, ToY: y + dy, Diagonal: true})
				return
			}
			if target, ok := g.TryAt(x+dx, y); ok && target.Fill < 1 {
				moves = append(moves, Move{FromX: x, FromY: y, ToX: x + dx, ToY: y})
			}
			if target, ok := g.TryAt(x, y+dy); ok && target.Fill < 1 {
				moves = append(moves, Move{FromX: x, FromY: y, ToX: x, ToY: y + dy})
			}
			return
		}

		moves = append(moves, Move{FromX: x, FromY: y, ToX: x + dx, ToY: y + dy})
	})

	return moves
}

// ProjectedTargetCOM returns the target cell's COM component along the
// transfer axis after projecting the source's continuum position into
// the neighbor's coordinate frame, clamped to a dead zone so the moved
// mass doesn't immediately re-trigger a transfer.
func ProjectedTargetCOM(sourceComComponent float64) float64 {
	projected := sourceComComponent - 2.0
	if sourceComComponent < 0 {
		projected = sourceComComponent + 2.0
	}
	return clamp(projected, -comDeflectionThreshold, comDeflectionThreshold)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
