// Package physics implements the per-tick force, pressure, transfer, and
// collision calculators that the scheduler composes into one advance.
package physics

import (
	"math"

	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
)

const (
	maxVerticalSupportDistance = 5
	maxSupportDistance         = 10
	highDensityThreshold       = 5.0
	horizontalSupportMinMean   = 0.5
)

// SupportCalculator determines structural support for cells, which
// modulates cohesion resistance and brakes free-fall for granular and
// connected materials (spec.md §4.5). It holds a read-only borrow of
// the grid and a per-tick memo cache; construct a fresh one each tick.
type SupportCalculator struct {
	grid *gridsim.Grid

	// verticalMemo caches VerticalSupport results within one tick, since
	// the recursive walk can revisit the same column repeatedly across
	// many queries from the cohesion calculator.
	verticalMemo map[[2]int]bool
}

// NewSupportCalculator constructs a calculator over the given grid.
func NewSupportCalculator(g *gridsim.Grid) *SupportCalculator {
	return &SupportCalculator{
		grid:         g,
		verticalMemo: make(map[[2]int]bool),
	}
}

// VerticalSupport reports whether (x,y) is supported by walking
// straight down. Support is found if the chain reaches the bottom row
// or a vertically-supported non-empty cell; the first empty cell
// breaks the chain.
func (s *SupportCalculator) VerticalSupport(x, y int) bool {
	return s.verticalSupport(x, y, 0)
}

func (s *SupportCalculator) verticalSupport(x, y, depth int) bool {
	key := [2]int{x, y}
	if v, ok := s.verticalMemo[key]; ok {
		return v
	}
	if depth > maxVerticalSupportDistance {
		s.verticalMemo[key] = false
		return false
	}

	result := s.computeVerticalSupport(x, y, depth)
	s.verticalMemo[key] = result
	return result
}

func (s *SupportCalculator) computeVerticalSupport(x, y, depth int) bool {
	if y >= s.grid.Height()-1 {
		return true
	}

	below, ok := s.grid.TryAt(x, y+1)
	if !ok {
		return true
	}
	if below.IsWall() {
		return true
	}
	if below.IsEmpty() {
		return false
	}
	if material.IsHighDensity(below.Material) {
		return true
	}
	return s.verticalSupport(x, y+1, depth+1)
}

// HorizontalSupport reports whether (x,y) has an immediate 8-neighbor
// that is high-density and whose mutual adhesion with self exceeds the
// support threshold.
func (s *SupportCalculator) HorizontalSupport(x, y int) bool {
	self, ok := s.grid.TryAt(x, y)
	if !ok || self.IsEmpty() {
		return false
	}
	selfAdhesion := material.AdhesionOf(self.Material)

	for _, n := range s.grid.Neighbors8(x, y) {
		neighbor := s.grid.At(n.X, n.Y)
		if neighbor.IsEmpty() || !material.IsHighDensity(neighbor.Material) {
			continue
		}
		mean := math.Sqrt(selfAdhesion * material.AdhesionOf(neighbor.Material))
		if mean > horizontalSupportMinMean {
			return true
		}
	}
	return false
}

// StructuralSupport reports whether (x,y) is structurally supported:
// walls, the bottom row, and high-density cells are inherently
// supported; otherwise a bounded BFS across same-material or
// high-density cells seeks any inherently supported cell.
func (s *SupportCalculator) StructuralSupport(x, y int) bool {
	self, ok := s.grid.TryAt(x, y)
	if !ok {
		return false
	}
	if self.IsWall() || y == s.grid.Height()-1 || material.IsHighDensity(self.Material) {
		return true
	}
	if self.IsEmpty() {
		return false
	}

	return s.bfsFindSupported(x, y, self.Material)
}

// DistanceToSupport returns the shortest path length to an inherently
// supported cell under the same adjacency rule as StructuralSupport,
// capped at maxSupportDistance when none is found.
func (s *SupportCalculator) DistanceToSupport(x, y int) int {
	self, ok := s.grid.TryAt(x, y)
	if !ok {
		return maxSupportDistance
	}
	if self.IsWall() || y == s.grid.Height()-1 || material.IsHighDensity(self.Material) {
		return 0
	}
	if self.IsEmpty() {
		return maxSupportDistance
	}

	dist, found := s.bfsDistance(x, y, self.Material)
	if !found {
		return maxSupportDistance
	}
	return dist
}

type bfsNode struct {
	x, y, dist int
}

func (s *SupportCalculator) bfsFindSupported(x, y int, selfMaterial material.Kind) bool {
	_, found := s.bfsDistance(x, y, selfMaterial)
	return found
}

// bfsDistance performs a bounded breadth-first search across
// same-material or high-density cells, returning the distance to the
// nearest inherently supported cell and whether one was found.
func (s *SupportCalculator) bfsDistance(x, y int, selfMaterial material.Kind) (int, bool) {
	visited := map[[2]int]bool{{x, y}: true}
	queue := []bfsNode{{x, y, 0}}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if node.dist > 0 {
			cell := s.grid.At(node.x, node.y)
			if cell.IsWall() || (node.y == s.grid.Height()-1) || material.IsHighDensity(cell.Material) {
				return node.dist, true
			}
		}

		if node.dist >= maxSupportDistance {
			continue
		}

		for _, n := range s.grid.Neighbors8(node.x, node.y) {
			key := [2]int{n.X, n.Y}
			if visited[key] {
				continue
			}
			neighbor := s.grid.At(n.X, n.Y)
			if neighbor.IsWall() {
				visited[key] = true
				queue = append(queue, bfsNode{n.X, n.Y, node.dist + 1})
				continue
			}
			if neighbor.IsEmpty() {
				continue
			}
			if neighbor.Material != selfMaterial && !material.IsHighDensity(neighbor.Material) {
				continue
			}
			visited[key] = true
			queue = append(queue, bfsNode{n.X, n.Y, node.dist + 1})
		}
	}

	return 0, false
}
