package physics

import (
	"math"

	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/vecf"
)

const (
	metalLatticeSupportFactor = 1.0
	horizontalSupportFactor   = 0.5
	minSupportFactor          = 0.05
	metalLatticeMinNeighbors  = 2

	cohesionForceDistCap = 2.0

	adhesionOrthogonalWeight = 1.0
	adhesionDiagonalWeight   = 0.707
)

// CohesionCalculator computes same-material resistance/attraction
// (cohesion) and cross-material attraction (adhesion) per cell
// (spec.md §4.6). It is read-only over the grid.
type CohesionCalculator struct {
	grid    *gridsim.Grid
	support *SupportCalculator
}

// NewCohesionCalculator constructs a calculator sharing the given
// support calculator's memo cache for the current tick.
func NewCohesionCalculator(g *gridsim.Grid, support *SupportCalculator) *CohesionCalculator {
	return &CohesionCalculator{grid: g, support: support}
}

// ResistanceCohesion returns the scalar cohesion resistance at (x,y):
// same-material neighbor count times material cohesion, fill, and a
// support factor (1.0 vertical, 0.5 horizontal-only, 0.05 floor).
func (c *CohesionCalculator) ResistanceCohesion(x, y int) float64 {
	self := c.grid.At(x, y)
	if self.IsEmpty() {
		return 0
	}

	n := 0
	for _, nb := range c.grid.Neighbors8(x, y) {
		neighbor := c.grid.At(nb.X, nb.Y)
		if !neighbor.IsEmpty() && neighbor.Material == self.Material {
			n++
		}
	}

	supportFactor := c.supportFactor(x, y, self.Material, n)
	return material.CohesionOf(self.Material) * float64(n) * self.Fill * supportFactor
}

func (c *CohesionCalculator) supportFactor(x, y int, m material.Kind, sameMatNeighbors int) float64 {
	if c.grid.At(x, y).Reinforced {
		return metalLatticeSupportFactor
	}
	if m == material.Metal && sameMatNeighbors >= metalLatticeMinNeighbors {
		return metalLatticeSupportFactor
	}
	if c.support.VerticalSupport(x, y) {
		return 1.0
	}
	if c.support.HorizontalSupport(x, y) {
		return horizontalSupportFactor
	}
	return minSupportFactor
}

// COMCohesionForce returns the attractive force pulling (x,y) toward
// the fill-weighted center of its like-material neighbors within a
// square search radius.
func (c *CohesionCalculator) COMCohesionForce(x, y, searchRange int) vecf.Vec {
	self := c.grid.At(x, y)
	if self.IsEmpty() {
		return vecf.Zero
	}

	selfWorld := cellWorldPos(x, y, self.COM)

	var sumPos vecf.Vec
	var sumWeight float64
	n := 0

	for dy := -searchRange; dy <= searchRange; dy++ {
		for dx := -searchRange; dx <= searchRange; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			neighbor, ok := c.grid.TryAt(nx, ny)
			if !ok || neighbor.IsEmpty() || neighbor.Material != self.Material {
				continue
			}
			w := neighbor.Fill
			sumPos = sumPos.Add(cellWorldPos(nx, ny, neighbor.COM).Scale(w))
			sumWeight += w
			n++
		}
	}

	if n == 0 || sumWeight == 0 {
		return vecf.Zero
	}

	center := sumPos.Scale(1 / sumWeight)
	offset := center.Sub(selfWorld)
	dist := offset.Mag()
	if dist == 0 {
		return vecf.Zero
	}

	direction := offset.Scale(1 / dist)
	cappedDist := dist
	if cappedDist > cohesionForceDistCap {
		cappedDist = cohesionForceDistCap
	}

	cohesion := material.CohesionOf(self.Material)
	mag := cohesion * (float64(n) / float64(maxNeighborsFor(searchRange))) * cappedDist * self.Fill
	maxMag := 2 * cohesion
	if mag > maxMag {
		mag = maxMag
	}

	return direction.Scale(mag)
}

// AdhesionResult holds the net cross-material attraction at (x,y)
// toward differently-materialed neighbors, plus diagnostic contact
// count and strongest attractor direction.
type AdhesionResult struct {
	Force           vecf.Vec
	ContactCount    int
	StrongestDir    vecf.Vec
	StrongestWeight float64
}

// AdhesionForce computes cross-material attraction per spec.md §4.6.
func (c *CohesionCalculator) AdhesionForce(x, y int) AdhesionResult {
	self := c.grid.At(x, y)
	var result AdhesionResult
	if self.IsEmpty() {
		return result
	}

	for _, nb := range c.grid.Neighbors8(x, y) {
		neighbor := c.grid.At(nb.X, nb.Y)
		if neighbor.IsEmpty() || neighbor.Material == self.Material {
			continue
		}
		if neighbor.Fill <= 1e-3 {
			continue
		}

		mutual := math.Sqrt(material.AdhesionOf(self.Material) * material.AdhesionOf(neighbor.Material))
		distWeight := adhesionOrthogonalWeight
		if nb.X != x && nb.Y != y {
			distWeight = adhesionDiagonalWeight
		}

		dir := vecf.Vec{X: float64(nb.X - x), Y: float64(nb.Y - y)}.Normalize()
		weight := mutual * self.Fill * neighbor.Fill * distWeight

		result.Force = result.Force.Add(dir.Scale(weight))
		result.ContactCount++
		if weight > result.StrongestWeight {
			result.StrongestWeight = weight
			result.StrongestDir = dir
		}
	}

	return result
}

// maxNeighborsFor returns the number of cells in a (2*searchRange+1)
// square neighborhood excluding the center, the normalizing denominator
// for COMCohesionForce's neighbor-count term (WorldBCohesionCalculator::
// calculateCOMCohesionForce's max_connections).
func maxNeighborsFor(searchRange int) int {
	side := 2*searchRange + 1
	return side*side - 1
}

// cellWorldPos returns the continuum world-space position of a cell's
// mass: cell center plus COM, in cell-width units.
func cellWorldPos(x, y int, com vecf.Vec) vecf.Vec {
	return vecf.Vec{X: float64(x), Y: float64(y)}.Add(com)
}
