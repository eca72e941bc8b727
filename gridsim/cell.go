// Package gridsim holds the per-cell state and the fixed-size lattice
// that the physics pipeline mutates each tick.
package gridsim

import (
	"fmt"

	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/vecf"
)

// comEpsilon is the minimum fill below which a cell is treated as empty.
const comEpsilon = 1e-3

// comDeflectionThreshold is the COM magnitude that triggers a transfer
// candidate on an axis (spec.md §4.3, §4.10).
const comDeflectionThreshold = 0.6

// Cell is the per-lattice-site state (spec.md §3). It holds exactly one
// material at a fill ratio, plus the kinematic and pressure state the
// physics pipeline reads and writes each tick.
type Cell struct {
	Material material.Kind
	Fill     float64

	COM      vecf.Vec
	Velocity vecf.Vec

	HydrostaticPressure float64
	DynamicPressure     float64
	PressureGradient    vecf.Vec

	// OrganismID links this cell to a growth organism; 0 means none.
	OrganismID uint32

	// Reinforced marks a cell strengthened by a ReinforceCell growth
	// command; CohesionCalculator treats it as metal-lattice-strength.
	Reinforced bool
}

// IsEmpty reports whether the cell holds no material.
func (c *Cell) IsEmpty() bool {
	return c.Material == material.Air || c.Fill <= comEpsilon
}

// IsWall reports whether the cell is an immobile boundary.
func (c *Cell) IsWall() bool {
	return c.Material == material.Wall
}

// Set overwrites the cell's material and fill, clamping fill to [0,1]
// and forcing fill to 0 for Air (spec.md §4.3).
func (c *Cell) Set(m material.Kind, fill float64) {
	fill = clamp01(fill)
	if m == material.Air {
		fill = 0
	}
	c.Material = m
	c.Fill = fill
}

// AddMaterial deposits amount of kind into the cell, returning the
// amount actually added. Fails softly (returns 0) if the cell already
// holds a different, non-empty material.
func (c *Cell) AddMaterial(kind material.Kind, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if !c.IsEmpty() && c.Material != kind {
		return 0
	}
	if c.IsEmpty() {
		c.Material = kind
		c.Fill = 0
	}
	room := 1 - c.Fill
	added := amount
	if added > room {
		added = room
	}
	if added <= 0 {
		return 0
	}
	c.Fill += added
	return added
}

// RemoveMaterial removes amount of material from the cell, returning
// the amount actually removed. Reverts the cell to Air when the
// remaining fill drops to or below the emptiness threshold.
func (c *Cell) RemoveMaterial(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	removed := amount
	if removed > c.Fill {
		removed = c.Fill
	}
	c.Fill -= removed
	if c.Fill <= comEpsilon {
		c.Material = material.Air
		c.Fill = 0
		c.COM = vecf.Zero
		c.Velocity = vecf.Zero
	}
	return removed
}

// NormalizedDeflection returns the COM scaled by the inverse of the
// transfer threshold, a dimensionless crossing indicator.
func (c *Cell) NormalizedDeflection() vecf.Vec {
	return c.COM.Scale(1 / comDeflectionThreshold)
}

// ClampCOM clamps COM componentwise to [-1,1], enforced after every
// integration step (spec.md §4.3).
func (c *Cell) ClampCOM() {
	c.COM.X = clamp(c.COM.X, -1, 1)
	c.COM.Y = clamp(c.COM.Y, -1, 1)
}

// Mass returns the cell's mass (density * fill). Air and empty cells
// are massless.
func (c *Cell) Mass() float64 {
	return material.DensityOf(c.Material) * c.Fill
}

// Validate reports the first invariant violation found in the cell's
// state, or nil if none. A debug-only check (CellB::validateState in
// original_source), not called on the hot path; used by tests and by
// the scheduler's build-tagged debug assertion pass.
func (c *Cell) Validate() error {
	if c.Fill < 0 || c.Fill > 1 {
		return fmt.Errorf("gridsim: fill %v out of range [0,1]", c.Fill)
	}
	if c.Material == material.Air && c.Fill > 0 {
		return fmt.Errorf("gridsim: Air material with non-zero fill %v", c.Fill)
	}
	if c.Fill <= 0 && c.Material != material.Air {
		return fmt.Errorf("gridsim: zero fill with non-Air material %v", c.Material)
	}
	if c.COM.X < -1 || c.COM.X > 1 || c.COM.Y < -1 || c.COM.Y > 1 {
		return fmt.Errorf("gridsim: COM %v out of bounds [-1,1]", c.COM)
	}
	return nil
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
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
