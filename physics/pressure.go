package physics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/latticesoup/latticesoup/config"
	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/vecf"
)

// pressureGradientBaseBlend is the blend weight at zero mass; heavier
// cells scale it down, so the running average resists change more as
// mass grows (spec.md §4.8).
const pressureGradientBaseBlend = 0.3

// BlockedTransfer records a move that could not proceed (full target,
// wall, or out-of-bounds), feeding the dynamic-pressure accumulator.
type BlockedTransfer struct {
	FromX, FromY int
	ToX, ToY     int
	Amount       float64
	Velocity     vecf.Vec
	Energy       float64
}

// PressureCalculator implements the dual hydrostatic/dynamic pressure
// model (spec.md §4.8).
type PressureCalculator struct {
	grid *gridsim.Grid
	tun  *config.PressureTunables
}

// NewPressureCalculator constructs a pressure calculator over the
// grid, parameterized by the pressure tunables.
func NewPressureCalculator(g *gridsim.Grid, tun *config.PressureTunables) *PressureCalculator {
	return &PressureCalculator{grid: g, tun: tun}
}

// CalculateHydrostaticPressure sweeps each column parallel to gravity,
// accumulating density * |g| per unit thickness. Empty cells pass the
// accumulation through unchanged.
func (p *PressureCalculator) CalculateHydrostaticPressure(gravity vecf.Vec) {
	gravityMag := gravity.Mag()
	if gravityMag == 0 {
		p.grid.Each(func(x, y int, c *gridsim.Cell) {
			c.HydrostaticPressure = 0
		})
		return
	}

	// Gravity defaults to +y (spec.md §6 coordinate conventions); sweep
	// top-to-bottom accumulating weight-above per column.
	for x := 0; x < p.grid.Width(); x++ {
		accumulated := 0.0
		for y := 0; y < p.grid.Height(); y++ {
			c := p.grid.At(x, y)
			if c.IsWall() {
				c.HydrostaticPressure = 0
				continue
			}
			c.HydrostaticPressure = accumulated
			if !c.IsEmpty() {
				accumulated += material.DensityOf(c.Material) * gravityMag * p.tun.SliceThickness
			}
		}
	}
}

// QueueBlockedTransfer accumulates one tick's worth of blocked-transfer
// energy into the source cell's dynamic pressure and pressure-gradient
// running average.
func (p *PressureCalculator) QueueBlockedTransfer(t BlockedTransfer) {
	c, ok := p.grid.TryAt(t.FromX, t.FromY)
	if !ok || c.IsWall() {
		return
	}

	c.DynamicPressure += t.Energy * p.tun.DynamicAccumulationRate
	if c.DynamicPressure > p.tun.MaxDynamicPressure {
		c.DynamicPressure = p.tun.MaxDynamicPressure
	}

	normalized := t.Velocity.Normalize()
	mass := c.Mass()
	if mass <= 0 {
		c.PressureGradient = normalized
		return
	}

	// Mass-weighted running average: heavier cells resist gradient
	// change, so the blend weight shrinks as mass grows.
	weight := pressureGradientBaseBlend / (1 + mass)

	gradient := []float64{c.PressureGradient.X, c.PressureGradient.Y}
	floats.Scale(1-weight, gradient)
	floats.AddScaled(gradient, weight, []float64{normalized.X, normalized.Y})

	c.PressureGradient = vecf.Vec{X: gradient[0], Y: gradient[1]}
}

// DecayDynamicPressure decays every non-wall cell's dynamic pressure by
// (1 - decay_rate * dt), called once per tick after blocked transfers
// have been queued.
func (p *PressureCalculator) DecayDynamicPressure(dt float64) {
	factor := 1 - p.tun.DynamicDecayRate*dt
	if factor < 0 {
		factor = 0
	}
	p.grid.Each(func(x, y int, c *gridsim.Cell) {
		if c.IsWall() {
			return
		}
		c.DynamicPressure *= factor
		if c.DynamicPressure < p.tun.MinPressureThreshold {
			c.DynamicPressure = 0
		}
	})
}

// Force returns the combined pressure force for a cell, weighted by
// per-material hydrostatic/dynamic sensitivity and the overall
// pressure_scale tunable.
func (p *PressureCalculator) Force(c *gridsim.Cell, gravity vecf.Vec, scale float64, hydroEnabled, dynEnabled bool) vecf.Vec {
	if c.IsEmpty() || c.IsWall() || scale == 0 {
		return vecf.Zero
	}

	props := material.Get(c.Material)
	var hydro, dyn vecf.Vec

	if hydroEnabled {
		gDir := gravity.Normalize()
		hydro = gDir.Scale(c.HydrostaticPressure * p.tun.HydrostaticMultiplier * props.HydrostaticSensitivity)
	}
	if dynEnabled {
		dyn = c.PressureGradient.Scale(c.DynamicPressure * p.tun.DynamicMultiplier * props.DynamicSensitivity)
	}

	return hydro.Add(dyn).Scale(scale)
}
