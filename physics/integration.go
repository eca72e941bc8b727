package physics

import (
	"github.com/latticesoup/latticesoup/config"
	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/vecf"
)

const (
	dampingThreshold = 0.5
	dampingFactor    = 0.9
)

// Forces holds one tick's read-only force computation for a single
// cell, accumulated during phase 2 and consumed during phase 3
// (spec.md §4.9).
type Forces struct {
	Cohesion  vecf.Vec
	Adhesion  vecf.Vec
	AirDrag   vecf.Vec
	Pressure  vecf.Vec
}

// Sum returns the combined force excluding gravity, which is applied
// directly during integration.
func (f Forces) Sum() vecf.Vec {
	return f.Cohesion.Add(f.Adhesion).Add(f.AirDrag).Add(f.Pressure)
}

// Integrator applies accumulated forces plus gravity to update
// velocity and COM, then clamps both to their valid ranges.
type Integrator struct {
	tun *config.Tunables
}

// NewIntegrator constructs an integrator bound to the scheduler's tunables.
func NewIntegrator(tun *config.Tunables) *Integrator {
	return &Integrator{tun: tun}
}

// Integrate applies gravity and the precomputed forces to c's
// velocity, clamps to max_velocity, applies pseudo-viscosity damping,
// then integrates and clamps COM. Walls and empty cells are skipped.
func (ig *Integrator) Integrate(c *gridsim.Cell, forces Forces, dt float64) {
	if c.IsWall() || c.IsEmpty() {
		return
	}

	gravity := vecf.Vec{X: ig.tun.Gravity.X, Y: ig.tun.Gravity.Y}
	gravityImpulse := gravity.Scale(material.DensityOf(c.Material) * dt)
	c.Velocity = c.Velocity.Add(gravityImpulse).Add(forces.Sum())

	if mag := c.Velocity.Mag(); mag > ig.tun.MaxVelocity {
		c.Velocity = c.Velocity.Scale(ig.tun.MaxVelocity / mag)
	}
	if c.Velocity.Mag() > dampingThreshold {
		c.Velocity = c.Velocity.Scale(dampingFactor)
	}

	c.COM = c.COM.Add(c.Velocity.Scale(dt))
	c.ClampCOM()
}
