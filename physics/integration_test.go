package physics

import (
	"math"
	"testing"

	"github.com/latticesoup/latticesoup/config"
	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/vecf"
)

func TestIntegrate_FreeFall(t *testing.T) {
	g := gridsim.NewGrid(10, 10, false)
	g.At(5, 1).Set(material.Dirt, 1.0)

	tun := &config.Tunables{
		Gravity:     config.Vec2{X: 0, Y: 9.81},
		MaxVelocity: 100, // effectively unclamped for this scenario
	}
	ig := NewIntegrator(tun)

	dt := 0.1
	ig.Integrate(g.At(5, 1), Forces{}, dt)

	// The gravity impulse (~1.57) exceeds the damping threshold, so the
	// pseudo-viscosity factor is applied once.
	expectedVY := 9.81 * material.DensityOf(material.Dirt) * dt * dampingFactor
	if math.Abs(g.At(5, 1).Velocity.Y-expectedVY) > 1e-9 {
		t.Errorf("expected velocity.y ~%v, got %v", expectedVY, g.At(5, 1).Velocity.Y)
	}
}

func TestIntegrate_ClampsMaxVelocity(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	c := g.At(2, 2)
	c.Set(material.Water, 1.0)
	c.Velocity = vecf.Vec{X: 5, Y: 0}

	tun := &config.Tunables{Gravity: config.Vec2{}, MaxVelocity: 0.9}
	ig := NewIntegrator(tun)
	ig.Integrate(c, Forces{}, 0.1)

	if c.Velocity.Mag() > 0.9+1e-9 {
		t.Errorf("expected velocity clamped to max_velocity 0.9, got %v", c.Velocity.Mag())
	}
}

func TestIntegrate_SkipsWallsAndEmpty(t *testing.T) {
	g := gridsim.NewGrid(5, 5, true)
	wall := g.At(0, 0)
	before := *wall

	tun := &config.Tunables{Gravity: config.Vec2{X: 0, Y: 9.81}, MaxVelocity: 1}
	ig := NewIntegrator(tun)
	ig.Integrate(wall, Forces{}, 0.1)

	if *wall != before {
		t.Errorf("expected wall cell unchanged by integration")
	}
}

func TestIntegrate_ClampsCOM(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	c := g.At(2, 2)
	c.Set(material.Water, 1.0)
	c.COM = vecf.Vec{X: 0.95, Y: 0}
	c.Velocity = vecf.Vec{X: 5, Y: 0}

	tun := &config.Tunables{Gravity: config.Vec2{}, MaxVelocity: 100}
	ig := NewIntegrator(tun)
	ig.Integrate(c, Forces{}, 1.0)

	if c.COM.X > 1.0 {
		t.Errorf("expected COM.x clamped to <= 1.0, got %v", c.COM.X)
	}
}
