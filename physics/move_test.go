package physics

import (
	"math/rand"
	"testing"

	"github.com/latticesoup/latticesoup/config"
	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/vecf"
)

func defaultTunables() *config.Tunables {
	return &config.Tunables{
		Gravity:                config.Vec2{X: 0, Y: 9.81},
		MaxVelocity:            0.9,
		ElasticityFactor:       0.8,
		PressureScale:          1.0,
		HydrostaticEnabled:     true,
		DynamicEnabled:         true,
		AirResistanceScalar:    0.1,
		CohesionRange:          1,
		FragmentationThreshold: 15.0,
		MinFillThreshold:       0.01,
	}
}

func TestMoveExecutor_TransferIntoEmpty(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	g.At(2, 2).Set(material.Dirt, 1.0)
	g.At(2, 2).Velocity = vecf.Vec{X: 0.5, Y: 0}
	g.At(2, 2).COM = vecf.Vec{X: 0.7, Y: 0}

	exec := NewMoveExecutor(g, defaultTunables(), rand.New(rand.NewSource(1)))
	blocked, _ := exec.Execute([]Move{{FromX: 2, FromY: 2, ToX: 3, ToY: 2}})

	if len(blocked) != 0 {
		t.Errorf("expected no blocked transfers for move into empty cell, got %d", len(blocked))
	}
	if g.At(2, 2).Material != material.Air {
		t.Errorf("expected source cell fully drained to Air")
	}
	if g.At(3, 2).Material != material.Dirt {
		t.Errorf("expected target cell to adopt Dirt")
	}
	if g.At(3, 2).Fill != 1.0 {
		t.Errorf("expected target fill 1.0, got %v", g.At(3, 2).Fill)
	}
}

func TestMoveExecutor_BoundaryReflection(t *testing.T) {
	g := gridsim.NewGrid(5, 5, true)
	c := g.At(1, 1)
	c.Set(material.Metal, 1.0)
	c.Velocity = vecf.Vec{X: 1.0, Y: 0}
	c.COM = vecf.Vec{X: 0.7, Y: 0}

	exec := NewMoveExecutor(g, defaultTunables(), rand.New(rand.NewSource(1)))
	exec.Execute([]Move{{FromX: 1, FromY: 1, ToX: 0, ToY: 1}})

	if c.Velocity.X >= 0 {
		t.Errorf("expected velocity to flip sign after wall reflection, got %v", c.Velocity.X)
	}
	if c.Fill != 1.0 {
		t.Errorf("expected no mass lost on boundary reflection, got fill %v", c.Fill)
	}
	if c.COM.X != -comDeflectionThreshold {
		t.Errorf("expected COM pinned to -%v, got %v", comDeflectionThreshold, c.COM.X)
	}
}

func TestMoveExecutor_BlockedWhenTargetFull(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	g.At(2, 2).Set(material.Dirt, 1.0)
	g.At(2, 2).Velocity = vecf.Vec{X: 0.5, Y: 0}
	g.At(3, 2).Set(material.Dirt, 1.0) // full target

	exec := NewMoveExecutor(g, defaultTunables(), rand.New(rand.NewSource(1)))
	blocked, _ := exec.Execute([]Move{{FromX: 2, FromY: 2, ToX: 3, ToY: 2}})

	if len(blocked) != 1 {
		t.Fatalf("expected 1 blocked transfer for full target, got %d", len(blocked))
	}
	if g.At(2, 2).Fill != 1.0 {
		t.Errorf("expected source fill unchanged when blocked, got %v", g.At(2, 2).Fill)
	}
}

func TestMoveExecutor_AbsorptionConsumesWater(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	g.At(2, 2).Set(material.Water, 0.3)
	g.At(3, 2).Set(material.Dirt, 0.5)

	exec := NewMoveExecutor(g, defaultTunables(), rand.New(rand.NewSource(1)))
	_, _ = exec.Execute([]Move{{FromX: 2, FromY: 2, ToX: 3, ToY: 2}})

	if g.At(2, 2).Material != material.Air {
		t.Errorf("expected water source fully absorbed")
	}
	if g.At(3, 2).Fill <= 0.5 {
		t.Errorf("expected dirt target to gain fill from absorption, got %v", g.At(3, 2).Fill)
	}
}
