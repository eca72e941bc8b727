package sim

import (
	"testing"

	"github.com/latticesoup/latticesoup/config"
	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
)

func testTunables() *config.Tunables {
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
		Pressure: config.PressureTunables{
			SliceThickness:          1.0,
			HydrostaticMultiplier:   0.002,
			DynamicMultiplier:       0.1,
			DynamicAccumulationRate: 0.05,
			DynamicDecayRate:        0.02,
			MinPressureThreshold:    0.01,
			MaxDynamicPressure:      10.0,
		},
	}
}

func TestAdvance_TickCounterIncrements(t *testing.T) {
	s := NewScheduler(Options{Width: 10, Height: 10, Tunables: testTunables(), Seed: 1})
	s.Advance(0.1)
	s.Advance(0.1)
	if s.Tick() != 2 {
		t.Errorf("expected tick 2, got %d", s.Tick())
	}
}

func TestAdvance_EmptyGridIsNoOp(t *testing.T) {
	s := NewScheduler(Options{Width: 10, Height: 10, Tunables: testTunables(), Seed: 1})
	stats := s.Advance(0.1)
	if stats.TotalMass != 0 {
		t.Errorf("expected zero mass on empty grid, got %v", stats.TotalMass)
	}
}

func TestAdvance_MassDoesNotIncreaseWithoutFragmentation(t *testing.T) {
	tun := testTunables()
	tun.FragmentationThreshold = 0 // disables fragmentation per spec invariant
	s := NewScheduler(Options{Width: 10, Height: 10, Tunables: tun, Seed: 1})

	s.Grid().At(5, 1).Set(material.Dirt, 1.0)
	before := s.Grid().TotalMass()

	s.Advance(0.01)
	after := s.Grid().TotalMass()

	if after > before {
		t.Errorf("expected mass to never increase, before=%v after=%v", before, after)
	}
}

func TestAdvance_WallCellsNeverMutate(t *testing.T) {
	s := NewScheduler(Options{Width: 10, Height: 10, Walled: true, Tunables: testTunables(), Seed: 1})
	before := *s.Grid().At(0, 0)

	s.Advance(0.1)

	if *s.Grid().At(0, 0) != before {
		t.Errorf("expected wall cell unchanged across advance")
	}
}

func TestAdvance_InvariantsHoldAfterManyTicks(t *testing.T) {
	s := NewScheduler(Options{Width: 15, Height: 15, Walled: true, Tunables: testTunables(), Seed: 7})
	s.Grid().At(7, 2).Set(material.Water, 1.0)
	s.Grid().At(7, 3).Set(material.Sand, 0.6)

	for i := 0; i < 50; i++ {
		s.Advance(0.05)
	}

	s.Grid().Each(func(x, y int, c *gridsim.Cell) {
		if c.Fill < 0 || c.Fill > 1 {
			t.Errorf("cell (%d,%d) fill out of range: %v", x, y, c.Fill)
		}
		if (c.Material == material.Air) != (c.Fill == 0) {
			t.Errorf("cell (%d,%d) material/fill inconsistency: %v fill %v", x, y, c.Material, c.Fill)
		}
		if c.COM.X < -1 || c.COM.X > 1 || c.COM.Y < -1 || c.COM.Y > 1 {
			t.Errorf("cell (%d,%d) COM out of range: %v", x, y, c.COM)
		}
		if c.Velocity.Mag() > testTunables().MaxVelocity+1e-9 {
			t.Errorf("cell (%d,%d) velocity exceeds max: %v", x, y, c.Velocity.Mag())
		}
	})
}
