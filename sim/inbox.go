package sim

import (
	"fmt"

	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/simlog"
	"github.com/latticesoup/latticesoup/vecf"
)

// inboxKind tags the closed set of between-tick mutations (spec.md §6
// "Inputs (to the scheduler, between ticks)").
type inboxKind uint8

const (
	inboxPlaceMaterial inboxKind = iota
	inboxSetTunable
)

type inboxCommand struct {
	kind inboxKind

	// place_material fields
	x, y     int
	material material.Kind
	fill     float64

	// set_tunable fields
	name  string
	value float64
	bool  bool
	vec   [2]float64
}

// PlaceMaterial queues an unconditional cell write, applied at the
// start of the next Advance call.
func (s *Scheduler) PlaceMaterial(x, y int, kind material.Kind, fill float64) {
	s.inbox = append(s.inbox, inboxCommand{kind: inboxPlaceMaterial, x: x, y: y, material: kind, fill: fill})
}

// SetTunableFloat queues a scalar tunable update by name (spec.md §6).
// Rejected at drain time if name is unrecognized; never panics.
func (s *Scheduler) SetTunableFloat(name string, value float64) {
	s.inbox = append(s.inbox, inboxCommand{kind: inboxSetTunable, name: name, value: value})
}

// SetTunableBool queues a boolean tunable update by name.
func (s *Scheduler) SetTunableBool(name string, value bool) {
	s.inbox = append(s.inbox, inboxCommand{kind: inboxSetTunable, name: name, bool: value})
}

// SetGravity queues a vector tunable update for gravity.
func (s *Scheduler) SetGravity(x, y float64) {
	s.inbox = append(s.inbox, inboxCommand{kind: inboxSetTunable, name: "gravity", vec: [2]float64{x, y}})
}

// drainInbox applies every queued command in FIFO order, then clears
// the inbox. Invalid tunable names/values are rejected without
// mutating core state (spec.md §7); the core keeps running regardless.
func (s *Scheduler) drainInbox() {
	for _, cmd := range s.inbox {
		switch cmd.kind {
		case inboxPlaceMaterial:
			s.applyPlaceMaterial(cmd)
		case inboxSetTunable:
			if err := s.applySetTunable(cmd); err != nil {
				simlog.Logf("sim: rejected tunable update: %v", err)
			}
		}
	}
	s.inbox = s.inbox[:0]
}

func (s *Scheduler) applyPlaceMaterial(cmd inboxCommand) {
	cell, ok := s.grid.TryAt(cmd.x, cmd.y)
	if !ok || cell.IsWall() {
		return
	}
	cell.Set(cmd.material, cmd.fill)
	cell.Velocity = vecf.Zero
	cell.COM = vecf.Zero
}

func (s *Scheduler) applySetTunable(cmd inboxCommand) error {
	switch cmd.name {
	case "gravity":
		s.tun.Gravity.X, s.tun.Gravity.Y = cmd.vec[0], cmd.vec[1]
	case "max_velocity":
		if cmd.value <= 0 {
			return fmt.Errorf("max_velocity must be positive, got %v", cmd.value)
		}
		s.tun.MaxVelocity = cmd.value
	case "elasticity_factor":
		s.tun.ElasticityFactor = cmd.value
	case "pressure_scale":
		s.tun.PressureScale = cmd.value
	case "hydrostatic_enabled":
		s.tun.HydrostaticEnabled = cmd.bool
	case "dynamic_enabled":
		s.tun.DynamicEnabled = cmd.bool
	case "air_resistance_scalar":
		s.tun.AirResistanceScalar = cmd.value
	case "turbulence_strength":
		if cmd.value < 0 {
			return fmt.Errorf("turbulence_strength must be non-negative, got %v", cmd.value)
		}
		s.tun.TurbulenceStrength = cmd.value
	case "cohesion_range":
		if cmd.value < 0 {
			return fmt.Errorf("cohesion_range must be non-negative, got %v", cmd.value)
		}
		s.tun.CohesionRange = int(cmd.value)
	case "fragmentation_threshold":
		s.tun.FragmentationThreshold = cmd.value
	case "min_fill_threshold":
		if cmd.value < 0 || cmd.value > 1 {
			return fmt.Errorf("min_fill_threshold must be in [0,1], got %v", cmd.value)
		}
		s.tun.MinFillThreshold = cmd.value
	default:
		return fmt.Errorf("unrecognized tunable %q", cmd.name)
	}
	return s.tun.Validate()
}

// Snapshot returns a read-only copy of the grid for external
// observers (spec.md §6 "snapshot_request").
func (s *Scheduler) Snapshot() *gridsim.Grid {
	return s.grid.Clone()
}
