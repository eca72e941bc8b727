// Package sim owns the grid, the move/blocked-transfer queues, and the
// external inbox, composing the physics and organism packages into one
// per-tick Advance call (spec.md §4.13, §5).
package sim

import (
	"math/rand"

	"github.com/latticesoup/latticesoup/config"
	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/organism"
	"github.com/latticesoup/latticesoup/physics"
	"github.com/latticesoup/latticesoup/simlog"
	"github.com/latticesoup/latticesoup/telemetry"
)

// Scheduler is the sole owner of the grid and its queues. The support,
// cohesion, pressure, integration and move calculators are constructed
// fresh each tick; the air-resistance calculator is built once and
// keeps its turbulence time coordinate across ticks.
type Scheduler struct {
	grid      *gridsim.Grid
	tun       *config.Tunables
	rng       *rand.Rand
	organisms *organism.World
	airRes    *physics.AirResistanceCalculator

	tick int32

	inbox []inboxCommand

	perf *telemetry.PerfCollector
}

// Options configures a new Scheduler.
type Options struct {
	Width, Height int
	Walled        bool
	Seed          int64
	Tunables      *config.Tunables
	PerfWindow    int
}

// NewScheduler constructs a scheduler over a fresh width x height grid.
func NewScheduler(opts Options) *Scheduler {
	if opts.Tunables == nil {
		opts.Tunables = config.Cfg()
	}
	perfWindow := opts.PerfWindow
	if perfWindow <= 0 {
		perfWindow = 600
	}
	return &Scheduler{
		grid:      gridsim.NewGrid(opts.Width, opts.Height, opts.Walled),
		tun:       opts.Tunables,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		organisms: organism.NewWorld(),
		airRes:    physics.NewAirResistanceCalculator(opts.Tunables.AirResistanceScalar, opts.Seed),
		perf:      telemetry.NewPerfCollector(perfWindow),
	}
}

// Grid returns the live grid for read-only inspection between ticks
// (the "snapshot_request" boundary; callers must not mutate it).
func (s *Scheduler) Grid() *gridsim.Grid { return s.grid }

// Organisms returns the tree-organism world for spawning/enqueueing
// growth commands between ticks.
func (s *Scheduler) Organisms() *organism.World { return s.organisms }

// Tick returns the monotonic tick counter.
func (s *Scheduler) Tick() int32 { return s.tick }

// Advance runs one full tick of the seven-phase pipeline and returns
// the tick's aggregate diagnostics.
func (s *Scheduler) Advance(dt float64) telemetry.WindowStats {
	s.perf.StartTick()
	s.drainInbox()

	s.perf.StartPhase(telemetry.PhasePreClean)
	removedMass := s.preClean()

	s.perf.StartPhase(telemetry.PhaseForces)
	forces, pressure := s.computeForces()

	s.perf.StartPhase(telemetry.PhaseIntegration)
	s.integrate(forces, dt)

	s.perf.StartPhase(telemetry.PhaseTransferDetect)
	moves := physics.DetectTransfers(s.grid)

	s.perf.StartPhase(telemetry.PhaseMoveExecute)
	blocked, events := s.executeMoves(moves)

	s.perf.StartPhase(telemetry.PhasePressure)
	s.updatePressure(pressure, blocked, dt)

	s.organisms.Tick(s.grid)
	s.airRes.Advance(dt)

	if events.Fragmentation > 0 {
		simlog.Logf("tick %d: %d fragmentation event(s), %.4f mass lost", s.tick, events.Fragmentation, events.FragmentationLoss)
	}

	s.tick++
	s.perf.EndTick()
	s.assertGridInvariants("end of Advance")

	return s.summarize(removedMass, len(blocked), events)
}

// preClean sweeps below-threshold cells back to Air (spec.md §4.13
// phase 1), tallying the mass it removes for diagnostics.
func (s *Scheduler) preClean() float64 {
	var removed float64
	threshold := s.tun.MinFillThreshold
	s.grid.Each(func(x, y int, c *gridsim.Cell) {
		if c.IsWall() || c.IsEmpty() {
			return
		}
		if c.Fill < threshold {
			removed += c.Mass()
			c.RemoveMaterial(c.Fill)
		}
	})
	return removed
}
