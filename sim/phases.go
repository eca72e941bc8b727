package sim

import (
	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/physics"
	"github.com/latticesoup/latticesoup/telemetry"
	"github.com/latticesoup/latticesoup/vecf"
)

// computeForces runs the read-only force-computation phase (spec.md
// §4.13 phase 2), returning per-cell forces plus the pressure
// calculator, so the pressure phase can reuse it.
func (s *Scheduler) computeForces() (map[[2]int]physics.Forces, *physics.PressureCalculator) {
	gravity := vecf.Vec{X: s.tun.Gravity.X, Y: s.tun.Gravity.Y}
	s.airRes.TurbulenceStrength = s.tun.TurbulenceStrength

	support := physics.NewSupportCalculator(s.grid)
	cohesion := physics.NewCohesionCalculator(s.grid, support)
	pressure := physics.NewPressureCalculator(s.grid, &s.tun.Pressure)

	forces := make(map[[2]int]physics.Forces)

	s.grid.Each(func(x, y int, c *gridsim.Cell) {
		if c.IsWall() || c.IsEmpty() {
			return
		}

		cohesionForce := cohesion.COMCohesionForce(x, y, s.tun.CohesionRange)
		adhesion := cohesion.AdhesionForce(x, y)
		drag := s.airRes.Drag(c.Velocity).Add(s.airRes.Turbulence(x, y))
		pressureForce := pressure.Force(c, gravity, s.tun.PressureScale, s.tun.HydrostaticEnabled, s.tun.DynamicEnabled)

		forces[[2]int{x, y}] = physics.Forces{
			Cohesion: cohesionForce,
			Adhesion: adhesion.Force,
			AirDrag:  drag,
			Pressure: pressureForce,
		}
	})

	return forces, pressure
}

// integrate applies gravity plus the computed forces to every cell
// (spec.md §4.13 phase 3).
func (s *Scheduler) integrate(forces map[[2]int]physics.Forces, dt float64) {
	integrator := physics.NewIntegrator(s.tun)
	s.grid.Each(func(x, y int, c *gridsim.Cell) {
		if c.IsWall() || c.IsEmpty() {
			return
		}
		integrator.Integrate(c, forces[[2]int{x, y}], dt)
	})
}

// executeMoves applies the move queue (spec.md §4.13 phase 5).
func (s *Scheduler) executeMoves(moves []physics.Move) ([]physics.BlockedTransfer, physics.EventCounts) {
	executor := physics.NewMoveExecutor(s.grid, s.tun, s.rng)
	return executor.Execute(moves)
}

// updatePressure recomputes hydrostatic pressure from the post-move
// state, queues this tick's blocked transfers into dynamic pressure,
// and decays (spec.md §4.13 phase 6). The resulting pressure forces
// are read back on the *next* tick's computeForces call, which is the
// intentional one-tick lag called out in §5.
func (s *Scheduler) updatePressure(pressure *physics.PressureCalculator, blocked []physics.BlockedTransfer, dt float64) {
	gravity := vecf.Vec{X: s.tun.Gravity.X, Y: s.tun.Gravity.Y}
	pressure.CalculateHydrostaticPressure(gravity)
	for _, b := range blocked {
		pressure.QueueBlockedTransfer(b)
	}
	pressure.DecayDynamicPressure(dt)
}

// summarize aggregates this tick's diagnostics into telemetry.WindowStats.
func (s *Scheduler) summarize(removedMass float64, blockedCount int, events physics.EventCounts) telemetry.WindowStats {
	var samples []telemetry.PressureSample
	var speeds []float64
	totalMass := 0.0

	s.grid.Each(func(x, y int, c *gridsim.Cell) {
		if c.IsWall() {
			return
		}
		totalMass += c.Mass()
		if c.IsEmpty() {
			return
		}
		samples = append(samples, telemetry.PressureSample{Hydrostatic: c.HydrostaticPressure, Dynamic: c.DynamicPressure})
		speeds = append(speeds, c.Velocity.Mag())
	})

	hydroMean, hydroMax, dynMean, dynMax, dynP50, dynP90 := telemetry.SummarizePressure(samples)
	velMean, velStd := telemetry.SummarizeVelocity(speeds)

	return telemetry.WindowStats{
		Tick:              s.tick,
		TotalMass:         totalMass,
		RemovedMass:       removedMass,
		FragmentationLoss: events.FragmentationLoss,
		BlockedTransfers:  blockedCount,
		Transfers:         events.Transfers,
		ElasticEvents:     events.Elastic,
		InelasticEvents:   events.Inelastic,
		AbsorptionEvents:  events.Absorption,
		FragmentEvents:    events.Fragmentation,
		ReflectionEvents:  events.Reflections,
		HydrostaticMean:   hydroMean,
		HydrostaticMax:    hydroMax,
		DynamicMean:       dynMean,
		DynamicMax:        dynMax,
		DynamicP50:        dynP50,
		DynamicP90:        dynP90,
		VelocityMean:      velMean,
		VelocityStd:       velStd,
	}
}
