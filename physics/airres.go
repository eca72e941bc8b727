package physics

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/latticesoup/latticesoup/vecf"
)

// AirResistanceCalculator computes quadratic drag opposing velocity
// (spec.md §4.7), plus an optional ambient turbulence perturbation
// sourced from simplex noise rather than a uniform wind constant.
type AirResistanceCalculator struct {
	scalar float64
	noise  opensimplex.Noise
	t      float64

	// TurbulenceStrength scales the noise contribution; 0 disables it
	// entirely and the calculator reduces to pure quadratic drag.
	TurbulenceStrength float64
}

// NewAirResistanceCalculator constructs a drag calculator with the
// given quadratic coefficient k and a noise source seeded for
// reproducible turbulence across runs.
func NewAirResistanceCalculator(scalar float64, seed int64) *AirResistanceCalculator {
	return &AirResistanceCalculator{
		scalar: scalar,
		noise:  opensimplex.New(seed),
	}
}

// Drag returns the drag force for a cell moving at v: -k * |v| * v.
func (a *AirResistanceCalculator) Drag(v vecf.Vec) vecf.Vec {
	speed := v.Mag()
	if speed == 0 {
		return vecf.Zero
	}
	return v.Scale(-a.scalar * speed)
}

// Turbulence returns a small ambient perturbation force at (x,y) for
// the current tick, sampled from 3D simplex noise (x, y, time) so it
// varies smoothly across both space and ticks. Returns zero when
// TurbulenceStrength is 0.
func (a *AirResistanceCalculator) Turbulence(x, y int) vecf.Vec {
	if a.TurbulenceStrength == 0 {
		return vecf.Zero
	}
	nx := a.noise.Eval3(float64(x)*0.1, float64(y)*0.1, a.t)
	ny := a.noise.Eval3(float64(x)*0.1+100, float64(y)*0.1+100, a.t)
	return vecf.Vec{X: nx, Y: ny}.Scale(a.TurbulenceStrength)
}

// Advance moves the noise field's time coordinate forward by dt,
// called once per tick by the scheduler.
func (a *AirResistanceCalculator) Advance(dt float64) {
	a.t += dt
}
