package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated diagnostics for one tick or a window of ticks
// (spec.md §6 "Outputs"/§8 testable properties). All fields here are
// diagnostic only — nothing in this package feeds back into the physics.
type WindowStats struct {
	Tick int32 `csv:"tick"`

	// Mass conservation (§8: "total mass non-increasing within one phase").
	TotalMass        float64 `csv:"total_mass"`
	RemovedMass      float64 `csv:"removed_mass"`       // swept below min_fill_threshold this tick
	FragmentationLoss float64 `csv:"fragmentation_loss"` // lost to fragmentation this tick

	// Transfers and collisions.
	BlockedTransfers int `csv:"blocked_transfers"`
	Transfers        int `csv:"transfers"`
	ElasticEvents    int `csv:"elastic_events"`
	InelasticEvents  int `csv:"inelastic_events"`
	AbsorptionEvents int `csv:"absorption_events"`
	FragmentEvents   int `csv:"fragment_events"`
	ReflectionEvents int `csv:"reflection_events"`

	// Pressure distribution across non-wall, non-empty cells.
	HydrostaticMean float64 `csv:"hydrostatic_mean"`
	HydrostaticMax  float64 `csv:"hydrostatic_max"`
	DynamicMean     float64 `csv:"dynamic_mean"`
	DynamicMax      float64 `csv:"dynamic_max"`
	DynamicP50      float64 `csv:"dynamic_p50"`
	DynamicP90      float64 `csv:"dynamic_p90"`

	// Velocity distribution.
	VelocityMean float64 `csv:"velocity_mean"`
	VelocityStd  float64 `csv:"velocity_std"`
}

// PressureSample summarizes one cell's pressure state for aggregation.
type PressureSample struct {
	Hydrostatic float64
	Dynamic     float64
}

// SummarizePressure computes mean/max/percentiles over a tick's cell
// pressure samples using gonum/stat, mirroring the teacher's hand-rolled
// Percentile helper but backed by the real ecosystem library.
func SummarizePressure(samples []PressureSample) (hydroMean, hydroMax, dynMean, dynMax, dynP50, dynP90 float64) {
	if len(samples) == 0 {
		return 0, 0, 0, 0, 0, 0
	}

	hydro := make([]float64, len(samples))
	dyn := make([]float64, len(samples))
	for i, s := range samples {
		hydro[i] = s.Hydrostatic
		dyn[i] = s.Dynamic
		if s.Hydrostatic > hydroMax {
			hydroMax = s.Hydrostatic
		}
		if s.Dynamic > dynMax {
			dynMax = s.Dynamic
		}
	}

	hydroMean = stat.Mean(hydro, nil)
	dynMean = stat.Mean(dyn, nil)

	sortedDyn := append([]float64(nil), dyn...)
	sort.Float64s(sortedDyn)
	dynP50 = stat.Quantile(0.50, stat.Empirical, sortedDyn, nil)
	dynP90 = stat.Quantile(0.90, stat.Empirical, sortedDyn, nil)

	return hydroMean, hydroMax, dynMean, dynMax, dynP50, dynP90
}

// SummarizeVelocity computes mean and standard deviation of per-cell speed.
func SummarizeVelocity(speeds []float64) (mean, std float64) {
	if len(speeds) == 0 {
		return 0, 0
	}
	mean, std = stat.MeanStdDev(speeds, nil)
	return mean, std
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(s.Tick)),
		slog.Float64("total_mass", s.TotalMass),
		slog.Float64("removed_mass", s.RemovedMass),
		slog.Float64("fragmentation_loss", s.FragmentationLoss),
		slog.Int("blocked_transfers", s.BlockedTransfers),
		slog.Int("transfers", s.Transfers),
		slog.Int("elastic_events", s.ElasticEvents),
		slog.Int("inelastic_events", s.InelasticEvents),
		slog.Int("absorption_events", s.AbsorptionEvents),
		slog.Int("fragment_events", s.FragmentEvents),
		slog.Int("reflection_events", s.ReflectionEvents),
		slog.Float64("hydrostatic_mean", s.HydrostaticMean),
		slog.Float64("hydrostatic_max", s.HydrostaticMax),
		slog.Float64("dynamic_mean", s.DynamicMean),
		slog.Float64("dynamic_max", s.DynamicMax),
		slog.Float64("dynamic_p50", s.DynamicP50),
		slog.Float64("dynamic_p90", s.DynamicP90),
		slog.Float64("velocity_mean", s.VelocityMean),
		slog.Float64("velocity_std", s.VelocityStd),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("tick_stats",
		"tick", s.Tick,
		"total_mass", s.TotalMass,
		"removed_mass", s.RemovedMass,
		"fragmentation_loss", s.FragmentationLoss,
		"blocked_transfers", s.BlockedTransfers,
		"transfers", s.Transfers,
		"elastic_events", s.ElasticEvents,
		"inelastic_events", s.InelasticEvents,
		"absorption_events", s.AbsorptionEvents,
		"fragment_events", s.FragmentEvents,
		"reflection_events", s.ReflectionEvents,
		"hydrostatic_mean", s.HydrostaticMean,
		"dynamic_mean", s.DynamicMean,
		"velocity_mean", s.VelocityMean,
	)
}
