// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Tunables holds the scheduler's runtime-adjustable parameters (spec.md §6
// "set_tunable"). These are the only values callers can change without
// recompiling; everything else (material table, pipeline ordering) is fixed.
type Tunables struct {
	Gravity Vec2 `yaml:"gravity"`

	MaxVelocity            float64 `yaml:"max_velocity"`
	ElasticityFactor       float64 `yaml:"elasticity_factor"`
	PressureScale          float64 `yaml:"pressure_scale"`
	HydrostaticEnabled     bool    `yaml:"hydrostatic_enabled"`
	DynamicEnabled         bool    `yaml:"dynamic_enabled"`
	AirResistanceScalar    float64 `yaml:"air_resistance_scalar"`
	TurbulenceStrength     float64 `yaml:"turbulence_strength"`
	CohesionRange          int     `yaml:"cohesion_range"`
	FragmentationThreshold float64 `yaml:"fragmentation_threshold"`
	MinFillThreshold       float64 `yaml:"min_fill_threshold"`

	Pressure PressureTunables `yaml:"pressure"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// Vec2 is a plain two-component vector used for config values (gravity)
// that must round-trip through YAML without depending on the vecf package.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PressureTunables holds the pressure system's constants (spec.md §4.8).
// These rarely change at runtime but are exposed for scenario tuning and
// test overrides rather than hard-coded in the physics package.
type PressureTunables struct {
	SliceThickness          float64 `yaml:"slice_thickness"`
	HydrostaticMultiplier   float64 `yaml:"hydrostatic_multiplier"`
	DynamicMultiplier       float64 `yaml:"dynamic_multiplier"`
	DynamicAccumulationRate float64 `yaml:"dynamic_accumulation_rate"`
	DynamicDecayRate        float64 `yaml:"dynamic_decay_rate"`
	MinPressureThreshold    float64 `yaml:"min_pressure_threshold"`
	MaxDynamicPressure      float64 `yaml:"max_dynamic_pressure"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	GravityMag float64 // |Gravity|, cached so integration need not re-sqrt every tick.
}

// global holds the loaded configuration.
var global *Tunables

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Tunables {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Tunables, error) {
	cfg := &Tunables{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects tunables that would violate a core invariant (spec.md
// §7 "invalid tunable name/value ... rejected at the scheduler boundary").
func (c *Tunables) Validate() error {
	if c.MaxVelocity <= 0 {
		return fmt.Errorf("max_velocity must be positive, got %v", c.MaxVelocity)
	}
	if c.CohesionRange < 0 {
		return fmt.Errorf("cohesion_range must be non-negative, got %v", c.CohesionRange)
	}
	if c.MinFillThreshold < 0 || c.MinFillThreshold > 1 {
		return fmt.Errorf("min_fill_threshold must be in [0,1], got %v", c.MinFillThreshold)
	}
	if c.TurbulenceStrength < 0 {
		return fmt.Errorf("turbulence_strength must be non-negative, got %v", c.TurbulenceStrength)
	}
	if c.Pressure.DynamicDecayRate < 0 {
		return fmt.Errorf("dynamic_decay_rate must be non-negative, got %v", c.Pressure.DynamicDecayRate)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Tunables) computeDerived() {
	c.Derived.GravityMag = math.Hypot(c.Gravity.X, c.Gravity.Y)
}
