// Package material defines the closed set of cell materials and their
// fixed physical properties.
package material

// Kind is one tag from the closed material set (spec.md §4.1).
type Kind uint8

const (
	Air Kind = iota
	Dirt
	Water
	Sand
	Wood
	Metal
	Leaf
	Wall
	Seed
	Root

	numKinds
)

// String returns the material's tag name, used for diagnostics and for
// persistence records that serialize materials by name.
func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

var names = [...]string{
	Air:   "Air",
	Dirt:  "Dirt",
	Water: "Water",
	Sand:  "Sand",
	Wood:  "Wood",
	Metal: "Metal",
	Leaf:  "Leaf",
	Wall:  "Wall",
	Seed:  "Seed",
	Root:  "Root",
}

// FromString resolves a tag name to its Kind. Used by the persistence
// format, which serializes materials by name for forward compatibility.
func FromString(s string) (Kind, bool) {
	for k, name := range names {
		if name == s {
			return Kind(k), true
		}
	}
	return Air, false
}

// Properties holds the fixed physical constants for one material.
// Density uses Water=1.0 as the reference point.
type Properties struct {
	Density    float64
	Elasticity float64
	Cohesion   float64
	Adhesion   float64

	// HydrostaticSensitivity and DynamicSensitivity weight this
	// material's response to the pressure system (spec.md §4.8).
	HydrostaticSensitivity float64
	DynamicSensitivity     float64
}

// table is the process-wide, immutable material property lookup. Built
// once at package init and never mutated afterward.
var table = [numKinds]Properties{
	Air: {
		Density: 0, Elasticity: 0, Cohesion: 0, Adhesion: 0,
		HydrostaticSensitivity: 0, DynamicSensitivity: 0,
	},
	Dirt: {
		Density: 1.6, Elasticity: 0.2, Cohesion: 0.4, Adhesion: 0.3,
		HydrostaticSensitivity: 0.7, DynamicSensitivity: 1.0,
	},
	Water: {
		Density: 1.0, Elasticity: 0.1, Cohesion: 0.2, Adhesion: 0.1,
		HydrostaticSensitivity: 1.0, DynamicSensitivity: 0.8,
	},
	Sand: {
		Density: 1.5, Elasticity: 0.15, Cohesion: 0.25, Adhesion: 0.2,
		HydrostaticSensitivity: 0.7, DynamicSensitivity: 1.0,
	},
	Wood: {
		Density: 0.7, Elasticity: 0.5, Cohesion: 0.8, Adhesion: 0.5,
		HydrostaticSensitivity: 0.3, DynamicSensitivity: 0.5,
	},
	Metal: {
		Density: 7.8, Elasticity: 0.9, Cohesion: 0.9, Adhesion: 0.6,
		HydrostaticSensitivity: 0.1, DynamicSensitivity: 0.5,
	},
	Leaf: {
		Density: 0.3, Elasticity: 0.3, Cohesion: 0.3, Adhesion: 0.2,
		HydrostaticSensitivity: 0.4, DynamicSensitivity: 0.6,
	},
	Wall: {
		Density: 1000, Elasticity: 1.0, Cohesion: 1.0, Adhesion: 0,
		HydrostaticSensitivity: 0, DynamicSensitivity: 0,
	},
	Seed: {
		Density: 0.8, Elasticity: 0.3, Cohesion: 0.5, Adhesion: 0.3,
		HydrostaticSensitivity: 0.3, DynamicSensitivity: 0.5,
	},
	Root: {
		Density: 0.9, Elasticity: 0.4, Cohesion: 0.7, Adhesion: 0.4,
		HydrostaticSensitivity: 0.3, DynamicSensitivity: 0.5,
	},
}

// rigid marks materials that are treated as structural solids for the
// cohesion/collision systems (spec.md §4.2, §4.10).
var rigid = map[Kind]bool{
	Metal: true,
	Wood:  true,
	Wall:  true,
}

// Get returns the properties for a material. Panics if kind is outside
// the closed set; that is a programmer error (spec.md §4.2: "Lookup
// fails only if given a bit pattern outside the closed set").
func Get(k Kind) Properties {
	if k >= numKinds {
		panic("material: kind outside closed set")
	}
	return table[k]
}

// DensityOf returns the material's density.
func DensityOf(k Kind) float64 { return Get(k).Density }

// ElasticityOf returns the material's elasticity.
func ElasticityOf(k Kind) float64 { return Get(k).Elasticity }

// CohesionOf returns the material's cohesion.
func CohesionOf(k Kind) float64 { return Get(k).Cohesion }

// AdhesionOf returns the material's adhesion.
func AdhesionOf(k Kind) float64 { return Get(k).Adhesion }

// IsRigid reports whether the material is treated as structural
// (Metal, Wood, Wall).
func IsRigid(k Kind) bool {
	return rigid[k]
}

// IsHighDensity reports whether the material's density exceeds the
// support-system threshold of 5.0 (spec.md §4.5).
func IsHighDensity(k Kind) bool {
	return table[k].Density > 5.0
}
