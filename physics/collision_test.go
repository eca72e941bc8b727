package physics

import (
	"testing"

	"github.com/latticesoup/latticesoup/material"
)

func TestClassify_TransferIntoEmpty(t *testing.T) {
	got := Classify(material.Dirt, material.Air, 1.0, 15.0, false, false)
	if got != Transfer {
		t.Errorf("expected Transfer, got %v", got)
	}
}

func TestClassify_BoundaryReflection(t *testing.T) {
	got := Classify(material.Metal, material.Air, 1.0, 15.0, true, false)
	if got != BoundaryReflection {
		t.Errorf("expected BoundaryReflection for out-of-bounds, got %v", got)
	}
	got = Classify(material.Metal, material.Wall, 1.0, 15.0, false, true)
	if got != BoundaryReflection {
		t.Errorf("expected BoundaryReflection for wall target, got %v", got)
	}
}

func TestClassify_Elastic(t *testing.T) {
	got := Classify(material.Metal, material.Wood, 5.0, 15.0, false, false)
	if got != Elastic {
		t.Errorf("expected Elastic for two rigid materials, got %v", got)
	}
}

func TestClassify_Inelastic(t *testing.T) {
	got := Classify(material.Metal, material.Sand, 1.0, 15.0, false, false)
	if got != Inelastic {
		t.Errorf("expected Inelastic for rigid-on-soft, got %v", got)
	}
}

func TestClassify_Absorption(t *testing.T) {
	got := Classify(material.Water, material.Dirt, 1.0, 15.0, false, false)
	if got != Absorption {
		t.Errorf("expected Absorption for water into dirt, got %v", got)
	}
}

func TestClassify_Fragmentation(t *testing.T) {
	got := Classify(material.Leaf, material.Sand, 20.0, 15.0, false, false)
	if got != Fragmentation {
		t.Errorf("expected Fragmentation above threshold with brittle material, got %v", got)
	}
}

func TestClassify_NoFragmentationBelowThreshold(t *testing.T) {
	got := Classify(material.Leaf, material.Sand, 5.0, 15.0, false, false)
	if got == Fragmentation {
		t.Errorf("did not expect fragmentation below threshold")
	}
}

func TestKineticEnergy(t *testing.T) {
	e := KineticEnergy(material.Water, 1.0, 2.0)
	expected := 0.5 * material.DensityOf(material.Water) * 4.0
	if e != expected {
		t.Errorf("expected energy %v, got %v", expected, e)
	}
}
