package physics

import (
	"testing"

	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
)

func TestVerticalSupport_BottomRow(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	g.At(2, 4).Set(material.Dirt, 1.0)

	sc := NewSupportCalculator(g)
	if !sc.VerticalSupport(2, 4) {
		t.Errorf("expected bottom-row cell to be vertically supported")
	}
}

func TestVerticalSupport_BrokenByGap(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	g.At(2, 2).Set(material.Dirt, 1.0)
	// (2,3) left empty -- gap breaks the chain even though (2,4) is filled.
	g.At(2, 4).Set(material.Dirt, 1.0)

	sc := NewSupportCalculator(g)
	if sc.VerticalSupport(2, 2) {
		t.Errorf("expected support chain broken by empty gap")
	}
}

func TestVerticalSupport_ChainedColumn(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	for y := 2; y <= 4; y++ {
		g.At(2, y).Set(material.Dirt, 1.0)
	}

	sc := NewSupportCalculator(g)
	if !sc.VerticalSupport(2, 2) {
		t.Errorf("expected unbroken column to be supported")
	}
}

func TestStructuralSupport_WallAlwaysSupported(t *testing.T) {
	g := gridsim.NewGrid(5, 5, true)
	sc := NewSupportCalculator(g)
	if !sc.StructuralSupport(0, 0) {
		t.Errorf("expected wall cell to be structurally supported")
	}
}

func TestStructuralSupport_HighDensityInherentlySupported(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	g.At(2, 2).Set(material.Metal, 1.0)
	sc := NewSupportCalculator(g)
	if !sc.StructuralSupport(2, 2) {
		t.Errorf("expected high-density cell to be inherently supported")
	}
}

func TestDistanceToSupport_ZeroForInherentlySupported(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	g.At(2, 4).Set(material.Dirt, 1.0) // bottom row
	sc := NewSupportCalculator(g)
	if got := sc.DistanceToSupport(2, 4); got != 0 {
		t.Errorf("expected distance 0 for bottom row, got %v", got)
	}
}

func TestDistanceToSupport_CapsAtMax(t *testing.T) {
	g := gridsim.NewGrid(20, 20, false)
	g.At(10, 5).Set(material.Dirt, 1.0) // isolated, far from any support
	sc := NewSupportCalculator(g)
	if got := sc.DistanceToSupport(10, 5); got != maxSupportDistance {
		t.Errorf("expected capped distance %v, got %v", maxSupportDistance, got)
	}
}
