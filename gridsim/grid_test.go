package gridsim

import (
	"math"
	"testing"

	"github.com/latticesoup/latticesoup/material"
)

func TestNewGrid_Walled(t *testing.T) {
	g := NewGrid(5, 5, true)

	if !g.At(0, 0).IsWall() {
		t.Errorf("expected corner to be wall")
	}
	if !g.At(4, 4).IsWall() {
		t.Errorf("expected opposite corner to be wall")
	}
	if g.At(2, 2).IsWall() {
		t.Errorf("expected interior cell not to be wall")
	}
}

func TestAt_PanicsOutOfBounds(t *testing.T) {
	g := NewGrid(3, 3, false)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for out-of-bounds access")
		}
	}()
	g.At(10, 10)
}

func TestInBounds(t *testing.T) {
	g := NewGrid(3, 3, false)
	if !g.InBounds(0, 0) || !g.InBounds(2, 2) {
		t.Errorf("expected corners in bounds")
	}
	if g.InBounds(-1, 0) || g.InBounds(3, 0) {
		t.Errorf("expected out-of-range coordinates to be out of bounds")
	}
}

func TestNeighbors8_EdgeClipped(t *testing.T) {
	g := NewGrid(3, 3, false)
	n := g.Neighbors8(0, 0)
	if len(n) != 3 {
		t.Errorf("expected 3 in-bounds neighbors for corner cell, got %d", len(n))
	}
}

func TestTotalMass(t *testing.T) {
	g := NewGrid(3, 3, false)
	g.At(1, 1).Set(material.Water, 1.0)
	expected := material.DensityOf(material.Water)
	if got := g.TotalMass(); got != expected {
		t.Errorf("expected total mass %v, got %v", expected, got)
	}
}

func TestCell_AddRemoveMaterial(t *testing.T) {
	c := &Cell{}
	added := c.AddMaterial(material.Dirt, 0.7)
	if added != 0.7 {
		t.Errorf("expected 0.7 added, got %v", added)
	}
	if c.Material != material.Dirt {
		t.Errorf("expected cell to adopt Dirt material")
	}

	addedMore := c.AddMaterial(material.Dirt, 0.5)
	if math.Abs(addedMore-0.3) > 1e-9 {
		t.Errorf("expected only 0.3 to fit, got %v", addedMore)
	}

	rejected := c.AddMaterial(material.Water, 0.1)
	if rejected != 0 {
		t.Errorf("expected mismatched material deposit to fail softly, got %v", rejected)
	}

	removed := c.RemoveMaterial(1.5)
	if removed != 1.0 {
		t.Errorf("expected removal capped at existing fill, got %v", removed)
	}
	if c.Material != material.Air {
		t.Errorf("expected cell to revert to Air after full removal")
	}
}

func TestCell_IsEmpty(t *testing.T) {
	c := &Cell{}
	if !c.IsEmpty() {
		t.Errorf("expected zero-value cell to be empty")
	}
	c.Set(material.Sand, 0.5)
	if c.IsEmpty() {
		t.Errorf("expected filled cell not to be empty")
	}
}

func TestCell_SetForcesAirFillZero(t *testing.T) {
	c := &Cell{}
	c.Set(material.Air, 0.8)
	if c.Fill != 0 {
		t.Errorf("expected Air fill forced to 0, got %v", c.Fill)
	}
}
