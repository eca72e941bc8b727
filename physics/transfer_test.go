package physics

import (
	"testing"

	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/vecf"
)

func TestDetectTransfers_NoMovesBelowThreshold(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	g.At(2, 2).Set(material.Dirt, 1.0)
	g.At(2, 2).COM = vecf.Vec{X: 0.3, Y: 0}

	moves := DetectTransfers(g)
	if len(moves) != 0 {
		t.Errorf("expected no moves below deflection threshold, got %d", len(moves))
	}
}

func TestDetectTransfers_AxisAligned(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	g.At(2, 2).Set(material.Dirt, 1.0)
	g.At(2, 2).COM = vecf.Vec{X: 0.7, Y: 0}

	moves := DetectTransfers(g)
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	if moves[0].ToX != 3 || moves[0].ToY != 2 {
		t.Errorf("expected move to (3,2), got (%d,%d)", moves[0].ToX, moves[0].ToY)
	}
}

func TestDetectTransfers_DiagonalPreferredOverAxis(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	g.At(2, 2).Set(material.Dirt, 1.0)
	g.At(2, 2).COM = vecf.Vec{X: 0.7, Y: 0.7}

	moves := DetectTransfers(g)
	if len(moves) != 1 {
		t.Fatalf("expected 1 diagonal move, got %d", len(moves))
	}
	if !moves[0].Diagonal || moves[0].ToX != 3 || moves[0].ToY != 3 {
		t.Errorf("expected diagonal move to (3,3), got %+v", moves[0])
	}
}

func TestDetectTransfers_DiagonalFallsBackWhenTargetFull(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	g.At(2, 2).Set(material.Dirt, 1.0)
	g.At(2, 2).COM = vecf.Vec{X: 0.7, Y: 0.7}
	g.At(3, 3).Set(material.Dirt, 1.0) // diagonal target full

	moves := DetectTransfers(g)
	if len(moves) != 2 {
		t.Fatalf("expected 2 axis-fallback moves, got %d: %+v", len(moves), moves)
	}
}

func TestProjectedTargetCOM(t *testing.T) {
	got := ProjectedTargetCOM(0.7)
	if got < -comDeflectionThreshold || got > comDeflectionThreshold {
		t.Errorf("expected projected COM within dead zone, got %v", got)
	}
}
