package organism

import (
	"testing"

	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/vecf"
)

func TestWorld_SpawnAndTickExecutesQueuedCommand(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	seedPos := vecf.VecI{X: 2, Y: 2}
	g.At(seedPos.X, seedPos.Y).Set(material.Seed, 1.0)

	w := NewWorld()
	e := w.Spawn(seedPos, 100)
	g.At(seedPos.X, seedPos.Y).OrganismID = 1

	w.Enqueue(e, GrowRoot(vecf.VecI{X: 2, Y: 3}))
	outcomes := w.Tick(g)

	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if outcomes[0].Result != ResultSuccess {
		t.Errorf("expected success outcome, got %v", outcomes[0].Result)
	}
	if g.At(2, 3).Material != material.Root {
		t.Errorf("expected root grown at target")
	}
}

func TestWorld_TickSkipsTreesWithEmptyQueue(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	w := NewWorld()
	w.Spawn(vecf.VecI{X: 1, Y: 1}, 10)

	outcomes := w.Tick(g)
	if len(outcomes) != 0 {
		t.Errorf("expected no outcomes for tree with empty queue, got %d", len(outcomes))
	}
}

func TestWorld_TickDrainsOneCommandPerCall(t *testing.T) {
	g := gridsim.NewGrid(5, 5, false)
	w := NewWorld()
	e := w.Spawn(vecf.VecI{X: 2, Y: 2}, 100)

	w.Enqueue(e, Wait())
	w.Enqueue(e, Wait())

	first := w.Tick(g)
	second := w.Tick(g)
	third := w.Tick(g)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one outcome per tick while queue has commands, got %d then %d", len(first), len(second))
	}
	if len(third) != 0 {
		t.Errorf("expected no outcome once queue drains, got %d", len(third))
	}
}
