package organism

import (
	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/vecf"
)

// cardinalOffsets are the four axis-aligned neighbor directions used
// by adjacency validation; growth commands never target diagonally.
var cardinalOffsets = [4]vecf.VecI{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// Execute runs one command against the grid on behalf of tree,
// mutating the target cell and deducting energy on success. It is the
// sole mutator of organism-owned cells; callers schedule commands, this
// function only ever executes the one handed to it.
func (t *Tree) Execute(g *gridsim.Grid, cmd Command) Result {
	if cmd.Kind == KindWait {
		return ResultSuccess
	}
	if t.TotalEnergy < cmd.Energy {
		return ResultInsufficientEnergy
	}
	if !g.InBounds(cmd.Target.X, cmd.Target.Y) {
		return ResultOutOfBounds
	}

	var result Result
	switch cmd.Kind {
	case KindGrowWood:
		result = t.growWood(g, cmd.Target)
	case KindGrowLeaf:
		result = t.growLeaf(g, cmd.Target)
	case KindGrowRoot:
		result = t.growRoot(g, cmd.Target)
	case KindReinforceCell:
		result = t.reinforceCell(g, cmd.Target)
	case KindProduceSeed:
		result = t.produceSeed(g, cmd.Target)
	default:
		result = ResultInvalidTarget
	}

	if result == ResultSuccess {
		t.TotalEnergy -= cmd.Energy
	}
	return result
}

// adjacentTo reports whether any cardinal neighbor of pos holds one of
// the given materials and belongs to this tree's organism_id.
func (t *Tree) adjacentTo(g *gridsim.Grid, pos vecf.VecI, kinds ...material.Kind) bool {
	for _, off := range cardinalOffsets {
		nx, ny := pos.X+off.X, pos.Y+off.Y
		cell, ok := g.TryAt(nx, ny)
		if !ok || cell.OrganismID != t.ID {
			continue
		}
		for _, k := range kinds {
			if cell.Material == k {
				return true
			}
		}
	}
	return false
}

// claim converts the target cell to the given material under this
// tree's organism_id and records it in the tree's owned-cell set.
func (t *Tree) claim(g *gridsim.Grid, pos vecf.VecI, kind material.Kind) {
	cell := g.At(pos.X, pos.Y)
	cell.Set(kind, 1.0)
	cell.OrganismID = t.ID
	t.Cells[pos] = struct{}{}
}

// growWood requires an adjacent Wood or Seed cell of this organism and
// an empty target. Promotes a germinating seed to Sapling.
func (t *Tree) growWood(g *gridsim.Grid, target vecf.VecI) Result {
	cell := g.At(target.X, target.Y)
	if !cell.IsEmpty() {
		return ResultInvalidTarget
	}
	if !t.adjacentTo(g, target, material.Wood, material.Seed) {
		return ResultInvalidTarget
	}
	t.claim(g, target, material.Wood)
	if t.Stage == StageGermination {
		t.Stage = StageSapling
	}
	return ResultSuccess
}

// growLeaf requires an adjacent Wood cell of this organism and an
// empty target.
func (t *Tree) growLeaf(g *gridsim.Grid, target vecf.VecI) Result {
	cell := g.At(target.X, target.Y)
	if !cell.IsEmpty() {
		return ResultInvalidTarget
	}
	if !t.adjacentTo(g, target, material.Wood) {
		return ResultInvalidTarget
	}
	t.claim(g, target, material.Leaf)
	return ResultSuccess
}

// growRoot requires an adjacent Seed or Root cell of this organism and
// an empty target. Germinates a fresh seed into the Germination stage.
func (t *Tree) growRoot(g *gridsim.Grid, target vecf.VecI) Result {
	cell := g.At(target.X, target.Y)
	if !cell.IsEmpty() {
		return ResultInvalidTarget
	}
	if !t.adjacentTo(g, target, material.Seed, material.Root) {
		return ResultInvalidTarget
	}
	t.claim(g, target, material.Root)
	if t.Stage == StageSeed {
		t.Stage = StageGermination
	}
	return ResultSuccess
}

// reinforceCell strengthens an already-owned, non-empty cell, raising
// its resistance to transfer to metal-lattice strength (see
// physics.CohesionCalculator, which consults Cell.Reinforced).
func (t *Tree) reinforceCell(g *gridsim.Grid, target vecf.VecI) Result {
	cell := g.At(target.X, target.Y)
	if cell.IsEmpty() || cell.OrganismID != t.ID {
		return ResultInvalidTarget
	}
	cell.Reinforced = true
	return ResultSuccess
}

// produceSeed places a new Seed cell at any empty in-bounds target;
// unlike growth commands it does not check adjacency to this tree's
// existing cells or require any adjacent material.
func (t *Tree) produceSeed(g *gridsim.Grid, target vecf.VecI) Result {
	cell := g.At(target.X, target.Y)
	if !cell.IsEmpty() {
		return ResultInvalidTarget
	}
	t.claim(g, target, material.Seed)
	return ResultSuccess
}
