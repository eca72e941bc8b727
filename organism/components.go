// Package organism implements the tree growth subsystem: a queue of
// structural-growth commands that convert grid cells to Wood, Leaf,
// Root, and Seed materials over time. The decision logic that chooses
// which command to issue next is an external collaborator (the
// tree-brain); this package only executes commands it is handed.
package organism

import "github.com/latticesoup/latticesoup/vecf"

// GrowthStage tracks a tree's progression; advanced by command
// execution side effects (e.g. the first Wood grown out of a
// germinated seed promotes it to Sapling).
type GrowthStage uint8

const (
	StageSeed GrowthStage = iota
	StageGermination
	StageSapling
	StageMature
)

// Tree is the ECS component holding one organism's growth state:
// identity, energy budget, and the set of cells it occupies.
type Tree struct {
	ID          uint32
	TotalEnergy float64
	Stage       GrowthStage
	Cells       map[vecf.VecI]struct{}
}

// NewTree constructs a tree rooted at the given seed cell.
func NewTree(id uint32, seedPos vecf.VecI, initialEnergy float64) *Tree {
	t := &Tree{
		ID:          id,
		TotalEnergy: initialEnergy,
		Stage:       StageSeed,
		Cells:       make(map[vecf.VecI]struct{}),
	}
	t.Cells[seedPos] = struct{}{}
	return t
}

// Occupies reports whether this tree owns the cell at pos.
func (t *Tree) Occupies(pos vecf.VecI) bool {
	_, ok := t.Cells[pos]
	return ok
}

// CommandQueue is the ECS component holding a tree's pending growth
// commands, appended by the external brain and drained here.
type CommandQueue struct {
	Pending []Command
}
