package organism

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/vecf"
)

// World holds every live tree as an ark ECS entity carrying a Tree
// component and a CommandQueue component. Entities are the growth
// subsystem's only state; the grid cells they claim are mutated
// through Tree.Execute, not through the ECS world itself.
type World struct {
	world      *ecs.World
	mapper     *ecs.Map2[Tree, CommandQueue]
	queueMap   *ecs.Map1[CommandQueue]
	filter     ecs.Filter2[Tree, CommandQueue]
	nextTreeID uint32
}

// NewWorld constructs an empty organism world.
func NewWorld() *World {
	w := ecs.NewWorld()
	return &World{
		world:    w,
		mapper:   ecs.NewMap2[Tree, CommandQueue](w),
		queueMap: ecs.NewMap1[CommandQueue](w),
		filter:   *ecs.NewFilter2[Tree, CommandQueue](w),
	}
}

// Spawn creates a new tree entity rooted at seedPos and returns its
// entity handle. The caller is expected to have already placed a Seed
// cell at seedPos (e.g. via a ProduceSeed command from a parent tree).
func (w *World) Spawn(seedPos vecf.VecI, initialEnergy float64) ecs.Entity {
	w.nextTreeID++
	tree := *NewTree(w.nextTreeID, seedPos, initialEnergy)
	queue := CommandQueue{}
	return w.mapper.NewEntity(&tree, &queue)
}

// Enqueue appends a command to a tree's pending queue.
func (w *World) Enqueue(e ecs.Entity, cmd Command) {
	queue := w.queueMap.Get(e)
	queue.Pending = append(queue.Pending, cmd)
}

// Tick drains the head command from every tree's queue, executing it
// against g. Callers control cadence by how often they invoke Tick
// relative to each command's Duration (the queue does not self-pace).
func (w *World) Tick(g *gridsim.Grid) []Outcome {
	var outcomes []Outcome
	query := w.filter.Query()
	for query.Next() {
		tree, queue := query.Get()
		if len(queue.Pending) == 0 {
			continue
		}
		cmd := queue.Pending[0]
		queue.Pending = queue.Pending[1:]
		result := tree.Execute(g, cmd)
		outcomes = append(outcomes, Outcome{TreeID: tree.ID, Kind: cmd.Kind, Result: result})
	}
	return outcomes
}

// Outcome reports what happened when a scheduled command ran.
type Outcome struct {
	TreeID uint32
	Kind   Kind
	Result Result
}
