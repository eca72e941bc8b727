package physics

import (
	"math/rand"

	"github.com/latticesoup/latticesoup/config"
	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/vecf"
)

// MoveExecutor consumes the move queue, applying mass/COM/velocity
// mutations and classifying collisions (spec.md §4.12). It is the sole
// writer of the grid during the move-execution phase.
type MoveExecutor struct {
	grid *gridsim.Grid
	tun  *config.Tunables
	rng  *rand.Rand
}

// NewMoveExecutor constructs an executor bound to the grid, tunables,
// and a random source used to shuffle move order each tick.
func NewMoveExecutor(g *gridsim.Grid, tun *config.Tunables, rng *rand.Rand) *MoveExecutor {
	return &MoveExecutor{grid: g, tun: tun, rng: rng}
}

// EventCounts tallies collision classifications produced by one
// Execute call, feeding the scheduler's per-tick telemetry.
type EventCounts struct {
	Transfers        int
	Elastic          int
	Inelastic        int
	Absorption       int
	Fragmentation    int
	Reflections      int
	FragmentationLoss float64
}

// Execute applies every queued move in shuffled order, returning the
// blocked-transfer records produced along the way plus a tally of
// collision kinds for diagnostics.
func (m *MoveExecutor) Execute(moves []Move) ([]BlockedTransfer, EventCounts) {
	shuffled := make([]Move, len(moves))
	copy(shuffled, moves)
	m.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var blocked []BlockedTransfer
	var counts EventCounts
	for _, mv := range shuffled {
		if b, ok := m.applyOne(mv, &counts); ok {
			blocked = append(blocked, b)
		}
	}
	return blocked, counts
}

func (m *MoveExecutor) applyOne(mv Move, counts *EventCounts) (BlockedTransfer, bool) {
	source := m.grid.At(mv.FromX, mv.FromY)
	if source.IsEmpty() {
		return BlockedTransfer{}, false
	}

	target, inBounds := m.grid.TryAt(mv.ToX, mv.ToY)
	targetIsWall := inBounds && target.IsWall()

	speed := source.Velocity.Mag()
	energy := KineticEnergy(source.Material, source.Fill, speed)

	var targetMaterial material.Kind
	if inBounds {
		targetMaterial = target.Material
	}

	kind := Classify(source.Material, targetMaterial, energy, m.tun.FragmentationThreshold, !inBounds, targetIsWall)

	switch kind {
	case BoundaryReflection:
		counts.Reflections++
		m.reflect(mv, source)
		return BlockedTransfer{}, false

	case Fragmentation:
		counts.Fragmentation++
		preFill := source.Fill
		result, blocked := m.fragment(mv, source, target, energy)
		counts.FragmentationLoss += preFill - source.Fill
		return result, blocked

	case Elastic, Inelastic:
		if kind == Elastic {
			counts.Elastic++
		} else {
			counts.Inelastic++
		}
		return m.collide(mv, source, target, kind, energy)

	case Absorption:
		counts.Absorption++
		return m.transferMass(mv, source, target, true)

	default: // Transfer
		counts.Transfers++
		return m.transferMass(mv, source, target, false)
	}
}

// reflect negates the velocity component along the collision axis,
// scaled by elasticity_factor * material elasticity, and pins the
// source COM to the dead-zone edge to avoid immediate re-triggering.
func (m *MoveExecutor) reflect(mv Move, source *gridsim.Cell) {
	dx, dy := mv.ToX-mv.FromX, mv.ToY-mv.FromY

	effective := m.tun.ElasticityFactor * material.ElasticityOf(source.Material)

	if dx != 0 {
		source.Velocity.X = -source.Velocity.X * effective
		if dx > 0 {
			source.COM.X = comDeflectionThreshold
		} else {
			source.COM.X = -comDeflectionThreshold
		}
	}
	if dy != 0 {
		source.Velocity.Y = -source.Velocity.Y * effective
		if dy > 0 {
			source.COM.Y = comDeflectionThreshold
		} else {
			source.COM.Y = -comDeflectionThreshold
		}
	}
}

// fragment applies brittle-material mass loss proportional to excess
// energy above the fragmentation threshold; both cells lose mass to Air.
func (m *MoveExecutor) fragment(mv Move, source, target *gridsim.Cell, energy float64) (BlockedTransfer, bool) {
	excess := energy - m.tun.FragmentationThreshold
	if excess < 0 {
		excess = 0
	}
	const fragmentLossScale = 0.02
	loss := clamp(excess*fragmentLossScale, 0, source.Fill)

	source.RemoveMaterial(loss)
	if target != nil && !target.IsEmpty() {
		targetLoss := clamp(excess*fragmentLossScale, 0, target.Fill)
		target.RemoveMaterial(targetLoss)
	}

	return BlockedTransfer{
		FromX: mv.FromX, FromY: mv.FromY,
		ToX: mv.ToX, ToY: mv.ToY,
		Velocity: source.Velocity,
		Energy:   energy,
	}, true
}

// collide applies a 1D elastic/inelastic exchange along the collision
// normal, then transfers the mass that actually fits.
func (m *MoveExecutor) collide(mv Move, source, target *gridsim.Cell, kind CollisionKind, energy float64) (BlockedTransfer, bool) {
	normal := vecf.Vec{X: float64(mv.ToX - mv.FromX), Y: float64(mv.ToY - mv.FromY)}.Normalize()

	restitution := InelasticRestitution
	if kind == Elastic {
		restitution = m.tun.ElasticityFactor * material.ElasticityOf(source.Material)
	}

	sourceSpeedAlongNormal := source.Velocity.Dot(normal)
	targetSpeedAlongNormal := target.Velocity.Dot(normal)
	exchange := (sourceSpeedAlongNormal - targetSpeedAlongNormal) * restitution

	source.Velocity = source.Velocity.Sub(normal.Scale(exchange))
	target.Velocity = target.Velocity.Add(normal.Scale(exchange))

	return m.transferMass(mv, source, target, false)
}

// transferMass applies the actual mass/COM/velocity mutation described
// in spec.md §4.12 steps 2, 5-7. When blocked (no room), it returns a
// BlockedTransfer record instead.
func (m *MoveExecutor) transferMass(mv Move, source, target *gridsim.Cell, absorb bool) (BlockedTransfer, bool) {
	requested := requestedAmount(source, mv)
	amount := requested
	if amount > source.Fill {
		amount = source.Fill
	}
	if amount > 1-target.Fill {
		amount = 1 - target.Fill
	}

	speed := source.Velocity.Mag()
	energy := KineticEnergy(source.Material, source.Fill, speed)

	if amount <= 0 {
		return BlockedTransfer{
			FromX: mv.FromX, FromY: mv.FromY,
			ToX: mv.ToX, ToY: mv.ToY,
			Velocity: source.Velocity,
			Energy:   energy,
		}, true
	}

	sourceOldFill := source.Fill
	sourceOldVelocity := source.Velocity
	wasEmpty := target.IsEmpty()
	sourceMaterial := source.Material
	sameMaterial := wasEmpty || target.Material == sourceMaterial

	// Absorption explicitly merges differing materials (spec.md §4.11:
	// "water is consumed, target fill grows"), bypassing AddMaterial's
	// same-material guard. Every other collision kind respects that
	// guard: a mismatched Elastic/Inelastic collision bounces without
	// actually merging mass, which AddMaterial's rejection already
	// expresses correctly (spec.md §4.13 "a cell refusing a material
	// because of type mismatch" -> blocked record).
	mergeAsAbsorption := absorb && !wasEmpty && !sameMaterial

	actuallyAdded := amount
	if !sameMaterial && !mergeAsAbsorption {
		actuallyAdded = 0
	}

	if actuallyAdded <= 0 {
		return BlockedTransfer{
			FromX: mv.FromX, FromY: mv.FromY,
			ToX: mv.ToX, ToY: mv.ToY,
			Velocity: sourceOldVelocity,
			Energy:   energy,
		}, true
	}

	projectedCOM := projectTargetCOM(source.COM, mv)

	source.RemoveMaterial(actuallyAdded)
	if mergeAsAbsorption {
		target.Fill += actuallyAdded
		if target.Fill > 1 {
			target.Fill = 1
		}
	} else {
		target.AddMaterial(sourceMaterial, actuallyAdded)
	}

	if wasEmpty {
		target.COM = projectedCOM
		target.Velocity = sourceOldVelocity
	} else {
		totalMass := target.Fill
		oldMass := totalMass - actuallyAdded
		if totalMass > 0 {
			target.COM = target.COM.Scale(oldMass / totalMass).Add(projectedCOM.Scale(actuallyAdded / totalMass))
		}
	}

	if !source.IsEmpty() && sourceOldFill > 0 {
		retreat := 1 - actuallyAdded/sourceOldFill
		if retreat < 0 {
			retreat = 0
		}
		source.COM = source.COM.Scale(retreat)
	}

	return BlockedTransfer{}, false
}

func requestedAmount(source *gridsim.Cell, mv Move) float64 {
	return source.Fill
}

// projectTargetCOM projects the source's COM into the target cell's
// coordinate frame along the move's axis.
func projectTargetCOM(sourceCOM vecf.Vec, mv Move) vecf.Vec {
	dx, dy := mv.ToX-mv.FromX, mv.ToY-mv.FromY
	result := sourceCOM
	if dx != 0 {
		result.X = ProjectedTargetCOM(sourceCOM.X)
	}
	if dy != 0 {
		result.Y = ProjectedTargetCOM(sourceCOM.Y)
	}
	return result
}
