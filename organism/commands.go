package organism

import "github.com/latticesoup/latticesoup/vecf"

// Kind tags the closed set of growth commands a tree can be scheduled
// to execute. Deciding which kind to issue next belongs to the
// tree-brain collaborator; this package only knows how to run one.
type Kind uint8

const (
	KindGrowWood Kind = iota
	KindGrowLeaf
	KindGrowRoot
	KindReinforceCell
	KindProduceSeed
	KindWait
)

// Default execution_time_seconds and energy_cost per command kind.
const (
	growWoodSeconds  = 3.0
	growWoodEnergy   = 10.0
	growLeafSeconds  = 0.5
	growLeafEnergy   = 8.0
	growRootSeconds  = 2.0
	growRootEnergy   = 12.0
	reinforceSeconds = 0.5
	reinforceEnergy  = 5.0
	produceSeedSec   = 2.0
	produceSeedEnrgy = 50.0
	waitSeconds      = 0.2
)

// Command is a scheduled growth action targeting one grid cell. It is
// a tagged variant rather than an interface hierarchy: one struct
// shape, switched on Kind, matching the closed command set.
type Command struct {
	Kind     Kind
	Target   vecf.VecI
	Duration float64
	Energy   float64
}

// GrowWood schedules conversion of Target to Wood.
func GrowWood(target vecf.VecI) Command {
	return Command{Kind: KindGrowWood, Target: target, Duration: growWoodSeconds, Energy: growWoodEnergy}
}

// GrowLeaf schedules conversion of Target to Leaf.
func GrowLeaf(target vecf.VecI) Command {
	return Command{Kind: KindGrowLeaf, Target: target, Duration: growLeafSeconds, Energy: growLeafEnergy}
}

// GrowRoot schedules conversion of Target to Root.
func GrowRoot(target vecf.VecI) Command {
	return Command{Kind: KindGrowRoot, Target: target, Duration: growRootSeconds, Energy: growRootEnergy}
}

// ReinforceCell schedules a structural reinforcement of an
// already-owned cell (raises its effective cohesion; see Tree.Execute).
func ReinforceCell(target vecf.VecI) Command {
	return Command{Kind: KindReinforceCell, Target: target, Duration: reinforceSeconds, Energy: reinforceEnergy}
}

// ProduceSeed schedules placement of a new Seed cell.
func ProduceSeed(target vecf.VecI) Command {
	return Command{Kind: KindProduceSeed, Target: target, Duration: produceSeedSec, Energy: produceSeedEnrgy}
}

// Wait schedules an idle command consuming no energy, used by the
// brain to stall without issuing a structural change.
func Wait() Command {
	return Command{Kind: KindWait, Duration: waitSeconds}
}

// Result is the closed set of outcomes a command execution can report.
type Result uint8

const (
	ResultSuccess Result = iota
	ResultInsufficientEnergy
	ResultInvalidTarget
	ResultOutOfBounds
)

// String renders the result for logging.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultInsufficientEnergy:
		return "insufficient_energy"
	case ResultInvalidTarget:
		return "invalid_target"
	case ResultOutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}
