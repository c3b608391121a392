package general

import (
	"fmt"

	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/rng"
	"github.com/medievail/skirmish/internal/strategy"
	"github.com/medievail/skirmish/internal/strategy/neural"
)

// Names of the built-in general strategies the tournament and sweep drivers
// select by name.
const (
	BrainDeadName = "BRAINDEAD"
	DaftName      = "DAFT"
	SomeIQName    = "SOMEIQ"
	RPCName       = "RPC"
	RandomIQName  = "RANDOMIQ"
	NeuralIQName  = "NEURALIQ"
)

// AvailableGenerals lists every name NewNamed accepts, in the tournament
// driver's fixed order.
var AvailableGenerals = []string{BrainDeadName, DaftName, SomeIQName, RPCName, RandomIQName, NeuralIQName}

// NewNamed builds a General running the named built-in strategy. seed seeds
// any strategy that needs randomness (SOMEIQ's sacrifice start strategy,
// RANDOMIQ's per-unit strategy pick).
func NewNamed(name string, myUnits, enemyUnits []*model.Unit, host OrderHost, sizeX, sizeY float64, seed int64) (*General, error) {
	troopAll := func(ts strategy.TroopStrategy) map[model.UnitType]strategy.TroopStrategy {
		return map[model.UnitType]strategy.TroopStrategy{
			model.Knight:      ts,
			model.Pikeman:     ts,
			model.Crossbowman: ts,
		}
	}

	switch name {
	case BrainDeadName:
		return New(myUnits, enemyUnits, host, nil, troopAll(strategy.BrainDead()), nil), nil

	case DaftName:
		return New(myUnits, enemyUnits, host, nil, troopAll(strategy.Daft()), nil), nil

	case SomeIQName:
		start := strategy.SomeIQStart{Rand: rng.Seed(seed), EdgeX: sizeX, EdgeY: sizeY}
		depletion := map[model.UnitType]strategy.DepletionHandler{
			model.Knight:      strategy.SwitchToAttackAll(model.Pikeman, model.Crossbowman),
			model.Pikeman:     strategy.SwitchToAttackAll(model.Knight, model.Crossbowman),
			model.Crossbowman: strategy.SwitchToAttackAll(model.Knight, model.Pikeman),
		}
		return New(myUnits, enemyUnits, host, start, strategy.SomeIQ(), depletion), nil

	case RPCName:
		return New(myUnits, enemyUnits, host, nil, strategy.RPC(), nil), nil

	case RandomIQName:
		r := strategy.RandomIQ{Rand: rng.Seed(seed)}
		return New(myUnits, enemyUnits, host, nil, r.AsTroopStrategies(), nil), nil

	case NeuralIQName:
		return New(myUnits, enemyUnits, host, nil, neural.NewTroopStrategies(), nil), nil

	default:
		return nil, fmt.Errorf("general: unknown strategy name %q", name)
	}
}
