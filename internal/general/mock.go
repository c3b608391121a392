package general

import (
	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/strategy"
)

// NewMock builds a General with no start strategy and the DAFT troop
// strategy (AttackNearestOmniscient(ALL) at priority 0) on every type and no
// depletion handlers — the pure-mechanics controller the Lanchester
// parameter sweep uses on both sides.
func NewMock(myUnits, enemyUnits []*model.Unit, host OrderHost) *General {
	daft := strategy.Daft()
	troop := map[model.UnitType]strategy.TroopStrategy{
		model.Knight:      daft,
		model.Pikeman:     daft,
		model.Crossbowman: daft,
	}
	return New(myUnits, enemyUnits, host, nil, troop, nil)
}
