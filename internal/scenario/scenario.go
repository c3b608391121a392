// Package scenario builds the immutable-after-construction initial world
// state: unit placement in a named formation, team assignment, and
// battlefield dimensions.
package scenario

import "github.com/medievail/skirmish/internal/model"

// MinMapSize is the minimum battlefield dimension a scenario enforces.
const MinMapSize = 120.0

// Scenario is the fully-assembled initial world state a battle runs from.
type Scenario struct {
	Units  []*model.Unit
	UnitsA []*model.Unit
	UnitsB []*model.Unit
	SizeX  float64
	SizeY  float64
}

// New clamps sizeX/sizeY to MinMapSize and assembles the combined roster
// from unitsA/unitsB.
func New(unitsA, unitsB []*model.Unit, sizeX, sizeY float64) *Scenario {
	if sizeX < MinMapSize {
		sizeX = MinMapSize
	}
	if sizeY < MinMapSize {
		sizeY = MinMapSize
	}
	units := make([]*model.Unit, 0, len(unitsA)+len(unitsB))
	units = append(units, unitsA...)
	units = append(units, unitsB...)
	return &Scenario{Units: units, UnitsA: unitsA, UnitsB: unitsB, SizeX: sizeX, SizeY: sizeY}
}
