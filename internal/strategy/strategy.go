// Package strategy implements the troop-strategy / start-strategy /
// depletion-handler hierarchy that installs orders on units, plus the named
// built-in strategies the tournament and sweep drivers refer to by name.
package strategy

import (
	"fmt"

	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/orders"
)

// Roster is the subset of General a strategy needs: its own live units and
// access to each unit's order manager. Defined here (not imported from
// package general) to avoid an import cycle — general installs strategies,
// strategies never need the rest of General's surface.
type Roster interface {
	OrdersFor(u *model.Unit) *orders.Manager
	MyUnits() []*model.Unit
}

// TroopStrategy maps (roster, unit) -> side effect: install one or more
// orders on that unit. Strategies parameterized by a favorite and a hated
// type (RPC, NewSimpleAttackBestAvoidWorst) keep them as private fields;
// NewSimpleAttackBestAvoidWorst panics if the two are equal.
type TroopStrategy interface {
	Apply(r Roster, u *model.Unit)
}

// StartStrategy maps roster -> side effect: one-time order installation at
// battle start, often at the enforce slot.
type StartStrategy interface {
	Apply(r Roster)
}

// DepletionHandler is invoked once when a type's live count on this side
// drops to zero.
type DepletionHandler interface {
	Apply(r Roster)
}

// mustDistinct panics with a configuration error if favorite == hated.
// It runs at strategy construction, so the panic happens before any battle
// starts, never mid-battle; nothing in this module recovers it.
func mustDistinct(favorite, hated model.UnitType) {
	if favorite == hated {
		panic(fmt.Sprintf("strategy: favorite type %s equals hated type %s", favorite, hated))
	}
}

// braindead gives every unit AttackOnSight(selector) at priority 0.
type braindead struct{ selector model.UnitType }

// BrainDead builds the BRAINDEAD troop strategy: every unit of any type gets
// AttackOnSight(ALL) at priority 0, no start strategy.
func BrainDead() TroopStrategy { return braindead{selector: model.All} }

func (s braindead) Apply(r Roster, u *model.Unit) {
	_ = r.OrdersFor(u).Add(orders.NewAttackOnSight(u, s.selector), 0)
}

// daft gives every unit AttackNearestOmniscient(selector) at priority 0.
type daft struct{ selector model.UnitType }

// Daft builds the DAFT troop strategy: every unit of any type gets
// AttackNearestOmniscient(ALL) at priority 0, no start strategy.
func Daft() TroopStrategy { return daft{selector: model.All} }

func (s daft) Apply(r Roster, u *model.Unit) {
	_ = r.OrdersFor(u).Add(orders.NewAttackNearestOmniscient(u, s.selector), 0)
}
