// Package orders implements the per-unit order list: a priority-ordered
// queue of one-tick orders and the concrete order variants that drive unit
// behavior. Orders call engine primitives; they never mutate engine state
// directly.
package orders

import "github.com/medievail/skirmish/internal/model"

// Engine is the subset of battle-engine operations an order may invoke.
// Defined here (rather than imported from package engine) to avoid an
// import cycle: engine iterates orders, orders call back into engine.
type Engine interface {
	MoveToward(u *model.Unit, x, y float64) bool
	MoveOneStepAngle(u *model.Unit, target *model.Unit, directionDegrees float64) bool
	Attack(attacker, target *model.Unit) bool
	PositionMatches(u *model.Unit, x, y float64) bool
	InSight(a, b *model.Unit) bool
	InReach(a, b *model.Unit) bool
	NearestEnemy(u *model.Unit, selector model.UnitType) *model.Unit
	NearestEnemyInSight(u *model.Unit, selector model.UnitType) *model.Unit
	NearestEnemyInReach(u *model.Unit, selector model.UnitType) *model.Unit
	NearestFriendlyInSight(u *model.Unit, selector model.UnitType) *model.Unit
	InDangerFrom(u *model.Unit, selector model.UnitType) bool
	Random() Randomizer
	MapSize() (float64, float64)
	IsLive(u *model.Unit) bool
}

// Randomizer is the per-battle random source the Engine exposes to orders.
// No order in this package draws from it; the bearing on exact-coincidence
// collisions is drawn inside the engine's own movement code.
type Randomizer interface {
	Float64() float64
}

// Order is a single behavioral directive attached to a unit. Try performs at
// most one atomic unit of progress and reports whether the order is done
// (true: remove it) or still active (false: keep it, try again next time
// it's reached).
type Order interface {
	// Try executes one tick's worth of this order's behavior.
	Try(e Engine) bool
	// Unit is the order's owner.
	Unit() *model.Unit
	// SquadID is the optional squad this order belongs to, or nil.
	SquadID() *int
	// String names the order for logging/debugging.
	String() string
}

// base is embedded by every concrete order to carry the owner and the
// optional squad tag without repeating the two accessor methods.
type base struct {
	unit    *model.Unit
	squadID *int
}

func (b *base) Unit() *model.Unit { return b.unit }
func (b *base) SquadID() *int     { return b.squadID }

// WithSquad tags an order with a squad id in place and returns it, so squad
// strategies can write `WithSquad(NewAttackOnSight(u, t), squadID)`.
func WithSquad(o Order, squadID int) Order {
	switch v := o.(type) {
	case *Move:
		v.squadID = &squadID
	case *MoveByStep:
		v.squadID = &squadID
	case *DontMove:
		v.squadID = &squadID
	case *AttackOnReach:
		v.squadID = &squadID
	case *AttackOnSight:
		v.squadID = &squadID
	case *AttackNearestOmniscient:
		v.squadID = &squadID
	case *Avoid:
		v.squadID = &squadID
	case *StayInFriendlySpace:
		v.squadID = &squadID
	case *StayInReach:
		v.squadID = &squadID
	case *Sacrifice:
		v.squadID = &squadID
	case *Formation:
		v.squadID = &squadID
	case *MoveTowardEnemyWithAttribute:
		v.squadID = &squadID
	}
	return o
}
