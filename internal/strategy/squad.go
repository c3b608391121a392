package strategy

import (
	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/orders"
)

// SquadBuilder is the subset of General a squad strategy needs beyond
// Roster: the ability to carve out a fixed-size group of one concrete type
// that is not already in a squad.
type SquadBuilder interface {
	Roster
	GetSquad(unitType model.UnitType, count int, squadID int) []*model.Unit
}

// Squad is a supplemental squad-based strategy: it carves out a fixed-size
// squad of one type and applies one order class to every member at a given
// priority, so the whole squad's orders can later be retracted in one call
// via OrderManager.RemoveSquadOrders.
type Squad struct {
	UnitType model.UnitType
	Count    int
	SquadID  int
}

// Build selects up to s.Count not-yet-squadded units of s.UnitType and tags
// them with s.SquadID.
func (s Squad) Build(r SquadBuilder) []*model.Unit {
	return r.GetSquad(s.UnitType, s.Count, s.SquadID)
}

// ApplyOrders installs one new() order per member at priority, tagged with
// the squad id so the whole squad's orders can be retracted together.
func (s Squad) ApplyOrders(r Roster, members []*model.Unit, priority int, newOrder func(u *model.Unit) orders.Order) {
	for _, u := range members {
		order := orders.WithSquad(newOrder(u), s.SquadID)
		_ = r.OrdersFor(u).Add(order, priority)
	}
}
