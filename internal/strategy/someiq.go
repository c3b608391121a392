package strategy

import (
	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/orders"
	"github.com/medievail/skirmish/internal/rng"
)

// SomeIQ returns the type-specialized SOMEIQ troop-strategy map; see
// DESIGN.md for the documented Pikeman variant decision.
func SomeIQ() map[model.UnitType]TroopStrategy {
	return map[model.UnitType]TroopStrategy{
		model.Crossbowman: someIQCrossbowman{},
		model.Knight:      someIQKnight{},
		model.Pikeman:     someIQPikeman{},
	}
}

type someIQCrossbowman struct{}

func (someIQCrossbowman) Apply(r Roster, u *model.Unit) {
	m := r.OrdersFor(u)
	_ = m.Add(orders.NewAvoid(u, model.Knight), 0)
	_ = m.Add(orders.NewAttackNearestOmniscient(u, model.Pikeman), 1)
	_ = m.Add(orders.NewAttackNearestOmniscient(u, model.All), 2)
}

type someIQKnight struct{}

func (someIQKnight) Apply(r Roster, u *model.Unit) {
	m := r.OrdersFor(u)
	_ = m.Add(orders.NewAttackNearestOmniscient(u, model.Crossbowman), 0)
	_ = m.Add(orders.NewAttackNearestOmniscient(u, model.All), 1)
}

type someIQPikeman struct{}

func (someIQPikeman) Apply(r Roster, u *model.Unit) {
	m := r.OrdersFor(u)
	_ = m.Add(orders.NewAttackNearestOmniscient(u, model.Knight), 0)
	_ = m.Add(orders.NewAttackNearestOmniscient(u, model.All), 1)
}

// SomeIQStart is the optional SOMEIQ start strategy: place a Sacrifice
// order at the enforce slot on one randomly chosen unit.
type SomeIQStart struct {
	Rand   *rng.Source
	EdgeX  float64
	EdgeY  float64
}

func (s SomeIQStart) Apply(r Roster) {
	units := r.MyUnits()
	if len(units) == 0 || s.Rand == nil {
		return
	}
	victim := units[s.Rand.Intn(len(units))]
	_ = r.OrdersFor(victim).Add(orders.NewSacrifice(victim, s.EdgeX, s.EdgeY), -1)
}

// RPC returns the rock-paper-counter troop-strategy map: each type attacks
// its favorite and avoids its hated type, cycling Knight->Crossbow,
// Crossbow->Pike, Pike->Knight.
func RPC() map[model.UnitType]TroopStrategy {
	return map[model.UnitType]TroopStrategy{
		model.Knight:      simpleAttackBestAvoidWorst{favorite: model.Crossbowman, hated: model.Pikeman},
		model.Crossbowman: simpleAttackBestAvoidWorst{favorite: model.Pikeman, hated: model.Knight},
		model.Pikeman:     simpleAttackBestAvoidWorst{favorite: model.Knight, hated: model.Crossbowman},
	}
}

type simpleAttackBestAvoidWorst struct {
	favorite, hated model.UnitType
}

// NewSimpleAttackBestAvoidWorst validates favorite != hated at construction
// and wires the generic Simple(favorite, hated) strategy used outside the
// fixed RPC cycle, e.g. by a tournament driver wanting a custom matchup.
func NewSimpleAttackBestAvoidWorst(favorite, hated model.UnitType) TroopStrategy {
	mustDistinct(favorite, hated)
	return simpleAttackBestAvoidWorst{favorite: favorite, hated: hated}
}

func (s simpleAttackBestAvoidWorst) Apply(r Roster, u *model.Unit) {
	m := r.OrdersFor(u)
	_ = m.Add(orders.NewAttackNearestOmniscient(u, s.favorite), 0)
	_ = m.Add(orders.NewAvoid(u, s.hated), 1)
	_ = m.Add(orders.NewAttackNearestOmniscient(u, model.All), 2)
}

// RandomIQ picks, per unit and at battle start, uniformly among the
// per-type strategies of BRAINDEAD, DAFT, and SOMEIQ.
type RandomIQ struct {
	Rand *rng.Source
}

func (s RandomIQ) PickFor(t model.UnitType) TroopStrategy {
	choices := []TroopStrategy{BrainDead(), Daft(), SomeIQ()[normalizeType(t)]}
	return choices[s.Rand.Intn(len(choices))]
}

func normalizeType(t model.UnitType) model.UnitType {
	switch t {
	case model.Knight, model.Pikeman, model.Crossbowman:
		return t
	default:
		return model.Knight
	}
}

type randomIQTroop struct{ parent RandomIQ }

func (s randomIQTroop) Apply(r Roster, u *model.Unit) { s.parent.PickFor(u.Type).Apply(r, u) }

// AsTroopStrategies adapts RandomIQ into a troop-strategy map keyed by the
// three concrete types, so it can be installed on a General the same way as
// BrainDead/Daft/SomeIQ/RPC.
func (s RandomIQ) AsTroopStrategies() map[model.UnitType]TroopStrategy {
	return map[model.UnitType]TroopStrategy{
		model.Knight:      randomIQTroop{parent: s},
		model.Pikeman:     randomIQTroop{parent: s},
		model.Crossbowman: randomIQTroop{parent: s},
	}
}

// SwitchToAttackAll builds the SOMEIQ depletion handler: when it fires,
// every remaining unit of the given target types has its orders flushed and
// switches to AttackNearestOmniscient(ALL).
type switchToAttackAll struct {
	targetTypes []model.UnitType
}

func SwitchToAttackAll(targetTypes ...model.UnitType) DepletionHandler {
	return switchToAttackAll{targetTypes: targetTypes}
}

func (h switchToAttackAll) Apply(r Roster) {
	want := make(map[model.UnitType]bool, len(h.targetTypes))
	for _, t := range h.targetTypes {
		want[t] = true
	}
	for _, u := range r.MyUnits() {
		if !want[u.Type] {
			continue
		}
		m := r.OrdersFor(u)
		m.Flush()
		_ = m.Add(orders.NewAttackNearestOmniscient(u, model.All), 0)
	}
}
