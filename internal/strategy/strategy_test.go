package strategy

import (
	"testing"

	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/orders"
)

// fakeRoster is a minimal Roster/SquadBuilder double backed by a per-unit
// orders.Manager map, enough to exercise Apply methods without a live
// General or engine.
type fakeRoster struct {
	units    []*model.Unit
	managers map[*model.Unit]*orders.Manager
	squadded map[*model.Unit]int
}

func newFakeRoster(units ...*model.Unit) *fakeRoster {
	return &fakeRoster{units: units, managers: make(map[*model.Unit]*orders.Manager), squadded: make(map[*model.Unit]int)}
}

func (f *fakeRoster) OrdersFor(u *model.Unit) *orders.Manager {
	m, ok := f.managers[u]
	if !ok {
		m = orders.NewManager()
		f.managers[u] = m
	}
	return m
}

func (f *fakeRoster) MyUnits() []*model.Unit { return f.units }

func (f *fakeRoster) GetSquad(unitType model.UnitType, count int, squadID int) []*model.Unit {
	var out []*model.Unit
	for _, u := range f.units {
		if len(out) >= count {
			break
		}
		if u.Type != unitType {
			continue
		}
		if _, already := f.squadded[u]; already {
			continue
		}
		f.squadded[u] = squadID
		out = append(out, u)
	}
	return out
}

func TestBrainDeadInstallsAttackOnSight(t *testing.T) {
	u := model.NewKnight(model.TeamA, "K", 0, 0)
	r := newFakeRoster(u)
	BrainDead().Apply(r, u)

	m := r.OrdersFor(u)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	if _, ok := m.Orders()[0].(*orders.AttackOnSight); !ok {
		t.Fatal("BrainDead should install an AttackOnSight order")
	}
}

func TestDaftInstallsAttackNearestOmniscient(t *testing.T) {
	u := model.NewKnight(model.TeamA, "K", 0, 0)
	r := newFakeRoster(u)
	Daft().Apply(r, u)

	if _, ok := r.OrdersFor(u).Orders()[0].(*orders.AttackNearestOmniscient); !ok {
		t.Fatal("Daft should install an AttackNearestOmniscient order")
	}
}

func TestSomeIQCoversAllThreeTypes(t *testing.T) {
	ts := SomeIQ()
	for _, typ := range []model.UnitType{model.Knight, model.Pikeman, model.Crossbowman} {
		if _, ok := ts[typ]; !ok {
			t.Errorf("SomeIQ() missing strategy for %v", typ)
		}
	}
}

func TestSomeIQCrossbowmanAvoidsKnightFirst(t *testing.T) {
	u := model.NewCrossbowman(model.TeamA, "C", 0, 0)
	r := newFakeRoster(u)
	SomeIQ()[model.Crossbowman].Apply(r, u)

	orderList := r.OrdersFor(u).Orders()
	if len(orderList) != 3 {
		t.Fatalf("got %d orders, want 3", len(orderList))
	}
	if _, ok := orderList[0].(*orders.Avoid); !ok {
		t.Fatal("SOMEIQ Crossbowman's first priority should be Avoid(Knight)")
	}
}

func TestRPCCycleFavoritesAndHated(t *testing.T) {
	rpc := RPC()
	cases := []struct {
		typ             model.UnitType
		favorite, hated model.UnitType
	}{
		{model.Knight, model.Crossbowman, model.Pikeman},
		{model.Crossbowman, model.Pikeman, model.Knight},
		{model.Pikeman, model.Knight, model.Crossbowman},
	}
	for _, c := range cases {
		s := rpc[c.typ].(simpleAttackBestAvoidWorst)
		if s.favorite != c.favorite || s.hated != c.hated {
			t.Errorf("%v: favorite/hated = %v/%v, want %v/%v", c.typ, s.favorite, s.hated, c.favorite, c.hated)
		}
	}
}

func TestNewSimpleAttackBestAvoidWorstPanicsOnEqualTypes(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when favorite == hated")
		}
	}()
	NewSimpleAttackBestAvoidWorst(model.Knight, model.Knight)
}

func TestSwitchToAttackAllFlushesAndReplaces(t *testing.T) {
	u := model.NewPikeman(model.TeamA, "P", 0, 0)
	r := newFakeRoster(u)
	_ = r.OrdersFor(u).Add(orders.NewAvoid(u, model.Knight), 0)

	SwitchToAttackAll(model.Pikeman).Apply(r)

	orderList := r.OrdersFor(u).Orders()
	if len(orderList) != 1 {
		t.Fatalf("got %d orders after depletion switch, want 1", len(orderList))
	}
	if _, ok := orderList[0].(*orders.AttackNearestOmniscient); !ok {
		t.Fatal("depletion handler should replace orders with AttackNearestOmniscient(ALL)")
	}
}

func TestSwitchToAttackAllIgnoresOtherTypes(t *testing.T) {
	u := model.NewKnight(model.TeamA, "K", 0, 0)
	r := newFakeRoster(u)
	_ = r.OrdersFor(u).Add(orders.NewAvoid(u, model.Crossbowman), 0)

	SwitchToAttackAll(model.Pikeman).Apply(r)

	if r.OrdersFor(u).Len() != 1 {
		t.Fatal("depletion handler should not touch units of an unlisted type")
	}
}

func TestSquadBuildSelectsUnclaimedUnitsOfType(t *testing.T) {
	k1 := model.NewKnight(model.TeamA, "K1", 0, 0)
	k2 := model.NewKnight(model.TeamA, "K2", 1, 0)
	p := model.NewPikeman(model.TeamA, "P", 2, 0)
	r := newFakeRoster(k1, k2, p)

	sq := Squad{UnitType: model.Knight, Count: 1, SquadID: 5}
	members := sq.Build(r)

	if len(members) != 1 || members[0] != k1 {
		t.Fatalf("Build() = %v, want [%v]", members, k1)
	}
}

func TestSquadApplyOrdersTagsSquadID(t *testing.T) {
	k := model.NewKnight(model.TeamA, "K", 0, 0)
	r := newFakeRoster(k)
	sq := Squad{UnitType: model.Knight, Count: 1, SquadID: 9}

	sq.ApplyOrders(r, []*model.Unit{k}, 0, func(u *model.Unit) orders.Order {
		return orders.NewMove(u, 1, 1)
	})

	o := r.OrdersFor(k).Orders()[0]
	if o.SquadID() == nil || *o.SquadID() != 9 {
		t.Fatal("ApplyOrders should tag the installed order with the squad id")
	}
}
