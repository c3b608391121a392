// Package general implements the per-side strategic controller: it owns a
// side's units, dispatches per-unit and per-side strategies, and tracks
// depletion of each concrete troop type.
package general

import (
	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/orders"
	"github.com/medievail/skirmish/internal/strategy"
)

// OrderHost is the engine-side surface a General needs: per-unit order
// managers. Defined here to avoid importing package engine (engine in turn
// does not need to know about General).
type OrderHost interface {
	OrdersFor(u *model.Unit) *orders.Manager
}

// General owns one side's live roster, the opposing side's observed
// roster, and the strategies that install orders on its units.
type General struct {
	myUnits    []*model.Unit
	enemyUnits []*model.Unit
	host       OrderHost

	startStrategy strategy.StartStrategy
	troopStrategy map[model.UnitType]strategy.TroopStrategy
	depletion     map[model.UnitType]strategy.DepletionHandler

	hasKnightsLeft      bool
	hasPikemenLeft      bool
	hasCrossbowmenLeft  bool
	nextSquadID         int
}

// New constructs a General. troopStrategy must be keyed by the three
// concrete UnitTypes; a nil startStrategy or depletion map is valid.
func New(myUnits, enemyUnits []*model.Unit, host OrderHost, startStrategy strategy.StartStrategy, troopStrategy map[model.UnitType]strategy.TroopStrategy, depletion map[model.UnitType]strategy.DepletionHandler) *General {
	return &General{
		myUnits:            myUnits,
		enemyUnits:         enemyUnits,
		host:               host,
		startStrategy:      startStrategy,
		troopStrategy:      troopStrategy,
		depletion:          depletion,
		hasKnightsLeft:     true,
		hasPikemenLeft:     true,
		hasCrossbowmenLeft: true,
	}
}

// MyUnits implements strategy.Roster.
func (g *General) MyUnits() []*model.Unit { return g.myUnits }

// OrdersFor implements strategy.Roster by delegating to the engine.
func (g *General) OrdersFor(u *model.Unit) *orders.Manager { return g.host.OrdersFor(u) }

// SetHost rebinds the engine-side order-manager registry this General
// dispatches to. Callers that build a General before the battle's engine
// exists (the tournament and sweep drivers, which construct generals to
// resolve a strategy name before runner.Run builds the engine) pass a nil
// host to New and call SetHost once the engine is available, before Begin.
func (g *General) SetHost(host OrderHost) { g.host = host }

// GetSquad implements strategy.SquadBuilder: selects up to count live units
// of unitType that are not already in a squad, tags them with squadID, and
// returns them.
func (g *General) GetSquad(unitType model.UnitType, count int, squadID int) []*model.Unit {
	var squad []*model.Unit
	for _, u := range g.myUnits {
		if len(squad) >= count {
			break
		}
		if u.Type != unitType || u.SquadID != nil || !u.Alive() {
			continue
		}
		id := squadID
		u.SquadID = &id
		squad = append(squad, u)
	}
	return squad
}

// NextSquadID hands out a fresh monotonically increasing squad id.
func (g *General) NextSquadID() int {
	id := g.nextSquadID
	g.nextSquadID++
	return id
}

// GetNumberOfEnemyType counts live enemy units of the given type, from the
// general's (read-only) observed roster.
func (g *General) GetNumberOfEnemyType(t model.UnitType) int {
	n := 0
	for _, u := range g.enemyUnits {
		if u.Alive() && u.Type == t {
			n++
		}
	}
	return n
}

// Begin runs the start strategy (if any) then installs the troop strategy
// on every live unit. Called once before the first tick.
func (g *General) Begin() {
	if g.startStrategy != nil {
		g.startStrategy.Apply(g)
	}
	for _, u := range g.myUnits {
		if !u.Alive() {
			continue
		}
		if ts, ok := g.troopStrategy[u.Type]; ok {
			ts.Apply(g, u)
		}
	}
}

// CreateOrders fires any depletion handler whose type has just dropped to
// zero live units on this side. Called once per tick.
func (g *General) CreateOrders() {
	g.fireIfDepleted(model.Knight, &g.hasKnightsLeft)
	g.fireIfDepleted(model.Pikeman, &g.hasPikemenLeft)
	g.fireIfDepleted(model.Crossbowman, &g.hasCrossbowmenLeft)
}

func (g *General) fireIfDepleted(t model.UnitType, flag *bool) {
	if !*flag {
		return
	}
	if g.countLive(t) > 0 {
		return
	}
	*flag = false
	if h, ok := g.depletion[t]; ok && h != nil {
		h.Apply(g)
	}
}

func (g *General) countLive(t model.UnitType) int {
	n := 0
	for _, u := range g.myUnits {
		if u.Alive() && u.Type == t {
			n++
		}
	}
	return n
}

// HasKnightsLeft, HasPikemenLeft, HasCrossbowmenLeft expose the three
// depletion flags for inspection and tests.
func (g *General) HasKnightsLeft() bool     { return g.hasKnightsLeft }
func (g *General) HasPikemenLeft() bool     { return g.hasPikemenLeft }
func (g *General) HasCrossbowmenLeft() bool { return g.hasCrossbowmenLeft }
