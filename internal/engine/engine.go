// Package engine owns the authoritative battle world state: unit rosters,
// spatial queries, movement with collision, attack resolution, reload
// bookkeeping, and the tick loop itself. Orders call back into it; it never
// calls into the order/strategy/general layers.
package engine

import (
	"math"

	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/orders"
	"github.com/medievail/skirmish/internal/rng"
	"github.com/rs/zerolog"
)

var _ orders.Engine = (*Engine)(nil)

// DefaultTicksPerSecond is the time unit for reload bookkeeping,
// independent of wall-clock pacing.
const DefaultTicksPerSecond = 5.0

// DefaultTickCap bounds an unlocked (batch) battle's runtime: 1200 ticks is
// enough for tournaments/sweeps run outside the timed display loop. Timed
// battles instead use tickSpeed*240 (see Finished).
const DefaultTickCap = 1200

// Engine holds the live battlefield: every unit still in play, indexed by
// team, plus the set of units currently mid-reload.
type Engine struct {
	SizeX, SizeY float64

	units      []*model.Unit
	unitsA     []*model.Unit
	unitsB     []*model.Unit
	reloading  map[*model.Unit]struct{}
	asMoved    bool
	tick       int
	tickSpeed  float64
	unlocked   bool
	tickCap    int
	rng        *rng.Source
	log        zerolog.Logger
	managers   map[*model.Unit]*orders.Manager
}

// New builds an engine over the given rosters. unitsA/unitsB must alias the
// same unit pointers the scenario's generals observe.
func New(sizeX, sizeY float64, unitsA, unitsB []*model.Unit, tickSpeed float64, unlocked bool, seed int64, log zerolog.Logger) *Engine {
	all := make([]*model.Unit, 0, len(unitsA)+len(unitsB))
	all = append(all, unitsA...)
	all = append(all, unitsB...)
	tickCap := DefaultTickCap
	if !unlocked {
		tickCap = int(tickSpeed * 240)
	}
	return &Engine{
		SizeX:     sizeX,
		SizeY:     sizeY,
		units:     all,
		unitsA:    unitsA,
		unitsB:    unitsB,
		reloading: make(map[*model.Unit]struct{}),
		tickSpeed: tickSpeed,
		unlocked:  unlocked,
		tickCap:   tickCap,
		rng:       rng.Seed(seed),
		log:       log,
		managers:  make(map[*model.Unit]*orders.Manager),
	}
}

// OrdersFor returns the order manager owned by u, creating an empty one on
// first access. Order managers live in the engine (not on Unit itself) so
// the unit model stays free of an import on the orders package.
func (e *Engine) OrdersFor(u *model.Unit) *orders.Manager {
	m, ok := e.managers[u]
	if !ok {
		m = orders.NewManager()
		e.managers[u] = m
	}
	return m
}

// Tick returns the current tick counter.
func (e *Engine) Tick() int { return e.tick }

// Unlocked reports whether this engine runs in batch (no-sleep) mode.
func (e *Engine) Unlocked() bool { return e.unlocked }

// TickSpeed returns the configured ticks-per-second pacing.
func (e *Engine) TickSpeed() float64 { return e.tickSpeed }

// UnitsA / UnitsB expose the live rosters (read-only by convention; callers
// must not mutate the slices).
func (e *Engine) UnitsA() []*model.Unit { return e.unitsA }
func (e *Engine) UnitsB() []*model.Unit { return e.unitsB }
func (e *Engine) Units() []*model.Unit  { return e.units }

// Random exposes the engine's per-battle random source to orders.
func (e *Engine) Random() orders.Randomizer { return e.rng }

// MapSize returns the battlefield dimensions.
func (e *Engine) MapSize() (float64, float64) { return e.SizeX, e.SizeY }

// Distance is the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// PositionMatches reports whether u's position is within u.Speed/2 of
// (x, y) on both axes.
func (e *Engine) PositionMatches(u *model.Unit, x, y float64) bool {
	tol := u.Speed / 2
	return math.Abs(u.X-x) <= tol && math.Abs(u.Y-y) <= tol
}

func surfaceDistance(a, b *model.Unit) float64 {
	return Distance(a.X, a.Y, b.X, b.Y) - a.Size - b.Size
}

// InSight reports whether b is within a's sight radius, measured surface
// to surface.
func (e *Engine) InSight(a, b *model.Unit) bool {
	return surfaceDistance(a, b) <= a.Sight
}

// InReach reports whether b is within a's attack range, measured surface to
// surface.
func (e *Engine) InReach(a, b *model.Unit) bool {
	return surfaceDistance(a, b) <= a.Range
}

// InDangerFrom reports whether a selector-matching enemy is within sight of
// u AND within that enemy's own attack range of u — the predicate Avoid is
// built on.
func (e *Engine) InDangerFrom(u *model.Unit, selector model.UnitType) bool {
	for _, enemy := range e.opposingRoster(u) {
		if !selector.Matches(enemy.Type) {
			continue
		}
		if e.InSight(u, enemy) && e.InReach(enemy, u) {
			return true
		}
	}
	return false
}

// IsLive reports whether u is still present in the live rosters.
func (e *Engine) IsLive(u *model.Unit) bool {
	if u == nil {
		return false
	}
	return u.Alive()
}

func (e *Engine) opposingRoster(u *model.Unit) []*model.Unit {
	if u.Team == model.TeamA {
		return e.unitsB
	}
	return e.unitsA
}

func (e *Engine) ownRoster(u *model.Unit) []*model.Unit {
	if u.Team == model.TeamA {
		return e.unitsA
	}
	return e.unitsB
}

func nearest(u *model.Unit, roster []*model.Unit, selector model.UnitType, filter func(a, b *model.Unit) bool) *model.Unit {
	var best *model.Unit
	bestDist := math.Inf(1)
	for _, cand := range roster {
		if cand == u || !cand.Alive() {
			continue
		}
		if !selector.Matches(cand.Type) {
			continue
		}
		if filter != nil && !filter(u, cand) {
			continue
		}
		d := Distance(u.X, u.Y, cand.X, cand.Y)
		if d < bestDist {
			bestDist = d
			best = cand
		}
	}
	return best
}

// NearestEnemy scans the opposing team's live roster for the nearest unit
// matching selector, with no sight filter.
func (e *Engine) NearestEnemy(u *model.Unit, selector model.UnitType) *model.Unit {
	return nearest(u, e.opposingRoster(u), selector, nil)
}

// NearestEnemyInSight is NearestEnemy filtered by InSight.
func (e *Engine) NearestEnemyInSight(u *model.Unit, selector model.UnitType) *model.Unit {
	return nearest(u, e.opposingRoster(u), selector, func(a, b *model.Unit) bool { return e.InSight(a, b) })
}

// NearestEnemyInReach is NearestEnemy filtered by InReach.
func (e *Engine) NearestEnemyInReach(u *model.Unit, selector model.UnitType) *model.Unit {
	return nearest(u, e.opposingRoster(u), selector, func(a, b *model.Unit) bool { return e.InReach(a, b) })
}

// NearestFriendlyInSight is the same-team symmetric query.
func (e *Engine) NearestFriendlyInSight(u *model.Unit, selector model.UnitType) *model.Unit {
	return nearest(u, e.ownRoster(u), selector, func(a, b *model.Unit) bool { return e.InSight(a, b) })
}

// MoveToward advances u at most u.Speed toward (x, y), resolving collisions
// against every other live unit by tangent placement, clamping to the map
// bounds. Returns false always (the contract mirrors the Python source:
// callers check PositionMatches separately to learn of completion).
func (e *Engine) MoveToward(u *model.Unit, targetX, targetY float64) bool {
	dx := targetX - u.X
	dy := targetY - u.Y
	distToTarget := Distance(targetX, targetY, u.X, u.Y)

	finalX, finalY := u.X, u.Y

	if distToTarget > 0 {
		moveDist := math.Min(u.Speed, distToTarget)
		moveX := (dx / distToTarget) * moveDist
		moveY := (dy / distToTarget) * moveDist

		newX := u.X + moveX
		newY := u.Y + moveY

		collided := false
		for _, other := range e.units {
			if other == u || !other.Alive() {
				continue
			}
			dist := Distance(newX, newY, other.X, other.Y)
			minDist := u.Size + other.Size
			if dist < minDist {
				collided = true
				if dist > 0 {
					ux := (newX - other.X) / dist
					uy := (newY - other.Y) / dist
					finalX = other.X + ux*minDist
					finalY = other.Y + uy*minDist
				} else {
					angle := e.rng.Float64() * 2 * math.Pi
					finalX = other.X + math.Cos(angle)*minDist
					finalY = other.Y + math.Sin(angle)*minDist
				}
				break
			}
		}

		if !collided {
			finalX = newX
			finalY = newY
		}

		finalX = math.Max(0, math.Min(finalX, e.SizeX))
		finalY = math.Max(0, math.Min(finalY, e.SizeY))

		u.DistanceMoved += Distance(u.X, u.Y, finalX, finalY)
		u.X = finalX
		u.Y = finalY
		e.asMoved = true
	}
	return false
}

// MoveOneStepAngle computes the bearing from u to target, offsets it by
// directionDegrees, and moves u one step of length u.Speed along that
// bearing.
func (e *Engine) MoveOneStepAngle(u, target *model.Unit, directionDegrees float64) bool {
	angleToTarget := math.Atan2(target.Y-u.Y, target.X-u.X)
	moveAngle := angleToTarget + directionDegrees*math.Pi/180

	moveX := math.Cos(moveAngle) * u.Speed
	moveY := math.Sin(moveAngle) * u.Speed

	return e.MoveToward(u, u.X+moveX, u.Y+moveY)
}

// Attack resolves an attack from attacker against target: precondition is
// attacker.CanAttack() AND InReach(attacker, target). Damage per kind is
// max(0, attacker.Attack[k] - target.Armor[k]) (armor defaults to 0 for a
// kind target does not carry), summed across attacker's kinds, multiplied by
// the elevation modifier (currently fixed at 1.0, a hook for future terrain
// support) and attacker.Accuracy, floored at 1. Returns true iff the attack
// occurred.
func (e *Engine) Attack(attacker, target *model.Unit) bool {
	if !attacker.CanAttack() || !e.InReach(attacker, target) {
		return false
	}

	const elevationModifier = 1.0
	var baseDamage float64
	for kind, value := range attacker.Attack {
		baseDamage += math.Max(0, value-target.Armor[kind])
	}
	damage := math.Max(1, baseDamage*elevationModifier*attacker.Accuracy)

	target.HP -= damage
	if target.HP <= 0 {
		e.removeUnit(target)
		e.log.Debug().Str("unit", target.Name).Msg("unit died")
	}

	attacker.PerformAttack()
	e.reloading[attacker] = struct{}{}
	attacker.DamageDealt += damage
	return true
}

func (e *Engine) removeUnit(target *model.Unit) {
	e.units = removeFromSlice(e.units, target)
	if target.Team == model.TeamA {
		e.unitsA = removeFromSlice(e.unitsA, target)
	} else {
		e.unitsB = removeFromSlice(e.unitsB, target)
	}
}

func removeFromSlice(s []*model.Unit, target *model.Unit) []*model.Unit {
	for i, u := range s {
		if u == target {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// TickReloads decrements reload-remaining by dt for every attacker still in
// the reloading set, removing it once it reaches zero.
func (e *Engine) TickReloads(dt float64) {
	for u := range e.reloading {
		u.UpdateReload(dt)
		if u.CanAttack() {
			delete(e.reloading, u)
		}
	}
}

// Finished reports whether the battle has reached a terminal state:
// team-A empty, team-B empty, or the tick cap fired.
func (e *Engine) Finished() bool {
	if len(e.unitsA) == 0 || len(e.unitsB) == 0 {
		return true
	}
	return e.tick >= e.tickCap
}

// Winner computes the terminal outcome: "A" iff team A is non-empty and
// team B is empty, "B" symmetrically, else "draw".
func (e *Engine) Winner() string {
	aAlive := len(e.unitsA) > 0
	bAlive := len(e.unitsB) > 0
	switch {
	case aAlive && !bAlive:
		return "A"
	case bAlive && !aAlive:
		return "B"
	default:
		return "draw"
	}
}

// ShuffleUnits performs the per-tick uniform permutation of the global live
// roster and returns the shuffled slice. A fresh copy is returned so callers
// may safely remove units while iterating.
func (e *Engine) ShuffleUnits() []*model.Unit {
	shuffled := make([]*model.Unit, len(e.units))
	copy(shuffled, e.units)
	e.rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled
}

// AdvanceTick increments the tick counter and advances reload timers by one
// simulated reload unit.
func (e *Engine) AdvanceTick() {
	e.TickReloads(1.0 / DefaultTicksPerSecond)
	e.tick++
}
