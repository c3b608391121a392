// Package model defines the unit data model: stat blocks, position, and the
// bookkeeping every unit carries through a battle.
package model

import "fmt"

// Team is the two-sided affiliation tag. A unit belongs to exactly one team
// for the lifetime of a battle.
type Team int

const (
	TeamA Team = iota
	TeamB
)

func (t Team) String() string {
	if t == TeamA {
		return "A"
	}
	return "B"
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// UnitType is the closed enum of concrete troop types plus the two query
// selectors ALL and NONE. ALL and NONE are never assigned to a Unit; they
// only appear as selector arguments to spatial queries and orders.
type UnitType int

const (
	Knight UnitType = iota
	Pikeman
	Crossbowman
	All
	None
)

func (t UnitType) String() string {
	switch t {
	case Knight:
		return "Knight"
	case Pikeman:
		return "Pikeman"
	case Crossbowman:
		return "Crossbowman"
	case All:
		return "ALL"
	case None:
		return "NONE"
	default:
		return "Unknown"
	}
}

// Matches reports whether a concrete unit type satisfies this selector.
// ALL matches any concrete type, NONE matches nothing, and a concrete type
// only matches itself.
func (selector UnitType) Matches(concrete UnitType) bool {
	switch selector {
	case All:
		return true
	case None:
		return false
	default:
		return selector == concrete
	}
}

// DamageKind keys an attack or armor value, e.g. "Melee", "Pierce",
// "AntiCavalry".
type DamageKind string

// ID is a stable identifier for a unit, distinct from any pointer or slice
// index so that a dead unit's old identity can never be confused with a
// unit later allocated at the same memory address.
type ID uint64

// Unit is a single combatant: stat block, live position, reload timer, and
// cumulative bookkeeping. A Unit is exclusively owned by its team's roster;
// the battlefield-wide roster (Engine) holds the same pointers for
// iteration, never a copy.
type Unit struct {
	ID   ID
	Name string
	Team Team
	Type UnitType

	X, Y float64

	MaxHP float64
	HP    float64

	Armor  map[DamageKind]float64
	Attack map[DamageKind]float64

	Range float64
	Sight float64
	Size  float64
	Speed float64

	Accuracy   float64
	ReloadTime float64
	Reload     float64

	SquadID *int

	DamageDealt   float64
	DistanceMoved float64
}

// Alive reports whether the unit still has positive HP.
func (u *Unit) Alive() bool {
	return u.HP > 0
}

// CanAttack reports whether the unit's reload timer has elapsed.
func (u *Unit) CanAttack() bool {
	return u.Reload <= 0
}

// UpdateReload decrements the reload timer by dt, floored at zero. The
// engine passes 1/DefaultTicksPerSecond per tick, so dt and ReloadTime are
// in simulated seconds, not ticks.
func (u *Unit) UpdateReload(dt float64) {
	u.Reload -= dt
	if u.Reload < 0 {
		u.Reload = 0
	}
}

// PerformAttack resets the reload timer to ReloadTime.
func (u *Unit) PerformAttack() {
	u.Reload = u.ReloadTime
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s(%s %s @ %.1f,%.1f hp=%.1f)", u.Name, u.Team, u.Type, u.X, u.Y, u.HP)
}
