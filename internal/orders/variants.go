package orders

import (
	"fmt"
	"math"

	"github.com/medievail/skirmish/internal/model"
)

// Move drives the unit toward a fixed point; completes when the unit's
// position matches the target.
type Move struct {
	base
	X, Y float64
}

func NewMove(u *model.Unit, x, y float64) *Move { return &Move{base: base{unit: u}, X: x, Y: y} }

func (m *Move) Try(e Engine) bool {
	if e.PositionMatches(m.unit, m.X, m.Y) {
		return true
	}
	e.MoveToward(m.unit, m.X, m.Y)
	return e.PositionMatches(m.unit, m.X, m.Y)
}

func (m *Move) String() string { return fmt.Sprintf("Move(%.1f,%.1f)", m.X, m.Y) }

// MoveByStep performs n stepped moves along a fixed world-space angle,
// decrementing the remaining-step count on every successful step.
type MoveByStep struct {
	base
	DirectionDegrees float64
	Remaining        int
}

func NewMoveByStep(u *model.Unit, n int, directionDegrees float64) *MoveByStep {
	return &MoveByStep{base: base{unit: u}, DirectionDegrees: directionDegrees, Remaining: n}
}

func (m *MoveByStep) Try(e Engine) bool {
	if m.Remaining <= 0 {
		return true
	}
	// Step "away from nothing": treat the unit's own current position as
	// the pivot by stepping toward itself offset by the fixed angle, i.e.
	// a pure bearing walk. MoveOneStepAngle needs a target to compute the
	// base bearing from; self-targeting with offset 0 plus our own
	// DirectionDegrees reproduces a fixed world-space angle walk.
	e.MoveOneStepAngle(m.unit, m.unit, m.DirectionDegrees)
	m.Remaining--
	return m.Remaining <= 0
}

func (m *MoveByStep) String() string {
	return fmt.Sprintf("MoveByStep(remaining=%d,dir=%.1f)", m.Remaining, m.DirectionDegrees)
}

// DontMove emits alternating zero-net movements (a toggled sign that cancels
// itself every other tick) and decrements a remaining-invocation counter.
// Deliberately an observable no-op with a counter, not a true stay-put.
type DontMove struct {
	base
	Remaining int
	sign      float64
}

func NewDontMove(u *model.Unit, n int) *DontMove {
	return &DontMove{base: base{unit: u}, Remaining: n, sign: 1}
}

const dontMoveJitter = 1e-9

func (m *DontMove) Try(e Engine) bool {
	if m.Remaining <= 0 {
		return true
	}
	// Nudge by a sign-toggled epsilon so consecutive invocations cancel in
	// pairs; this is the Python source's "fake movement" preserved as-is.
	e.MoveToward(m.unit, m.unit.X+m.sign*dontMoveJitter, m.unit.Y)
	m.sign = -m.sign
	m.Remaining--
	return m.Remaining <= 0
}

func (m *DontMove) String() string { return fmt.Sprintf("DontMove(remaining=%d)", m.Remaining) }

// AttackOnReach attacks an enemy matching selector if one is within attack
// range; never completes.
type AttackOnReach struct {
	base
	Selector model.UnitType
}

func NewAttackOnReach(u *model.Unit, selector model.UnitType) *AttackOnReach {
	return &AttackOnReach{base: base{unit: u}, Selector: selector}
}

func (o *AttackOnReach) Try(e Engine) bool {
	target := e.NearestEnemyInReach(o.unit, o.Selector)
	if target == nil {
		return false
	}
	if o.unit.CanAttack() {
		e.Attack(o.unit, target)
	}
	return false
}

func (o *AttackOnReach) String() string { return fmt.Sprintf("AttackOnReach(%s)", o.Selector) }

// AttackOnSight finds the nearest enemy of selector within sight; attacks if
// in range, otherwise steps one move toward it. Never completes.
type AttackOnSight struct {
	base
	Selector model.UnitType
}

func NewAttackOnSight(u *model.Unit, selector model.UnitType) *AttackOnSight {
	return &AttackOnSight{base: base{unit: u}, Selector: selector}
}

func (o *AttackOnSight) Try(e Engine) bool {
	target := e.NearestEnemyInSight(o.unit, o.Selector)
	if target == nil {
		return false
	}
	if e.InReach(o.unit, target) && o.unit.CanAttack() {
		e.Attack(o.unit, target)
	} else {
		e.MoveToward(o.unit, target.X, target.Y)
	}
	return false
}

func (o *AttackOnSight) String() string { return fmt.Sprintf("AttackOnSight(%s)", o.Selector) }

// AttackNearestOmniscient behaves like AttackOnSight but ignores the sight
// radius entirely, scanning the whole opposing roster. Never completes.
type AttackNearestOmniscient struct {
	base
	Selector model.UnitType
}

func NewAttackNearestOmniscient(u *model.Unit, selector model.UnitType) *AttackNearestOmniscient {
	return &AttackNearestOmniscient{base: base{unit: u}, Selector: selector}
}

func (o *AttackNearestOmniscient) Try(e Engine) bool {
	target := e.NearestEnemy(o.unit, o.Selector)
	if target == nil {
		return false
	}
	if e.InReach(o.unit, target) && o.unit.CanAttack() {
		e.Attack(o.unit, target)
	} else {
		e.MoveToward(o.unit, target.X, target.Y)
	}
	return false
}

func (o *AttackNearestOmniscient) String() string {
	return fmt.Sprintf("AttackNearestOmniscient(%s)", o.Selector)
}

// Avoid steps directly away from a selector-matching enemy when that enemy
// is within sight AND within its own attack range of this unit. Never
// completes; performs no motion when no such enemy exists.
type Avoid struct {
	base
	Selector model.UnitType
}

func NewAvoid(u *model.Unit, selector model.UnitType) *Avoid {
	return &Avoid{base: base{unit: u}, Selector: selector}
}

func (o *Avoid) Try(e Engine) bool {
	if !e.InDangerFrom(o.unit, o.Selector) {
		return false
	}
	threat := e.NearestEnemyInSight(o.unit, o.Selector)
	if threat == nil {
		return false
	}
	e.MoveOneStepAngle(o.unit, threat, 180)
	return false
}

func (o *Avoid) String() string { return fmt.Sprintf("Avoid(%s)", o.Selector) }

// StayInFriendlySpace does nothing while a selector-matching friendly is
// within sight. Otherwise it moves the unit toward the nearest friendly of
// any type that is within sight; friendlies out of sight are not
// considered, so with no friendly in sight it does nothing. Never completes.
type StayInFriendlySpace struct {
	base
	Selector model.UnitType
}

func NewStayInFriendlySpace(u *model.Unit, selector model.UnitType) *StayInFriendlySpace {
	return &StayInFriendlySpace{base: base{unit: u}, Selector: selector}
}

func (o *StayInFriendlySpace) Try(e Engine) bool {
	if e.NearestFriendlyInSight(o.unit, o.Selector) != nil {
		return false
	}
	nearest := e.NearestFriendlyInSight(o.unit, model.All)
	if nearest == nil {
		return false
	}
	e.MoveToward(o.unit, nearest.X, nearest.Y)
	return false
}

func (o *StayInFriendlySpace) String() string {
	return fmt.Sprintf("StayInFriendlySpace(%s)", o.Selector)
}

// StayInReach moves toward a fixed target unit whenever it falls out of
// reach. Never completes; resolves to inactive (false, no motion) if the
// target has died.
type StayInReach struct {
	base
	Target *model.Unit
}

func NewStayInReach(u, target *model.Unit) *StayInReach {
	return &StayInReach{base: base{unit: u}, Target: target}
}

func (o *StayInReach) Try(e Engine) bool {
	if !e.IsLive(o.Target) {
		return false
	}
	if e.InReach(o.unit, o.Target) {
		return false
	}
	e.MoveToward(o.unit, o.Target.X, o.Target.Y)
	return false
}

func (o *StayInReach) String() string { return "StayInReach" }

// Sacrifice is a permanent enforce-slot order: drives the unit toward a
// designated board edge forever, making it bait that ignores every other
// order as long as it occupies the enforce slot. Never completes.
type Sacrifice struct {
	base
	EdgeX, EdgeY float64
}

func NewSacrifice(u *model.Unit, edgeX, edgeY float64) *Sacrifice {
	return &Sacrifice{base: base{unit: u}, EdgeX: edgeX, EdgeY: edgeY}
}

func (o *Sacrifice) Try(e Engine) bool {
	e.MoveToward(o.unit, o.EdgeX, o.EdgeY)
	return false
}

func (o *Sacrifice) String() string { return "Sacrifice" }

// Formation computes this unit's target slot on a ring around the centroid
// of members and moves toward it; completes when the unit reaches its slot.
type Formation struct {
	base
	Members []*model.Unit
	Radius  float64
}

func NewFormation(u *model.Unit, members []*model.Unit, radius float64) *Formation {
	return &Formation{base: base{unit: u}, Members: members, Radius: radius}
}

func (o *Formation) slot() (float64, float64) {
	var cx, cy float64
	for _, m := range o.Members {
		cx += m.X
		cy += m.Y
	}
	n := float64(len(o.Members))
	if n == 0 {
		return o.unit.X, o.unit.Y
	}
	cx /= n
	cy /= n
	angle := math.Atan2(o.unit.Y-cy, o.unit.X-cx)
	return cx + math.Cos(angle)*o.Radius, cy + math.Sin(angle)*o.Radius
}

func (o *Formation) Try(e Engine) bool {
	tx, ty := o.slot()
	if e.PositionMatches(o.unit, tx, ty) {
		return true
	}
	e.MoveToward(o.unit, tx, ty)
	return e.PositionMatches(o.unit, tx, ty)
}

func (o *Formation) String() string { return "Formation" }

// MoveTowardEnemyWithAttribute is like AttackOnSight, but gated by Score:
// it takes the nearest selector-matching enemy within sight and attacks or
// moves toward it only when Score(self, target) is at least MinScore (or
// Score is nil); otherwise it does nothing that tick. Other candidates are
// not scored. Never completes.
type MoveTowardEnemyWithAttribute struct {
	base
	Selector model.UnitType
	Score    func(self, candidate *model.Unit) float64
	MinScore float64
}

func NewMoveTowardEnemyWithAttribute(u *model.Unit, selector model.UnitType, score func(self, candidate *model.Unit) float64, minScore float64) *MoveTowardEnemyWithAttribute {
	return &MoveTowardEnemyWithAttribute{base: base{unit: u}, Selector: selector, Score: score, MinScore: minScore}
}

func (o *MoveTowardEnemyWithAttribute) Try(e Engine) bool {
	target := e.NearestEnemyInSight(o.unit, o.Selector)
	if target == nil {
		return false
	}
	if o.Score != nil && o.Score(o.unit, target) < o.MinScore {
		return false
	}
	if e.InReach(o.unit, target) && o.unit.CanAttack() {
		e.Attack(o.unit, target)
	} else {
		e.MoveToward(o.unit, target.X, target.Y)
	}
	return false
}

func (o *MoveTowardEnemyWithAttribute) String() string {
	return fmt.Sprintf("MoveTowardEnemyWithAttribute(%s)", o.Selector)
}
