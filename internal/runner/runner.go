// Package runner implements the single-battle runner: the sole authority
// that decides when create-orders runs, when the engine ticks, and when
// reload timers advance.
package runner

import (
	"time"

	"github.com/medievail/skirmish/internal/engine"
	"github.com/medievail/skirmish/internal/general"
	"github.com/medievail/skirmish/internal/model"
	"github.com/rs/zerolog"
)

// Result is a finished battle's outcome: ticks elapsed, winner, and
// per-team casualty/HP/damage bookkeeping.
type Result struct {
	Ticks  int
	Winner string // "A", "B", or "draw"

	TeamAInitial         int
	TeamARemaining       int
	TeamACasualties      int
	TeamATotalHPInitial  float64
	TeamATotalHPRemaining float64
	TeamADamageDealt     float64

	TeamBInitial          int
	TeamBRemaining        int
	TeamBCasualties       int
	TeamBTotalHPInitial   float64
	TeamBTotalHPRemaining float64
	TeamBDamageDealt      float64
}

// TeamACasualtyRate, TeamBCasualtyRate, TeamAHPLossRate, TeamBHPLossRate are
// derived aggregates computed on demand from the raw counters above rather
// than tracked incrementally.
func (r Result) TeamACasualtyRate() float64 {
	if r.TeamAInitial == 0 {
		return 0
	}
	return float64(r.TeamACasualties) / float64(r.TeamAInitial)
}

func (r Result) TeamBCasualtyRate() float64 {
	if r.TeamBInitial == 0 {
		return 0
	}
	return float64(r.TeamBCasualties) / float64(r.TeamBInitial)
}

func (r Result) TeamAHPLossRate() float64 {
	if r.TeamATotalHPInitial == 0 {
		return 0
	}
	return 1 - (r.TeamATotalHPRemaining / r.TeamATotalHPInitial)
}

func (r Result) TeamBHPLossRate() float64 {
	if r.TeamBTotalHPInitial == 0 {
		return 0
	}
	return 1 - (r.TeamBTotalHPRemaining / r.TeamBTotalHPInitial)
}

// TickSnapshot is one tick's worth of publishable state for a spectator
// feed. Never populated/consumed in unlocked (batch) mode.
type TickSnapshot struct {
	Tick  int
	Units []UnitSnapshot
}

// UnitSnapshot is the minimal per-unit state a spectator client needs.
type UnitSnapshot struct {
	Team model.Team
	Type model.UnitType
	X, Y float64
	HP   float64
}

// Sink receives one TickSnapshot per tick in timed mode.
type Sink interface {
	Publish(TickSnapshot)
}

// Options configures a single battle run.
type Options struct {
	TickSpeed float64 // ticks/second pacing, used in timed mode and for the timed tick cap
	Unlocked  bool    // true: no inter-tick sleeps (tournaments, sweeps)
	Paused    *bool   // optional external pause flag, polled each tick
	Stop      *bool   // optional external cooperative-cancellation flag
	Seed      int64
	Sink      Sink // optional spectator feed, nil in unlocked mode
	Log       zerolog.Logger
}

// Run builds the engine from unitsA/unitsB, invokes General.Begin on both
// sides, and runs the tick loop to completion, returning a Result.
func Run(sizeX, sizeY float64, unitsA, unitsB []*model.Unit, generalA, generalB *general.General, opts Options) Result {
	initialA := len(unitsA)
	initialB := len(unitsB)
	var initialHPA, initialHPB float64
	for _, u := range unitsA {
		initialHPA += u.HP
	}
	for _, u := range unitsB {
		initialHPB += u.HP
	}

	e := engine.New(sizeX, sizeY, unitsA, unitsB, opts.TickSpeed, opts.Unlocked, opts.Seed, opts.Log)

	generalA.SetHost(e)
	generalB.SetHost(e)

	generalA.Begin()
	generalB.Begin()

	for !e.Finished() {
		if opts.Stop != nil && *opts.Stop {
			break
		}
		if opts.Paused != nil {
			for *opts.Paused {
				time.Sleep(100 * time.Millisecond)
				if opts.Stop != nil && *opts.Stop {
					break
				}
			}
		}

		generalA.CreateOrders()
		generalB.CreateOrders()

		for _, u := range e.ShuffleUnits() {
			if !u.Alive() {
				continue
			}
			e.OrdersFor(u).RunOneTick(e)
		}

		e.AdvanceTick()

		if opts.Sink != nil {
			opts.Sink.Publish(snapshot(e))
		}

		if !opts.Unlocked && opts.TickSpeed > 0 {
			time.Sleep(time.Duration(float64(time.Second) / opts.TickSpeed))
		}
	}

	return buildResult(e, initialA, initialB, initialHPA, initialHPB)
}

func snapshot(e *engine.Engine) TickSnapshot {
	units := e.Units()
	out := make([]UnitSnapshot, 0, len(units))
	for _, u := range units {
		out = append(out, UnitSnapshot{Team: u.Team, Type: u.Type, X: u.X, Y: u.Y, HP: u.HP})
	}
	return TickSnapshot{Tick: e.Tick(), Units: out}
}

func buildResult(e *engine.Engine, initialA, initialB int, initialHPA, initialHPB float64) Result {
	remainingA := e.UnitsA()
	remainingB := e.UnitsB()

	var hpA, hpB, dmgA, dmgB float64
	for _, u := range remainingA {
		hpA += u.HP
		dmgA += u.DamageDealt
	}
	for _, u := range remainingB {
		hpB += u.HP
		dmgB += u.DamageDealt
	}

	return Result{
		Ticks:  e.Tick(),
		Winner: e.Winner(),

		TeamAInitial:          initialA,
		TeamARemaining:        len(remainingA),
		TeamACasualties:       initialA - len(remainingA),
		TeamATotalHPInitial:   initialHPA,
		TeamATotalHPRemaining: hpA,
		TeamADamageDealt:      dmgA,

		TeamBInitial:          initialB,
		TeamBRemaining:        len(remainingB),
		TeamBCasualties:       initialB - len(remainingB),
		TeamBTotalHPInitial:   initialHPB,
		TeamBTotalHPRemaining: hpB,
		TeamBDamageDealt:      dmgB,
	}
}
