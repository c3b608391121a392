package runner

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/medievail/skirmish/internal/general"
	"github.com/medievail/skirmish/internal/model"
)

func buildGeneral(t *testing.T, name string, my, enemy []*model.Unit) *general.General {
	t.Helper()
	g, err := general.NewNamed(name, my, enemy, nil, 200, 200, 1)
	if err != nil {
		t.Fatalf("NewNamed(%q): %v", name, err)
	}
	return g
}

func roster(n int, typ model.UnitType, team model.Team, xOffset float64) []*model.Unit {
	units := make([]*model.Unit, n)
	for i := range units {
		units[i] = model.New(typ, team, "u", xOffset+float64(i), 0)
	}
	return units
}

func TestRunProducesATerminalWinner(t *testing.T) {
	unitsA := roster(5, model.Knight, model.TeamA, 0)
	unitsB := roster(5, model.Pikeman, model.TeamB, 190)
	genA := buildGeneral(t, "DAFT", unitsA, unitsB)
	genB := buildGeneral(t, "DAFT", unitsB, unitsA)

	res := Run(200, 200, unitsA, unitsB, genA, genB, Options{
		TickSpeed: 5,
		Unlocked:  true,
		Seed:      1,
		Log:       zerolog.Nop(),
	})

	if res.Winner != "A" && res.Winner != "B" && res.Winner != "draw" {
		t.Fatalf("unexpected winner %q", res.Winner)
	}
	if res.Ticks <= 0 {
		t.Fatal("a real battle should take at least one tick")
	}
	if res.TeamAInitial != 5 || res.TeamBInitial != 5 {
		t.Fatalf("initial counts = %d/%d, want 5/5", res.TeamAInitial, res.TeamBInitial)
	}
}

func TestRunStopsImmediatelyWhenOneSideStartsEmpty(t *testing.T) {
	unitsA := roster(3, model.Knight, model.TeamA, 0)
	var unitsB []*model.Unit
	genA := buildGeneral(t, "DAFT", unitsA, unitsB)
	genB := buildGeneral(t, "DAFT", unitsB, unitsA)

	res := Run(200, 200, unitsA, unitsB, genA, genB, Options{
		TickSpeed: 5,
		Unlocked:  true,
		Seed:      1,
		Log:       zerolog.Nop(),
	})

	if res.Winner != "A" {
		t.Fatalf("Winner = %q, want A when team B starts empty", res.Winner)
	}
	if res.Ticks != 0 {
		t.Fatalf("Ticks = %d, want 0 for an already-decided battle", res.Ticks)
	}
}

func TestRunHonorsStopFlag(t *testing.T) {
	unitsA := roster(20, model.Pikeman, model.TeamA, 0)
	unitsB := roster(20, model.Pikeman, model.TeamB, 195)
	genA := buildGeneral(t, "BRAINDEAD", unitsA, unitsB)
	genB := buildGeneral(t, "BRAINDEAD", unitsB, unitsA)

	stop := true
	res := Run(200, 200, unitsA, unitsB, genA, genB, Options{
		TickSpeed: 5,
		Unlocked:  true,
		Seed:      1,
		Stop:      &stop,
		Log:       zerolog.Nop(),
	})

	if res.Ticks != 0 {
		t.Fatalf("Ticks = %d, want 0 when Stop is set before the first iteration", res.Ticks)
	}
}

func TestDerivedRatesZeroSafe(t *testing.T) {
	var r Result
	if r.TeamACasualtyRate() != 0 || r.TeamBCasualtyRate() != 0 {
		t.Fatal("casualty rates on a zero-value Result should be 0, not NaN")
	}
	if r.TeamAHPLossRate() != 0 || r.TeamBHPLossRate() != 0 {
		t.Fatal("HP loss rates on a zero-value Result should be 0, not NaN")
	}
}

func TestDerivedRatesComputeFraction(t *testing.T) {
	r := Result{
		TeamAInitial: 10, TeamACasualties: 3,
		TeamATotalHPInitial: 100, TeamATotalHPRemaining: 60,
	}
	if got := r.TeamACasualtyRate(); got != 0.3 {
		t.Fatalf("TeamACasualtyRate() = %v, want 0.3", got)
	}
	if got := r.TeamAHPLossRate(); got != 0.4 {
		t.Fatalf("TeamAHPLossRate() = %v, want 0.4", got)
	}
}
