package scenario

import (
	"testing"

	"github.com/medievail/skirmish/internal/model"
)

func TestLanchesterSizesTeams(t *testing.T) {
	sc := Lanchester(model.Knight, 10)
	if len(sc.UnitsA) != 10 {
		t.Errorf("len(UnitsA) = %d, want 10", len(sc.UnitsA))
	}
	if len(sc.UnitsB) != 20 {
		t.Errorf("len(UnitsB) = %d, want 20", len(sc.UnitsB))
	}
	for _, u := range sc.Units {
		if u.Type != model.Knight {
			t.Errorf("unit type = %v, want Knight", u.Type)
		}
	}
}

func TestLanchesterMapSizeClamps(t *testing.T) {
	small := Lanchester(model.Pikeman, 1)
	if small.SizeX != MinMapSize {
		t.Errorf("N=1 map size = %.1f, want clamp to MinMapSize=%.1f", small.SizeX, MinMapSize)
	}

	large := Lanchester(model.Pikeman, 10000)
	if large.SizeX != MaxMapSize {
		t.Errorf("N=10000 map size = %.1f, want clamp to MaxMapSize=%.1f", large.SizeX, MaxMapSize)
	}
}

func TestLanchesterMapSizeScalesWithSqrtN(t *testing.T) {
	small := mapSizeForN(25)
	large := mapSizeForN(100)
	if !(large > small) {
		t.Errorf("mapSizeForN(100) = %.1f should exceed mapSizeForN(25) = %.1f", large, small)
	}
}

func TestLanchesterTeamBStartsFartherRight(t *testing.T) {
	sc := Lanchester(model.Crossbowman, 5)
	for _, a := range sc.UnitsA {
		for _, b := range sc.UnitsB {
			if b.X <= a.X {
				t.Errorf("team B unit x=%.1f should be right of team A unit x=%.1f", b.X, a.X)
			}
		}
	}
}
