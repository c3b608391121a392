package scenario

import (
	"testing"

	"github.com/medievail/skirmish/internal/model"
)

func TestBuildClassicRatio(t *testing.T) {
	sc := Build(Classic, 100, 300, 300)

	var pike, knight, crossbow int
	for _, u := range sc.UnitsA {
		switch u.Type {
		case model.Pikeman:
			pike++
		case model.Knight:
			knight++
		case model.Crossbowman:
			crossbow++
		}
	}
	if pike != 40 || knight != 30 || crossbow != 30 {
		t.Fatalf("classic ratio = pike:%d knight:%d crossbow:%d, want 40/30/30", pike, knight, crossbow)
	}
	if len(sc.UnitsA) != 100 {
		t.Fatalf("len(UnitsA) = %d, want 100", len(sc.UnitsA))
	}
}

func TestBuildUnknownFormationFallsBackToClassic(t *testing.T) {
	sc := Build(Formation("nonsense"), 10, 300, 300)
	if len(sc.UnitsA) != 10 {
		t.Fatalf("len(UnitsA) = %d, want 10", len(sc.UnitsA))
	}
}

func TestBuildMirrorsTeamBAcrossMidline(t *testing.T) {
	sc := Build(Classic, 10, 300, 300)
	if len(sc.UnitsA) != len(sc.UnitsB) {
		t.Fatalf("team sizes differ: %d vs %d", len(sc.UnitsA), len(sc.UnitsB))
	}
	for _, u := range sc.UnitsA {
		if u.X > 300/2 {
			t.Errorf("team A unit at x=%.1f should stay in the left half", u.X)
		}
	}
	for _, u := range sc.UnitsB {
		if u.X < 300/2 {
			t.Errorf("team B unit at x=%.1f should stay in the right half (mirrored)", u.X)
		}
	}
}

func TestBuildEveryFormationProducesRequestedCount(t *testing.T) {
	forms := []Formation{Classic, Defensive, Offensive, HammerAnvil, Testudo, HollowSquare}
	for _, f := range forms {
		t.Run(string(f), func(t *testing.T) {
			sc := Build(f, 30, 300, 300)
			if len(sc.UnitsA) != 30 {
				t.Errorf("%s: len(UnitsA) = %d, want 30", f, len(sc.UnitsA))
			}
			if len(sc.UnitsB) != 30 {
				t.Errorf("%s: len(UnitsB) = %d, want 30", f, len(sc.UnitsB))
			}
			for _, u := range sc.Units {
				if u.X < 0 || u.X > sc.SizeX || u.Y < 0 || u.Y > sc.SizeY {
					t.Errorf("%s: unit out of bounds: (%.1f, %.1f)", f, u.X, u.Y)
				}
			}
		})
	}
}

func TestRatioCountsSumsToN(t *testing.T) {
	r := ratio{pike: 40, knight: 30, crossbow: 30}
	for n := 0; n < 50; n++ {
		pike, knight, crossbow := r.counts(n)
		if pike+knight+crossbow != n {
			t.Errorf("counts(%d) = %d/%d/%d, sum != %d", n, pike, knight, crossbow, n)
		}
	}
}
