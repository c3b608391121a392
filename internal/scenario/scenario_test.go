package scenario

import (
	"testing"

	"github.com/medievail/skirmish/internal/model"
)

func TestNewClampsToMinMapSize(t *testing.T) {
	sc := New(nil, nil, 10, 10)
	if sc.SizeX != MinMapSize || sc.SizeY != MinMapSize {
		t.Fatalf("size = (%v,%v), want both clamped to %v", sc.SizeX, sc.SizeY, MinMapSize)
	}
}

func TestNewPreservesLargerSize(t *testing.T) {
	sc := New(nil, nil, 500, 300)
	if sc.SizeX != 500 || sc.SizeY != 300 {
		t.Fatalf("size = (%v,%v), want unclamped (500,300)", sc.SizeX, sc.SizeY)
	}
}

func TestNewCombinesRosters(t *testing.T) {
	a := []*model.Unit{model.NewKnight(model.TeamA, "A", 0, 0)}
	b := []*model.Unit{model.NewKnight(model.TeamB, "B", 1, 0), model.NewKnight(model.TeamB, "B2", 2, 0)}

	sc := New(a, b, 200, 200)
	if len(sc.Units) != 3 {
		t.Fatalf("len(Units) = %d, want 3", len(sc.Units))
	}
	if len(sc.UnitsA) != 1 || len(sc.UnitsB) != 2 {
		t.Fatalf("UnitsA/UnitsB lengths = %d/%d, want 1/2", len(sc.UnitsA), len(sc.UnitsB))
	}
}
