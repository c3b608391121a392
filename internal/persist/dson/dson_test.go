package dson

import (
	"testing"

	"github.com/medievail/skirmish/internal/model"
)

func TestFormatParseRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{
			name: "empty battle",
			state: State{
				Tick: 0, SizeX: 200, SizeY: 200, Seed: 42,
			},
		},
		{
			name: "mixed roster",
			state: State{
				Tick: 17, SizeX: 250.5, SizeY: 180, Seed: -7,
				Units: []UnitRecord{
					{Type: model.Knight, Team: model.TeamA, X: 12.5, Y: 40, HP: 100, Reload: 0, MaxHP: 100},
					{Type: model.Pikeman, Team: model.TeamB, X: 90, Y: 12.25, HP: 33.5, Reload: 2, MaxHP: 60},
					{Type: model.Crossbowman, Team: model.TeamA, X: 0, Y: 0, HP: 1, Reload: 0, MaxHP: 40},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := Format(tt.state)
			got, err := Parse(text)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got.Tick != tt.state.Tick || got.SizeX != tt.state.SizeX ||
				got.SizeY != tt.state.SizeY || got.Seed != tt.state.Seed {
				t.Fatalf("header mismatch: got %+v, want %+v", got, tt.state)
			}
			if len(got.Units) != len(tt.state.Units) {
				t.Fatalf("unit count mismatch: got %d, want %d", len(got.Units), len(tt.state.Units))
			}
			for i, u := range got.Units {
				want := tt.state.Units[i]
				if u != want {
					t.Errorf("unit %d: got %+v, want %+v", i, u, want)
				}
			}
		})
	}
}

func TestParseMalformedHeader(t *testing.T) {
	_, err := Parse("not a valid header\n")
	if err == nil {
		t.Fatal("expected an error for a malformed header")
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("")
	if err == nil {
		t.Fatal("expected an error for an empty save")
	}
}

func TestToUnitsFromUnitsRoundTrip(t *testing.T) {
	units := []*model.Unit{
		model.NewKnight(model.TeamA, "K-0", 10, 20),
		model.NewPikeman(model.TeamB, "P-0", 30, 40),
	}
	units[0].HP = 55
	units[1].Reload = 1.5

	state := FromUnits(units, 5, 300, 300, 99)
	restored := state.ToUnits()

	if len(restored) != len(units) {
		t.Fatalf("got %d units, want %d", len(restored), len(units))
	}
	for i, u := range restored {
		orig := units[i]
		if u.Type != orig.Type || u.Team != orig.Team || u.X != orig.X || u.Y != orig.Y ||
			u.HP != orig.HP || u.Reload != orig.Reload || u.MaxHP != orig.MaxHP {
			t.Errorf("unit %d round-trip mismatch: got %+v, want %+v", i, u, orig)
		}
	}
}

func TestFormatFloatTrimsTrailingZeros(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{100, "100.0"},
		{12.5, "12.5"},
		{12.25, "12.25"},
		{-7, "-7.0"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
