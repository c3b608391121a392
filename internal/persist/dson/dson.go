// Package dson implements a compact text save/load format for a battle's
// state: one line per record, whitespace-separated tokens, an explicit
// Format/Parse pair, and no dependency on encoding/json or encoding/gob.
package dson

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/medievail/skirmish/internal/model"
)

// UnitRecord is one unit's saved state: "<TypeChar> <TeamChar> <X> <Y> <HP>
// <Reload> <MaxHP>", e.g. "K A 12.5 40.0 100.0 0.0 100.0".
type UnitRecord struct {
	Type   model.UnitType
	Team   model.Team
	X, Y   float64
	HP     float64
	Reload float64
	MaxHP  float64
}

// State is a full battle checkpoint: the header line plus one UnitRecord
// per living unit.
type State struct {
	Tick  int
	SizeX float64
	SizeY float64
	Seed  int64
	Units []UnitRecord
}

// Format serializes a State to its DSON-style text representation.
func Format(s State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TICK %d SIZE %s %s SEED %d\n",
		s.Tick, formatFloat(s.SizeX), formatFloat(s.SizeY), s.Seed)
	for _, u := range s.Units {
		fmt.Fprintf(&b, "%s %s %s %s %s %s %s\n",
			typeChar(u.Type), teamChar(u.Team),
			formatFloat(u.X), formatFloat(u.Y), formatFloat(u.HP),
			formatFloat(u.Reload), formatFloat(u.MaxHP))
	}
	return b.String()
}

// Parse parses a State back from its text representation.
func Parse(text string) (State, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 {
		return State{}, fmt.Errorf("dson: empty save")
	}

	header := strings.Fields(lines[0])
	if len(header) != 7 || header[0] != "TICK" || header[2] != "SIZE" || header[5] != "SEED" {
		return State{}, fmt.Errorf("dson: malformed header %q", lines[0])
	}
	tick, err := strconv.Atoi(header[1])
	if err != nil {
		return State{}, fmt.Errorf("dson: tick: %w", err)
	}
	sizeX, err := strconv.ParseFloat(header[3], 64)
	if err != nil {
		return State{}, fmt.Errorf("dson: sizeX: %w", err)
	}
	sizeY, err := strconv.ParseFloat(header[4], 64)
	if err != nil {
		return State{}, fmt.Errorf("dson: sizeY: %w", err)
	}
	seed, err := strconv.ParseInt(header[6], 10, 64)
	if err != nil {
		return State{}, fmt.Errorf("dson: seed: %w", err)
	}

	s := State{Tick: tick, SizeX: sizeX, SizeY: sizeY, Seed: seed}
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec, err := parseUnitRecord(line)
		if err != nil {
			return State{}, fmt.Errorf("dson: parsing %q: %w", line, err)
		}
		s.Units = append(s.Units, rec)
	}
	return s, nil
}

func parseUnitRecord(line string) (UnitRecord, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 7 {
		return UnitRecord{}, fmt.Errorf("expected 7 fields, got %d", len(tokens))
	}
	t, err := parseTypeChar(tokens[0])
	if err != nil {
		return UnitRecord{}, err
	}
	team, err := parseTeamChar(tokens[1])
	if err != nil {
		return UnitRecord{}, err
	}
	x, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return UnitRecord{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return UnitRecord{}, fmt.Errorf("y: %w", err)
	}
	hp, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return UnitRecord{}, fmt.Errorf("hp: %w", err)
	}
	reload, err := strconv.ParseFloat(tokens[5], 64)
	if err != nil {
		return UnitRecord{}, fmt.Errorf("reload: %w", err)
	}
	maxHP, err := strconv.ParseFloat(tokens[6], 64)
	if err != nil {
		return UnitRecord{}, fmt.Errorf("maxhp: %w", err)
	}
	return UnitRecord{Type: t, Team: team, X: x, Y: y, HP: hp, Reload: reload, MaxHP: maxHP}, nil
}

func typeChar(t model.UnitType) string {
	switch t {
	case model.Knight:
		return "K"
	case model.Pikeman:
		return "P"
	case model.Crossbowman:
		return "C"
	default:
		return "?"
	}
}

func parseTypeChar(s string) (model.UnitType, error) {
	switch s {
	case "K":
		return model.Knight, nil
	case "P":
		return model.Pikeman, nil
	case "C":
		return model.Crossbowman, nil
	default:
		return model.None, fmt.Errorf("invalid unit type char %q", s)
	}
}

func teamChar(t model.Team) string {
	if t == model.TeamB {
		return "B"
	}
	return "A"
}

func parseTeamChar(s string) (model.Team, error) {
	switch s {
	case "A":
		return model.TeamA, nil
	case "B":
		return model.TeamB, nil
	default:
		return model.TeamA, fmt.Errorf("invalid team char %q", s)
	}
}

// formatFloat trims trailing zeros while guaranteeing at least one decimal
// digit, keeping saves compact but unambiguous as floats.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ToUnits converts a State's records back into live *model.Unit values,
// restoring HP, reload timer, and position. Name is synthesized from the
// type char and the record's index (e.g. "K-0") since DSON does not persist
// custom unit names.
func (s State) ToUnits() []*model.Unit {
	units := make([]*model.Unit, 0, len(s.Units))
	for i, r := range s.Units {
		u := model.New(r.Type, r.Team, fmt.Sprintf("%s-%d", typeChar(r.Type), i), r.X, r.Y)
		u.HP = r.HP
		u.MaxHP = r.MaxHP
		u.Reload = r.Reload
		units = append(units, u)
	}
	return units
}

// FromUnits builds a State from a live battle's units, skipping dead ones.
func FromUnits(units []*model.Unit, tick int, sizeX, sizeY float64, seed int64) State {
	s := State{Tick: tick, SizeX: sizeX, SizeY: sizeY, Seed: seed}
	for _, u := range units {
		if !u.Alive() {
			continue
		}
		s.Units = append(s.Units, UnitRecord{
			Type: u.Type, Team: u.Team, X: u.X, Y: u.Y,
			HP: u.HP, Reload: u.Reload, MaxHP: u.MaxHP,
		})
	}
	return s
}
