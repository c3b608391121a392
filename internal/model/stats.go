package model

// Damage kinds. Melee and Pierce are the base kinds every unit defends
// against (Knight and Pikeman attack with Melee, Crossbowman with Pierce);
// AntiCavalry is Pikeman's bonus against Knight, expressed as an ordinary
// kind that every unit's armor map carries explicitly, at zero where it
// does not apply, so the attack formula's
// armor.get(k, 0) default never silently skips a kind.
const (
	Melee       DamageKind = "Melee"
	Pierce      DamageKind = "Pierce"
	AntiCavalry DamageKind = "AntiCavalry"
)

// NewKnight builds a fresh Knight at (x, y) for the given team.
func NewKnight(team Team, name string, x, y float64) *Unit {
	return &Unit{
		Name:       name,
		Team:       team,
		Type:       Knight,
		X:          x,
		Y:          y,
		MaxHP:      100,
		HP:         100,
		Armor:      map[DamageKind]float64{Melee: 2, Pierce: 2, AntiCavalry: 3},
		Attack:     map[DamageKind]float64{Melee: 10},
		Range:      0,
		Sight:      4,
		Size:       1,
		Speed:      1.35,
		Accuracy:   1.0,
		ReloadTime: 1.8,
	}
}

// NewPikeman builds a fresh Pikeman at (x, y) for the given team.
func NewPikeman(team Team, name string, x, y float64) *Unit {
	return &Unit{
		Name:       name,
		Team:       team,
		Type:       Pikeman,
		X:          x,
		Y:          y,
		MaxHP:      55,
		HP:         55,
		Armor:      map[DamageKind]float64{Melee: 0, Pierce: 0, AntiCavalry: 0},
		Attack:     map[DamageKind]float64{Melee: 4, AntiCavalry: 18},
		Range:      0,
		Sight:      4,
		Size:       1,
		Speed:      1.0,
		Accuracy:   1.0,
		ReloadTime: 3.0,
	}
}

// NewCrossbowman builds a fresh Crossbowman at (x, y) for the given team.
func NewCrossbowman(team Team, name string, x, y float64) *Unit {
	return &Unit{
		Name:       name,
		Team:       team,
		Type:       Crossbowman,
		X:          x,
		Y:          y,
		MaxHP:      30,
		HP:         30,
		Armor:      map[DamageKind]float64{Melee: 0, Pierce: 0, AntiCavalry: 0},
		Attack:     map[DamageKind]float64{Pierce: 4},
		Range:      4,
		Sight:      6,
		Size:       1,
		Speed:      0.96,
		Accuracy:   0.8,
		ReloadTime: 2.0,
	}
}

// New builds a fresh unit of the given concrete type. t must be Knight,
// Pikeman, or Crossbowman; ALL and NONE are not instantiable.
func New(t UnitType, team Team, name string, x, y float64) *Unit {
	switch t {
	case Knight:
		return NewKnight(team, name, x, y)
	case Pikeman:
		return NewPikeman(team, name, x, y)
	case Crossbowman:
		return NewCrossbowman(team, name, x, y)
	default:
		panic("model: cannot instantiate unit of selector type " + t.String())
	}
}
