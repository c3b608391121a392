package scenario

import (
	"math"

	"github.com/medievail/skirmish/internal/model"
)

// Formation is one of the six fixed-ratio formation tags.
type Formation string

const (
	Classic      Formation = "classic"
	Defensive    Formation = "defensive"
	Offensive    Formation = "offensive"
	HammerAnvil  Formation = "hammer-anvil"
	Testudo      Formation = "testudo"
	HollowSquare Formation = "hollow-square"
)

// ratio is the fixed Pike/Knight/Crossbow composition of a formation,
// expressed as parts out of 100. Classic is 40/30/30 Pike/Knight/Crossbow;
// the remaining five ratios are chosen to match each formation's stated
// character.
type ratio struct{ pike, knight, crossbow int }

var formationRatio = map[Formation]ratio{
	Classic:      {pike: 40, knight: 30, crossbow: 30},
	Defensive:    {pike: 50, knight: 30, crossbow: 20},
	Offensive:    {pike: 30, knight: 40, crossbow: 30},
	HammerAnvil:  {pike: 40, knight: 40, crossbow: 20},
	Testudo:      {pike: 50, knight: 25, crossbow: 25},
	HollowSquare: {pike: 45, knight: 30, crossbow: 25},
}

// counts splits n units into pike/knight/crossbow counts by ratio,
// assigning any rounding remainder to crossbow so the total always equals n.
func (r ratio) counts(n int) (pike, knight, crossbow int) {
	pike = n * r.pike / 100
	knight = n * r.knight / 100
	crossbow = n - pike - knight
	return
}

const unitSpacing = 2.5

// Build lays out unitsPerTeam units per side in the given formation, team A
// on the left half, mirrored to team B across the vertical midline
// (x <-> sizeX - x, y preserved).
func Build(formation Formation, unitsPerTeam int, sizeX, sizeY float64) *Scenario {
	r, ok := formationRatio[formation]
	if !ok {
		r = formationRatio[Classic]
	}
	pike, knight, crossbow := r.counts(unitsPerTeam)

	unitsA := layout(formation, model.TeamA, pike, knight, crossbow, sizeX, sizeY, false)
	unitsB := layout(formation, model.TeamB, pike, knight, crossbow, sizeX, sizeY, true)

	return New(unitsA, unitsB, sizeX, sizeY)
}

// layout places pike/knight/crossbow counts of units for one side. mirror
// reflects every x coordinate across the vertical midline for team B.
func layout(formation Formation, team model.Team, pike, knight, crossbow int, sizeX, sizeY float64, mirror bool) []*model.Unit {
	centerY := sizeY / 2
	var units []*model.Unit
	place := func(t model.UnitType, x, y float64, idx int) {
		x = clampX(x, sizeX)
		if mirror {
			x = sizeX - x
		}
		name := t.String()
		u := model.New(t, team, name, x, clampY(y, sizeY))
		units = append(units, u)
		_ = idx
	}

	switch formation {
	case Defensive:
		// Three dense ranks of pikemen (rank depth 2), two ranks of
		// knights behind, one rear rank of crossbowmen.
		rankX := []float64{sizeX * 0.10, sizeX*0.10 + unitSpacing*2, sizeX*0.10 + unitSpacing*4}
		placeRanks(pike, rankX, centerY, func(x, y float64, i int) { place(model.Pikeman, x, y, i) })
		knightX := []float64{sizeX*0.10 + unitSpacing*6, sizeX*0.10 + unitSpacing*8}
		placeRanks(knight, knightX, centerY, func(x, y float64, i int) { place(model.Knight, x, y, i) })
		placeRanks(crossbow, []float64{sizeX*0.10 + unitSpacing*10}, centerY, func(x, y float64, i int) { place(model.Crossbowman, x, y, i) })

	case Offensive:
		// Knights in a V-wedge (row r has 2r+1 knights), pikemen column
		// behind, crossbowmen on the flanks.
		placeWedge(knight, sizeX*0.15, centerY, func(x, y float64, i int) { place(model.Knight, x, y, i) })
		placeRanks(pike, []float64{sizeX*0.05}, centerY, func(x, y float64, i int) { place(model.Pikeman, x, y, i) })
		placeFlanks(crossbow, sizeX*0.10, centerY, sizeY, func(x, y float64, i int) { place(model.Crossbowman, x, y, i) })

	case HammerAnvil:
		// Pikemen centered, knights split to top/bottom flanks,
		// crossbowmen center-rear.
		placeRanks(pike, []float64{sizeX * 0.12}, centerY, func(x, y float64, i int) { place(model.Pikeman, x, y, i) })
		placeFlanks(knight, sizeX*0.15, centerY, sizeY, func(x, y float64, i int) { place(model.Knight, x, y, i) })
		placeRanks(crossbow, []float64{sizeX * 0.04}, centerY, func(x, y float64, i int) { place(model.Crossbowman, x, y, i) })

	case Testudo:
		// Square perimeter of pikemen around an inner core of knights
		// and crossbowmen.
		cx, cy := sizeX*0.15, centerY
		placePerimeter(pike, cx, cy, 8, func(x, y float64, i int) { place(model.Pikeman, x, y, i) })
		placeCore(knight, cx, cy, 3, func(x, y float64, i int) { place(model.Knight, x, y, i) })
		placeCore(crossbow, cx, cy, 1.5, func(x, y float64, i int) { place(model.Crossbowman, x, y, i) })

	case HollowSquare:
		// 4-edge pikeman perimeter, knight inner ring, crossbowmen
		// scattered on a small interior circle.
		cx, cy := sizeX*0.15, centerY
		placePerimeter(pike, cx, cy, 10, func(x, y float64, i int) { place(model.Pikeman, x, y, i) })
		placeRing(knight, cx, cy, 6, func(x, y float64, i int) { place(model.Knight, x, y, i) })
		placeRing(crossbow, cx, cy, 2.5, func(x, y float64, i int) { place(model.Crossbowman, x, y, i) })

	default: // Classic
		// Front rank pikemen, middle rank knights (one rank depth back),
		// rear rank crossbowmen.
		placeRanks(pike, []float64{sizeX * 0.12}, centerY, func(x, y float64, i int) { place(model.Pikeman, x, y, i) })
		placeRanks(knight, []float64{sizeX*0.12 + unitSpacing*2}, centerY, func(x, y float64, i int) { place(model.Knight, x, y, i) })
		placeRanks(crossbow, []float64{sizeX*0.12 + unitSpacing*4}, centerY, func(x, y float64, i int) { place(model.Crossbowman, x, y, i) })
	}

	return units
}

func clampX(x, sizeX float64) float64 { return math.Max(0, math.Min(x, sizeX)) }
func clampY(y, sizeY float64) float64 { return math.Max(0, math.Min(y, sizeY)) }

// placeRanks distributes n units evenly across the given rank x-positions,
// spaced unitSpacing apart vertically around centerY.
func placeRanks(n int, ranksX []float64, centerY float64, place func(x, y float64, i int)) {
	if n == 0 || len(ranksX) == 0 {
		return
	}
	perRank := n / len(ranksX)
	remainder := n % len(ranksX)
	idx := 0
	for ri, x := range ranksX {
		count := perRank
		if ri < remainder {
			count++
		}
		startY := centerY - float64(count-1)*unitSpacing/2
		for i := 0; i < count; i++ {
			place(x, startY+float64(i)*unitSpacing, idx)
			idx++
		}
	}
}

// placeWedge places n units in a V-wedge apex at (apexX, centerY), row r
// holding 2r+1 units, rows stepping back by unitSpacing.
func placeWedge(n int, apexX, centerY float64, place func(x, y float64, i int)) {
	idx := 0
	row := 0
	for idx < n {
		rowCount := 2*row + 1
		x := apexX - float64(row)*unitSpacing
		startY := centerY - float64(rowCount-1)*unitSpacing/2
		for i := 0; i < rowCount && idx < n; i++ {
			place(x, startY+float64(i)*unitSpacing, idx)
			idx++
		}
		row++
	}
}

// placeFlanks splits n units evenly above and below centerY at a fixed x.
func placeFlanks(n int, x, centerY, sizeY float64, place func(x, y float64, i int)) {
	if n == 0 {
		return
	}
	top := n / 2
	bottom := n - top
	idx := 0
	for i := 0; i < top; i++ {
		place(x, math.Max(0, centerY-float64(i+1)*unitSpacing), idx)
		idx++
	}
	for i := 0; i < bottom; i++ {
		place(x, math.Min(sizeY, centerY+float64(i+1)*unitSpacing), idx)
		idx++
	}
}

// placePerimeter places n units evenly around a square perimeter of the
// given half-width centered at (cx, cy).
func placePerimeter(n int, cx, cy, halfWidth float64, place func(x, y float64, i int)) {
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n)
		angle := frac * 2 * math.Pi
		// Project a circle onto the square boundary via max-norm scaling.
		dx, dy := math.Cos(angle), math.Sin(angle)
		scale := halfWidth / math.Max(math.Abs(dx), math.Abs(dy))
		place(cx+dx*scale, cy+dy*scale, i)
	}
}

// placeRing places n units evenly around a circle of the given radius
// centered at (cx, cy).
func placeRing(n int, cx, cy, radius float64, place func(x, y float64, i int)) {
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		place(cx+math.Cos(angle)*radius, cy+math.Sin(angle)*radius, i)
	}
}

// placeCore places n units in a small interior cluster around (cx, cy).
func placeCore(n int, cx, cy, radius float64, place func(x, y float64, i int)) {
	placeRing(n, cx, cy, radius, place)
}
