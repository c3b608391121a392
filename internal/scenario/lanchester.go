package scenario

import (
	"math"

	"github.com/medievail/skirmish/internal/model"
)

// MaxMapSize is the upper clamp on a Lanchester map's side length: size
// scales with sqrt(N) but is bounded to [MinMapSize, 400].
const MaxMapSize = 400.0

const (
	lanchesterSpacing = 2.0
	lanchesterDistance = 10.0
)

// Lanchester builds the asymmetric N-vs-2N attrition scenario used by the
// parameter sweep: team A gets n homogeneous units of unitType, team B gets
// 2n of the same type, spaced lanchesterSpacing apart and separated by
// lanchesterDistance.
func Lanchester(unitType model.UnitType, n int) *Scenario {
	size := mapSizeForN(n)

	teamAX := size / 3
	teamBX := teamAX + lanchesterDistance

	unitsA := lanchesterColumn(unitType, model.TeamA, n, teamAX, size)
	unitsB := lanchesterColumn(unitType, model.TeamB, 2*n, teamBX, size)

	return New(unitsA, unitsB, size, size)
}

// mapSizeForN scales the square map's side length with sqrt(n), clamped to
// [MinMapSize, MaxMapSize].
func mapSizeForN(n int) float64 {
	size := math.Sqrt(float64(n)) * 20
	if size < MinMapSize {
		size = MinMapSize
	}
	if size > MaxMapSize {
		size = MaxMapSize
	}
	return size
}

// lanchesterColumn places count units of unitType in a single vertical
// column at x, centered on the map's vertical midline.
func lanchesterColumn(unitType model.UnitType, team model.Team, count int, x, sizeY float64) []*model.Unit {
	centerY := sizeY / 2
	units := make([]*model.Unit, 0, count)
	startY := centerY - float64(count-1)*lanchesterSpacing/2
	for i := 0; i < count; i++ {
		y := startY + float64(i)*lanchesterSpacing
		if y < 0 {
			y = 0
		}
		if y > sizeY {
			y = sizeY
		}
		u := model.New(unitType, team, unitType.String(), x, y)
		units = append(units, u)
	}
	return units
}
