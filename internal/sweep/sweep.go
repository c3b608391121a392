// Package sweep implements the Lanchester parameter sweep: for each
// (unit type, N) pair, run repeated N-vs-2N battles on a worker pool and
// collect a results table.
package sweep

import (
	"sync"

	"github.com/medievail/skirmish/internal/general"
	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/runner"
	"github.com/medievail/skirmish/internal/scenario"
	"github.com/rs/zerolog"
)

// Config parameterizes a sweep run.
type Config struct {
	UnitTypes   []model.UnitType
	NValues     []int
	Repetitions int
	Workers     int
	Seed        int64
	Log         zerolog.Logger
}

// Point is one (unit type, N, repetition) battle's outcome.
type Point struct {
	UnitType        model.UnitType
	N               int
	Repetition      int
	Ticks           int
	TeamASurvivors  int // the N-sized side
	TeamBSurvivors  int // the 2N-sized side
	TeamACasualties int
	TeamBCasualties int
	Winner          string // "A", "B", or "" for a draw
}

// Table is the full collected sweep result set.
type Table struct {
	Points []Point
}

// MeanSurvivorFraction averages, across every repetition for one (unitType,
// N) pair, the fraction of the N-sized side (team A) that survived — the
// quantity Lanchester's square law predicts.
func (t *Table) MeanSurvivorFraction(unitType model.UnitType, n int) float64 {
	var sum float64
	count := 0
	for _, p := range t.Points {
		if p.UnitType != unitType || p.N != n || n == 0 {
			continue
		}
		sum += float64(p.TeamASurvivors) / float64(n)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Run dispatches every (unit type, N, repetition) combination to a bounded
// worker pool and returns the collected Table, grounded on
// cmd/botmatch/main.go's sem-channel + WaitGroup + mutex-guarded-slice
// idiom.
func Run(cfg Config) *Table {
	workers := cfg.Workers
	if workers < 1 {
		workers = 8
	}
	reps := cfg.Repetitions
	if reps < 1 {
		reps = 1
	}

	type job struct {
		unitType   model.UnitType
		n          int
		repetition int
	}

	var jobs []job
	for _, ut := range cfg.UnitTypes {
		for _, n := range cfg.NValues {
			for rep := 0; rep < reps; rep++ {
				jobs = append(jobs, job{ut, n, rep})
			}
		}
	}

	points := make([]Point, len(jobs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, j := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, j job) {
			defer wg.Done()
			defer func() { <-sem }()
			points[idx] = runOne(j.unitType, j.n, j.repetition, cfg.Seed+int64(idx), cfg.Log)
		}(i, j)
	}
	wg.Wait()

	return &Table{Points: points}
}

func runOne(unitType model.UnitType, n, repetition int, seed int64, log zerolog.Logger) Point {
	sc := scenario.Lanchester(unitType, n)

	genA := general.NewMock(sc.UnitsA, sc.UnitsB, nil)
	genB := general.NewMock(sc.UnitsB, sc.UnitsA, nil)

	res := runner.Run(sc.SizeX, sc.SizeY, sc.UnitsA, sc.UnitsB, genA, genB, runner.Options{
		Unlocked: true,
		Seed:     seed,
		Log:      log,
	})

	p := Point{
		UnitType:        unitType,
		N:               n,
		Repetition:      repetition,
		Ticks:           res.Ticks,
		TeamASurvivors:  res.TeamARemaining,
		TeamBSurvivors:  res.TeamBRemaining,
		TeamACasualties: res.TeamACasualties,
		TeamBCasualties: res.TeamBCasualties,
	}
	switch res.Winner {
	case "A":
		p.Winner = "A"
	case "B":
		p.Winner = "B"
	}
	return p
}
