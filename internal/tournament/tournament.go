// Package tournament implements the round-robin driver: every named general
// strategy is matched against every other (including itself) across every
// named scenario, for a configurable number of rounds per matchup, with
// optional side-alternation.
package tournament

import (
	"runtime"
	"sync"

	"github.com/medievail/skirmish/internal/general"
	"github.com/medievail/skirmish/internal/runner"
	"github.com/medievail/skirmish/internal/scenario"
	"github.com/rs/zerolog"
)

// ScenarioFactory builds a fresh Scenario for one match. Re-invoked per
// match so no mutable state leaks between rounds.
type ScenarioFactory func() *scenario.Scenario

// DefaultScenarios is the named scenario set the tournament driver selects
// from by default: the six fixed-ratio formations at a moderate roster size.
func DefaultScenarios(unitsPerTeam int, sizeX, sizeY float64) map[string]ScenarioFactory {
	forms := []scenario.Formation{
		scenario.Classic, scenario.Defensive, scenario.Offensive,
		scenario.HammerAnvil, scenario.Testudo, scenario.HollowSquare,
	}
	out := make(map[string]ScenarioFactory, len(forms))
	for _, f := range forms {
		f := f
		out[string(f)] = func() *scenario.Scenario { return scenario.Build(f, unitsPerTeam, sizeX, sizeY) }
	}
	return out
}

// MatchResult is one battle's outcome within the tournament.
type MatchResult struct {
	GeneralA     string
	GeneralB     string
	ScenarioName string
	Winner       string // "A", "B", or "" for a draw
	IsDraw       bool
	Ticks        int

	TeamASurvivors  int
	TeamBSurvivors  int
	TeamACasualties int
	TeamBCasualties int
}

// WinnerName returns the winning general's name, or "" on a draw.
func (m MatchResult) WinnerName() string {
	switch m.Winner {
	case "A":
		return m.GeneralA
	case "B":
		return m.GeneralB
	default:
		return ""
	}
}

// Config parameterizes a tournament run.
type Config struct {
	Generals           []string // names resolved via general.NewNamed; defaults to general.AvailableGenerals
	Scenarios          map[string]ScenarioFactory
	RoundsPerMatchup   int
	AlternatePositions bool // swap sides every odd round within a matchup
	Workers            int  // worker-pool size; defaults to runtime.NumCPU capped at 8
	Seed               int64
	Log                zerolog.Logger
}

// Scores is one general's aggregate record across the whole tournament.
type Scores struct {
	Wins    int
	Losses  int
	Draws   int
	Total   int
	WinRate float64
}

// Results collects every match plus derived aggregates.
type Results struct {
	Matches []MatchResult
}

// AddMatch appends one match to the results set.
func (r *Results) AddMatch(m MatchResult) { r.Matches = append(r.Matches, m) }

// OverallScores returns each general's win/loss/draw record across every
// match it participated in.
func (r *Results) OverallScores() map[string]Scores {
	scores := make(map[string]Scores)
	bump := func(name string, win, loss, draw bool) {
		s := scores[name]
		s.Total++
		if win {
			s.Wins++
		}
		if loss {
			s.Losses++
		}
		if draw {
			s.Draws++
		}
		scores[name] = s
	}
	for _, m := range r.Matches {
		switch m.Winner {
		case "A":
			bump(m.GeneralA, true, false, false)
			bump(m.GeneralB, false, true, false)
		case "B":
			bump(m.GeneralA, false, true, false)
			bump(m.GeneralB, true, false, false)
		default:
			bump(m.GeneralA, false, false, true)
			bump(m.GeneralB, false, false, true)
		}
	}
	for name, s := range scores {
		if s.Total > 0 {
			s.WinRate = float64(s.Wins) / float64(s.Total)
		}
		scores[name] = s
	}
	return scores
}

// GeneralVsGeneralMatrix returns, for every (a, b) pair, a's win rate
// against b specifically.
func (r *Results) GeneralVsGeneralMatrix() map[string]map[string]float64 {
	wins := make(map[string]map[string]int)
	total := make(map[string]map[string]int)
	bump := func(a, b string, win bool) {
		if wins[a] == nil {
			wins[a] = make(map[string]int)
			total[a] = make(map[string]int)
		}
		total[a][b]++
		if win {
			wins[a][b]++
		}
	}
	for _, m := range r.Matches {
		aWon := m.Winner == "A"
		bWon := m.Winner == "B"
		bump(m.GeneralA, m.GeneralB, aWon)
		bump(m.GeneralB, m.GeneralA, bWon)
	}
	matrix := make(map[string]map[string]float64, len(total))
	for a, row := range total {
		matrix[a] = make(map[string]float64, len(row))
		for b, n := range row {
			if n == 0 {
				continue
			}
			matrix[a][b] = float64(wins[a][b]) / float64(n)
		}
	}
	return matrix
}

// Run executes the full round-robin and returns the aggregated Results.
// Matches run on a bounded worker pool (grounded on cmd/botmatch/main.go's
// sem-channel + WaitGroup idiom); each worker writes only its own index of
// the results slice, so no mutex is used.
func Run(cfg Config) *Results {
	names := cfg.Generals
	if len(names) == 0 {
		names = general.AvailableGenerals
	}
	rounds := cfg.RoundsPerMatchup
	if rounds < 1 {
		rounds = 1
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
		if workers > 8 {
			workers = 8
		}
	}

	type job struct {
		generalA, generalB, scenarioName string
		round                            int
	}

	var jobs []job
	for scenarioName := range cfg.Scenarios {
		for _, a := range names {
			for _, b := range names {
				for round := 0; round < rounds; round++ {
					jobs = append(jobs, job{a, b, scenarioName, round})
				}
			}
		}
	}

	results := make([]MatchResult, len(jobs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, j := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, j job) {
			defer wg.Done()
			defer func() { <-sem }()

			swap := cfg.AlternatePositions && j.round%2 == 1
			generalA, generalB := j.generalA, j.generalB
			if swap {
				generalA, generalB = generalB, generalA
			}
			m := runMatch(generalA, generalB, j.scenarioName, cfg.Scenarios[j.scenarioName], cfg.Seed+int64(idx), cfg.Log)
			if swap {
				m = swapSides(m)
			}
			results[idx] = m
		}(i, j)
	}
	wg.Wait()

	out := &Results{}
	for _, m := range results {
		out.AddMatch(m)
	}
	return out
}

func runMatch(generalAName, generalBName, scenarioName string, build ScenarioFactory, seed int64, log zerolog.Logger) MatchResult {
	sc := build()

	// host is nil here: runner.Run binds each General to the battle's
	// engine via General.SetHost once the engine exists, before Begin.
	genA, err := general.NewNamed(generalAName, sc.UnitsA, sc.UnitsB, nil, sc.SizeX, sc.SizeY, seed)
	if err != nil {
		return MatchResult{GeneralA: generalAName, GeneralB: generalBName, ScenarioName: scenarioName, IsDraw: true}
	}
	genB, err := general.NewNamed(generalBName, sc.UnitsB, sc.UnitsA, nil, sc.SizeX, sc.SizeY, seed+1)
	if err != nil {
		return MatchResult{GeneralA: generalAName, GeneralB: generalBName, ScenarioName: scenarioName, IsDraw: true}
	}

	res := runner.Run(sc.SizeX, sc.SizeY, sc.UnitsA, sc.UnitsB, genA, genB, runner.Options{
		Unlocked: true,
		Seed:     seed,
		Log:      log,
	})

	m := MatchResult{
		GeneralA:        generalAName,
		GeneralB:        generalBName,
		ScenarioName:    scenarioName,
		Ticks:           res.Ticks,
		TeamASurvivors:  res.TeamARemaining,
		TeamBSurvivors:  res.TeamBRemaining,
		TeamACasualties: res.TeamACasualties,
		TeamBCasualties: res.TeamBCasualties,
	}
	switch res.Winner {
	case "A":
		m.Winner = "A"
	case "B":
		m.Winner = "B"
	default:
		m.IsDraw = true
	}
	return m
}

func swapSides(m MatchResult) MatchResult {
	m.GeneralA, m.GeneralB = m.GeneralB, m.GeneralA
	m.TeamASurvivors, m.TeamBSurvivors = m.TeamBSurvivors, m.TeamASurvivors
	m.TeamACasualties, m.TeamBCasualties = m.TeamBCasualties, m.TeamACasualties
	switch m.Winner {
	case "A":
		m.Winner = "B"
	case "B":
		m.Winner = "A"
	}
	return m
}

