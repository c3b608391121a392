// Command tourney runs a round-robin tournament across named generals and
// scenarios.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/medievail/skirmish/internal/general"
	"github.com/medievail/skirmish/internal/logger"
	"github.com/medievail/skirmish/internal/persist/postgres"
	"github.com/medievail/skirmish/internal/tournament"
)

const (
	exitSuccess       = 0
	exitInternalError = 1
	exitUsageError    = 2
)

func main() {
	logger.Init()
	log := logger.Get()

	var (
		generalsCSV  string
		scenariosCSV string
		rounds       int
		workers      int
		units        int
		noAlternate  bool
		seed         int64
		dbURL        string
		jsonOut      bool
	)

	flag.StringVar(&generalsCSV, "generals", "", "comma-separated general names (default: all built-ins)")
	flag.StringVar(&scenariosCSV, "scenarios", "classic,defensive,offensive,hammer-anvil,testudo,hollow-square", "comma-separated scenario names")
	flag.IntVar(&rounds, "rounds", 1, "rounds per matchup")
	flag.IntVar(&workers, "workers", 8, "worker pool size")
	flag.IntVar(&units, "units", 20, "units per team")
	flag.BoolVar(&noAlternate, "no-alternate", false, "do not alternate sides across rounds")
	flag.Int64Var(&seed, "seed", 0, "base RNG seed")
	flag.StringVar(&dbURL, "db", "", "database URL to persist match results (empty = no persistence)")
	flag.BoolVar(&jsonOut, "json", false, "output results as JSON")
	flag.Parse()

	var names []string
	if generalsCSV != "" {
		names = splitCSV(generalsCSV)
	} else {
		names = general.AvailableGenerals
	}

	allScenarios := tournament.DefaultScenarios(units, 200, 200)
	scenarios := make(map[string]tournament.ScenarioFactory)
	for _, name := range splitCSV(scenariosCSV) {
		f, ok := allScenarios[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown scenario %q\n", name)
			os.Exit(exitUsageError)
		}
		scenarios[name] = f
	}

	var repo *postgres.BattleRepo
	if dbURL != "" {
		db, err := postgres.Connect(dbURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
			os.Exit(exitInternalError)
		}
		defer db.Close()
		repo = postgres.NewBattleRepo(db)
	}

	results := tournament.Run(tournament.Config{
		Generals:           names,
		Scenarios:          scenarios,
		RoundsPerMatchup:   rounds,
		AlternatePositions: !noAlternate,
		Workers:            workers,
		Seed:               seed,
		Log:                log,
	})

	if repo != nil {
		persistResults(repo, results, log)
	}

	if jsonOut {
		printJSON(results)
	} else {
		printSummary(results)
	}
	os.Exit(exitSuccess)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func persistResults(repo *postgres.BattleRepo, results *tournament.Results, log zerolog.Logger) {
	for _, m := range results.Matches {
		rec := postgres.BattleRecord{
			GeneralA:        m.GeneralA,
			GeneralB:        m.GeneralB,
			ScenarioName:    m.ScenarioName,
			Winner:          m.Winner,
			Ticks:           m.Ticks,
			TeamASurvivors:  m.TeamASurvivors,
			TeamBSurvivors:  m.TeamBSurvivors,
			TeamACasualties: m.TeamACasualties,
			TeamBCasualties: m.TeamBCasualties,
		}
		if _, err := repo.Create(context.Background(), rec); err != nil {
			log.Warn().Err(err).Msg("failed to persist match result")
		}
	}
}

func printSummary(results *tournament.Results) {
	scores := results.OverallScores()
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%d matches\n\n", len(results.Matches))
	for _, name := range names {
		s := scores[name]
		fmt.Printf("%-12s  %3d wins  %3d losses  %3d draws  (win rate %.2f)\n", name, s.Wins, s.Losses, s.Draws, s.WinRate)
	}
}

func printJSON(results *tournament.Results) {
	out := struct {
		Matches []tournament.MatchResult      `json:"matches"`
		Scores  map[string]tournament.Scores  `json:"scores"`
		Matrix  map[string]map[string]float64 `json:"matrix"`
	}{
		Matches: results.Matches,
		Scores:  results.OverallScores(),
		Matrix:  results.GeneralVsGeneralMatrix(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}
