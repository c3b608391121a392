// Command sweep runs the Lanchester parameter sweep: N-vs-2N battles for a
// range of N, for one or more unit types.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/medievail/skirmish/internal/logger"
	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/persist/postgres"
	"github.com/medievail/skirmish/internal/sweep"
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
		unitTypesCSV string
		nRange       string
		reps         int
		workers      int
		seed         int64
		dbURL        string
		jsonOut      bool
	)

	flag.StringVar(&unitTypesCSV, "unit-types", "knight,pikeman,crossbowman", "comma-separated unit types")
	flag.StringVar(&nRange, "n-range", "5:50:5", "low:high:step for N")
	flag.IntVar(&reps, "reps", 5, "repetitions per (unit type, N) pair")
	flag.IntVar(&workers, "workers", 8, "worker pool size")
	flag.Int64Var(&seed, "seed", 0, "base RNG seed")
	flag.StringVar(&dbURL, "db", "", "database URL to persist sweep rows (empty = no persistence)")
	flag.BoolVar(&jsonOut, "json", false, "output the table as JSON")
	flag.Parse()

	unitTypes, err := parseUnitTypes(unitTypesCSV)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsageError)
	}
	nValues, err := parseNRange(nRange)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsageError)
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

	table := sweep.Run(sweep.Config{
		UnitTypes:   unitTypes,
		NValues:     nValues,
		Repetitions: reps,
		Workers:     workers,
		Seed:        seed,
		Log:         log,
	})

	if repo != nil {
		persistTable(repo, table, log)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(table)
	} else {
		printTable(table, unitTypes, nValues)
	}
	os.Exit(exitSuccess)
}

func parseUnitTypes(csv string) ([]model.UnitType, error) {
	var out []model.UnitType
	for _, part := range strings.Split(csv, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "knight":
			out = append(out, model.Knight)
		case "pikeman":
			out = append(out, model.Pikeman)
		case "crossbowman":
			out = append(out, model.Crossbowman)
		case "":
			continue
		default:
			return nil, fmt.Errorf("unknown unit type %q", part)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no unit types given")
	}
	return out, nil
}

func parseNRange(s string) ([]int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("n-range must be low:high:step, got %q", s)
	}
	low, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("n-range low: %w", err)
	}
	high, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("n-range high: %w", err)
	}
	step, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("n-range step: %w", err)
	}
	if step <= 0 {
		return nil, fmt.Errorf("n-range step must be positive, got %d", step)
	}
	var out []int
	for n := low; n <= high; n += step {
		out = append(out, n)
	}
	return out, nil
}

func persistTable(repo *postgres.BattleRepo, table *sweep.Table, log zerolog.Logger) {
	for _, p := range table.Points {
		rec := postgres.BattleRecord{
			GeneralA:        "DAFT",
			GeneralB:        "DAFT",
			ScenarioName:    fmt.Sprintf("lanchester-%s-%d", p.UnitType, p.N),
			Winner:          p.Winner,
			Ticks:           p.Ticks,
			TeamASurvivors:  p.TeamASurvivors,
			TeamBSurvivors:  p.TeamBSurvivors,
			TeamACasualties: p.TeamACasualties,
			TeamBCasualties: p.TeamBCasualties,
		}
		if _, err := repo.Create(context.Background(), rec); err != nil {
			log.Warn().Err(err).Msg("failed to persist sweep row")
		}
	}
}

func printTable(table *sweep.Table, unitTypes []model.UnitType, nValues []int) {
	fmt.Printf("%d data points\n\n", len(table.Points))
	fmt.Printf("%-12s %6s %s\n", "unit type", "N", "mean survivor fraction (N-side)")
	for _, ut := range unitTypes {
		for _, n := range nValues {
			fmt.Printf("%-12s %6d %.3f\n", ut, n, table.MeanSurvivorFraction(ut, n))
		}
	}
}
