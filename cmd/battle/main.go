// Command battle runs a single battle between two named generals on a named
// scenario, or replays one from a save file.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/medievail/skirmish/internal/config"
	"github.com/medievail/skirmish/internal/general"
	"github.com/medievail/skirmish/internal/logger"
	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/persist/dson"
	"github.com/medievail/skirmish/internal/persist/redis"
	"github.com/medievail/skirmish/internal/runner"
	"github.com/medievail/skirmish/internal/scenario"
)

const (
	exitSuccess        = 0
	exitInternalError  = 1
	exitUsageError     = 2
	defaultBattlefield = 200.0
)

func main() {
	logger.Init()
	log := logger.Get()

	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUsageError)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runCmd(os.Args[2:], log))
	case "load":
		os.Exit(loadCmd(os.Args[2:], log))
	default:
		usage()
		os.Exit(exitUsageError)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  battle run [--seed N] [--tick-speed N] [--units N] [--data-file PATH] [--json] [--spectate] [--battle-id ID] [--redis-url URL] <scenario> <generalA> <generalB>")
	fmt.Fprintln(os.Stderr, "  battle load [--seed N] [--tick-speed N] [--json] [--spectate] [--battle-id ID] [--redis-url URL] <savefile> <generalA> <generalB>")
}

// spectateOptions configures whether a battle publishes its tick-by-tick
// state to Redis for internal/viewer to poll and rebroadcast to spectators.
type spectateOptions struct {
	enabled  bool
	battleID string
	redisURL string
}

func addSpectateFlags(fs *flag.FlagSet, cfg *config.Config) func() spectateOptions {
	enabled := fs.Bool("spectate", false, "publish live tick snapshots to Redis for internal/viewer to poll")
	battleID := fs.String("battle-id", "", "battle id to publish under when --spectate is set (default: random)")
	redisURL := fs.String("redis-url", cfg.RedisURL, "Redis URL to publish to when --spectate is set")
	return func() spectateOptions {
		return spectateOptions{enabled: *enabled, battleID: *battleID, redisURL: *redisURL}
	}
}

func randomBattleID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func runCmd(args []string, log zerolog.Logger) int {
	cfg := config.Load()
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	seed := fs.Int64("seed", 0, "battle RNG seed")
	tickSpeed := fs.Float64("tick-speed", 5.0, "ticks per second")
	units := fs.Int("units", 20, "units per team")
	dataFile := fs.String("data-file", "", "write the final scenario state to this DSON file")
	jsonOut := fs.Bool("json", false, "output the result as JSON")
	spectateFlags := addSpectateFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	if fs.NArg() < 3 {
		usage()
		return exitUsageError
	}

	scenarioName, generalAName, generalBName := fs.Arg(0), fs.Arg(1), fs.Arg(2)
	sc := scenario.Build(scenario.Formation(scenarioName), *units, defaultBattlefield, defaultBattlefield)

	res, err := battle(sc, generalAName, generalBName, *seed, *tickSpeed, spectateFlags(), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternalError
	}

	if *dataFile != "" {
		state := dson.FromUnits(sc.Units, res.Ticks, sc.SizeX, sc.SizeY, *seed)
		if err := os.WriteFile(*dataFile, []byte(dson.Format(state)), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "writing data file: %v\n", err)
			return exitInternalError
		}
	}

	printResult(res, *jsonOut)
	return exitSuccess
}

func loadCmd(args []string, log zerolog.Logger) int {
	cfg := config.Load()
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	seed := fs.Int64("seed", 0, "battle RNG seed")
	tickSpeed := fs.Float64("tick-speed", 5.0, "ticks per second")
	jsonOut := fs.Bool("json", false, "output the result as JSON")
	spectateFlags := addSpectateFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	if fs.NArg() < 3 {
		usage()
		return exitUsageError
	}

	saveFile, generalAName, generalBName := fs.Arg(0), fs.Arg(1), fs.Arg(2)
	raw, err := os.ReadFile(saveFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading save file: %v\n", err)
		return exitInternalError
	}
	state, err := dson.Parse(string(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "parsing save file: %v\n", err)
		return exitInternalError
	}

	units := state.ToUnits()
	var unitsA, unitsB []*model.Unit
	for _, u := range units {
		if u.Team == model.TeamA {
			unitsA = append(unitsA, u)
		} else {
			unitsB = append(unitsB, u)
		}
	}
	sc := scenario.New(unitsA, unitsB, state.SizeX, state.SizeY)

	res, err := battle(sc, generalAName, generalBName, *seed, *tickSpeed, spectateFlags(), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternalError
	}

	printResult(res, *jsonOut)
	return exitSuccess
}

func battle(sc *scenario.Scenario, generalAName, generalBName string, seed int64, tickSpeed float64, spectate spectateOptions, log zerolog.Logger) (runner.Result, error) {
	genA, err := general.NewNamed(generalAName, sc.UnitsA, sc.UnitsB, nil, sc.SizeX, sc.SizeY, seed)
	if err != nil {
		return runner.Result{}, fmt.Errorf("general A: %w", err)
	}
	genB, err := general.NewNamed(generalBName, sc.UnitsB, sc.UnitsA, nil, sc.SizeX, sc.SizeY, seed+1)
	if err != nil {
		return runner.Result{}, fmt.Errorf("general B: %w", err)
	}

	opts := runner.Options{
		TickSpeed: tickSpeed,
		Seed:      seed,
		Log:       log,
	}

	var redisClient *redis.Client
	battleID := spectate.battleID
	if spectate.enabled {
		if battleID == "" {
			battleID = randomBattleID()
		}
		redisClient, err = redis.NewClient(spectate.redisURL)
		if err != nil {
			return runner.Result{}, fmt.Errorf("connecting to redis for --spectate: %w", err)
		}
		defer redisClient.Close()
		opts.Sink = &redis.Sink{Client: redisClient, BattleID: battleID, SizeX: sc.SizeX, SizeY: sc.SizeY, Seed: seed}
		log.Info().Str("battleId", battleID).Str("redisUrl", spectate.redisURL).Msg("publishing live ticks for spectators")
	}

	res := runner.Run(sc.SizeX, sc.SizeY, sc.UnitsA, sc.UnitsB, genA, genB, opts)

	if redisClient != nil {
		if err := redisClient.ClearBattle(context.Background(), battleID); err != nil {
			log.Warn().Err(err).Str("battleId", battleID).Msg("clearing live battle state failed")
		}
	}

	return res, nil
}

func printResult(res runner.Result, jsonOut bool) {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(res)
		return
	}
	fmt.Printf("winner: %s  ticks: %d\n", res.Winner, res.Ticks)
	fmt.Printf("team A: %d/%d survived, %d casualties\n", res.TeamARemaining, res.TeamAInitial, res.TeamACasualties)
	fmt.Printf("team B: %d/%d survived, %d casualties\n", res.TeamBRemaining, res.TeamBInitial, res.TeamBCasualties)
}
