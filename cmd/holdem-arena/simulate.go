package main

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"holdem-arena/internal/config"
	"holdem-arena/internal/game"
	"holdem-arena/internal/harness"
	"holdem-arena/internal/llm"
	"holdem-arena/internal/randutil"
	"holdem-arena/internal/report"
	"holdem-arena/internal/strategy"
	"holdem-arena/internal/telemetry"
)

// SimulateCmd runs a batch of tournaments and prints aggregate metrics
type SimulateCmd struct {
	Config      string `kong:"default='arena.hcl',help='HCL configuration file'"`
	Games       int    `kong:"help='Number of tournaments to run (overrides config)'"`
	Concurrency int    `kong:"help='Maximum tournaments in flight (overrides config)'"`
	Seed        *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	UsageLog    string `kong:"name='usage-log',help='CSV file for completion usage records (overrides config)'"`
	Debug       bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Games > 0 {
		cfg.Simulation.Games = c.Games
	}
	if c.Concurrency > 0 {
		cfg.Simulation.Concurrency = c.Concurrency
	}
	if c.UsageLog != "" {
		cfg.Simulation.UsageLog = c.UsageLog
	}

	seed := cfg.Simulation.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var recorder *telemetry.Recorder
	if cfg.Simulation.UsageLog != "" {
		f, err := os.OpenFile(cfg.Simulation.UsageLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening usage log: %w", err)
		}
		defer f.Close()
		recorder = telemetry.NewRecorder(f)
	}

	logger.Info("starting simulation",
		"games", cfg.Simulation.Games,
		"concurrency", cfg.Simulation.Concurrency,
		"players", len(cfg.Players),
		"seed", seed)

	factory := func(i int) *game.Tournament {
		gameSeed := seed + int64(i)
		rng := randutil.New(gameSeed)

		players := make([]*game.Player, len(cfg.Players))
		for j, pc := range cfg.Players {
			players[j] = &game.Player{
				ID:       j,
				Name:     pc.Name,
				Chips:    cfg.Simulation.StartingChips,
				Strategy: buildStrategy(pc, rng, recorder, logger),
			}
		}

		return game.NewTournament(game.TournamentConfig{
			Players:    players,
			SmallBlind: cfg.Blinds.Small,
			BigBlind:   cfg.Blinds.Big,
			MaxRounds:  cfg.Simulation.MaxRounds,
			Seed:       gameSeed,
			Logger:     logger,
		})
	}

	outcomes, err := harness.Run(context.Background(), harness.Config{
		Games:       cfg.Simulation.Games,
		Concurrency: cfg.Simulation.Concurrency,
		Logger:      logger,
	}, factory)
	if err != nil {
		return err
	}

	results, errs := harness.Results(outcomes)
	if len(errs) > 0 {
		logger.Warn("some tournaments failed", "failed", len(errs), "completed", len(results))
	}
	if len(results) == 0 {
		return fmt.Errorf("all %d tournaments failed", len(errs))
	}

	report.Render(os.Stdout, report.Summarize(results))
	return nil
}

// buildStrategy constructs the decision provider for one seat. Random and
// strength strategies take the per-tournament RNG so concurrent tournaments
// never share RNG state.
func buildStrategy(pc config.PlayerConfig, rng *rand.Rand, recorder *telemetry.Recorder, logger *log.Logger) game.Strategy {
	switch pc.Strategy {
	case "random":
		return strategy.NewRandom(rng)
	case "strength":
		return strategy.NewHandStrength(rng)
	case "station":
		return strategy.NewStation()
	case "llm":
		client := llm.NewClient(llm.Config{Model: pc.Model})
		opts := []strategy.LLMOption{strategy.WithLogger(logger)}
		if recorder != nil {
			opts = append(opts, strategy.WithUsageRecorder(recorder))
		}
		if pc.Reasoning {
			opts = append(opts, strategy.WithReasoning())
		}
		return strategy.NewLLM(client, opts...)
	default:
		// config.Load validates strategies; this is unreachable.
		return strategy.NewStation()
	}
}

func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}
