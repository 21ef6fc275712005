// Package config loads simulation configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete simulation configuration
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Blinds     BlindsConfig       `hcl:"blinds,block"`
	Players    []PlayerConfig     `hcl:"player,block"`
}

// SimulationSettings contains run-level configuration
type SimulationSettings struct {
	Games         int    `hcl:"games,optional"`
	Concurrency   int    `hcl:"concurrency,optional"`
	MaxRounds     int    `hcl:"max_rounds,optional"`
	Seed          int64  `hcl:"seed,optional"`
	StartingChips int    `hcl:"starting_chips,optional"`
	UsageLog      string `hcl:"usage_log,optional"`
	LogLevel      string `hcl:"log_level,optional"`
}

// BlindsConfig defines the forced-bet structure
type BlindsConfig struct {
	Small int `hcl:"small,optional"`
	Big   int `hcl:"big,optional"`
}

// PlayerConfig defines one seat at the table
type PlayerConfig struct {
	Name      string `hcl:"name,label"`
	Strategy  string `hcl:"strategy"`
	Model     string `hcl:"model,optional"`
	Reasoning bool   `hcl:"reasoning,optional"`
}

// Default returns the default configuration: four heuristic-mix bots at
// classic 5/10 stakes.
func Default() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Games:         10,
			Concurrency:   100,
			MaxRounds:     100,
			StartingChips: 1000,
			LogLevel:      "info",
		},
		Blinds: BlindsConfig{Small: 5, Big: 10},
		Players: []PlayerConfig{
			{Name: "Rando", Strategy: "random"},
			{Name: "Chartwell", Strategy: "strength"},
			{Name: "Station", Strategy: "station"},
			{Name: "Maverick", Strategy: "strength"},
		},
	}
}

// Load reads configuration from an HCL file, returning defaults when the
// file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	defaults := Default()
	if cfg.Simulation.Games == 0 {
		cfg.Simulation.Games = defaults.Simulation.Games
	}
	if cfg.Simulation.Concurrency == 0 {
		cfg.Simulation.Concurrency = defaults.Simulation.Concurrency
	}
	if cfg.Simulation.MaxRounds == 0 {
		cfg.Simulation.MaxRounds = defaults.Simulation.MaxRounds
	}
	if cfg.Simulation.StartingChips == 0 {
		cfg.Simulation.StartingChips = defaults.Simulation.StartingChips
	}
	if cfg.Simulation.LogLevel == "" {
		cfg.Simulation.LogLevel = defaults.Simulation.LogLevel
	}
	if cfg.Blinds.Small == 0 {
		cfg.Blinds.Small = defaults.Blinds.Small
	}
	if cfg.Blinds.Big == 0 {
		cfg.Blinds.Big = defaults.Blinds.Big
	}
	if len(cfg.Players) == 0 {
		cfg.Players = defaults.Players
	}
}

var knownStrategies = map[string]bool{
	"random":   true,
	"strength": true,
	"station":  true,
	"llm":      true,
}

func validate(cfg *Config) error {
	if len(cfg.Players) < 2 {
		return fmt.Errorf("at least 2 players required, got %d", len(cfg.Players))
	}
	seen := make(map[string]bool)
	for _, p := range cfg.Players {
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
		if !knownStrategies[p.Strategy] {
			return fmt.Errorf("player %q: unknown strategy %q", p.Name, p.Strategy)
		}
	}
	if cfg.Blinds.Small >= cfg.Blinds.Big {
		return fmt.Errorf("small blind %d must be below big blind %d", cfg.Blinds.Small, cfg.Blinds.Big)
	}
	return nil
}
