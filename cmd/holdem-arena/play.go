package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"holdem-arena/internal/deck"
	"holdem-arena/internal/game"
	"holdem-arena/internal/randutil"
	"holdem-arena/internal/strategy"
)

// PlayCmd runs a single interactive tournament on the console
type PlayCmd struct {
	Opponents  int    `kong:"default='3',help='Number of bot opponents'"`
	Bots       string `kong:"default='strength',help='Bot strategy: random, strength, station'"`
	SmallBlind int    `kong:"name='small-blind',default='5',help='Small blind amount'"`
	BigBlind   int    `kong:"name='big-blind',default='10',help='Big blind amount'"`
	Chips      int    `kong:"default='1000',help='Starting chip count'"`
	MaxRounds  int    `kong:"name='max-rounds',default='100',help='Round cap before the chip leader wins'"`
	Seed       *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
}

var botNames = []string{"Vera", "Moss", "Quint", "Sable", "Rook", "Juno", "Pike", "Wren"}

func (c *PlayCmd) Run() error {
	if c.Opponents < 1 || c.Opponents > len(botNames) {
		return fmt.Errorf("opponents must be between 1 and %d", len(botNames))
	}

	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)

	players := []*game.Player{
		{ID: 0, Name: "You", Chips: c.Chips, Strategy: strategy.NewInteractive(os.Stdin, os.Stdout)},
	}
	for i := 0; i < c.Opponents; i++ {
		var s game.Strategy
		switch c.Bots {
		case "random":
			s = strategy.NewRandom(rng)
		case "station":
			s = strategy.NewStation()
		case "strength":
			s = strategy.NewHandStrength(rng)
		default:
			return fmt.Errorf("unknown bot strategy %q", c.Bots)
		}
		players = append(players, &game.Player{ID: i + 1, Name: botNames[i], Chips: c.Chips, Strategy: s})
	}

	fmt.Printf("Texas Hold'em vs %d bots, %d/%d blinds, %d chips each. Good luck.\n",
		c.Opponents, c.SmallBlind, c.BigBlind, c.Chips)

	tour := game.NewTournament(game.TournamentConfig{
		Players:    players,
		SmallBlind: c.SmallBlind,
		BigBlind:   c.BigBlind,
		MaxRounds:  c.MaxRounds,
		Seed:       seed,
		Logger:     logger,
		OnRound:    printRound,
	})
	result, err := tour.Run(context.Background())
	if err != nil {
		return err
	}

	printStandings(result)
	return nil
}

// printRound narrates one completed hand: the winners, how they won, and the
// pot they collected.
func printRound(round int, result *game.RoundResult) {
	names := make([]string, len(result.Winners))
	for i, w := range result.Winners {
		names[i] = w.Name
	}
	won := strings.Join(names, ", ")

	if result.Hands == nil {
		fmt.Printf("\nRound %d: everyone folded, %s takes the %d-chip pot.\n", round, won, result.Pot)
		return
	}

	best := result.Hands[result.Winners[0].ID]
	fmt.Printf("\nRound %d showdown on %s\n", round, deck.CardsString(result.Community))
	fmt.Printf("%s wins %d chips with %s.\n", won, result.Pot, best.Category)
}

func printStandings(result *game.GameResult) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 2).
		Bold(true)
	winner := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")).
		Bold(true)

	fmt.Println()
	fmt.Println(title.Render(fmt.Sprintf("Tournament over after %d rounds", result.RoundsPlayed)))
	fmt.Println(winner.Render(fmt.Sprintf("Winner: %s", result.Winner)))
	fmt.Println()

	for i, s := range result.FinalRankings {
		fmt.Printf("  %d. %-12s %5d chips\n", i+1, s.Name, s.Chips)
	}
	for i, s := range result.Eliminated {
		fmt.Printf("  %d. %-12s busted\n", len(result.FinalRankings)+i+1, s.Name)
	}
}
