package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"holdem-arena/internal/game"
)

func result(rankings, eliminated []game.Standing, winner string, rounds []game.BettingRoundResult) *game.GameResult {
	winnerID := 0
	for _, s := range rankings {
		if s.Name == winner {
			winnerID = s.ID
		}
	}
	return &game.GameResult{
		WinnerID:      winnerID,
		Winner:        winner,
		FinalRankings: rankings,
		Eliminated:    eliminated,
		BettingRounds: rounds,
	}
}

func TestSummarizeNetChipsAndWins(t *testing.T) {
	results := []*game.GameResult{
		result([]game.Standing{{ID: 0, Name: "A", Chips: 1500}, {ID: 1, Name: "B", Chips: 500}}, nil, "A", nil),
		result([]game.Standing{{ID: 1, Name: "B", Chips: 2000}}, []game.Standing{{ID: 0, Name: "A", Chips: 0}}, "B", nil),
	}

	summary := Summarize(results)
	if summary.Games != 2 {
		t.Fatalf("games = %d, want 2", summary.Games)
	}
	if len(summary.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(summary.Players))
	}

	// B: 500 + 2000 = 2500 leads; A: 1500 + 0 = 1500.
	if summary.Players[0].Name != "B" || summary.Players[0].NetChips != 2500 {
		t.Errorf("leader = %s/%d, want B/2500", summary.Players[0].Name, summary.Players[0].NetChips)
	}
	if summary.Players[1].Name != "A" || summary.Players[1].NetChips != 1500 {
		t.Errorf("runner-up = %s/%d, want A/1500", summary.Players[1].Name, summary.Players[1].NetChips)
	}
	for _, p := range summary.Players {
		if p.Wins != 1 {
			t.Errorf("%s has %d wins, want 1", p.Name, p.Wins)
		}
		if p.Games != 2 {
			t.Errorf("%s played %d games, want 2", p.Name, p.Games)
		}
	}
}

func TestSummarizeVolatilityCountsEliminationAsZero(t *testing.T) {
	results := []*game.GameResult{
		result([]game.Standing{{ID: 0, Name: "A", Chips: 1000}}, nil, "A", nil),
		result(nil, []game.Standing{{ID: 0, Name: "A", Chips: 0}}, "", nil),
	}

	summary := Summarize(results)
	// Sample stddev of {1000, 0}.
	want := math.Sqrt(500000)
	if got := summary.Players[0].Volatility; math.Abs(got-want) > 1e-9 {
		t.Errorf("volatility = %f, want %f", got, want)
	}
}

func TestSummarizeActionMetrics(t *testing.T) {
	rounds := []game.BettingRoundResult{
		{
			Actions: map[int]game.ActionResponse{
				0: {Action: game.Raise, Amount: 20, ActualAmount: 20},
				1: {Action: game.Fold},
			},
		},
		{
			Actions: map[int]game.ActionResponse{
				0: {Action: game.Check},
			},
		},
	}
	results := []*game.GameResult{
		result([]game.Standing{{ID: 0, Name: "A", Chips: 2000}}, []game.Standing{{ID: 1, Name: "B", Chips: 0}}, "A", rounds),
	}

	summary := Summarize(results)
	byName := make(map[string]PlayerMetrics)
	for _, p := range summary.Players {
		byName[p.Name] = p
	}

	a := byName["A"]
	if a.Actions != 2 {
		t.Errorf("A took %d actions, want 2", a.Actions)
	}
	if a.AverageBetSize != 10 {
		t.Errorf("A avg bet = %f, want 10", a.AverageBetSize)
	}
	if a.RaisePercent != 50 {
		t.Errorf("A raise%% = %f, want 50", a.RaisePercent)
	}
	if a.FoldPercent != 0 {
		t.Errorf("A fold%% = %f, want 0", a.FoldPercent)
	}

	b := byName["B"]
	if b.FoldPercent != 100 {
		t.Errorf("B fold%% = %f, want 100", b.FoldPercent)
	}
	if b.AverageBetSize != 0 {
		t.Errorf("B avg bet = %f, want 0", b.AverageBetSize)
	}
}

func TestRenderShowsAllTables(t *testing.T) {
	results := []*game.GameResult{
		result([]game.Standing{{ID: 0, Name: "Alice", Chips: 1200}, {ID: 1, Name: "Bob", Chips: 800}}, nil, "Alice", nil),
	}

	var buf bytes.Buffer
	Render(&buf, Summarize(results))

	out := buf.String()
	for _, title := range []string{"Total Net Chips", "Chip Volatility", "Average Bet Size", "Aggressiveness", "Passivity"} {
		if !strings.Contains(out, title) {
			t.Errorf("output missing %q table", title)
		}
	}
	if !strings.Contains(out, "Alice") || !strings.Contains(out, "Bob") {
		t.Error("output missing player names")
	}
}
