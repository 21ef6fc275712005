// Package report aggregates metrics across many completed tournaments.
// Players are identified by name across games; the same name in two games is
// the same contestant.
package report

import (
	"math"
	"sort"

	"holdem-arena/internal/game"
)

// PlayerMetrics is the aggregate view of one player across all games.
type PlayerMetrics struct {
	Name           string
	NetChips       int     // total chips held at the end of each game
	Volatility     float64 // sample stddev of per-game final chips, eliminated = 0
	Games          int
	Actions        int
	AverageBetSize float64 // mean chips committed per action, checks and folds count as 0
	RaisePercent   float64
	FoldPercent    float64
	Wins           int
}

// Summary holds per-player metrics for a batch of game results.
type Summary struct {
	Games   int
	Players []PlayerMetrics // sorted by net chips, descending
}

// Summarize computes aggregate metrics over results.
func Summarize(results []*game.GameResult) Summary {
	perPlayer := make(map[string]*playerAccumulator)
	acc := func(name string) *playerAccumulator {
		a, ok := perPlayer[name]
		if !ok {
			a = &playerAccumulator{}
			perPlayer[name] = a
		}
		return a
	}

	for _, result := range results {
		names := playerNames(result)

		for _, s := range result.FinalRankings {
			a := acc(s.Name)
			a.chipsPerGame = append(a.chipsPerGame, float64(s.Chips))
			a.netChips += s.Chips
		}
		for _, s := range result.Eliminated {
			acc(s.Name).chipsPerGame = append(acc(s.Name).chipsPerGame, 0)
		}
		if result.Winner != "" {
			acc(result.Winner).wins++
		}

		for _, round := range result.BettingRounds {
			for id, action := range round.Actions {
				a := acc(names[id])
				a.actions++
				a.committed += action.ActualAmount
				switch action.Action {
				case game.Raise:
					a.raises++
				case game.Fold:
					a.folds++
				}
			}
		}
	}

	summary := Summary{Games: len(results)}
	for name, a := range perPlayer {
		summary.Players = append(summary.Players, a.metrics(name))
	}
	sort.SliceStable(summary.Players, func(i, j int) bool {
		return summary.Players[i].NetChips > summary.Players[j].NetChips
	})
	return summary
}

type playerAccumulator struct {
	netChips     int
	chipsPerGame []float64
	wins         int
	actions      int
	committed    int
	raises       int
	folds        int
}

func (a *playerAccumulator) metrics(name string) PlayerMetrics {
	m := PlayerMetrics{
		Name:       name,
		NetChips:   a.netChips,
		Volatility: sampleStdDev(a.chipsPerGame),
		Games:      len(a.chipsPerGame),
		Actions:    a.actions,
		Wins:       a.wins,
	}
	if a.actions > 0 {
		m.AverageBetSize = float64(a.committed) / float64(a.actions)
		m.RaisePercent = float64(a.raises) / float64(a.actions) * 100
		m.FoldPercent = float64(a.folds) / float64(a.actions) * 100
	}
	return m
}

func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sumSquares := 0.0
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}

func playerNames(result *game.GameResult) map[int]string {
	names := make(map[int]string)
	for _, s := range result.FinalRankings {
		names[s.ID] = s.Name
	}
	for _, s := range result.Eliminated {
		names[s.ID] = s.Name
	}
	return names
}
