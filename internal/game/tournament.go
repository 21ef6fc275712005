package game

import (
	"context"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"holdem-arena/internal/randutil"
)

// DefaultMaxRounds caps a tournament that never reaches a lone survivor.
const DefaultMaxRounds = 100

// TournamentConfig configures a single tournament.
type TournamentConfig struct {
	Players    []*Player
	SmallBlind int
	BigBlind   int
	MaxRounds  int
	Seed       int64
	Logger     *log.Logger

	// OnRound, when set, is called after each completed round. Used by the
	// interactive mode to narrate hand outcomes.
	OnRound func(round int, result *RoundResult)
}

// Tournament plays repeated rounds with persistent chip stacks, eliminating
// busted players, until one player remains or the round cap is reached.
// A tournament owns all of its mutable state (players, deck draws, RNG), so
// many tournaments can run concurrently without coordination.
type Tournament struct {
	cfg TournamentConfig
	rng *rand.Rand
}

// NewTournament creates a tournament. Zero-valued stakes and caps fall back
// to defaults.
func NewTournament(cfg TournamentConfig) *Tournament {
	if cfg.SmallBlind == 0 {
		cfg.SmallBlind = DefaultSmallBlind
	}
	if cfg.BigBlind == 0 {
		cfg.BigBlind = DefaultBigBlind
	}
	if cfg.MaxRounds == 0 {
		cfg.MaxRounds = DefaultMaxRounds
	}
	return &Tournament{cfg: cfg, rng: randutil.New(cfg.Seed)}
}

// Run plays the tournament to completion. A decision provider failure aborts
// the whole tournament; no partial result is produced.
func (t *Tournament) Run(ctx context.Context) (*GameResult, error) {
	live := make([]*Player, len(t.cfg.Players))
	copy(live, t.cfg.Players)

	result := &GameResult{}
	var eliminated []*Player

	rounds := 0
	for len(live) >= 2 && rounds < t.cfg.MaxRounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rounds++

		round := NewRound(t.rng, rounds, live,
			WithBlinds(t.cfg.SmallBlind, t.cfg.BigBlind),
			WithLogger(t.cfg.Logger),
		)
		roundResult, err := round.Play(ctx)
		if err != nil {
			return nil, err
		}
		result.BettingRounds = append(result.BettingRounds, roundResult.BettingRounds...)

		if t.cfg.OnRound != nil {
			t.cfg.OnRound(rounds, roundResult)
		}

		live, eliminated = eliminate(live, eliminated)
	}

	result.RoundsPlayed = rounds
	result.FinalRankings = rankByChips(live)
	result.Eliminated = standings(eliminated)

	// Sole survivor, or the chip leader when the round cap was hit.
	if len(result.FinalRankings) > 0 {
		result.WinnerID = result.FinalRankings[0].ID
		result.Winner = result.FinalRankings[0].Name
	}

	if t.cfg.Logger != nil {
		t.cfg.Logger.Info("tournament finished",
			"winner", result.Winner, "rounds", rounds, "eliminated", len(eliminated))
	}

	return result, nil
}

// eliminate moves busted players out of the live list, preserving order in
// both lists.
func eliminate(live, eliminated []*Player) ([]*Player, []*Player) {
	remaining := live[:0:0]
	for _, p := range live {
		if p.Chips > 0 {
			remaining = append(remaining, p)
		} else {
			eliminated = append(eliminated, p)
		}
	}
	return remaining, eliminated
}

// rankByChips orders players by descending chips, ties broken by seating.
func rankByChips(players []*Player) []Standing {
	ranked := standings(players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Chips > ranked[j].Chips
	})
	return ranked
}

func standings(players []*Player) []Standing {
	out := make([]Standing, len(players))
	for i, p := range players {
		out[i] = Standing{ID: p.ID, Name: p.Name, Chips: p.Chips}
	}
	return out
}
