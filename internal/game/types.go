package game

import (
	"context"

	"holdem-arena/internal/deck"
)

// Phase represents a betting phase within a round
type Phase int

const (
	PreFlop Phase = iota
	Flop
	Turn
	River
)

func (p Phase) String() string {
	return [...]string{"pre_flop", "flop", "turn", "river"}[p]
}

// Action represents a player action
type Action int

const (
	Check Action = iota
	Call
	Fold
	Raise
)

func (a Action) String() string {
	return [...]string{"check", "call", "fold", "raise"}[a]
}

// ActionResponse is what a decision provider proposes and what the engine
// actually did with it. Amount is the additional contribution the provider
// asked for; ActualAmount is what reached the pot after capping.
type ActionResponse struct {
	Action       Action
	Amount       int
	ActualAmount int
}

// Situation is the information a decision provider sees when asked to act.
type Situation struct {
	Player    *Player
	Pot       int
	ToCall    int
	Chips     int
	Community []deck.Card
	Phase     Phase
}

// Strategy is a pluggable decision provider. Implementations may perform
// network I/O; the engine never trusts the response and clamps amounts to
// what the player and their opponents can actually cover.
type Strategy interface {
	Decide(ctx context.Context, s Situation) (ActionResponse, error)
}

// Player represents a tournament participant. ID is the stable key used
// everywhere players are tracked; names are display-only.
type Player struct {
	ID       int
	Name     string
	Chips    int
	Hole     []deck.Card
	Strategy Strategy
}

// Standing is a player's position in a final ranking.
type Standing struct {
	ID    int
	Name  string
	Chips int
}

// BettingRoundResult records one completed betting phase. Actions holds the
// last action each player took during the phase, keyed by player ID.
type BettingRoundResult struct {
	Round       int
	Phase       Phase
	Actions     map[int]ActionResponse
	StartingPot int
	FinalPot    int
	Community   []deck.Card
	ActiveIDs   []int
}

// GameResult is the outcome of one tournament.
type GameResult struct {
	WinnerID      int
	Winner        string
	RoundsPlayed  int
	FinalRankings []Standing
	Eliminated    []Standing
	BettingRounds []BettingRoundResult
}

// TotalChips sums chips across all ranked and eliminated players.
func (g *GameResult) TotalChips() int {
	total := 0
	for _, s := range g.FinalRankings {
		total += s.Chips
	}
	for _, s := range g.Eliminated {
		total += s.Chips
	}
	return total
}
