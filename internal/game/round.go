package game

import (
	"context"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"holdem-arena/internal/deck"
	"holdem-arena/internal/eval"
)

// Default stakes, matching the classic 1000-chip buy-in structure.
const (
	DefaultSmallBlind    = 5
	DefaultBigBlind      = 10
	DefaultStartingChips = 1000
)

// Round plays one complete hand: blinds, four betting phases, settlement.
// Seating is an immutable rotated view of the players for this round; the
// caller's slice is never reordered.
type Round struct {
	number     int
	seating    []*Player
	smallBlind int
	bigBlind   int
	rng        *rand.Rand
	logger     *log.Logger
	deck       *deck.Deck
	rotation   int
	hasRot     bool
}

// RoundOption customises round construction, mostly for tests.
type RoundOption func(*Round)

// WithDeck injects a prepared deck instead of a fresh shuffle.
func WithDeck(d *deck.Deck) RoundOption {
	return func(r *Round) { r.deck = d }
}

// WithRotation fixes the blind rotation offset instead of drawing it from
// the RNG.
func WithRotation(offset int) RoundOption {
	return func(r *Round) { r.rotation = offset; r.hasRot = true }
}

// WithBlinds overrides the default stakes.
func WithBlinds(small, big int) RoundOption {
	return func(r *Round) { r.smallBlind = small; r.bigBlind = big }
}

// WithLogger attaches a logger for per-action debug output.
func WithLogger(logger *log.Logger) RoundOption {
	return func(r *Round) { r.logger = logger }
}

// NewRound prepares a round for the given players. Players must number at
// least two; seating is the provided order rotated by a uniformly random
// offset so blind positions move between rounds.
func NewRound(rng *rand.Rand, number int, players []*Player, opts ...RoundOption) *Round {
	r := &Round{
		number:     number,
		smallBlind: DefaultSmallBlind,
		bigBlind:   DefaultBigBlind,
		rng:        rng,
	}
	for _, opt := range opts {
		opt(r)
	}

	if !r.hasRot {
		r.rotation = rng.IntN(len(players))
	}
	r.seating = append(slices.Clone(players[r.rotation:]), players[:r.rotation]...)
	return r
}

// RoundResult is everything a completed round produced.
type RoundResult struct {
	BettingRounds []BettingRoundResult
	Winners       []*Player
	Hands         map[int]eval.Value // nil unless the round reached showdown
	Community     []deck.Card
	Pot           int
}

// Play runs the round to completion. Community cards continue to be dealt
// when the remaining players are all-in, but no further decisions are
// requested. A decision provider error aborts the round immediately.
func (r *Round) Play(ctx context.Context) (*RoundResult, error) {
	for _, p := range r.seating {
		p.Hole = nil
	}

	d := r.deck
	if d == nil {
		d = deck.NewShuffled(r.rng)
	}
	for _, p := range r.seating {
		p.Hole = d.Deal(2)
	}

	// Forced blinds, clamped so a short stack never goes negative.
	sb, bb := r.seating[0], r.seating[1]
	sbPosted := min(r.smallBlind, sb.Chips)
	bbPosted := min(r.bigBlind, bb.Chips)
	sb.Chips -= sbPosted
	bb.Chips -= bbPosted
	pot := sbPosted + bbPosted

	if r.logger != nil {
		r.logger.Debug("blinds posted",
			"round", r.number, "small_blind", sb.Name, "big_blind", bb.Name, "pot", pot)
	}

	result := &RoundResult{}

	// Pre-flop: action starts left of the big blind.
	active := append(slices.Clone(r.seating[2:]), sb, bb)
	res, newActive, err := RunBettingRound(ctx, BettingRoundInput{
		Round:      r.number,
		Phase:      PreFlop,
		Active:     active,
		Pot:        pot,
		CurrentBet: r.bigBlind,
		Blinds:     map[int]int{sb.ID: sbPosted, bb.ID: bbPosted},
		Logger:     r.logger,
	})
	if err != nil {
		return nil, err
	}
	result.BettingRounds = append(result.BettingRounds, *res)
	active = newActive
	pot = res.FinalPot

	// Post-flop phases put the small blind first if still contesting.
	if i := slices.Index(active, sb); i > 0 {
		active = append(slices.Clone(active[i:]), active[:i]...)
	}

	var community []deck.Card
	phases := []struct {
		phase Phase
		cards int
	}{
		{Flop, 3},
		{Turn, 1},
		{River, 1},
	}

	for _, ph := range phases {
		if len(active) <= 1 {
			break
		}

		d.Burn()
		community = append(community, d.Deal(ph.cards)...)

		if allAllIn(active) {
			continue
		}

		res, newActive, err := RunBettingRound(ctx, BettingRoundInput{
			Round:     r.number,
			Phase:     ph.phase,
			Active:    active,
			Pot:       pot,
			Community: community,
			Logger:    r.logger,
		})
		if err != nil {
			return nil, err
		}
		result.BettingRounds = append(result.BettingRounds, *res)
		active = newActive
		pot = res.FinalPot
	}

	result.Community = community
	result.Pot = pot
	result.Winners, result.Hands = Settle(active, community, pot)

	if r.logger != nil {
		names := make([]string, len(result.Winners))
		for i, w := range result.Winners {
			names[i] = w.Name
		}
		r.logger.Debug("round settled", "round", r.number, "pot", pot, "winners", names)
	}

	return result, nil
}
