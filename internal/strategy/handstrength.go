package strategy

import (
	"context"
	rand "math/rand/v2"

	"holdem-arena/internal/deck"
	"holdem-arena/internal/game"
)

// HandStrength plays a simple preflop-chart heuristic: premium pairs and
// top-percentile hands play fast, medium hands call small bets, weak hands
// fold to pressure. Community cards are ignored; the hand class is decided
// from the hole cards alone.
type HandStrength struct {
	rng *rand.Rand
}

// NewHandStrength creates a HandStrength strategy using the given RNG.
func NewHandStrength(rng *rand.Rand) *HandStrength {
	return &HandStrength{rng: rng}
}

func (h *HandStrength) Decide(_ context.Context, s game.Situation) (game.ActionResponse, error) {
	if len(s.Player.Hole) < 2 {
		if s.ToCall == 0 {
			return check()
		}
		return fold()
	}

	high, low := s.Player.Hole[0].Rank, s.Player.Hole[1].Rank
	if low > high {
		high, low = low, high
	}

	isPair := high == low
	isSuited := s.Player.Hole[0].Suit == s.Player.Hole[1].Suit
	isConnected := int(high)-int(low) <= 1
	hasAce := high == deck.Ace
	hasFaceCard := high >= deck.Jack

	betRatio := float64(s.ToCall) / float64(max(s.Chips, 1))

	switch {
	// Strong: pocket sevens or better, or a top-decile starting hand.
	case (isPair && high >= deck.Seven) || deck.Percentile(s.Player.Hole) >= 0.9:
		if s.ToCall == 0 {
			return raise(min(15, s.Chips))
		}
		if betRatio < 0.3 {
			return raise(min(s.ToCall+15, s.Chips))
		}
		return call(min(s.ToCall, s.Chips))

	// Medium: big-card hands worth a look.
	case hasAce || (isSuited && hasFaceCard) || (isConnected && hasFaceCard):
		if s.ToCall == 0 {
			if h.rng.Float64() < 0.6 {
				return check()
			}
			return raise(min(10, s.Chips))
		}
		if betRatio < 0.2 {
			if h.rng.Float64() < 0.7 {
				return call(min(s.ToCall, s.Chips))
			}
			return raise(min(s.ToCall+10, s.Chips))
		}
		if betRatio < 0.4 {
			return call(min(s.ToCall, s.Chips))
		}
		return fold()

	// Speculative: suited, connected, or two decent cards.
	case isSuited || isConnected || (low >= deck.Seven && high >= deck.Ten):
		if s.ToCall == 0 {
			return check()
		}
		if betRatio < 0.15 {
			return call(min(s.ToCall, s.Chips))
		}
		return fold()

	// Weak: check when free, occasionally peel a tiny bet.
	default:
		if s.ToCall == 0 {
			return check()
		}
		if betRatio < 0.1 && h.rng.Float64() < 0.3 {
			return call(min(s.ToCall, s.Chips))
		}
		return fold()
	}
}
