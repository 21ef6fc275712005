package strategy

import (
	"context"
	rand "math/rand/v2"

	"holdem-arena/internal/game"
)

// Random plays loose-passive noise poker. With no bet pending it mostly
// checks; facing a bet it mostly calls, occasionally folding or min-raising.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random strategy using the given RNG.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Decide(_ context.Context, s game.Situation) (game.ActionResponse, error) {
	if s.ToCall == 0 {
		if r.rng.Float64() < 0.75 {
			return check()
		}
		return raise(10)
	}

	if r.rng.Float64() < 0.75 {
		return call(min(s.ToCall, s.Chips))
	}
	if r.rng.Float64() < 0.75 {
		return fold()
	}

	total := min(s.ToCall+10, s.Chips)
	if total > s.ToCall {
		return raise(total)
	}
	if total >= s.ToCall {
		return call(s.ToCall)
	}
	return fold()
}
