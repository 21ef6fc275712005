package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"holdem-arena/internal/deck"
)

// BettingRoundInput carries the state a betting phase starts from. Active
// must be in seating order; Blinds holds contributions already posted this
// phase (forced, not voluntary actions).
type BettingRoundInput struct {
	Round      int
	Phase      Phase
	Active     []*Player
	Pot        int
	CurrentBet int
	Community  []deck.Card
	Blinds     map[int]int
	Logger     *log.Logger
}

// RunBettingRound processes one phase of wagering. Players act in FIFO order
// from a queue seeded with the active players; a raise that strictly
// increases the current bet re-queues everyone who hasn't matched it.
// Returns the phase record and the surviving active players.
//
// Action processing is strictly sequential: each decision depends on the
// pot and bet state left by the previous one.
func RunBettingRound(ctx context.Context, in BettingRoundInput) (*BettingRoundResult, []*Player, error) {
	res := &BettingRoundResult{
		Round:       in.Round,
		Phase:       in.Phase,
		Actions:     make(map[int]ActionResponse),
		StartingPot: in.Pot,
		Community:   slices.Clone(in.Community),
	}
	active := slices.Clone(in.Active)
	pot := in.Pot
	currentBet := in.CurrentBet

	// All-in standoff: nobody can act, so nobody is asked to.
	if allAllIn(active) {
		res.FinalPot = pot
		res.ActiveIDs = playerIDs(active)
		return res, active, nil
	}

	bets := make(map[int]int, len(active))
	for _, p := range active {
		bets[p.ID] = in.Blinds[p.ID]
	}

	queue := slices.Clone(active)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if !slices.Contains(active, p) {
			continue // folded after being queued
		}

		toCall := currentBet - bets[p.ID]

		var resp ActionResponse
		if toCall >= p.Chips {
			// The player cannot cover the call: resolve as a forced all-in
			// call without querying the provider.
			resp = ActionResponse{Action: Call, Amount: min(toCall, p.Chips)}
		} else {
			var err error
			resp, err = p.Strategy.Decide(ctx, Situation{
				Player:    p,
				Pot:       pot,
				ToCall:    toCall,
				Chips:     p.Chips,
				Community: res.Community,
				Phase:     in.Phase,
			})
			if err != nil {
				return nil, nil, fmt.Errorf("decision for %s on %s: %w", p.Name, in.Phase, err)
			}
		}

		var wasRaise bool
		pot, currentBet, wasRaise, resp.ActualAmount = applyAction(p, resp, bets, &active, pot, currentBet)
		res.Actions[p.ID] = resp

		if in.Logger != nil {
			in.Logger.Debug("action",
				"round", in.Round, "phase", in.Phase.String(),
				"player", p.Name, "action", resp.Action.String(),
				"amount", resp.ActualAmount, "pot", pot, "bet", currentBet)
		}

		if wasRaise {
			// Betting reopens: everyone below the new bet must act again,
			// including players who already acted this phase.
			for _, other := range active {
				if other != p && bets[other.ID] < currentBet && !slices.Contains(queue, other) {
					queue = append(queue, other)
				}
			}
		}

		if len(active) == 1 {
			break
		}
		if allAllIn(active) {
			break
		}
	}

	res.FinalPot = pot
	res.ActiveIDs = playerIDs(active)
	return res, active, nil
}

// applyAction mutates chip and bet state for one action. Proposed amounts
// are never trusted: calls are limited to the player's stack and raises are
// capped so no opponent could be asked to commit more than their own
// maximum possible contribution. Returns the updated pot, the current bet,
// whether betting reopened, and the chips actually contributed.
func applyAction(p *Player, resp ActionResponse, bets map[int]int, active *[]*Player, pot, currentBet int) (int, int, bool, int) {
	switch resp.Action {
	case Fold:
		if i := slices.Index(*active, p); i >= 0 {
			*active = slices.Delete(*active, i, i+1)
		}
		return pot, currentBet, false, 0

	case Check:
		return pot, currentBet, false, 0

	case Call:
		toCall := currentBet - bets[p.ID]
		actual := min(toCall, p.Chips)
		if actual < 0 {
			actual = 0
		}
		bets[p.ID] += actual
		p.Chips -= actual
		pot += actual
		return pot, currentBet, false, actual

	case Raise:
		maxCallable := maxCallableByOthers(p, bets, *active)
		proposed := bets[p.ID] + resp.Amount
		ownMax := bets[p.ID] + p.Chips

		effective := min(proposed, min(maxCallable, ownMax))
		actual := effective - bets[p.ID]
		if actual < 0 {
			actual = 0
			effective = bets[p.ID]
		}

		bets[p.ID] = effective
		p.Chips -= actual
		pot += actual

		// Only a strict increase reopens betting; otherwise this was a
		// call-level contribution and the current bet stands.
		if effective > currentBet {
			return pot, effective, true, actual
		}
		return pot, currentBet, false, actual

	default:
		return pot, currentBet, false, 0
	}
}

// maxCallableByOthers returns the smallest total contribution any other
// active player could reach (their bet so far plus remaining chips). Capping
// raises at this value keeps pot accounting exact without side pots.
func maxCallableByOthers(raiser *Player, bets map[int]int, active []*Player) int {
	if len(active) <= 1 {
		return bets[raiser.ID] + raiser.Chips
	}

	minCallable := -1
	for _, p := range active {
		if p == raiser {
			continue
		}
		maxContribution := bets[p.ID] + p.Chips
		if minCallable < 0 || maxContribution < minCallable {
			minCallable = maxContribution
		}
	}
	if minCallable < 0 {
		return bets[raiser.ID] + raiser.Chips
	}
	return minCallable
}

func allAllIn(players []*Player) bool {
	for _, p := range players {
		if p.Chips > 0 {
			return false
		}
	}
	return true
}

func playerIDs(players []*Player) []int {
	ids := make([]int, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}
