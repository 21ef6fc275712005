package game

import (
	"holdem-arena/internal/deck"
	"holdem-arena/internal/eval"
)

// Showdown evaluates each active player's best five-card hand from their
// hole cards plus the community cards.
func Showdown(active []*Player, community []deck.Card) map[int]eval.Value {
	hands := make(map[int]eval.Value, len(active))
	for _, p := range active {
		cards := make([]deck.Card, 0, 7)
		cards = append(cards, p.Hole...)
		cards = append(cards, community...)
		hands[p.ID] = eval.BestFromSeven(cards)
	}
	return hands
}

// Winners returns every player whose hand ties the maximum, preserving the
// seating order of active. Seating order is what makes odd-pot remainder
// distribution deterministic.
func Winners(active []*Player, hands map[int]eval.Value) []*Player {
	var best eval.Value
	best.Category = -1
	for _, p := range active {
		if eval.Compare(hands[p.ID], best) > 0 {
			best = hands[p.ID]
		}
	}

	var winners []*Player
	for _, p := range active {
		if eval.Compare(hands[p.ID], best) == 0 {
			winners = append(winners, p)
		}
	}
	return winners
}

// DistributePot credits the pot to the winners. Each winner receives
// floor(pot/n); the remainder is handed out one chip at a time in winner
// order so the pot is always distributed exactly. Returns the base share.
func DistributePot(winners []*Player, pot int) int {
	if len(winners) == 0 {
		return 0
	}
	if len(winners) == 1 {
		winners[0].Chips += pot
		return pot
	}

	share := pot / len(winners)
	remainder := pot % len(winners)

	for _, w := range winners {
		w.Chips += share
	}
	for i := 0; i < remainder; i++ {
		winners[i].Chips++
	}
	return share
}

// Settle resolves a finished round: a lone survivor takes the whole pot,
// otherwise the pot is split among the showdown winners. Returns the winners
// and, when a showdown happened, each active player's hand.
func Settle(active []*Player, community []deck.Card, pot int) ([]*Player, map[int]eval.Value) {
	if len(active) == 1 {
		active[0].Chips += pot
		return active, nil
	}

	hands := Showdown(active, community)
	winners := Winners(active, hands)
	DistributePot(winners, pot)
	return winners, hands
}
