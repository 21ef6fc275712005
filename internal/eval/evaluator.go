// Package eval scores five-card poker hands and finds the best five-card hand
// from seven cards. Hands compare first by category, then lexicographically by
// the category-specific tiebreak list.
package eval

import (
	"sort"

	"holdem-arena/internal/deck"
)

// Category represents the strength class of a five-card hand, ascending from
// high card to straight flush.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	"High Card",
	"Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
}

// String returns a human-readable category name.
func (c Category) String() string {
	if c < HighCard || c > StraightFlush {
		return "Unknown"
	}
	return categoryNames[c]
}

// Value is the full strength of a five-card hand. Tiebreaks holds rank values
// ordered so that lexicographic comparison resolves ties within a category.
type Value struct {
	Category  Category
	Tiebreaks []int
}

// Compare returns 1 if a beats b, -1 if b beats a, 0 on an exact tie.
// Tiebreak lists of the same category always have equal length by construction.
func Compare(a, b Value) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	for i := range a.Tiebreaks {
		if i >= len(b.Tiebreaks) {
			return 1
		}
		if a.Tiebreaks[i] != b.Tiebreaks[i] {
			if a.Tiebreaks[i] > b.Tiebreaks[i] {
				return 1
			}
			return -1
		}
	}
	if len(b.Tiebreaks) > len(a.Tiebreaks) {
		return -1
	}
	return 0
}

// Evaluate scores exactly five cards.
func Evaluate(cards []deck.Card) Value {
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = int(c.Rank)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	rankCounts := make(map[int]int)
	for _, r := range ranks {
		rankCounts[r]++
	}

	uniqueRanks := make([]int, 0, len(rankCounts))
	for r := range rankCounts {
		uniqueRanks = append(uniqueRanks, r)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(uniqueRanks)))

	isFlush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			isFlush = false
			break
		}
	}

	isStraight := false
	if len(uniqueRanks) == 5 {
		if uniqueRanks[0]-uniqueRanks[4] == 4 {
			isStraight = true
		} else if uniqueRanks[0] == 14 && uniqueRanks[1] == 5 {
			// Wheel (A-2-3-4-5): the ace plays low.
			isStraight = true
			uniqueRanks = []int{5, 4, 3, 2, 1}
		}
	}

	switch {
	case isStraight && isFlush:
		return Value{StraightFlush, uniqueRanks}
	case hasCount(rankCounts, 4):
		quad := ranksWithCount(rankCounts, 4)
		kicker := ranksWithCount(rankCounts, 1)
		return Value{FourOfAKind, append(quad, kicker...)}
	case hasCount(rankCounts, 3) && hasCount(rankCounts, 2):
		trips := ranksWithCount(rankCounts, 3)
		pair := ranksWithCount(rankCounts, 2)
		return Value{FullHouse, append(trips, pair...)}
	case isFlush:
		return Value{Flush, uniqueRanks}
	case isStraight:
		return Value{Straight, uniqueRanks}
	case hasCount(rankCounts, 3):
		trips := ranksWithCount(rankCounts, 3)
		kickers := ranksWithCount(rankCounts, 1)
		return Value{ThreeOfAKind, append(trips, kickers...)}
	case len(ranksWithCount(rankCounts, 2)) == 2:
		pairs := ranksWithCount(rankCounts, 2)
		kicker := ranksWithCount(rankCounts, 1)
		return Value{TwoPair, append(pairs, kicker...)}
	case hasCount(rankCounts, 2):
		pair := ranksWithCount(rankCounts, 2)
		kickers := ranksWithCount(rankCounts, 1)
		return Value{Pair, append(pair, kickers...)}
	default:
		return Value{HighCard, uniqueRanks}
	}
}

// BestFromSeven evaluates all C(7,5)=21 five-card subsets and returns the
// maximum. The result is invariant to the input card order.
func BestFromSeven(cards []deck.Card) Value {
	best := Value{Category: -1}
	combo := make([]deck.Card, 5)

	for i := 0; i < len(cards)-4; i++ {
		for j := i + 1; j < len(cards)-3; j++ {
			for k := j + 1; k < len(cards)-2; k++ {
				for l := k + 1; l < len(cards)-1; l++ {
					for m := l + 1; m < len(cards); m++ {
						combo[0], combo[1], combo[2], combo[3], combo[4] =
							cards[i], cards[j], cards[k], cards[l], cards[m]
						if v := Evaluate(combo); Compare(v, best) > 0 {
							best = v
						}
					}
				}
			}
		}
	}
	return best
}

func hasCount(rankCounts map[int]int, n int) bool {
	for _, count := range rankCounts {
		if count == n {
			return true
		}
	}
	return false
}

// ranksWithCount returns the ranks appearing exactly n times, descending.
func ranksWithCount(rankCounts map[int]int, n int) []int {
	var ranks []int
	for r, count := range rankCounts {
		if count == n {
			ranks = append(ranks, r)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}
