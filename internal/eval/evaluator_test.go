package eval

import (
	"reflect"
	"testing"

	"holdem-arena/internal/deck"
	"holdem-arena/internal/randutil"
)

func card(rank deck.Rank, suit deck.Suit) deck.Card {
	return deck.NewCard(rank, suit)
}

func TestEvaluateStraightFlush(t *testing.T) {
	v := Evaluate([]deck.Card{
		card(deck.Ace, deck.Spades),
		card(deck.King, deck.Spades),
		card(deck.Queen, deck.Spades),
		card(deck.Jack, deck.Spades),
		card(deck.Ten, deck.Spades),
	})
	if v.Category != StraightFlush {
		t.Fatalf("expected StraightFlush, got %s", v.Category)
	}
	if !reflect.DeepEqual(v.Tiebreaks, []int{14, 13, 12, 11, 10}) {
		t.Errorf("tiebreaks = %v, want [14 13 12 11 10]", v.Tiebreaks)
	}
}

func TestEvaluateWheelStraight(t *testing.T) {
	v := Evaluate([]deck.Card{
		card(deck.Ace, deck.Clubs),
		card(deck.Two, deck.Diamonds),
		card(deck.Three, deck.Hearts),
		card(deck.Four, deck.Spades),
		card(deck.Five, deck.Clubs),
	})
	if v.Category != Straight {
		t.Fatalf("expected Straight, got %s", v.Category)
	}
	if !reflect.DeepEqual(v.Tiebreaks, []int{5, 4, 3, 2, 1}) {
		t.Errorf("wheel tiebreaks = %v, want [5 4 3 2 1] (ace plays low)", v.Tiebreaks)
	}
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name      string
		cards     []deck.Card
		category  Category
		tiebreaks []int
	}{
		{
			"four of a kind",
			[]deck.Card{
				card(deck.Nine, deck.Spades), card(deck.Nine, deck.Hearts),
				card(deck.Nine, deck.Diamonds), card(deck.Nine, deck.Clubs),
				card(deck.King, deck.Spades),
			},
			FourOfAKind, []int{9, 13},
		},
		{
			"full house",
			[]deck.Card{
				card(deck.Ten, deck.Spades), card(deck.Ten, deck.Hearts),
				card(deck.Ten, deck.Diamonds), card(deck.Four, deck.Clubs),
				card(deck.Four, deck.Spades),
			},
			FullHouse, []int{10, 4},
		},
		{
			"flush",
			[]deck.Card{
				card(deck.King, deck.Hearts), card(deck.Jack, deck.Hearts),
				card(deck.Eight, deck.Hearts), card(deck.Five, deck.Hearts),
				card(deck.Two, deck.Hearts),
			},
			Flush, []int{13, 11, 8, 5, 2},
		},
		{
			"straight",
			[]deck.Card{
				card(deck.Nine, deck.Spades), card(deck.Eight, deck.Hearts),
				card(deck.Seven, deck.Diamonds), card(deck.Six, deck.Clubs),
				card(deck.Five, deck.Spades),
			},
			Straight, []int{9, 8, 7, 6, 5},
		},
		{
			"three of a kind",
			[]deck.Card{
				card(deck.Seven, deck.Spades), card(deck.Seven, deck.Hearts),
				card(deck.Seven, deck.Diamonds), card(deck.Ace, deck.Clubs),
				card(deck.Two, deck.Spades),
			},
			ThreeOfAKind, []int{7, 14, 2},
		},
		{
			"two pair",
			[]deck.Card{
				card(deck.Jack, deck.Spades), card(deck.Jack, deck.Hearts),
				card(deck.Three, deck.Diamonds), card(deck.Three, deck.Clubs),
				card(deck.Ace, deck.Spades),
			},
			TwoPair, []int{11, 3, 14},
		},
		{
			"one pair",
			[]deck.Card{
				card(deck.Queen, deck.Spades), card(deck.Queen, deck.Hearts),
				card(deck.Nine, deck.Diamonds), card(deck.Six, deck.Clubs),
				card(deck.Two, deck.Spades),
			},
			Pair, []int{12, 9, 6, 2},
		},
		{
			"high card",
			[]deck.Card{
				card(deck.Ace, deck.Spades), card(deck.Jack, deck.Hearts),
				card(deck.Eight, deck.Diamonds), card(deck.Six, deck.Clubs),
				card(deck.Three, deck.Spades),
			},
			HighCard, []int{14, 11, 8, 6, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(tt.cards)
			if v.Category != tt.category {
				t.Errorf("category = %s, want %s", v.Category, tt.category)
			}
			if !reflect.DeepEqual(v.Tiebreaks, tt.tiebreaks) {
				t.Errorf("tiebreaks = %v, want %v", v.Tiebreaks, tt.tiebreaks)
			}
		})
	}
}

func TestCompareOrdersCategories(t *testing.T) {
	straightFlush := Value{StraightFlush, []int{14, 13, 12, 11, 10}}
	quads := Value{FourOfAKind, []int{14, 13}}
	if Compare(straightFlush, quads) != 1 {
		t.Error("straight flush should beat four of a kind")
	}
	if Compare(quads, straightFlush) != -1 {
		t.Error("four of a kind should lose to straight flush")
	}
}

func TestCompareTiebreaks(t *testing.T) {
	aceHighFlush := Value{Flush, []int{14, 9, 7, 4, 2}}
	kingHighFlush := Value{Flush, []int{13, 12, 11, 9, 7}}
	if Compare(aceHighFlush, kingHighFlush) != 1 {
		t.Error("ace-high flush should beat king-high flush")
	}

	tie := Value{Flush, []int{14, 9, 7, 4, 2}}
	if Compare(aceHighFlush, tie) != 0 {
		t.Error("identical values should tie")
	}
}

func TestBestFromSevenPermutationInvariance(t *testing.T) {
	cards := []deck.Card{
		card(deck.Ace, deck.Spades), card(deck.Ace, deck.Hearts),
		card(deck.Ace, deck.Diamonds), card(deck.Ace, deck.Clubs),
		card(deck.Two, deck.Spades), card(deck.Three, deck.Hearts),
		card(deck.Four, deck.Diamonds),
	}

	want := BestFromSeven(cards)
	if want.Category != FourOfAKind {
		t.Fatalf("expected FourOfAKind, got %s", want.Category)
	}

	rng := randutil.New(7)
	for i := 0; i < 20; i++ {
		shuffled := make([]deck.Card, len(cards))
		copy(shuffled, cards)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := BestFromSeven(shuffled)
		if Compare(got, want) != 0 {
			t.Fatalf("permutation %d changed result: %v vs %v", i, got, want)
		}
	}
}

func TestBestFromSevenPicksBestSubset(t *testing.T) {
	// Board carries a straight; hole cards upgrade it to a flush.
	cards := []deck.Card{
		card(deck.King, deck.Hearts), card(deck.Queen, deck.Hearts),
		card(deck.Nine, deck.Spades), card(deck.Eight, deck.Spades),
		card(deck.Seven, deck.Hearts), card(deck.Six, deck.Hearts),
		card(deck.Five, deck.Hearts),
	}
	v := BestFromSeven(cards)
	if v.Category != Flush {
		t.Errorf("expected Flush as best hand, got %s", v.Category)
	}
}
