package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck is an ordered sequence of the 52 unique cards. It is mutated only by
// Shuffle and Deal; Deal removes cards from the tail so the deck shrinks
// monotonically over a hand.
type Deck struct {
	cards []Card
}

// New creates a full 52-card deck in a fixed deterministic order.
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for rank := Two; rank <= Ace; rank++ {
		for suit := Spades; suit <= Clubs; suit++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewShuffled creates a full deck and shuffles it with the provided RNG.
func NewShuffled(rng *rand.Rand) *Deck {
	d := New()
	d.Shuffle(rng)
	return d
}

// NewStacked builds a deck that deals the given cards in order. Useful for
// replaying a known hand.
func NewStacked(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

// Shuffle applies a uniform Fisher-Yates permutation.
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns n cards from the tail of the deck.
// Requesting more cards than remain is an orchestration bug: the fixed
// player and community card counts can never exhaust a 52-card deck, so
// this fails fast instead of returning a truncated hand.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || n > len(d.cards) {
		panic(fmt.Sprintf("deck: dealing %d cards with %d remaining", n, len(d.cards)))
	}
	cards := make([]Card, n)
	for i := 0; i < n; i++ {
		cards[i] = d.cards[len(d.cards)-1]
		d.cards = d.cards[:len(d.cards)-1]
	}
	return cards
}

// DealOne removes and returns a single card.
func (d *Deck) DealOne() Card {
	return d.Deal(1)[0]
}

// Burn discards a single card before community cards are revealed.
func (d *Deck) Burn() {
	d.Deal(1)
}

// CardsRemaining returns the number of cards left in the deck.
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}
