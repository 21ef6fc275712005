package deck

import (
	"testing"

	"holdem-arena/internal/randutil"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New()
	if d.CardsRemaining() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.CardsRemaining())
	}

	seen := make(map[Card]bool)
	for _, c := range d.cards {
		if seen[c] {
			t.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("expected 52 unique cards, got %d", len(seen))
	}
}

func TestShufflePreservesCardSet(t *testing.T) {
	d := New()
	before := make(map[Card]bool)
	for _, c := range d.cards {
		before[c] = true
	}

	d.Shuffle(randutil.New(42))

	for _, c := range d.cards {
		if !before[c] {
			t.Errorf("shuffle introduced unknown card %s", c)
		}
	}
	if d.CardsRemaining() != 52 {
		t.Errorf("shuffle changed deck size to %d", d.CardsRemaining())
	}
}

func TestDealRemovesFromTail(t *testing.T) {
	d := New()
	last := d.cards[51]
	dealt := d.Deal(1)
	if dealt[0] != last {
		t.Errorf("expected tail card %s, got %s", last, dealt[0])
	}
	if d.CardsRemaining() != 51 {
		t.Errorf("expected 51 remaining, got %d", d.CardsRemaining())
	}
}

func TestNewStackedDealsInOrder(t *testing.T) {
	d := NewStacked(
		NewCard(Ace, Spades),
		NewCard(King, Hearts),
		NewCard(Queen, Diamonds),
	)
	if got := d.DealOne(); got != NewCard(Ace, Spades) {
		t.Errorf("first deal = %s, want A♠", got)
	}
	if got := d.DealOne(); got != NewCard(King, Hearts) {
		t.Errorf("second deal = %s, want K♥", got)
	}
	if got := d.DealOne(); got != NewCard(Queen, Diamonds) {
		t.Errorf("third deal = %s, want Q♦", got)
	}
}

func TestDealExhaustionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when dealing past the end of the deck")
		}
	}()

	d := New()
	d.Deal(53)
}

func TestBurnDiscardsOneCard(t *testing.T) {
	d := New()
	d.Burn()
	if d.CardsRemaining() != 51 {
		t.Errorf("expected 51 cards after burn, got %d", d.CardsRemaining())
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{NewCard(Ace, Spades), "A♠"},
		{NewCard(Ten, Hearts), "T♥"},
		{NewCard(Two, Clubs), "2♣"},
		{NewCard(King, Diamonds), "K♦"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name string
		hole []Card
		want float64
	}{
		{"pocket aces", []Card{NewCard(Ace, Spades), NewCard(Ace, Hearts)}, 1.0},
		{"ak suited", []Card{NewCard(Ace, Spades), NewCard(King, Spades)}, 0.982},
		{"ak offsuit", []Card{NewCard(King, Spades), NewCard(Ace, Hearts)}, 0.940},
		{"worst hand", []Card{NewCard(Seven, Spades), NewCard(Two, Hearts)}, 0.0},
	}
	for _, tt := range tests {
		if got := Percentile(tt.hole); got != tt.want {
			t.Errorf("%s: Percentile() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
