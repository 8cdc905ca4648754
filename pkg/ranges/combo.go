// Package ranges implements the weighted starting-hand range model: parsing
// textual range notation into a distribution over the 1326 two-card combos,
// masking against a board or other known cards, and normalizing to a
// probability vector.
package ranges

import (
	"fmt"

	"github.com/behrlich/gto-solver/pkg/cards"
)

// Combo is an unordered pair of distinct cards representing a private
// holding. Two Combos with the same cards in either order compare equal.
type Combo struct {
	Card1 cards.Card
	Card2 cards.Card
}

// NewCombo builds a Combo with its cards in canonical (lower ID first)
// order, so combos built from either card ordering compare equal and hash
// identically as map keys.
func NewCombo(a, b cards.Card) Combo {
	if a.ID() <= b.ID() {
		return Combo{Card1: a, Card2: b}
	}
	return Combo{Card1: b, Card2: a}
}

// String returns the combo in standard notation (e.g., "AsKh").
func (c Combo) String() string {
	return fmt.Sprintf("%s%s", c.Card1, c.Card2)
}

// Contains reports whether the combo uses the given card.
func (c Combo) Contains(card cards.Card) bool {
	return c.Card1 == card || c.Card2 == card
}

// Intersects reports whether c and other share a card.
func (c Combo) Intersects(other Combo) bool {
	return c.Contains(other.Card1) || c.Contains(other.Card2)
}

// IntersectsBoard reports whether c shares a card with board.
func (c Combo) IntersectsBoard(board []cards.Card) bool {
	for _, card := range board {
		if c.Contains(card) {
			return true
		}
	}
	return false
}

// HandClass returns the canonical rank-pair/suitedness token for the combo
// (e.g. "AA", "AKs", "AKo"), independent of the specific suits dealt.
func (c Combo) HandClass() string {
	r1, r2 := c.Card1.Rank, c.Card2.Rank
	if r1 < r2 {
		r1, r2 = r2, r1
	}
	if r1 == r2 {
		return r1.String() + r2.String()
	}
	if c.Card1.Suit == c.Card2.Suit {
		return r1.String() + r2.String() + "s"
	}
	return r1.String() + r2.String() + "o"
}

// AllCombos returns the 1326 distinct two-card combos in the 52-card deck.
func AllCombos() []Combo {
	deck := cards.NewDeck()
	combos := make([]Combo, 0, 1326)
	for i := 0; i < 52; i++ {
		for j := i + 1; j < 52; j++ {
			combos = append(combos, NewCombo(deck[i], deck[j]))
		}
	}
	return combos
}
