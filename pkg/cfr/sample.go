package cfr

import (
	"math/rand"

	"github.com/behrlich/gto-solver/pkg/cards"
	"github.com/behrlich/gto-solver/pkg/ranges"
)

// maxResamples bounds how many times the iteration driver will redraw a
// private combo before giving up with ErrNoViableSample (spec.md §4.A,
// §7).
const maxResamples = 200

// sampleCombo draws one combo from r weighted by range probability,
// excluding any combo that intersects exclude. It returns ErrNoViableSample
// if r has no feasible combo after masking.
func sampleCombo(r *ranges.Range, exclude []cards.Card, rng *rand.Rand) (ranges.Combo, error) {
	feasible := r.Mask(exclude)
	combos := feasible.Combos()
	if len(combos) == 0 {
		return ranges.Combo{}, ErrNoViableSample
	}

	total := 0.0
	weights := make([]float64, len(combos))
	for i, c := range combos {
		weights[i] = feasible.Weight(c)
		total += weights[i]
	}
	if total <= 0 {
		return ranges.Combo{}, ErrNoViableSample
	}

	r2 := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r2 <= cumulative {
			return combos[i], nil
		}
	}
	return combos[len(combos)-1], nil
}

// sampleOpponentCombos samples one combo per player, consistent with the
// board and without the two players' combos colliding (spec.md §4.D.4).
func sampleOpponentCombos(rangesByPlayer [2]*ranges.Range, board []cards.Card, rng *rand.Rand) ([2]ranges.Combo, error) {
	var combos [2]ranges.Combo
	for attempt := 0; attempt < maxResamples; attempt++ {
		c0, err := sampleCombo(rangesByPlayer[0], board, rng)
		if err != nil {
			return combos, err
		}
		exclude1 := append(append([]cards.Card{}, board...), c0.Card1, c0.Card2)
		c1, err := sampleCombo(rangesByPlayer[1], exclude1, rng)
		if err != nil {
			if attempt == maxResamples-1 {
				return combos, err
			}
			continue
		}
		combos[0], combos[1] = c0, c1
		return combos, nil
	}
	return combos, ErrNoViableSample
}

// drawCards draws n distinct cards uniformly from the remaining deck,
// excluding used. Used by chance nodes to deal the flop/turn/river.
func drawCards(used []cards.Card, n int, rng *rand.Rand) ([]cards.Card, error) {
	if n == 0 {
		return nil, nil
	}
	remaining := cards.NewDeck().Remaining(used)
	if len(remaining) < n {
		return nil, ErrNoViableSample
	}
	rng.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })
	out := make([]cards.Card, n)
	copy(out, remaining[:n])
	return out, nil
}
