// Package equity computes hand strength for a private holding against a
// weighted opponent range: Monte-Carlo rollout equity for arbitrary partial
// boards, plus exact (enumeration-based) equity on the turn and river where
// the remaining run-out is small enough to walk exhaustively.
package equity

import (
	"fmt"
	"math/rand"

	"github.com/behrlich/gto-solver/pkg/cards"
	"github.com/behrlich/gto-solver/pkg/ranges"
)

// maxResamples bounds how many times Equity will redraw a villain combo or
// run-out before giving up on a trial, per spec.md §4.A.
const maxResamples = 200

// Calculator computes equity. It holds no mutable state; every method is
// safe to call concurrently from multiple goroutines, each with its own
// *rand.Rand, matching the "embarrassingly parallel" contract of spec.md §5.
type Calculator struct{}

// NewCalculator returns a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Equity runs a Monte-Carlo rollout of hero's combo against villain,
// weighted by villain's range, over the given partial board. trials trials
// are drawn; each samples one villain combo (weighted by range probability,
// excluding combos colliding with the board, and combos sharing a card with
// hero unless identical to it), deals the remaining board cards uniformly
// from what's left of the deck, scores both hands, and awards 1/0.5/0 for
// win/tie/loss. The mean over all trials is returned; a villain combo
// identical to hero always ties.
//
// rng is caller-supplied so callers control reproducibility and so
// concurrent callers never share a PRNG stream.
func (c *Calculator) Equity(hero ranges.Combo, villain *ranges.Range, board []cards.Card, trials int, rng *rand.Rand) (float64, error) {
	if trials <= 0 {
		return 0, fmt.Errorf("equity: trials must be positive, got %d", trials)
	}
	if len(board) > 5 {
		return 0, fmt.Errorf("equity: board has %d cards, max 5", len(board))
	}

	feasible := villain.Mask(board)
	combos := make([]ranges.Combo, 0, feasible.Len())
	for _, cb := range feasible.Combos() {
		if cb != hero && cb.Intersects(hero) {
			continue
		}
		combos = append(combos, cb)
	}
	if len(combos) == 0 {
		return 0, ErrNoViableSample
	}
	weights := make([]float64, len(combos))
	total := 0.0
	for i, cb := range combos {
		weights[i] = feasible.Weight(cb)
		total += weights[i]
	}
	if total <= 0 {
		return 0, ErrNoViableSample
	}

	total0 := 0.0
	for i := 0; i < trials; i++ {
		score, err := c.rollOnce(hero, combos, weights, total, board, rng)
		if err != nil {
			return 0, err
		}
		total0 += score
	}
	return total0 / float64(trials), nil
}

// rollOnce draws one villain combo and one complete run-out, resampling on
// collision up to maxResamples times.
func (c *Calculator) rollOnce(hero ranges.Combo, combos []ranges.Combo, weights []float64, totalWeight float64, board []cards.Card, rng *rand.Rand) (float64, error) {
	for attempt := 0; attempt < maxResamples; attempt++ {
		villain := sampleWeighted(combos, weights, totalWeight, rng)

		used := make([]cards.Card, 0, 2+2+len(board))
		used = append(used, hero.Card1, hero.Card2, villain.Card1, villain.Card2)
		used = append(used, board...)

		remaining := cards.NewDeck().Remaining(used)
		need := 5 - len(board)
		if need < 0 || len(remaining) < need {
			continue
		}

		runout := drawN(remaining, need, rng)
		full := make([]cards.Card, 0, 5)
		full = append(full, board...)
		full = append(full, runout...)

		heroHand := cards.Rank7(append([]cards.Card{hero.Card1, hero.Card2}, full...))
		villainHand := cards.Rank7(append([]cards.Card{villain.Card1, villain.Card2}, full...))

		switch heroHand.Compare(villainHand) {
		case 1:
			return 1.0, nil
		case 0:
			return 0.5, nil
		default:
			return 0.0, nil
		}
	}
	return 0, ErrNoViableSample
}

// sampleWeighted draws one combo from combos proportional to weights.
func sampleWeighted(combos []ranges.Combo, weights []float64, total float64, rng *rand.Rand) ranges.Combo {
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return combos[i]
		}
	}
	return combos[len(combos)-1]
}

// drawN draws n distinct cards uniformly without replacement from pool,
// leaving pool unmodified.
func drawN(pool []cards.Card, n int, rng *rand.Rand) []cards.Card {
	if n == 0 {
		return nil
	}
	shuffled := make([]cards.Card, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:n]
}

// ExactRiverEquity computes hero's exact equity against villain's range on a
// completed 5-card board: no run-out remains, so every villain combo is
// evaluated directly and weighted by range weight. This is a strict
// improvement over Monte-Carlo sampling on the river (spec.md §9).
func ExactRiverEquity(hero ranges.Combo, villain *ranges.Range, board []cards.Card) (float64, error) {
	if len(board) != 5 {
		return 0, fmt.Errorf("equity: ExactRiverEquity requires a 5-card board, got %d", len(board))
	}

	feasible := villain.Mask(board, hero)
	combos := feasible.Combos()
	if len(combos) == 0 {
		return 0, ErrNoViableSample
	}

	heroHand := cards.Rank7(append([]cards.Card{hero.Card1, hero.Card2}, board...))

	totalWeight := 0.0
	totalEquity := 0.0
	for _, cb := range combos {
		w := feasible.Weight(cb)
		villainHand := cards.Rank7(append([]cards.Card{cb.Card1, cb.Card2}, board...))
		switch heroHand.Compare(villainHand) {
		case 1:
			totalEquity += w * 1.0
		case 0:
			totalEquity += w * 0.5
		}
		totalWeight += w
	}
	if totalWeight <= 0 {
		return 0, ErrNoViableSample
	}
	return totalEquity / totalWeight, nil
}

// ExactTurnEquity computes hero's exact equity against villain's range on a
// 4-card (turn) board by enumerating every possible river card exactly,
// rather than sampling it (spec.md §9).
func ExactTurnEquity(hero ranges.Combo, villain *ranges.Range, board []cards.Card) (float64, error) {
	if len(board) != 4 {
		return 0, fmt.Errorf("equity: ExactTurnEquity requires a 4-card board, got %d", len(board))
	}

	feasible := villain.Mask(board, hero)
	combos := feasible.Combos()
	if len(combos) == 0 {
		return 0, ErrNoViableSample
	}

	rivers := cards.NewDeck().Remaining([]cards.Card{hero.Card1, hero.Card2}, board)

	totalWeight := 0.0
	totalEquity := 0.0
	for _, cb := range combos {
		w := feasible.Weight(cb)
		if w <= 0 {
			continue
		}
		for _, river := range rivers {
			if cb.Contains(river) {
				continue
			}
			full := append(append([]cards.Card{}, board...), river)
			heroHand := cards.Rank7(append([]cards.Card{hero.Card1, hero.Card2}, full...))
			villainHand := cards.Rank7(append([]cards.Card{cb.Card1, cb.Card2}, full...))
			switch heroHand.Compare(villainHand) {
			case 1:
				totalEquity += w
			case 0:
				totalEquity += w * 0.5
			}
			totalWeight += w
		}
	}
	if totalWeight <= 0 {
		return 0, ErrNoViableSample
	}
	return totalEquity / totalWeight, nil
}
