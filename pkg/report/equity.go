package report

import (
	"math/rand"

	"github.com/behrlich/gto-solver/pkg/cards"
	"github.com/behrlich/gto-solver/pkg/equity"
	"github.com/behrlich/gto-solver/pkg/ranges"
)

// Equity reports hero's equity against villain's range on board, delegating
// to pkg/equity's Monte-Carlo rollout. Reporting has no need to reimplement
// equity math; it exists here only so callers assembling a strategy summary
// don't need to import pkg/equity directly alongside pkg/report.
func Equity(hero ranges.Combo, villain *ranges.Range, board []cards.Card, trials int, rng *rand.Rand) (float64, error) {
	calc := equity.NewCalculator()
	return calc.Equity(hero, villain, board, trials, rng)
}
