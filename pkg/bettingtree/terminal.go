package bettingtree

import (
	"github.com/behrlich/gto-solver/pkg/cards"
	"github.com/behrlich/gto-solver/pkg/ranges"
)

// TerminalPayoff resolves the two-player payoff at a Terminal node given the
// two players' sampled private combos and the fully-dealt board. Fold
// terminals never consult the evaluator (spec.md §4.D.1); showdowns do.
//
// Payoffs follow spec.md §8 invariant 3 for folds: the non-folder's payoff
// is their net profit (the pot less what they themselves put in), the
// folder's is the negative of their own committed chips. Showdowns extend
// the same convention: the winner's payoff is the pot less their own
// commitment, the loser's is the negative of their commitment; a tied hand
// splits the pot evenly, each side still netting out their own commitment.
func TerminalPayoff(node *TreeNode, combos [2]ranges.Combo, board []cards.Card) (float64, float64) {
	if node.TerminalKind == FoldWin {
		winner := node.FoldWinner
		loser := 1 - winner
		payoff := [2]float64{}
		payoff[winner] = node.TerminalPot - node.Committed[winner]
		payoff[loser] = -node.Committed[loser]
		return payoff[0], payoff[1]
	}

	hand0 := cards.Rank7(append([]cards.Card{combos[0].Card1, combos[0].Card2}, board...))
	hand1 := cards.Rank7(append([]cards.Card{combos[1].Card1, combos[1].Card2}, board...))

	switch hand0.Compare(hand1) {
	case 1:
		return node.TerminalPot - node.Committed[0], -node.Committed[1]
	case -1:
		return -node.Committed[0], node.TerminalPot - node.Committed[1]
	default:
		return node.TerminalPot/2 - node.Committed[0], node.TerminalPot/2 - node.Committed[1]
	}
}
