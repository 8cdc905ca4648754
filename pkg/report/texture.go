package report

import "github.com/behrlich/gto-solver/pkg/cards"

// BoardTexture tags a board with a small set of heuristic descriptors.
// spec.md §9 marks board texture as illustrative only, not behaviorally
// load-bearing anywhere in the solver, so the rule set here is a freely
// designed convenience for display rather than something CFR consults.
func BoardTexture(board []cards.Card) []string {
	if len(board) < 3 {
		return nil
	}

	var tags []string

	suitCounts := make(map[cards.Suit]int)
	rankCounts := make(map[cards.Rank]int)
	for _, c := range board {
		suitCounts[c.Suit]++
		rankCounts[c.Rank]++
	}

	switch len(suitCounts) {
	case 1:
		tags = append(tags, "monotone")
	case 2:
		tags = append(tags, "two-tone")
	}

	for _, n := range rankCounts {
		if n >= 2 {
			tags = append(tags, "paired")
			break
		}
	}

	if isConnected(board) {
		tags = append(tags, "connected")
	}

	for _, c := range board {
		if c.Rank >= cards.Ten {
			tags = append(tags, "high-card")
			break
		}
	}

	return tags
}

// isConnected reports whether the board's ranks span at most a 4-rank
// window, a rough proxy for straight-draw density.
func isConnected(board []cards.Card) bool {
	minRank, maxRank := board[0].Rank, board[0].Rank
	for _, c := range board[1:] {
		if c.Rank < minRank {
			minRank = c.Rank
		}
		if c.Rank > maxRank {
			maxRank = c.Rank
		}
	}
	return int(maxRank)-int(minRank) <= 4
}
