package bettingtree

// EstimateNodes computes a closed-form upper bound on the number of nodes
// the tree would materialize, by multiplying per-street branching factors,
// without ever enumerating the tree (spec.md §4.C.6, §6 config-validation
// call). Chance nodes contribute a single multiplicative factor of 1 since
// they are never expanded into per-card children.
func (b *Builder) EstimateNodes() (int64, error) {
	if err := b.Config.Validate(); err != nil {
		return 0, err
	}
	return EstimateNodes(b.Config), nil
}

// EstimateNodes is the free-function form used by the config-validation
// call, which has no root GameState to build against yet.
func EstimateNodes(cfg BettingConfig) int64 {
	// Per street, the branching factor is bounded by the number of distinct
	// bet/raise sizes plus all-in, plus the non-betting actions (check or
	// call+fold), raised to the number of bet/raise rounds the cap allows,
	// alternating between the two players. This over-counts (since caps,
	// stack depletion, and min-raise filtering prune the real tree) but
	// never under-counts, which is the ceiling's purpose.
	sizesPerStreet := int64(len(cfg.BetSizes))
	if cfg.AllowAllIn {
		sizesPerStreet++
	}
	if sizesPerStreet == 0 {
		sizesPerStreet = 1
	}

	var total int64 = 1
	for _, street := range []Street{Preflop, Flop, Turn, River} {
		streetCap := cfg.capFor(street)
		// Each bet/raise round offers `sizesPerStreet` betting actions plus
		// fold/call from the facing player; the street also always offers a
		// non-betting close (check-check or bet-fold/call). Model this as
		// (sizesPerStreet+2) branching choices per round of betting, for
		// `cap` rounds, plus 1 for the street's chance/terminal transition.
		branching := int64(1)
		for round := 0; round < streetCap; round++ {
			branching *= sizesPerStreet + 2
		}
		total *= branching + 1
	}
	return total
}
