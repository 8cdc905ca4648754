package bettingtree

import "math"

// roundChips rounds a chip amount to the nearest cent, matching the
// "round(fraction * pot)" rule of spec.md §4.C.1 for non-integer stacks.
func roundChips(x float64) float64 {
	return math.Round(x*100) / 100
}

// GenerateActions enumerates the legal actions at a decision point per
// spec.md §3 (action legality) and §4.C.1 (bet/raise sizing). pot is the
// current pot at this node; stack is the acting player's remaining stack;
// betCount is bets+raises already made this street; toCall is the amount
// the acting player must put in to call.
func GenerateActions(cfg BettingConfig, street Street, pot, stack float64, betCount int, toCall float64) []Action {
	betCap := cfg.capFor(street)

	if toCall > 0 {
		return generateFacingBet(cfg, pot, stack, betCount, betCap, toCall)
	}
	return generateOpening(cfg, pot, stack, betCount, betCap)
}

func generateFacingBet(cfg BettingConfig, pot, stack float64, betCount, betCap int, toCall float64) []Action {
	actions := []Action{{Type: Fold}}

	callAmount := toCall
	if callAmount > stack {
		callAmount = stack
	}
	actions = append(actions, Action{Type: Call})

	if betCount >= betCap {
		return actions
	}

	raiseStack := stack - callAmount
	if raiseStack <= 0 {
		return actions
	}

	minRaise := cfg.MinRaiseSize * pot
	seen := map[float64]bool{}
	for _, frac := range cfg.BetSizes {
		amt := roundChips(frac * pot)
		if amt <= 0 || amt < minRaise || amt >= raiseStack || seen[amt] {
			continue
		}
		seen[amt] = true
		actions = append(actions, Action{Type: Raise, Amount: amt})
	}

	if cfg.AllowAllIn && !seen[raiseStack] {
		actions = append(actions, Action{Type: AllIn, Amount: raiseStack})
	}

	return actions
}

func generateOpening(cfg BettingConfig, pot, stack float64, betCount, betCap int) []Action {
	actions := []Action{{Type: Check}}

	if betCount >= betCap || stack <= 0 {
		return actions
	}

	seen := map[float64]bool{}
	for _, frac := range cfg.BetSizes {
		amt := roundChips(frac * pot)
		if amt <= 0 || amt >= stack || seen[amt] {
			continue
		}
		seen[amt] = true
		actions = append(actions, Action{Type: Bet, Amount: amt})
	}

	if cfg.AllowAllIn && !seen[stack] {
		actions = append(actions, Action{Type: AllIn, Amount: stack})
	}

	return actions
}
