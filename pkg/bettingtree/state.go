package bettingtree

import "github.com/behrlich/gto-solver/pkg/cards"

// GameState is the root node payload spec.md §3 describes: the full public
// state of the hand before any player-private information is consulted.
type GameState struct {
	Street             Street
	Board              []cards.Card
	Committed          [2]float64
	RemainingStack     [2]float64
	ToAct              int
	LastAggressor      int
	BetCountThisStreet int
	CurrentBetToCall   float64
	ActionHistory      []Action
}

// EffectiveStack is min(remaining_stack[0], remaining_stack[1]).
func (g GameState) EffectiveStack() float64 {
	if g.RemainingStack[0] < g.RemainingStack[1] {
		return g.RemainingStack[0]
	}
	return g.RemainingStack[1]
}

// NewRootState builds the root GameState for a solve: both players have
// committed nothing yet beyond the ante'd pot, both start with the full
// effective stack, and player 0 (OOP) acts first.
func NewRootState(cfg BettingConfig, street Street, board []cards.Card) GameState {
	return GameState{
		Street:             street,
		Board:              board,
		Committed:          [2]float64{0, 0},
		RemainingStack:     [2]float64{cfg.StartingStack, cfg.StartingStack},
		ToAct:              0,
		LastAggressor:      -1,
		BetCountThisStreet: 0,
		CurrentBetToCall:   0,
		ActionHistory:      nil,
	}
}

// Pot returns the total chips in the middle: the config's starting pot plus
// both players' committed chips.
func Pot(cfg BettingConfig, committed [2]float64) float64 {
	return cfg.PotSize + committed[0] + committed[1]
}
