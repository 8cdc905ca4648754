// Package bettingtree materializes the sequential decision tree for a
// single heads-up hand: deal, action, and terminal nodes, built according
// to a user-configurable betting abstraction. Chance transitions (dealing
// the flop/turn/river) are represented as a single node in the static tree
// and are not expanded into per-card children; pkg/cfr samples the actual
// card(s) during traversal.
package bettingtree

import "fmt"

// Street identifies a betting round.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// BoardLen is the number of community cards visible once street s is
// reached.
func (s Street) BoardLen() int {
	switch s {
	case Preflop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	case River:
		return 5
	default:
		return 0
	}
}

// DealCount is the number of cards dealt by the chance node that transitions
// into street s (e.g. 3 for the flop, 1 for the turn and river).
func (s Street) DealCount() int {
	switch s {
	case Flop:
		return 3
	case Turn, River:
		return 1
	default:
		return 0
	}
}

// BettingConfig is the user-configurable betting abstraction (spec.md §3).
type BettingConfig struct {
	// BetSizes are ordered pot-relative fractions used to generate bet and
	// raise amounts (e.g. 0.5, 1.0).
	BetSizes []float64

	// MaxBetsPerStreet caps the number of bets plus raises per street.
	MaxBetsPerStreet map[Street]int

	// AllowAllIn, if true, makes an all-in action legal whenever a player
	// has chips and is facing or able to make a bet.
	AllowAllIn bool

	// MinRaiseSize is the minimum raise size as a fraction of the current
	// pot; a candidate raise whose amount above the call is smaller than
	// MinRaiseSize*pot is elided.
	MinRaiseSize float64

	// StartingStack and PotSize seed the root GameState.
	StartingStack float64
	PotSize       float64
}

// DefaultConfig returns a small, sane default abstraction: half-pot and
// pot-sized bets, up to 3 bets per street, all-in always available.
func DefaultConfig() BettingConfig {
	return BettingConfig{
		BetSizes: []float64{0.5, 1.0},
		MaxBetsPerStreet: map[Street]int{
			Preflop: 3,
			Flop:    3,
			Turn:    3,
			River:   3,
		},
		AllowAllIn:    true,
		MinRaiseSize:  1.0,
		StartingStack: 100,
		PotSize:       1.5,
	}
}

// Validate checks BettingConfig against spec.md §7's InvalidConfig rules.
func (c BettingConfig) Validate() error {
	if len(c.BetSizes) == 0 {
		return &InvalidConfigError{Reason: "bet_sizes must not be empty"}
	}
	for _, f := range c.BetSizes {
		if f <= 0 {
			return &InvalidConfigError{Reason: fmt.Sprintf("bet_sizes entries must be positive, got %v", f)}
		}
	}
	for _, street := range []Street{Preflop, Flop, Turn, River} {
		if cap, ok := c.MaxBetsPerStreet[street]; ok && cap < 0 {
			return &InvalidConfigError{Reason: fmt.Sprintf("max_bets_per_street[%s] must be non-negative, got %d", street, cap)}
		}
	}
	if c.MinRaiseSize <= 0 {
		return &InvalidConfigError{Reason: "min_raise_size must be positive"}
	}
	if c.StartingStack <= 0 {
		return &InvalidConfigError{Reason: "starting_stack must be positive"}
	}
	if c.PotSize <= 0 {
		return &InvalidConfigError{Reason: "pot_size must be positive"}
	}
	return nil
}

// capFor returns the configured bet/raise cap for street, defaulting to 0
// (no bets/raises, check-or-fold only) when unset.
func (c BettingConfig) capFor(street Street) int {
	if cap, ok := c.MaxBetsPerStreet[street]; ok {
		return cap
	}
	return 0
}
