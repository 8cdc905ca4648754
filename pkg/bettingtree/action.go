package bettingtree

import "fmt"

// ActionType tags the kind of a single Action (spec.md §3).
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (t ActionType) String() string {
	switch t {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Bet:
		return "Bet"
	case Raise:
		return "Raise"
	case AllIn:
		return "AllIn"
	default:
		return "Unknown"
	}
}

// Action is a tagged action record. Amount is the absolute number of chips
// added on top of any call, meaningful for Bet, Raise, and AllIn.
type Action struct {
	Type   ActionType
	Amount float64
}

// Key returns a canonical, fixed-form encoding of the action used both as
// a map key into a decision node's children and as a component of the
// canonical infoset history encoding (spec.md §9).
func (a Action) Key() string {
	switch a.Type {
	case Bet, Raise, AllIn:
		return fmt.Sprintf("%s%.2f", a.Type, a.Amount)
	default:
		return a.Type.String()
	}
}

func (a Action) String() string {
	return a.Key()
}
