package bettingtree

import (
	"fmt"

	"github.com/behrlich/gto-solver/pkg/cards"
)

// NodeCeiling is the default pre-build node-count ceiling; Build fails with
// TreeTooLargeError if EstimateNodes exceeds it (spec.md §4.C.6, §7).
const NodeCeiling = 1_000_000

// Builder constructs the static betting tree from a root GameState and a
// BettingConfig.
type Builder struct {
	Config  BettingConfig
	Ceiling int64
	nodes   int64
}

// NewBuilder returns a Builder using the default node ceiling.
func NewBuilder(cfg BettingConfig) *Builder {
	return &Builder{Config: cfg, Ceiling: NodeCeiling}
}

// Build validates cfg and root, estimates the tree size, and — if the
// estimate is within the ceiling — recursively materializes the tree.
func (b *Builder) Build(root GameState) (*TreeNode, error) {
	if err := b.Config.Validate(); err != nil {
		return nil, err
	}
	if err := validateRoot(root); err != nil {
		return nil, err
	}

	estimate, err := b.EstimateNodes()
	if err != nil {
		return nil, err
	}
	if estimate > b.Ceiling {
		return nil, &TreeTooLargeError{Estimated: estimate, Ceiling: b.Ceiling}
	}

	b.nodes = 0
	return b.build(root, ""), nil
}

// NodesBuilt returns the number of nodes materialized by the most recent
// Build call.
func (b *Builder) NodesBuilt() int64 { return b.nodes }

func validateRoot(root GameState) error {
	switch len(root.Board) {
	case 0, 3, 4, 5:
	default:
		return &InvalidConfigError{Reason: fmt.Sprintf("board must have 0, 3, 4, or 5 cards, got %d", len(root.Board))}
	}

	wantLen := root.Street.BoardLen()
	if len(root.Board) != wantLen {
		return &InvalidConfigError{Reason: fmt.Sprintf("street %s requires a %d-card board, got %d", root.Street, wantLen, len(root.Board))}
	}

	seen := map[cards.Card]bool{}
	for _, c := range root.Board {
		if seen[c] {
			return &InvalidConfigError{Reason: fmt.Sprintf("duplicate board card %s", c)}
		}
		seen[c] = true
	}
	return nil
}

// build recursively constructs the tree rooted at state, returning its root
// TreeNode. pathKey is the canonical encoding of the action history so far.
func (b *Builder) build(state GameState, pathKey string) *TreeNode {
	b.nodes++

	if fold, winner := foldTerminal(state); fold {
		pot := Pot(b.Config, state.Committed)
		return &TreeNode{
			Kind:           TerminalNode,
			Street:         state.Street,
			Committed:      state.Committed,
			RemainingStack: state.RemainingStack,
			TerminalPot:    pot,
			TerminalKind:   FoldWin,
			FoldWinner:     winner,
		}
	}

	if streetClosed(state) {
		if state.Street == River {
			pot := Pot(b.Config, state.Committed)
			return &TreeNode{
				Kind:           TerminalNode,
				Street:         state.Street,
				Committed:      state.Committed,
				RemainingStack: state.RemainingStack,
				TerminalPot:    pot,
				TerminalKind:   Showdown,
			}
		}
		if isAllIn(state) {
			return b.buildRunoutToRiver(state, pathKey)
		}
		return b.buildChance(state, pathKey)
	}

	return b.buildDecision(state, pathKey)
}

// foldTerminal reports whether the last action was a Fold, and if so who
// wins (the player who did not fold).
func foldTerminal(state GameState) (bool, int) {
	if len(state.ActionHistory) == 0 {
		return false, -1
	}
	last := state.ActionHistory[len(state.ActionHistory)-1]
	if last.Type != Fold {
		return false, -1
	}
	// The player who folded was the one who had just acted: toAct before
	// this fold was processed is state.ToAct itself, since folding never
	// advances ToAct in applyAction.
	return true, 1 - state.ToAct
}

// streetClosed implements spec.md §4.C.2's closure rule: both players have
// acted and contributions are equal, or an opening Check was answered by a
// Check.
func streetClosed(state GameState) bool {
	h := state.ActionHistory
	if len(h) == 0 {
		return false
	}
	last := h[len(h)-1]

	if last.Type == Check && state.CurrentBetToCall == 0 {
		// Closed once both players have checked: the action before this
		// Check must itself have been a Check.
		if len(h) >= 2 && h[len(h)-2].Type == Check {
			return true
		}
		return false
	}

	if last.Type == Call {
		return true
	}

	return false
}

// isAllIn reports whether either player has committed their full stack
// (remaining stack is zero), which forecloses further betting and runs the
// board out to showdown (spec.md §4.C.2.c).
func isAllIn(state GameState) bool {
	return state.RemainingStack[0] <= 0 || state.RemainingStack[1] <= 0
}

// buildDecision expands a decision node: enumerate legal actions, apply
// each to produce the child state, and recurse.
func (b *Builder) buildDecision(state GameState, pathKey string) *TreeNode {
	pot := Pot(b.Config, state.Committed)
	stack := state.RemainingStack[state.ToAct]
	actions := GenerateActions(b.Config, state.Street, pot, stack, state.BetCountThisStreet, state.CurrentBetToCall)

	node := &TreeNode{
		Kind:               DecisionNode,
		Street:             state.Street,
		PathKey:            pathKey,
		Committed:          state.Committed,
		RemainingStack:     state.RemainingStack,
		BetCountThisStreet: state.BetCountThisStreet,
		CurrentBetToCall:   state.CurrentBetToCall,
		ToAct:              state.ToAct,
		Actions:            actions,
		Children:           make(map[string]*TreeNode, len(actions)),
	}

	for _, a := range actions {
		child := applyAction(state, a)
		childPathKey := pathKey + "/" + a.Key()
		node.Children[a.Key()] = b.build(child, childPathKey)
	}

	return node
}

// applyAction computes the successor GameState after the acting player
// takes action a.
func applyAction(state GameState, a Action) GameState {
	next := state
	next.ActionHistory = append(append([]Action{}, state.ActionHistory...), a)

	switch a.Type {
	case Fold:
		// ToAct deliberately left unflipped: foldTerminal reads it back off
		// the child state to recover which player just folded.
		return next
	case Check:
		next.CurrentBetToCall = 0
		next.ToAct = 1 - state.ToAct
		return next
	case Call:
		callAmount := state.CurrentBetToCall
		if callAmount > state.RemainingStack[state.ToAct] {
			callAmount = state.RemainingStack[state.ToAct]
		}
		next.Committed[state.ToAct] += callAmount
		next.RemainingStack[state.ToAct] -= callAmount
		next.CurrentBetToCall = 0
		next.ToAct = 1 - state.ToAct
		return next
	case Bet, Raise, AllIn:
		callAmount := state.CurrentBetToCall
		if callAmount > state.RemainingStack[state.ToAct] {
			callAmount = state.RemainingStack[state.ToAct]
		}
		total := callAmount + a.Amount
		next.Committed[state.ToAct] += total
		next.RemainingStack[state.ToAct] -= total
		next.BetCountThisStreet = state.BetCountThisStreet + 1
		next.LastAggressor = state.ToAct
		next.CurrentBetToCall = a.Amount
		next.ToAct = 1 - state.ToAct
		return next
	}
	return next
}

// buildChance constructs a Chance node transitioning to the next street and
// recurses into the next street's opening decision node. The dealt card(s)
// themselves are not enumerated here (spec.md §4.C.3); the engine supplies
// them at traversal time.
func (b *Builder) buildChance(state GameState, pathKey string) *TreeNode {
	node := &TreeNode{
		Kind:           ChanceNode,
		Street:         state.Street,
		Committed:      state.Committed,
		RemainingStack: state.RemainingStack,
		Children:       make(map[string]*TreeNode, 1),
	}

	nextState := GameState{
		Street:             state.Street + 1,
		Committed:          state.Committed,
		RemainingStack:     state.RemainingStack,
		ToAct:              0,
		LastAggressor:      -1,
		BetCountThisStreet: 0,
		CurrentBetToCall:   0,
		ActionHistory:      nil,
	}
	childPathKey := pathKey + "/deal" + nextState.Street.String()
	node.Children["deal"] = b.build(nextState, childPathKey)
	return node
}

// buildRunoutToRiver continues a closed street once either player is
// all-in: it emits the Chance node for the next street, and the decision
// nodes built below it offer only Check, since the all-in player has no
// chips left (spec.md §4.C.2.c).
func (b *Builder) buildRunoutToRiver(state GameState, pathKey string) *TreeNode {
	if state.Street == River {
		return b.build(state, pathKey)
	}
	return b.buildChance(state, pathKey)
}
