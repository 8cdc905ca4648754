package solve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/behrlich/gto-solver/pkg/bettingtree"
	"github.com/behrlich/gto-solver/pkg/cards"
	"github.com/behrlich/gto-solver/pkg/cfr"
	"github.com/behrlich/gto-solver/pkg/ranges"
	"github.com/behrlich/gto-solver/pkg/report"
)

// Solve parses ranges and board, builds the betting tree, trains a CFR
// driver, and reads out a strategy report. It is the seam a future
// transport handler calls directly (spec.md §6).
func Solve(ctx context.Context, req SolveRequest) (SolveResponse, error) {
	requestID := req.RequestID
	if requestID == uuid.Nil {
		requestID = uuid.New()
	}

	oopRange, err := ranges.Parse(req.OopRange)
	if err != nil {
		return SolveResponse{}, &ParseError{Input: req.OopRange, Reason: err.Error()}
	}
	ipRange, err := ranges.Parse(req.IpRange)
	if err != nil {
		return SolveResponse{}, &ParseError{Input: req.IpRange, Reason: err.Error()}
	}

	board, err := cards.ParseCards(req.BoardCards)
	if err != nil {
		return SolveResponse{}, &ParseError{Input: req.BoardCards, Reason: err.Error()}
	}

	street, ok := toStreet(req.Street)
	if !ok {
		return SolveResponse{}, &InvalidConfigError{Reason: fmt.Sprintf("unknown street %q", req.Street)}
	}

	if req.Iterations <= 0 {
		return SolveResponse{}, &InvalidConfigError{Reason: "iterations must be positive"}
	}

	cfg := toBettingConfig(req.StartingStack, req.PotSize, req.BetSizes, req.MaxBetsPerStreet, req.MaxBets, req.AllowAllIn, req.MinRaiseSize)

	builder := bettingtree.NewBuilder(cfg)
	root := bettingtree.NewRootState(cfg, street, board)
	tree, err := builder.Build(root)
	if err != nil {
		return SolveResponse{}, convertBuildError(err)
	}

	seed := int64(0)
	if req.Seed != nil {
		seed = *req.Seed
	}

	driver := cfr.NewDriver(tree, cfg, [2]*ranges.Range{oopRange, ipRange}, board, cfr.Config{
		Iterations:         req.Iterations,
		Seed:               seed,
		RegretMatchingPlus: req.RegretMatchingPlus,
		ConvergenceEvery:   req.ConvergenceEvery,
		Workers:            req.Workers,
	})

	start := time.Now()
	var history []cfr.ConvergencePoint
	var completed int
	if req.Workers > 1 {
		completed, err = driver.TrainParallel(ctx)
	} else {
		history, completed, err = driver.Train(ctx)
	}
	elapsed := time.Since(start).Seconds()
	if err != nil {
		if err == cfr.ErrNoViableSample {
			return SolveResponse{}, &NoViableSampleError{Iteration: completed}
		}
		return SolveResponse{}, err
	}

	resp := buildResponse(driver, tree, cfg, board, history, completed)
	resp.RequestID = requestID
	resp.ComputationTimeSeconds = elapsed

	if completed < req.Iterations {
		return resp, &CancelledError{Partial: resp}
	}

	if err := checkStrategyInvariant(resp.OopStrategy); err != nil {
		return SolveResponse{}, err
	}
	if err := checkStrategyInvariant(resp.IpStrategy); err != nil {
		return SolveResponse{}, err
	}

	return resp, nil
}

// checkStrategyInvariant verifies every hand class's action probabilities
// sum to ~1, mirroring Infoset.AverageStrategy's own normalization
// guarantee (spec.md §8). A violation here means buildResponse's
// aggregation broke that guarantee, not that the request was bad.
func checkStrategyInvariant(strategy map[string]map[string]float64) error {
	for class, actions := range strategy {
		total := 0.0
		for _, p := range actions {
			total += p
		}
		if total < 0.98 || total > 1.02 {
			return newInternalInvariantError(fmt.Sprintf("hand class %q action probabilities sum to %f, want ~1", class, total))
		}
	}
	return nil
}

// convertBuildError maps bettingtree's typed errors onto solve's own typed
// errors, keeping pkg/bettingtree's error types private to that package's
// callers.
func convertBuildError(err error) error {
	switch e := err.(type) {
	case *bettingtree.InvalidConfigError:
		return &InvalidConfigError{Reason: e.Reason}
	case *bettingtree.TreeTooLargeError:
		return &TreeTooLargeError{Estimated: e.Estimated, Ceiling: e.Ceiling}
	default:
		return err
	}
}

// buildResponse reads a trained driver's InfosetTable out into a
// SolveResponse via pkg/report.
func buildResponse(driver *cfr.Driver, tree *bettingtree.TreeNode, cfg bettingtree.BettingConfig, board []cards.Card, history []cfr.ConvergencePoint, completed int) SolveResponse {
	agg := report.AggregateByHandClass(driver.Table, driver.Ranges)
	actionNames := indexActionNames(tree)

	// A hand class typically has one distinct action distribution per
	// history it appears in (root, facing a bet, on a later street). Those
	// histories are averaged together per hand class rather than summed,
	// so each reported distribution still sums to ~1 the way
	// checkStrategyInvariant expects, instead of mixing unrelated
	// decisions into an over-large total.
	oopStrategy := make(map[string]map[string]float64)
	ipStrategy := make(map[string]map[string]float64)
	oopHistories := make(map[string]int)
	ipHistories := make(map[string]int)

	for _, entry := range agg {
		dest, counts := oopStrategy, oopHistories
		if entry.Player == 1 {
			dest, counts = ipStrategy, ipHistories
		}
		byAction, ok := dest[entry.HandClass]
		if !ok {
			byAction = make(map[string]float64)
			dest[entry.HandClass] = byAction
		}
		names := actionNames[pathKeyOf(entry.History)]
		for i, p := range entry.Probs {
			byAction[actionLabel(names, i)] += p
		}
		counts[entry.HandClass]++
	}
	averageByHistoryCount(oopStrategy, oopHistories)
	averageByHistoryCount(ipStrategy, ipHistories)

	var finalConvergence float64
	if len(history) > 0 {
		finalConvergence = history[len(history)-1].L2
	}

	maxBetsUsed := make(map[string]int, len(cfg.MaxBetsPerStreet))
	for street, betCap := range cfg.MaxBetsPerStreet {
		maxBetsUsed[street.String()] = betCap
	}

	return SolveResponse{
		OopStrategy:          oopStrategy,
		IpStrategy:           ipStrategy,
		TrainingIterations:   completed,
		NodesCount:           countNodes(tree),
		FinalConvergence:     finalConvergence,
		ConvergenceHistory:   history,
		BoardTexture:         report.BoardTexture(board),
		BetSizesUsed:         cfg.BetSizes,
		MaxBetsPerStreetUsed: maxBetsUsed,
	}
}

// averageByHistoryCount divides each hand class's accumulated action totals
// by how many histories contributed to it, turning buildResponse's summed
// per-history distributions back into per-hand-class averages.
func averageByHistoryCount(strategy map[string]map[string]float64, counts map[string]int) {
	for class, byAction := range strategy {
		n := counts[class]
		if n <= 1 {
			continue
		}
		for action, p := range byAction {
			byAction[action] = p / float64(n)
		}
	}
}

// pathKeyOf recovers a HandClassStrategy entry's PathKey from its History
// field, which joins the tree's PathKey and the dynamic board with "|"
// (pkg/report's splitInfosetKey builds History the same way).
func pathKeyOf(history string) string {
	pathKey, _, _ := strings.Cut(history, "|")
	return pathKey
}

// indexActionNames walks tree once, mapping every decision node's PathKey to
// its Actions' Key() names in order, so buildResponse can label each
// aggregated probability with the real action ("Fold", "Call", "Bet10.00")
// instead of a positional index.
func indexActionNames(tree *bettingtree.TreeNode) map[string][]string {
	out := make(map[string][]string)
	var walk func(n *bettingtree.TreeNode)
	walk = func(n *bettingtree.TreeNode) {
		if n.Kind == bettingtree.DecisionNode {
			names := make([]string, len(n.Actions))
			for i, a := range n.Actions {
				names[i] = a.Key()
			}
			out[n.PathKey] = names
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	return out
}

// actionLabel returns names[i] when available, falling back to a positional
// label for any history indexActionNames could not resolve.
func actionLabel(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("action_%d", i)
}

// countNodes counts the nodes in an already-built tree; the builder that
// produced it only lives for the duration of Solve, so the response
// recomputes the count directly off the tree rather than threading the
// builder value through.
func countNodes(tree *bettingtree.TreeNode) int64 {
	var count int64
	var walk func(n *bettingtree.TreeNode)
	walk = func(n *bettingtree.TreeNode) {
		count++
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	return count
}
