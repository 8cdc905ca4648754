package cfr

import (
	"context"
	"math"
	"math/rand"

	"github.com/behrlich/gto-solver/pkg/bettingtree"
	"github.com/behrlich/gto-solver/pkg/cards"
	"github.com/behrlich/gto-solver/pkg/ranges"
	"golang.org/x/sync/errgroup"
)

// Config controls one training run.
type Config struct {
	Iterations int
	Seed       int64

	// RegretMatchingPlus clips negative regret to zero at update time
	// (CFR+, spec.md §4.D.5).
	RegretMatchingPlus bool

	// ConvergenceEvery is K in spec.md §4.D.4: every K iterations the
	// driver records an exploitability proxy in ConvergenceHistory. Zero
	// disables convergence tracking.
	ConvergenceEvery int

	// Workers is the number of goroutines TrainParallel partitions
	// iterations across. Train always runs single-threaded regardless of
	// this field. Values <= 1 make TrainParallel behave like Train.
	Workers int
}

// ConvergencePoint is one entry of the convergence history: the iteration
// at which it was recorded and the L2 norm of the per-infoset regret delta
// over the preceding window (spec.md §4.D.4).
type ConvergencePoint struct {
	Iteration int
	L2        float64
}

// Driver walks a static bettingtree.TreeNode with chance-sampled,
// external-sampling CFR, accumulating regrets and average strategy into a
// shared InfosetTable (spec.md §4.D).
type Driver struct {
	Root   *bettingtree.TreeNode
	Config bettingtree.BettingConfig
	Ranges [2]*ranges.Range
	Board  []cards.Card

	Table  *InfosetTable
	Solver Config
}

// NewDriver returns a Driver with a fresh, empty InfosetTable.
func NewDriver(root *bettingtree.TreeNode, cfg bettingtree.BettingConfig, playerRanges [2]*ranges.Range, board []cards.Card, solver Config) *Driver {
	return &Driver{
		Root:   root,
		Config: cfg,
		Ranges: playerRanges,
		Board:  board,
		Table:  NewInfosetTable(),
		Solver: solver,
	}
}

// Train runs the configured number of iterations single-threaded with a
// single *rand.Rand seeded from Solver.Seed, so identical seed and inputs
// reproduce identical regrets and average strategy (spec.md §4.D
// Determinism, §8 invariant 7). It returns the convergence history and the
// number of iterations actually completed (fewer than requested on
// cancellation, or when an iteration returns an error).
func (d *Driver) Train(ctx context.Context) ([]ConvergencePoint, int, error) {
	rng := rand.New(rand.NewSource(d.Solver.Seed))
	history := make([]ConvergencePoint, 0)
	var windowStart map[string][]float64
	if d.Solver.ConvergenceEvery > 0 {
		windowStart = d.snapshotRegrets()
	}

	completed := 0
	for i := 0; i < d.Solver.Iterations; i++ {
		select {
		case <-ctx.Done():
			return history, completed, nil
		default:
		}

		if err := d.runIteration(i, rng); err != nil {
			return history, completed, err
		}
		completed++

		if d.Solver.ConvergenceEvery > 0 && completed%d.Solver.ConvergenceEvery == 0 {
			l2 := d.regretDeltaL2(windowStart)
			history = append(history, ConvergencePoint{Iteration: completed, L2: l2})
			windowStart = d.snapshotRegrets()
		}
	}
	return history, completed, nil
}

// TrainParallel partitions iterations across Solver.Workers goroutines.
// Each worker owns a private *rand.Rand stream derived from the solve seed
// and its worker index; infoset mutation goes through InfosetTable's
// striped locking (spec.md §5). Results are non-deterministic across
// worker-count/scheduling changes; callers that need determinism must use
// Train.
func (d *Driver) TrainParallel(ctx context.Context) (int, error) {
	workers := d.Solver.Workers
	if workers <= 1 {
		_, completed, err := d.Train(ctx)
		return completed, err
	}

	g, gctx := errgroup.WithContext(ctx)
	perWorker := d.Solver.Iterations / workers
	remainder := d.Solver.Iterations % workers

	completedCounts := make([]int, workers)
	for w := 0; w < workers; w++ {
		w := w
		n := perWorker
		if w < remainder {
			n++
		}
		g.Go(func() error {
			rng := rand.New(rand.NewSource(d.Solver.Seed + int64(w) + 1))
			for i := 0; i < n; i++ {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				// Global parity alternates the update player; each
				// worker's local loop index combined with its worker
				// offset keeps alternation balanced across workers.
				iterParity := w + i*workers
				if err := d.runIteration(iterParity, rng); err != nil {
					return err
				}
				completedCounts[w]++
			}
			return nil
		})
	}

	err := g.Wait()
	total := 0
	for _, c := range completedCounts {
		total += c
	}
	return total, err
}

// runIteration samples both players' combos, picks the update player by
// iteration parity, and invokes cfr from the root with reach 1/1.
func (d *Driver) runIteration(iteration int, rng *rand.Rand) error {
	combos, err := sampleOpponentCombos(d.Ranges, d.Board, rng)
	if err != nil {
		return err
	}
	board := append([]cards.Card(nil), d.Board...)
	updatePlayer := iteration % 2
	d.cfr(d.Root, [2]float64{1, 1}, combos, board, updatePlayer, rng)
	return nil
}

// cfr is the core recursive procedure of spec.md §4.D.
func (d *Driver) cfr(node *bettingtree.TreeNode, reach [2]float64, combos [2]ranges.Combo, board []cards.Card, updatePlayer int, rng *rand.Rand) (float64, float64) {
	switch node.Kind {
	case bettingtree.TerminalNode:
		return bettingtree.TerminalPayoff(node, combos, board)

	case bettingtree.ChanceNode:
		return d.cfrChance(node, reach, combos, board, updatePlayer, rng)

	default:
		return d.cfrDecision(node, reach, combos, board, updatePlayer, rng)
	}
}

func (d *Driver) cfrChance(node *bettingtree.TreeNode, reach [2]float64, combos [2]ranges.Combo, board []cards.Card, updatePlayer int, rng *rand.Rand) (float64, float64) {
	nextStreet := node.Street + 1
	n := nextStreet.DealCount()

	used := append(append([]cards.Card{}, board...), combos[0].Card1, combos[0].Card2, combos[1].Card1, combos[1].Card2)
	dealt, err := drawCards(used, n, rng)
	if err != nil {
		// The deck cannot be exhausted at these tree depths (at most 9
		// cards are ever reserved out of 52); a failure here means an
		// invariant was violated upstream.
		panic(&bettingtree.InvalidConfigError{Reason: "chance node could not deal: " + err.Error()})
	}

	nextBoard := append(append([]cards.Card(nil), board...), dealt...)
	return d.cfr(node.ChanceChild(), reach, combos, nextBoard, updatePlayer, rng)
}

func (d *Driver) cfrDecision(node *bettingtree.TreeNode, reach [2]float64, combos [2]ranges.Combo, board []cards.Card, updatePlayer int, rng *rand.Rand) (float64, float64) {
	player := node.ToAct
	combo := combos[player]
	key := infosetKey(node, board, combo)
	infoset := d.Table.GetOrCreate(key, len(node.Actions))

	strategy := infoset.CurrentStrategy()
	infoset.AddStrategy(strategy, reach[player])

	if player == updatePlayer {
		return d.cfrExternalSample(node, infoset, strategy, reach, combos, board, updatePlayer, rng)
	}
	return d.cfrOpponentSample(node, strategy, reach, combos, board, updatePlayer, rng)
}

// cfrExternalSample recurses into every legal action for the update
// player, computing the counterfactual value of each, then updates regret
// (spec.md §4.D.3, external-sampling branch).
func (d *Driver) cfrExternalSample(node *bettingtree.TreeNode, infoset *Infoset, strategy []float64, reach [2]float64, combos [2]ranges.Combo, board []cards.Card, updatePlayer int, rng *rand.Rand) (float64, float64) {
	player := node.ToAct
	n := len(node.Actions)

	actionUtil := make([]float64, n)
	var nodeUtil [2]float64

	for i, a := range node.Actions {
		child, _ := node.Child(a)
		childReach := reach
		childReach[player] = reach[player] * strategy[i]

		u0, u1 := d.cfr(child, childReach, combos, board, updatePlayer, rng)
		u := [2]float64{u0, u1}

		actionUtil[i] = u[player]
		nodeUtil[0] += strategy[i] * u0
		nodeUtil[1] += strategy[i] * u1
	}

	opponentReach := reach[1-player]
	regretDeltas := make([]float64, n)
	for i := 0; i < n; i++ {
		regretDeltas[i] = opponentReach * (actionUtil[i] - nodeUtil[player])
	}
	infoset.AddRegret(regretDeltas, d.Solver.RegretMatchingPlus)

	return nodeUtil[0], nodeUtil[1]
}

// cfrOpponentSample samples a single action for the non-update player,
// weighted by their current strategy, and recurses only into that child
// (spec.md §4.D.3, non-update-player branch).
func (d *Driver) cfrOpponentSample(node *bettingtree.TreeNode, strategy []float64, reach [2]float64, combos [2]ranges.Combo, board []cards.Card, updatePlayer int, rng *rand.Rand) (float64, float64) {
	player := node.ToAct
	idx := sampleAction(strategy, rng)
	a := node.Actions[idx]
	child, _ := node.Child(a)

	childReach := reach
	childReach[player] = reach[player] * strategy[idx]

	return d.cfr(child, childReach, combos, board, updatePlayer, rng)
}

// sampleAction draws an action index proportional to strategy.
func sampleAction(strategy []float64, rng *rand.Rand) int {
	r := rng.Float64()
	cumulative := 0.0
	for i, p := range strategy {
		cumulative += p
		if r <= cumulative {
			return i
		}
	}
	return len(strategy) - 1
}

// snapshotRegrets captures every infoset's current regret vector, keyed by
// infoset key, for the next convergence-history window.
func (d *Driver) snapshotRegrets() map[string][]float64 {
	snap := make(map[string][]float64)
	d.Table.Range(func(key string, is *Infoset) {
		snap[key] = is.RegretSnapshot()
	})
	return snap
}

// regretDeltaL2 computes the L2 norm of the change in every infoset's
// regret vector since snapshot was taken (spec.md §4.D.4).
func (d *Driver) regretDeltaL2(snapshot map[string][]float64) float64 {
	sumSq := 0.0
	d.Table.Range(func(key string, is *Infoset) {
		before, ok := snapshot[key]
		after := is.RegretSnapshot()
		for i, a := range after {
			var b float64
			if ok && i < len(before) {
				b = before[i]
			}
			d := a - b
			sumSq += d * d
		}
	})
	return math.Sqrt(sumSq)
}
