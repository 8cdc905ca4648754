package cfr

import (
	"context"
	"math"
	"testing"

	"github.com/behrlich/gto-solver/pkg/bettingtree"
	"github.com/behrlich/gto-solver/pkg/cards"
	"github.com/behrlich/gto-solver/pkg/ranges"
)

func trivialConfig() bettingtree.BettingConfig {
	return bettingtree.BettingConfig{
		BetSizes:         []float64{1.0},
		MaxBetsPerStreet: map[bettingtree.Street]int{bettingtree.Preflop: 1},
		AllowAllIn:       true,
		MinRaiseSize:     1.0,
		StartingStack:    20,
		PotSize:          2,
	}
}

func singleComboRange(s string) *ranges.Range {
	cs, err := cards.ParseCards(s)
	if err != nil {
		panic(err)
	}
	r := ranges.New()
	r.Set(ranges.NewCombo(cs[0], cs[1]), 1.0)
	return r
}

func buildTrivialTree(t *testing.T) (*bettingtree.TreeNode, bettingtree.BettingConfig) {
	cfg := trivialConfig()
	b := bettingtree.NewBuilder(cfg)
	root := bettingtree.NewRootState(cfg, bettingtree.Preflop, nil)
	tree, err := b.Build(root)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return tree, cfg
}

func TestTrain_DeterministicWithFixedSeed(t *testing.T) {
	tree, cfg := buildTrivialTree(t)
	hero := singleComboRange("AsAh")
	villain := singleComboRange("KsKh")

	run := func() map[string][]float64 {
		d := NewDriver(tree, cfg, [2]*ranges.Range{hero, villain}, nil, Config{
			Iterations: 200,
			Seed:       42,
		})
		if _, _, err := d.Train(context.Background()); err != nil {
			t.Fatalf("unexpected train error: %v", err)
		}
		out := make(map[string][]float64)
		d.Table.Range(func(key string, is *Infoset) {
			out[key] = is.AverageStrategy()
		})
		return out
	}

	a := run()
	b := run()

	if len(a) != len(b) {
		t.Fatalf("infoset count mismatch: %d vs %d", len(a), len(b))
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			t.Fatalf("key %q missing from second run", k)
		}
		for i := range av {
			if math.Abs(av[i]-bv[i]) > 1e-12 {
				t.Errorf("key %q action %d: %v vs %v", k, i, av[i], bv[i])
			}
		}
	}
}

func TestTrain_AverageStrategySumsToOne(t *testing.T) {
	tree, cfg := buildTrivialTree(t)
	hero := singleComboRange("AsAh")
	villain := singleComboRange("KsKh")

	d := NewDriver(tree, cfg, [2]*ranges.Range{hero, villain}, nil, Config{
		Iterations: 100,
		Seed:       7,
	})
	if _, _, err := d.Train(context.Background()); err != nil {
		t.Fatalf("unexpected train error: %v", err)
	}

	d.Table.Range(func(key string, is *Infoset) {
		avg := is.AverageStrategy()
		total := 0.0
		for _, p := range avg {
			total += p
		}
		if math.Abs(total-1.0) > 1e-9 {
			t.Errorf("key %q: average strategy sums to %v, want 1", key, total)
		}
	})
}

func TestTrain_RegretMatchingNonNegative(t *testing.T) {
	tree, cfg := buildTrivialTree(t)
	hero := singleComboRange("AsAh")
	villain := singleComboRange("KsKh")

	d := NewDriver(tree, cfg, [2]*ranges.Range{hero, villain}, nil, Config{
		Iterations:         50,
		Seed:               3,
		RegretMatchingPlus: true,
	})
	if _, _, err := d.Train(context.Background()); err != nil {
		t.Fatalf("unexpected train error: %v", err)
	}

	d.Table.Range(func(key string, is *Infoset) {
		for i, r := range is.RegretSnapshot() {
			if r < 0 {
				t.Errorf("key %q action %d: CFR+ regret went negative: %v", key, i, r)
			}
		}
		strategy := is.CurrentStrategy()
		total := 0.0
		for _, p := range strategy {
			if p < 0 {
				t.Errorf("key %q: negative probability %v in current strategy", key, p)
			}
			total += p
		}
		if math.Abs(total-1.0) > 1e-9 {
			t.Errorf("key %q: current strategy sums to %v, want 1", key, total)
		}
	})
}

func TestTrain_HonorsCancellation(t *testing.T) {
	tree, cfg := buildTrivialTree(t)
	hero := singleComboRange("AsAh")
	villain := singleComboRange("KsKh")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDriver(tree, cfg, [2]*ranges.Range{hero, villain}, nil, Config{
		Iterations: 1000,
		Seed:       1,
	})
	_, completed, err := d.Train(ctx)
	if err != nil {
		t.Fatalf("unexpected train error: %v", err)
	}
	if completed != 0 {
		t.Fatalf("expected 0 iterations completed after immediate cancellation, got %d", completed)
	}
}

func TestTrain_ConvergenceHistoryRecorded(t *testing.T) {
	tree, cfg := buildTrivialTree(t)
	hero := singleComboRange("AsAh")
	villain := singleComboRange("KsKh")

	d := NewDriver(tree, cfg, [2]*ranges.Range{hero, villain}, nil, Config{
		Iterations:       100,
		Seed:             5,
		ConvergenceEvery: 25,
	})
	history, completed, err := d.Train(context.Background())
	if err != nil {
		t.Fatalf("unexpected train error: %v", err)
	}
	if completed != 100 {
		t.Fatalf("expected 100 completed iterations, got %d", completed)
	}
	if len(history) != 4 {
		t.Fatalf("expected 4 convergence points, got %d", len(history))
	}
	for i, p := range history {
		wantIter := (i + 1) * 25
		if p.Iteration != wantIter {
			t.Errorf("point %d: iteration %d, want %d", i, p.Iteration, wantIter)
		}
		if p.L2 < 0 {
			t.Errorf("point %d: negative L2 norm %v", i, p.L2)
		}
	}
}

func TestTrainParallel_MatchesSequentialIterationCount(t *testing.T) {
	tree, cfg := buildTrivialTree(t)
	hero := singleComboRange("AsAh")
	villain := singleComboRange("KsKh")

	d := NewDriver(tree, cfg, [2]*ranges.Range{hero, villain}, nil, Config{
		Iterations: 97,
		Seed:       11,
		Workers:    4,
	})
	completed, err := d.TrainParallel(context.Background())
	if err != nil {
		t.Fatalf("unexpected train error: %v", err)
	}
	if completed != 97 {
		t.Fatalf("expected 97 completed iterations, got %d", completed)
	}
	if d.Table.Len() == 0 {
		t.Fatalf("expected infosets to be discovered")
	}
}

func TestTrain_PreflopAllInFavorsStrongerHand(t *testing.T) {
	// AA vs KK with a pot-sized bet and an all-in available should converge
	// toward AA betting/calling far more often than folding.
	tree, cfg := buildTrivialTree(t)
	hero := singleComboRange("AsAh")
	villain := singleComboRange("KsKh")

	d := NewDriver(tree, cfg, [2]*ranges.Range{hero, villain}, nil, Config{
		Iterations: 2000,
		Seed:       99,
	})
	if _, _, err := d.Train(context.Background()); err != nil {
		t.Fatalf("unexpected train error: %v", err)
	}

	rootKey := infosetKey(tree, nil, ranges.NewCombo(mustCard("As"), mustCard("Ah")))
	is, ok := d.Table.Get(rootKey)
	if !ok {
		t.Fatalf("root infoset for AA not found")
	}
	avg := is.AverageStrategy()

	var aggressionProb float64
	for i, a := range tree.Actions {
		if a.Type == bettingtree.Bet || a.Type == bettingtree.AllIn {
			aggressionProb += avg[i]
		}
	}
	if aggressionProb < 0.5 {
		t.Errorf("expected AA to prefer betting/shoving at the root, got aggression probability %v (strategy %v)", aggressionProb, avg)
	}
}

func mustCard(s string) cards.Card {
	c, err := cards.ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}
