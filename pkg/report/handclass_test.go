package report

import (
	"testing"

	"github.com/behrlich/gto-solver/pkg/cards"
	"github.com/behrlich/gto-solver/pkg/cfr"
	"github.com/behrlich/gto-solver/pkg/ranges"
)

var noRanges = [2]*ranges.Range{nil, nil}

func TestAggregateByHandClass_GroupsCombosOfSameClass(t *testing.T) {
	table := cfr.NewInfosetTable()
	// Two distinct AA combos sharing the same public history and player.
	table.GetOrCreate("/Bet2.00|2s7dJc|0|AsAh", 2)
	table.GetOrCreate("/Bet2.00|2s7dJc|0|AdAc", 2)
	// A different hand class, same history and player.
	table.GetOrCreate("/Bet2.00|2s7dJc|0|KsKh", 2)

	agg := AggregateByHandClass(table, noRanges)

	aa, ok := agg["/Bet2.00|2s7dJc|0|AA"]
	if !ok {
		t.Fatalf("expected AA aggregate to exist, got keys %v", keysOf(agg))
	}
	if aa.Count != 2 {
		t.Errorf("expected AA count 2, got %d", aa.Count)
	}
	if aa.HandClass != "AA" {
		t.Errorf("expected hand class AA, got %s", aa.HandClass)
	}
	if aa.Player != 0 {
		t.Errorf("expected player 0, got %d", aa.Player)
	}

	kk, ok := agg["/Bet2.00|2s7dJc|0|KK"]
	if !ok {
		t.Fatalf("expected KK aggregate to exist")
	}
	if kk.Count != 1 {
		t.Errorf("expected KK count 1, got %d", kk.Count)
	}
}

func TestAggregateByHandClass_SkipsMalformedKeys(t *testing.T) {
	table := cfr.NewInfosetTable()
	table.GetOrCreate("not-a-valid-key", 2)

	agg := AggregateByHandClass(table, noRanges)
	if len(agg) != 0 {
		t.Errorf("expected malformed key to be skipped, got %v", agg)
	}
}

func TestAggregateByHandClass_WeightsByRangeWeight(t *testing.T) {
	table := cfr.NewInfosetTable()

	asAh := "/Bet2.00|2s7dJc|0|AsAh"
	adAc := "/Bet2.00|2s7dJc|0|AdAc"

	is1 := table.GetOrCreate(asAh, 2)
	is1.RegretSum[0] = 1
	is1.RegretSum[1] = 0
	is1.StrategySum[0] = 1
	is1.StrategySum[1] = 0

	is2 := table.GetOrCreate(adAc, 2)
	is2.RegretSum[0] = 0
	is2.RegretSum[1] = 1
	is2.StrategySum[0] = 0
	is2.StrategySum[1] = 1

	acesSpadesHearts := comboFromString(t, "AsAh")
	acesDiamondsClubs := comboFromString(t, "AdAc")

	// AsAh is weighted 3x AdAc, so the class average should sit much closer
	// to AsAh's pure-fold strategy than an unweighted average would.
	r := ranges.FromWeights(map[ranges.Combo]float64{
		acesSpadesHearts:  3,
		acesDiamondsClubs: 1,
	})

	agg := AggregateByHandClass(table, [2]*ranges.Range{r, nil})

	aa, ok := agg["/Bet2.00|2s7dJc|0|AA"]
	if !ok {
		t.Fatalf("expected AA aggregate to exist")
	}

	want := 0.75 // (3*1 + 1*0) / 4
	if diff := aa.Probs[0] - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("weighted action-0 probability = %v, want %v", aa.Probs[0], want)
	}
}

func TestAggregateByHandClass_ZeroRangeWeightExcludesCombo(t *testing.T) {
	table := cfr.NewInfosetTable()
	table.GetOrCreate("/Bet2.00|2s7dJc|0|AsAh", 2)

	// An empty range assigns every combo weight 0.
	r := ranges.New()

	agg := AggregateByHandClass(table, [2]*ranges.Range{r, nil})
	if len(agg) != 0 {
		t.Errorf("expected zero-weight combo to be excluded, got %v", agg)
	}
}

func keysOf(m map[string]*HandClassStrategy) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func comboFromString(t *testing.T, s string) ranges.Combo {
	t.Helper()
	cs, err := cards.ParseCards(s)
	if err != nil || len(cs) != 2 {
		t.Fatalf("cards.ParseCards(%q): %v", s, err)
	}
	return ranges.NewCombo(cs[0], cs[1])
}
