// Package report turns raw pkg/cfr training state into human-facing
// summaries: per-infoset average strategy, hand-class aggregation, delegated
// equity lookups, and board-texture tags.
package report

import "github.com/behrlich/gto-solver/pkg/cfr"

// AverageStrategy snapshots every infoset in table to its average strategy
// (spec.md §4.D.6), the quantity a solved strategy profile actually reports.
func AverageStrategy(table *cfr.InfosetTable) map[cfr.InfosetKey][]float64 {
	out := make(map[cfr.InfosetKey][]float64)
	table.Range(func(key string, is *cfr.Infoset) {
		out[key] = is.AverageStrategy()
	})
	return out
}
