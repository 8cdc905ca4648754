package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/behrlich/gto-solver/pkg/cards"
	"github.com/behrlich/gto-solver/pkg/cfr"
	"github.com/behrlich/gto-solver/pkg/ranges"
)

// HandClassStrategy is one infoset key's public history (the node's path
// key, the visible board, and the acting player), aggregated across every
// combo belonging to one hand class ("AA", "AKs", "AKo").
type HandClassStrategy struct {
	History   string
	Player    int
	HandClass string
	Probs     []float64
	Count     int
	weightSum float64
}

// AggregateByHandClass groups every infoset sharing a public history by hand
// class, combining their average strategies into a single distribution per
// class weighted by each combo's weight in the acting player's range
// (spec.md §4.E): a combo the range plays more often pulls the class average
// toward its own strategy more than a combo the range barely holds.
// playerRanges[p] supplies the weights for player p's combos; a nil entry
// falls back to an unweighted (weight-1) average for that player. Infoset
// keys that fail to parse (malformed combo segment) are skipped rather than
// causing the whole report to fail.
func AggregateByHandClass(table *cfr.InfosetTable, playerRanges [2]*ranges.Range) map[string]*HandClassStrategy {
	agg := make(map[string]*HandClassStrategy)

	table.Range(func(key string, is *cfr.Infoset) {
		history, player, combo, ok := splitInfosetKey(key)
		if !ok {
			return
		}
		handClass := combo.HandClass()

		weight := 1.0
		if r := playerRanges[player]; r != nil {
			weight = r.Weight(combo)
			if weight <= 0 {
				return
			}
		}

		aggKey := fmt.Sprintf("%s|%d|%s", history, player, handClass)
		avg := is.AverageStrategy()

		entry, exists := agg[aggKey]
		if !exists {
			entry = &HandClassStrategy{
				History:   history,
				Player:    player,
				HandClass: handClass,
				Probs:     make([]float64, len(avg)),
			}
			agg[aggKey] = entry
		}
		for i, p := range avg {
			if i < len(entry.Probs) {
				entry.Probs[i] += weight * p
			}
		}
		entry.weightSum += weight
		entry.Count++
	})

	for _, entry := range agg {
		if entry.weightSum == 0 {
			continue
		}
		for i := range entry.Probs {
			entry.Probs[i] /= entry.weightSum
		}
	}
	return agg
}

// splitInfosetKey parses "pathKey|board|player|comboString" into the public
// history ("pathKey|board"), the acting player, and the private combo.
func splitInfosetKey(key string) (history string, player int, combo ranges.Combo, ok bool) {
	parts := strings.SplitN(key, "|", 4)
	if len(parts) != 4 {
		return "", 0, ranges.Combo{}, false
	}
	p, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, ranges.Combo{}, false
	}
	comboCards, err := cards.ParseCards(parts[3])
	if err != nil || len(comboCards) != 2 {
		return "", 0, ranges.Combo{}, false
	}
	c := ranges.NewCombo(comboCards[0], comboCards[1])
	return parts[0] + "|" + parts[1], p, c, true
}
