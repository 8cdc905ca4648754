package ranges

import (
	"fmt"
	"sort"
	"strings"

	"github.com/behrlich/gto-solver/pkg/cards"
)

// Range is a weighted distribution over two-card combos. The domain is a
// subset of the 1326 possible combos; weights need not sum to 1 and are
// normalized only on demand.
type Range struct {
	weights map[Combo]float64
}

// New returns an empty Range.
func New() *Range {
	return &Range{weights: make(map[Combo]float64)}
}

// FromWeights builds a Range directly from a combo->weight map, primarily
// for tests and callers that already hold explicit weights.
func FromWeights(weights map[Combo]float64) *Range {
	r := New()
	for c, w := range weights {
		if w > 0 {
			r.weights[c] = w
		}
	}
	return r
}

// Weight returns the weight of combo c, 0 if absent.
func (r *Range) Weight(c Combo) float64 {
	return r.weights[c]
}

// Set assigns a weight directly, removing the combo if w <= 0.
func (r *Range) Set(c Combo, w float64) {
	if w <= 0 {
		delete(r.weights, c)
		return
	}
	r.weights[c] = w
}

// Combos returns the combos with weight > 0, in a stable (rank1,suit1,
// rank2,suit2) order, i.e. by Card1.ID() then Card2.ID().
func (r *Range) Combos() []Combo {
	combos := make([]Combo, 0, len(r.weights))
	for c := range r.weights {
		combos = append(combos, c)
	}
	sort.Slice(combos, func(i, j int) bool {
		if combos[i].Card1.ID() != combos[j].Card1.ID() {
			return combos[i].Card1.ID() < combos[j].Card1.ID()
		}
		return combos[i].Card2.ID() < combos[j].Card2.ID()
	})
	return combos
}

// Len returns the number of combos with weight > 0.
func (r *Range) Len() int {
	return len(r.weights)
}

// Mask returns a new Range with combos zeroed out that intersect board or
// any of others.
func (r *Range) Mask(board []cards.Card, others ...Combo) *Range {
	out := New()
	for c, w := range r.weights {
		if c.IntersectsBoard(board) {
			continue
		}
		blocked := false
		for _, o := range others {
			if c.Intersects(o) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		out.weights[c] = w
	}
	return out
}

// Normalize returns a probability vector over the range's feasible combos,
// summing to 1. An empty range normalizes to an empty map.
func (r *Range) Normalize() map[Combo]float64 {
	total := 0.0
	for _, w := range r.weights {
		total += w
	}

	out := make(map[Combo]float64, len(r.weights))
	if total == 0 {
		return out
	}
	for c, w := range r.weights {
		out[c] = w / total
	}
	return out
}

// Canonical re-serializes the range's feasible combos into minimal token
// form: a hand-class token ("AA", "AKs", "AKo") when every combo of that
// class carries the same weight, falling back to individual card-pair
// tokens ("AsKh") for partially-weighted classes. Re-parsing the result
// with Parse yields an equivalent weighted range.
func (r *Range) Canonical() string {
	byClass := make(map[string][]Combo)
	for c := range r.weights {
		class := c.HandClass()
		byClass[class] = append(byClass[class], c)
	}

	classes := make([]string, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	var tokens []string
	for _, class := range classes {
		combos := byClass[class]
		full := fullClassCombos(class)

		uniform := len(combos) == len(full)
		var weight float64
		if uniform {
			weight = r.weights[combos[0]]
			for _, c := range combos {
				if r.weights[c] != weight {
					uniform = false
					break
				}
			}
		}

		if uniform {
			tokens = append(tokens, formatToken(class, weight))
			continue
		}

		sort.Slice(combos, func(i, j int) bool {
			if combos[i].Card1.ID() != combos[j].Card1.ID() {
				return combos[i].Card1.ID() < combos[j].Card1.ID()
			}
			return combos[i].Card2.ID() < combos[j].Card2.ID()
		})
		for _, c := range combos {
			tokens = append(tokens, formatToken(c.String(), r.weights[c]))
		}
	}

	return strings.Join(tokens, ",")
}

func formatToken(base string, weight float64) string {
	if weight == 1.0 {
		return base
	}
	return fmt.Sprintf("%s:%g", base, weight)
}

// fullClassCombos returns every combo belonging to the given hand-class
// token (e.g. all 4 combos of "AKs"), used by Canonical to detect whether a
// class can collapse to a single token.
func fullClassCombos(class string) []Combo {
	r1, err := parseRankChar(class[0])
	if err != nil {
		return nil
	}
	r2, err := parseRankChar(class[1])
	if err != nil {
		return nil
	}
	if len(class) == 2 {
		return generateCombos(r1, r2, false)
	}
	return generateCombos(r1, r2, class[2] == 's')
}
