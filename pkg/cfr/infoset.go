// Package cfr implements chance-sampled, external-sampling Counterfactual
// Regret Minimization over a pkg/bettingtree game tree: per-infoset regret
// matching, cumulative average-strategy accumulation, and a concurrent
// training driver.
package cfr

import "sync"

// Infoset holds the CFR algorithm state for one information set: a player's
// public history plus their private combo. RegretSum and StrategySum are
// dense vectors sized by the number of legal actions at this infoset
// (spec.md §3, §9).
type Infoset struct {
	mu sync.Mutex

	NumActions  int
	RegretSum   []float64
	StrategySum []float64
}

// newInfoset allocates an Infoset with n legal actions.
func newInfoset(n int) *Infoset {
	return &Infoset{
		NumActions:  n,
		RegretSum:   make([]float64, n),
		StrategySum: make([]float64, n),
	}
}

// CurrentStrategy computes sigma via regret matching (spec.md §4.D.3):
// proportional to positive regret, or uniform if no regret is positive.
func (is *Infoset) CurrentStrategy() []float64 {
	is.mu.Lock()
	defer is.mu.Unlock()
	return is.currentStrategyLocked()
}

func (is *Infoset) currentStrategyLocked() []float64 {
	n := is.NumActions
	strategy := make([]float64, n)

	positiveSum := 0.0
	for i := 0; i < n; i++ {
		if is.RegretSum[i] > 0 {
			positiveSum += is.RegretSum[i]
		}
	}

	if positiveSum > 0 {
		for i := 0; i < n; i++ {
			if is.RegretSum[i] > 0 {
				strategy[i] = is.RegretSum[i] / positiveSum
			}
		}
		return strategy
	}

	uniform := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		strategy[i] = uniform
	}
	return strategy
}

// AddStrategy accumulates this iteration's regret-matched strategy into
// strategy_sum, weighted by the acting player's own reach probability
// (spec.md §4.D.3, step 2). Every visit to an infoset does this, whether or
// not the acting player is this iteration's update player.
func (is *Infoset) AddStrategy(strategy []float64, reach float64) {
	is.mu.Lock()
	defer is.mu.Unlock()
	for i := 0; i < is.NumActions; i++ {
		is.StrategySum[i] += reach * strategy[i]
	}
}

// AddRegret accumulates per-action regret deltas, scaled by the opponent's
// reach probability by the caller. Only the iteration's update player calls
// this for their own infosets (spec.md §4.D.3, external sampling). Locking
// here is the "per-infoset critical section" spec.md §5 requires for
// concurrent workers. regretPlus clips negative regret to zero after the
// update (CFR+, spec.md §4.D.5).
func (is *Infoset) AddRegret(regretDeltas []float64, regretPlus bool) {
	is.mu.Lock()
	defer is.mu.Unlock()
	for i := 0; i < is.NumActions; i++ {
		is.RegretSum[i] += regretDeltas[i]
		if regretPlus && is.RegretSum[i] < 0 {
			is.RegretSum[i] = 0
		}
	}
}

// AverageStrategy returns strategy_sum normalized to a probability
// distribution, defaulting to uniform if the denominator is zero (spec.md
// §4.D.6).
func (is *Infoset) AverageStrategy() []float64 {
	is.mu.Lock()
	defer is.mu.Unlock()

	n := is.NumActions
	avg := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		total += is.StrategySum[i]
	}
	if total <= 0 {
		uniform := 1.0 / float64(n)
		for i := 0; i < n; i++ {
			avg[i] = uniform
		}
		return avg
	}
	for i := 0; i < n; i++ {
		avg[i] = is.StrategySum[i] / total
	}
	return avg
}

// RegretSnapshot returns a copy of the current regret vector, used by the
// driver to compute the convergence-history L2 delta without holding the
// lock across the whole window.
func (is *Infoset) RegretSnapshot() []float64 {
	is.mu.Lock()
	defer is.mu.Unlock()
	out := make([]float64, is.NumActions)
	copy(out, is.RegretSum)
	return out
}
