package cfr

import (
	"sync"

	"github.com/dchest/siphash"
)

// numShards is the number of map shards the InfosetTable stripes its keys
// across. A shard's own mutex only guards the map's structural mutations
// (insert/lookup); numeric regret/strategy updates are serialized per
// Infoset by its own embedded mutex, so two workers touching different
// infosets in the same shard never contend (spec.md §5).
const numShards = 64

// siphash key, fixed so table sharding is deterministic across runs; it has
// no bearing on solve determinism itself (that comes from the driver's
// seeded *rand.Rand), only on which shard an infoset lands in.
const shardKeyK0, shardKeyK1 = 0x9ae16a3b2f90404f, 0xc3a5c85c97cb3127

// InfosetTable is the shared mutable state of a solve: every infoset
// discovered during traversal, created on first visit and never destroyed
// (spec.md §3 Lifecycle).
type InfosetTable struct {
	shards [numShards]shard
}

type shard struct {
	mu   sync.Mutex
	data map[string]*Infoset
}

// NewInfosetTable returns an empty table.
func NewInfosetTable() *InfosetTable {
	t := &InfosetTable{}
	for i := range t.shards {
		t.shards[i].data = make(map[string]*Infoset)
	}
	return t
}

func (t *InfosetTable) shardFor(key string) *shard {
	h := siphash.Hash(shardKeyK0, shardKeyK1, []byte(key))
	return &t.shards[h%numShards]
}

// GetOrCreate returns the Infoset for key, allocating one sized for
// numActions legal actions on first visit.
func (t *InfosetTable) GetOrCreate(key string, numActions int) *Infoset {
	s := t.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if is, ok := s.data[key]; ok {
		return is
	}
	is := newInfoset(numActions)
	s.data[key] = is
	return is
}

// Get returns the Infoset for key if it has been visited at least once.
func (t *InfosetTable) Get(key string) (*Infoset, bool) {
	s := t.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	is, ok := s.data[key]
	return is, ok
}

// Len returns the total number of infosets discovered so far.
func (t *InfosetTable) Len() int {
	total := 0
	for i := range t.shards {
		t.shards[i].mu.Lock()
		total += len(t.shards[i].data)
		t.shards[i].mu.Unlock()
	}
	return total
}

// Range calls fn once per (key, Infoset) pair currently in the table. fn
// must not mutate the table.
func (t *InfosetTable) Range(fn func(key string, is *Infoset)) {
	for i := range t.shards {
		t.shards[i].mu.Lock()
		for k, v := range t.shards[i].data {
			fn(k, v)
		}
		t.shards[i].mu.Unlock()
	}
}
