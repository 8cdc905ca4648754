package cfr

import "testing"

func TestGetOrCreate_ReturnsSameInfosetOnRevisit(t *testing.T) {
	table := NewInfosetTable()
	a := table.GetOrCreate("key1", 3)
	b := table.GetOrCreate("key1", 3)
	if a != b {
		t.Fatalf("expected same *Infoset pointer on revisit")
	}
}

func TestGetOrCreate_DistinctKeysGetDistinctInfosets(t *testing.T) {
	table := NewInfosetTable()
	a := table.GetOrCreate("key1", 2)
	b := table.GetOrCreate("key2", 2)
	if a == b {
		t.Fatalf("expected distinct *Infoset pointers for distinct keys")
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 infosets, got %d", table.Len())
	}
}

func TestGet_ReportsAbsenceBeforeFirstVisit(t *testing.T) {
	table := NewInfosetTable()
	if _, ok := table.Get("never-visited"); ok {
		t.Fatalf("expected Get to report absence")
	}
	table.GetOrCreate("never-visited", 2)
	if _, ok := table.Get("never-visited"); !ok {
		t.Fatalf("expected Get to find infoset after GetOrCreate")
	}
}

func TestRange_VisitsEveryInfosetExactlyOnce(t *testing.T) {
	table := NewInfosetTable()
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, k := range keys {
		table.GetOrCreate(k, 2)
	}

	seen := make(map[string]int)
	table.Range(func(key string, is *Infoset) {
		seen[key]++
	})

	if len(seen) != len(keys) {
		t.Fatalf("expected %d distinct keys visited, got %d", len(keys), len(seen))
	}
	for _, k := range keys {
		if seen[k] != 1 {
			t.Errorf("key %q visited %d times, want 1", k, seen[k])
		}
	}
}
