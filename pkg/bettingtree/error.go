package bettingtree

import "fmt"

// InvalidConfigError reports an inconsistent BettingConfig or root board/
// street combination (spec.md §7).
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", e.Reason)
}

// TreeTooLargeError reports that the pre-build node-count estimate exceeded
// the configured ceiling; the tree was never materialized (spec.md §7).
type TreeTooLargeError struct {
	Estimated int64
	Ceiling   int64
}

func (e *TreeTooLargeError) Error() string {
	return fmt.Sprintf("tree too large: estimated %d nodes exceeds ceiling %d", e.Estimated, e.Ceiling)
}
