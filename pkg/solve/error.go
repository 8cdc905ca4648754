package solve

import (
	"fmt"

	"github.com/pkg/errors"
)

// ParseError reports a malformed range token or card string, carrying the
// offending substring (spec.md §7).
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("solve: parse error in %q: %s", e.Input, e.Reason)
}

// InvalidConfigError reports an inconsistent or out-of-range betting
// configuration or request field (spec.md §7).
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("solve: invalid config: %s", e.Reason)
}

// TreeTooLargeError reports that the pre-build node estimate exceeds the
// configured ceiling (spec.md §7).
type TreeTooLargeError struct {
	Estimated int64
	Ceiling   int64
}

func (e *TreeTooLargeError) Error() string {
	return fmt.Sprintf("solve: estimated %d nodes exceeds ceiling %d", e.Estimated, e.Ceiling)
}

// NoViableSampleError reports that the driver could not find non-colliding
// private combos after the resample cap (spec.md §7).
type NoViableSampleError struct {
	Iteration int
}

func (e *NoViableSampleError) Error() string {
	return fmt.Sprintf("solve: no viable sample at iteration %d after resample cap", e.Iteration)
}

// CancelledError reports cooperative cancellation or a timeout. Partial
// carries whatever SolveResponse had been assembled from completed
// iterations at the point of cancellation (spec.md §7).
type CancelledError struct {
	Partial SolveResponse
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("solve: cancelled after %d iterations", e.Partial.TrainingIterations)
}

// InternalInvariantError reports a §3/§8 postcondition failing at runtime.
// It is non-recoverable; no partial result is returned alongside it.
type InternalInvariantError struct {
	Invariant string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("solve: internal invariant violated: %s", e.Invariant)
}

// newInternalInvariantError wraps an InternalInvariantError with
// github.com/pkg/errors so the stack at the failing check survives into
// whatever logs or reports the error upstream. Everywhere else in this
// package returns a bare typed error; this is the one class spec.md §7
// calls non-recoverable, where a postmortem stack trace earns its keep.
func newInternalInvariantError(invariant string) error {
	return errors.WithStack(&InternalInvariantError{Invariant: invariant})
}
