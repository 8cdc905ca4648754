package equity

import "errors"

// ErrNoViableSample is returned when no non-colliding villain combo (or no
// complete run-out) can be found after the resample cap, per spec.md §7.
var ErrNoViableSample = errors.New("equity: no viable sample found after resample cap")
