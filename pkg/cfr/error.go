package cfr

import "errors"

// ErrNoViableSample is returned when the driver cannot find a non-colliding
// pair of private combos after the resample cap (spec.md §7). drawCards
// also returns it when the deck cannot supply a chance node's cards; the
// driver turns that case into a panic.
var ErrNoViableSample = errors.New("cfr: no viable sample found after resample cap")
