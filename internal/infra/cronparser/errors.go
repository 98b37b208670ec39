package cronparser

import "errors"

// ErrNoOccurrence is returned for a schedule that never fires, like "0 0 30 2 *".
var ErrNoOccurrence = errors.New("schedule has no upcoming occurrence")
