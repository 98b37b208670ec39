package app

import "errors"

// ErrStartInterrupted is returned when a signal or context cancellation arrives before every component is ready.
var ErrStartInterrupted = errors.New("start interrupted")
