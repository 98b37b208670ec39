package pinger

import (
	"context"
	"time"
)

// Pinger is a component whose liveness is checked periodically.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Optional interfaces a Pinger may implement to tune how its result is used.
// Both criticality flags default to true.
type (
	readyCriticalPinger interface {
		PingerReadyCritical() bool
	}

	healthCriticalPinger interface {
		PingerCritical() bool
	}

	timeoutPinger interface {
		PingerTimeout() time.Duration
	}
)
