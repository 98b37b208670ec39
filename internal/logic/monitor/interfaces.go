package monitor

import (
	"context"
	"time"
)

// Prober is the port for single reachability checks.
// Implementations never return errors: any failure is reported as false.
type Prober interface {
	ProbeHost(ctx context.Context, address string) bool
	ProbeApplication(ctx context.Context, url string) bool
}

// Notifier is the port for delivering state-change alerts.
type Notifier interface {
	Send(ctx context.Context, recipient, text string) error
}

// scheduleParser computes cron based fire times for hosts with a schedule.
type scheduleParser interface {
	NextAfter(spec, tz string, after time.Time) (time.Time, error)
}
