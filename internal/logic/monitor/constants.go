package monitor

import "time"

const (
	// DefaultPollInterval is used when neither the host nor the global config sets one.
	DefaultPollInterval = 600 * time.Second

	// DefaultDelay is the global debounce window applied when a target sets none.
	DefaultDelay = 30 * time.Second

	// DefaultRecheckInterval is the re-probe period inside a debounce window.
	DefaultRecheckInterval = 10 * time.Second

	// DefaultProbeTimeout bounds a single probe when computing poller liveness.
	DefaultProbeTimeout = 15 * time.Second

	// DefaultNotifyTimeout bounds a single notification when computing poller liveness.
	DefaultNotifyTimeout = 10 * time.Second

	// DefaultApplicationPort is used when an application has no port configured.
	DefaultApplicationPort = 80

	// DefaultApplicationScheme is used when an application has no scheme configured.
	DefaultApplicationScheme = "http"

	// livenessFactor is how many scheduling periods a host task may miss before it is reported stale.
	livenessFactor = 2
)

const (
	downMessageFormat = "%s (%s) is down."
	upMessageFormat   = "%s (%s) is up again."
)
