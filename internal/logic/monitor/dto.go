package monitor

import (
	"net"
	"strconv"
	"time"
)

// Status is the confirmed reachability state of a target.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Kind distinguishes hosts from applications.
type Kind string

const (
	KindHost        Kind = "host"
	KindApplication Kind = "application"
)

// Host describes one monitored host as loaded from configuration.
type Host struct {
	Name    string
	Address string
	// PollInterval overrides the global default when non-zero.
	PollInterval time.Duration
	// Schedule is an optional cron expression used instead of PollInterval.
	Schedule string
	TZ       string
	// Delay overrides the global debounce window when set. A zero value disables debouncing.
	Delay        *time.Duration
	Applications []Application
}

// Application describes one HTTP application served by a host.
type Application struct {
	Name   string
	Scheme string
	Port   int
	Path   string
	// Delay overrides the owning host's delay when set.
	Delay *time.Duration
}

// URL returns the probe URL of the application on the given host address.
func (a Application) URL(address string) string {
	scheme := a.Scheme
	if scheme == "" {
		scheme = DefaultApplicationScheme
	}

	port := a.Port
	if port == 0 {
		port = DefaultApplicationPort
	}

	return scheme + "://" + net.JoinHostPort(address, strconv.Itoa(port)) + a.Path
}

// Defaults holds the global fallbacks applied to every target.
type Defaults struct {
	PollInterval time.Duration
	Delay        time.Duration
}

// TargetStatus is a read-only view of one target.
type TargetStatus struct {
	ID            string    `json:"id"`
	Kind          Kind      `json:"kind"`
	Host          string    `json:"host"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Status        Status    `json:"status"`
	Delay         string    `json:"delay"`
	LastCheckedAt time.Time `json:"lastCheckedAt,omitzero"`
	ChangedAt     time.Time `json:"changedAt,omitzero"`
}

// HostStatus groups a host view with its applications.
type HostStatus struct {
	TargetStatus

	Applications []TargetStatus `json:"applications"`
}
