package monitor

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"
)

// targetState is the mutable record of one host or application.
// Only the owning host task writes to it; readers go through atomics.
type targetState struct {
	id      string
	kind    Kind
	host    string
	name    string
	address string
	delay   time.Duration

	down          atomic.Bool
	lastCheckedAt atomic.Int64
	changedAt     atomic.Int64
}

func (t *targetState) status() Status {
	if t.down.Load() {
		return StatusDown
	}

	return StatusUp
}

func (t *targetState) seed(now time.Time) {
	t.down.Store(false)
	t.changedAt.Store(now.UnixNano())
}

func (t *targetState) setStatus(status Status, now time.Time) {
	t.down.Store(status == StatusDown)
	t.changedAt.Store(now.UnixNano())
}

func (t *targetState) markChecked(now time.Time) {
	t.lastCheckedAt.Store(now.UnixNano())
}

func (t *targetState) label() string {
	if t.kind == KindApplication {
		return t.host + "/" + t.name
	}

	return t.name
}

func (t *targetState) view() TargetStatus {
	return TargetStatus{
		ID:            t.id,
		Kind:          t.kind,
		Host:          t.host,
		Name:          t.name,
		Address:       t.address,
		Status:        t.status(),
		Delay:         t.delay.String(),
		LastCheckedAt: unixNanoTime(t.lastCheckedAt.Load()),
		ChangedAt:     unixNanoTime(t.changedAt.Load()),
	}
}

func unixNanoTime(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}

	return time.Unix(0, v).UTC()
}

// hostState bundles a host target, its applications and its scheduling settings.
type hostState struct {
	target       *targetState
	applications []*targetState
	pollInterval time.Duration
	schedule     string
	tz           string

	// deadline is the unix nano time after which the host task is considered stale.
	deadline atomic.Int64
}

// maxDelay returns the longest debounce window among the host and its applications.
func (h *hostState) maxDelay() time.Duration {
	longest := h.target.delay

	for _, app := range h.applications {
		longest = max(longest, app.delay)
	}

	return longest
}

// Store holds the state of every configured target.
// The maps are built once and never modified, so lookups need no locking.
type Store struct {
	hosts   map[string]*hostState
	targets map[string]*targetState
	order   []string
}

// NewStore validates the host definitions and builds the target records.
func NewStore(hosts []Host, defaults Defaults) (*Store, error) {
	if defaults.PollInterval <= 0 {
		defaults.PollInterval = DefaultPollInterval
	}

	if defaults.Delay < 0 {
		defaults.Delay = 0
	}

	store := &Store{
		hosts:   make(map[string]*hostState, len(hosts)),
		targets: make(map[string]*targetState),
		order:   make([]string, 0, len(hosts)),
	}

	for i := range hosts {
		err := store.addHost(hosts[i], defaults)
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(store.order)

	return store, nil
}

func (s *Store) addHost(host Host, defaults Defaults) error {
	if strings.TrimSpace(host.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidHost)
	}

	if strings.TrimSpace(host.Address) == "" {
		return fmt.Errorf("%w: host %s has no address", ErrInvalidHost, host.Name)
	}

	if _, exists := s.hosts[host.Name]; exists {
		return fmt.Errorf("%w: host %s", ErrDuplicateTarget, host.Name)
	}

	hostDelay := resolveDelay(host.Delay, defaults.Delay)

	pollInterval := host.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaults.PollInterval
	}

	hs := &hostState{
		target: &targetState{
			id:      host.Name,
			kind:    KindHost,
			host:    host.Name,
			name:    host.Name,
			address: host.Address,
			delay:   hostDelay,
		},
		pollInterval: pollInterval,
		schedule:     host.Schedule,
		tz:           host.TZ,
		applications: make([]*targetState, 0, len(host.Applications)),
	}

	seen := make(map[string]struct{}, len(host.Applications))

	for _, app := range host.Applications {
		if strings.TrimSpace(app.Name) == "" {
			return fmt.Errorf("%w: host %s has an application without name", ErrInvalidApplication, host.Name)
		}

		if _, exists := seen[app.Name]; exists {
			return fmt.Errorf("%w: application %s/%s", ErrDuplicateTarget, host.Name, app.Name)
		}

		seen[app.Name] = struct{}{}

		if app.Port < 0 || app.Port > 65535 {
			return fmt.Errorf("%w: application %s/%s port %d out of range",
				ErrInvalidApplication, host.Name, app.Name, app.Port)
		}

		ts := &targetState{
			id:      host.Name + "/" + app.Name,
			kind:    KindApplication,
			host:    host.Name,
			name:    app.Name,
			address: app.URL(host.Address),
			delay:   resolveDelay(app.Delay, hostDelay),
		}

		hs.applications = append(hs.applications, ts)
		s.targets[ts.id] = ts
	}

	slices.SortFunc(hs.applications, func(a, b *targetState) int {
		return strings.Compare(a.name, b.name)
	})

	s.hosts[host.Name] = hs
	s.targets[hs.target.id] = hs.target
	s.order = append(s.order, host.Name)

	return nil
}

func resolveDelay(own *time.Duration, fallback time.Duration) time.Duration {
	if own == nil {
		return fallback
	}

	if *own < 0 {
		return 0
	}

	return *own
}

// Seed force-sets every target to up. No probes run and no notifications are sent.
func (s *Store) Seed(now time.Time) {
	for _, t := range s.targets {
		t.seed(now)
	}
}

// Len returns the number of configured hosts.
func (s *Store) Len() int {
	return len(s.order)
}

// GetStatusSnapshot returns the current status of every target keyed by target id.
// Application ids have the form "<host>/<application>".
func (s *Store) GetStatusSnapshot() map[string]Status {
	snapshot := make(map[string]Status, len(s.targets))

	for id, t := range s.targets {
		snapshot[id] = t.status()
	}

	return snapshot
}

// Status returns the status of a single target.
func (s *Store) Status(id string) (Status, bool) {
	t, ok := s.targets[id]
	if !ok {
		return "", false
	}

	return t.status(), true
}

// Hosts returns a view of all hosts ordered by name.
func (s *Store) Hosts() []HostStatus {
	result := make([]HostStatus, 0, len(s.order))

	for _, name := range s.order {
		result = append(result, s.hosts[name].view())
	}

	return result
}

// Host returns a view of one host and its applications.
func (s *Store) Host(name string) (HostStatus, error) {
	hs, ok := s.hosts[name]
	if !ok {
		return HostStatus{}, fmt.Errorf("%w: %s", ErrHostNotFound, name)
	}

	return hs.view(), nil
}

func (h *hostState) view() HostStatus {
	apps := make([]TargetStatus, 0, len(h.applications))
	for _, app := range h.applications {
		apps = append(apps, app.view())
	}

	return HostStatus{
		TargetStatus: h.target.view(),
		Applications: apps,
	}
}

func (s *Store) orderedHosts() []*hostState {
	result := make([]*hostState, 0, len(s.order))
	for _, name := range s.order {
		result = append(result, s.hosts[name])
	}

	return result
}
