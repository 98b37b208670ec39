package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillcoder/hamonitor/internal/infra/metrics"
)

// Options tunes the monitor service. Zero values fall back to package defaults.
type Options struct {
	// Recipient is the identifier passed to the notifier with every alert.
	Recipient string
	// RecheckInterval is the re-probe period inside a debounce window.
	RecheckInterval time.Duration
	// ProbeTimeout is the upper bound of a single probe, used for liveness.
	ProbeTimeout time.Duration
	// NotifyTimeout is the upper bound of a single notification, used for liveness.
	NotifyTimeout time.Duration
}

// Service runs one independent check task per host.
type Service struct {
	logger          *slog.Logger
	store           *Store
	prober          Prober
	notifier        Notifier
	schedules       scheduleParser
	recipient       string
	recheckInterval time.Duration
	probeTimeout    time.Duration
	notifyTimeout   time.Duration
	now             func() time.Time
	ready           chan struct{}
	doneCh          chan struct{}
	started         atomic.Bool
	inShutdown      atomic.Bool
}

// New creates a new monitor service. schedules may be nil when no host uses a cron schedule.
func New(
	logger *slog.Logger,
	store *Store,
	prober Prober,
	notifier Notifier,
	schedules scheduleParser,
	opts Options,
) *Service {
	if opts.RecheckInterval <= 0 {
		opts.RecheckInterval = DefaultRecheckInterval
	}

	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}

	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = DefaultNotifyTimeout
	}

	return &Service{
		logger:          logger,
		store:           store,
		prober:          prober,
		notifier:        notifier,
		schedules:       schedules,
		recipient:       opts.Recipient,
		recheckInterval: opts.RecheckInterval,
		probeTimeout:    opts.ProbeTimeout,
		notifyTimeout:   opts.NotifyTimeout,
		now:             time.Now,
		ready:           make(chan struct{}),
		doneCh:          make(chan struct{}),
	}
}

// Name returns the name of the monitor component
func (s *Service) Name() string {
	return "monitor"
}

func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "monitor service is shutting down, skipping start")

		return nil
	}

	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	go s.RunCommand(ctx)

	return nil
}

func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Ping reports an error when the service is not running or when a host task
// has not completed a cycle within its expected window.
func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
	default:
		return ErrNotReady
	}

	now := s.now().UnixNano()

	var errs error

	for _, h := range s.store.orderedHosts() {
		deadline := h.deadline.Load()
		if now > deadline {
			overdue := time.Duration(now - deadline)
			errs = errors.Join(errs, fmt.Errorf("%w: %s overdue by %s",
				ErrHostTaskStale, h.target.name, overdue.Round(time.Second)))
		}
	}

	return errs
}

func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "monitor service is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "monitor service shut downed")
	}()

	s.logger.InfoContext(ctx, "shutting down monitor service")

	if !s.started.Load() {
		return nil
	}

	// Host tasks exit when the run context is cancelled.
	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before host tasks exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "host tasks exited")
	}

	return nil
}

// GetStatusSnapshot returns the current status of every target.
func (s *Service) GetStatusSnapshot() map[string]Status {
	return s.store.GetStatusSnapshot()
}

// Hosts returns a view of all hosts and their applications.
func (s *Service) Hosts() []HostStatus {
	return s.store.Hosts()
}

// Host returns a view of one host and its applications.
func (s *Service) Host(name string) (HostStatus, error) {
	return s.store.Host(name)
}

// RunCommand seeds every target as up and runs one task per host until ctx is done.
func (s *Service) RunCommand(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("component", "monitor")

	now := s.now()
	s.store.Seed(now)

	hosts := s.store.orderedHosts()

	for _, h := range hosts {
		h.deadline.Store(now.Add(s.maxCycle(h)).UnixNano())

		metrics.SetTargetUp(string(KindHost), h.target.id, true)

		for _, app := range h.applications {
			metrics.SetTargetUp(string(KindApplication), app.id, true)
		}
	}

	var wg sync.WaitGroup

	for _, h := range hosts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			s.runHost(ctx, logger, h)
		}()
	}

	close(s.ready)

	logger.InfoContext(ctx, "monitor started", "hosts", s.store.Len())

	wg.Wait()

	logger.InfoContext(ctx, "terminating monitor")
}

// CheckHostCommand runs a single check cycle for the named host and returns
// the host status after the cycle.
func (s *Service) CheckHostCommand(ctx context.Context, name string) (Status, error) {
	h, ok := s.store.hosts[name]
	if !ok {
		return "", fmt.Errorf("check host: %w: %s", ErrHostNotFound, name)
	}

	s.runCycle(ctx, s.logger.With("component", "monitor", "host", name), h)

	status, _ := s.store.Status(name)

	return status, nil
}

func (s *Service) runHost(ctx context.Context, logger *slog.Logger, h *hostState) {
	logger = logger.With("host", h.target.name)

	logger.InfoContext(ctx, "host task started",
		"interval", h.pollInterval,
		"schedule", h.schedule,
		"applications", len(h.applications),
	)

	for {
		started := s.now()

		_, err := s.CheckHostCommand(ctx, h.target.name)
		if err != nil {
			logger.ErrorContext(ctx, "host check cycle failed", "reason", err)
		}

		if ctx.Err() != nil {
			logger.InfoContext(ctx, "terminating host task")

			return
		}

		now := s.now()
		next := s.nextFire(ctx, logger, h, started, now)

		h.deadline.Store(now.Add(livenessFactor*next.Sub(now) + s.maxCycle(h)).UnixNano())

		if !s.wait(ctx, next.Sub(now)) {
			logger.InfoContext(ctx, "terminating host task")

			return
		}
	}
}

// runCycle checks the host and, when it is up, every one of its applications.
// A panic is logged and swallowed so the task keeps its schedule.
func (s *Service) runCycle(ctx context.Context, logger *slog.Logger, h *hostState) (hostUp bool) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordCyclePanic(h.target.name)
			logger.ErrorContext(ctx, "host check cycle failed",
				"reason", r,
				"stack", string(debug.Stack()),
			)

			hostUp = false
		}
	}()

	hostUp = s.check(ctx, logger, h.target, func(ctx context.Context) bool {
		return s.prober.ProbeHost(ctx, h.target.address)
	})
	if !hostUp {
		logger.DebugContext(ctx, "host is down, skipping applications")

		return false
	}

	if len(h.applications) == 0 {
		logger.DebugContext(ctx, "no applications defined for host")

		return true
	}

	for _, app := range h.applications {
		if ctx.Err() != nil {
			return true
		}

		s.check(ctx, logger, app, func(ctx context.Context) bool {
			return s.prober.ProbeApplication(ctx, app.address)
		})
	}

	return true
}

// nextFire returns when the next cycle of h should start.
func (s *Service) nextFire(
	ctx context.Context,
	logger *slog.Logger,
	h *hostState,
	started,
	now time.Time,
) time.Time {
	if h.schedule != "" && s.schedules != nil {
		next, err := s.schedules.NextAfter(h.schedule, h.tz, now)
		if err == nil && !next.After(now) {
			err = fmt.Errorf("%w: next fire %s is not after %s", ErrScheduleExhausted, next, now)
		}

		if err == nil {
			return next
		}

		logger.ErrorContext(ctx, "invalid schedule, falling back to interval",
			"schedule", h.schedule,
			"reason", err,
		)
	}

	next := started.Add(h.pollInterval)
	if next.Before(now) {
		return now
	}

	return next
}

// maxCycle is the longest a single cycle of h can take when every target
// debounces and then notifies. Each target gets its first probe, the window,
// one more recheck with its probe, and one notification.
func (s *Service) maxCycle(h *hostState) time.Duration {
	targets := time.Duration(1 + len(h.applications))

	return targets * (h.maxDelay() + s.recheckInterval + 2*s.probeTimeout + s.notifyTimeout)
}
