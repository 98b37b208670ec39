package pinger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillcoder/hamonitor/internal/infra/metrics"
	"github.com/skillcoder/hamonitor/internal/infra/shutdown"
)

const (
	// defaultPingTimeout is the default timeout for ping operations
	defaultPingTimeout = 1 * time.Second
)

type entry struct {
	pinger         Pinger
	readyCritical  bool
	healthCritical bool
	timeout        time.Duration
	stats          *stats
}

// Service pings registered components at a fixed interval and keeps their statistics.
type Service struct {
	logger     *slog.Logger
	interval   time.Duration
	entries    map[string]*entry
	mu         sync.RWMutex
	ready      chan struct{}
	started    atomic.Bool
	inShutdown atomic.Bool
	doneCh     chan struct{}
	wg         sync.WaitGroup
}

// New creates a new pinger service with the specified interval
func New(
	logger *slog.Logger,
	interval time.Duration,
) *Service {
	return &Service{
		logger:   logger,
		interval: interval,
		entries:  make(map[string]*entry),
		ready:    make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*Service)(nil)

// Name returns the name of the pinger service component
func (s *Service) Name() string {
	return "pinger-service"
}

// Register adds a pinger. Names must be unique.
func (s *Service) Register(p Pinger) error {
	if p == nil {
		return fmt.Errorf("register pinger: %w", ErrNilPinger)
	}

	name := p.Name()

	e := &entry{
		pinger:         p,
		readyCritical:  true,
		healthCritical: true,
		timeout:        defaultPingTimeout,
		stats:          &stats{},
	}

	if rc, ok := p.(readyCriticalPinger); ok {
		e.readyCritical = rc.PingerReadyCritical()
	}

	if hc, ok := p.(healthCriticalPinger); ok {
		e.healthCritical = hc.PingerCritical()
	}

	if tp, ok := p.(timeoutPinger); ok && tp.PingerTimeout() > 0 {
		e.timeout = tp.PingerTimeout()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("register pinger %s: %w", name, ErrPingerAlreadyRegistered)
	}

	s.entries[name] = e

	s.logger.Info("pinger registered",
		"name", name,
		"readyCritical", e.readyCritical,
		"healthCritical", e.healthCritical,
		"timeout", e.timeout,
	)

	return nil
}

// Start starts the pinger loop in a goroutine
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "pinger service is shutting down, skipping start")

		return nil
	}

	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	go s.run(ctx)

	return nil
}

// Ready returns a channel that is closed after the first round of pings
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown waits for the pinger loop and any in-flight pings to finish.
// The loop itself stops when the context passed to Start is cancelled.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "pinger service is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "pinger service shut downed")
	}()

	s.logger.InfoContext(ctx, "shutting down pinger service")

	if !s.started.Load() {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before pinger loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "pinger loop exited")
	}

	s.wg.Wait()

	return nil
}

// GetAllStats returns statistics for every registered pinger keyed by name
func (s *Service) GetAllStats() map[string]*Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Statistics, len(s.entries))
	for name, e := range s.entries {
		result[name] = e.stats.snapshot(e)
	}

	return result
}

func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("component", "pinger-run")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.pingAll(ctx, logger)

	close(s.ready)

	for {
		select {
		case <-ticker.C:
			s.pingAll(ctx, logger)
		case <-ctx.Done():
			logger.InfoContext(ctx, "terminating pinger loop")

			return
		}
	}
}

// pingAll runs every registered pinger in parallel and waits for all of them.
func (s *Service) pingAll(ctx context.Context, logger *slog.Logger) {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	var wg sync.WaitGroup

	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		s.wg.Add(1)

		go func() {
			defer wg.Done()
			defer s.wg.Done()

			s.ping(ctx, logger, e)
		}()
	}

	wg.Wait()
}

func (s *Service) ping(ctx context.Context, logger *slog.Logger, e *entry) {
	name := e.pinger.Name()

	pingCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	err := e.pinger.Ping(pingCtx)
	latency := time.Since(start)

	e.stats.record(time.Now(), latency, err)
	metrics.SetComponentHealthy(name, err == nil)

	if err != nil {
		logger.WarnContext(ctx, "ping failed",
			"name", name,
			"latency", latency,
			"reason", err,
		)

		return
	}

	logger.DebugContext(ctx, "ping succeeded",
		"name", name,
		"latency", latency,
	)
}
