package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/skillcoder/hamonitor/internal/infra/metrics"
)

type probeFunc func(ctx context.Context) bool

// check runs one state machine step for a target and reports whether the
// target is up after this cycle.
//
// Going down is debounced: a failing probe on an up target is re-probed every
// recheck interval until a probe succeeds or the target delay elapses.
// Coming back up is not: the first successful probe on a down target commits.
func (s *Service) check(
	ctx context.Context,
	logger *slog.Logger,
	target *targetState,
	probe probeFunc,
) bool {
	logger = logger.With("target", target.id, "kind", string(target.kind))

	ok := s.probe(ctx, target, probe)

	if target.status() == StatusDown {
		if !ok {
			logger.DebugContext(ctx, "target still down")

			return false
		}

		s.transition(ctx, logger, target, StatusUp)

		return true
	}

	if ok {
		return true
	}

	logger.InfoContext(ctx, "probe failed, entering debounce window", "delay", target.delay)

	if s.debounce(ctx, target, probe) {
		logger.InfoContext(ctx, "target recovered inside debounce window")
		metrics.RecordFlapAbsorbed(string(target.kind))

		return true
	}

	if ctx.Err() != nil {
		logger.InfoContext(ctx, "debounce interrupted, transition not committed")

		return false
	}

	s.transition(ctx, logger, target, StatusDown)

	return false
}

// debounce re-probes the target until it succeeds or its delay elapses.
// A zero delay runs no iterations.
func (s *Service) debounce(ctx context.Context, target *targetState, probe probeFunc) bool {
	start := s.now()

	for s.now().Sub(start) < target.delay {
		if !s.wait(ctx, s.recheckInterval) {
			return false
		}

		if s.probe(ctx, target, probe) {
			return true
		}
	}

	return false
}

func (s *Service) probe(ctx context.Context, target *targetState, probe probeFunc) bool {
	ok := probe(ctx)
	target.markChecked(s.now())
	metrics.RecordProbe(string(target.kind), ok)

	return ok
}

func (s *Service) transition(
	ctx context.Context,
	logger *slog.Logger,
	target *targetState,
	status Status,
) {
	target.setStatus(status, s.now())
	metrics.RecordTransition(string(target.kind), target.id, string(status), status == StatusUp)

	format := upMessageFormat
	if status == StatusDown {
		format = downMessageFormat

		logger.WarnContext(ctx, "target is down")
	} else {
		logger.InfoContext(ctx, "target is up again")
	}

	s.notify(ctx, logger, fmt.Sprintf(format, target.label(), target.address))
}

// notify delivers an alert. Delivery failures never abort the cycle.
func (s *Service) notify(ctx context.Context, logger *slog.Logger, text string) {
	err := s.notifier.Send(ctx, s.recipient, text)
	if err != nil {
		metrics.RecordNotificationFailure()
		logger.ErrorContext(ctx, "failed to send notification",
			"recipient", s.recipient,
			"text", text,
			"reason", err,
		)
	}
}

// wait blocks for d or until ctx is done. It reports whether the full duration elapsed.
func (s *Service) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
