package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skillcoder/hamonitor/internal/adapters/outbound/notify"
	"github.com/skillcoder/hamonitor/internal/adapters/outbound/probe"
	"github.com/skillcoder/hamonitor/internal/config"
	"github.com/skillcoder/hamonitor/internal/httpserver"
	"github.com/skillcoder/hamonitor/internal/infra/cronparser"
	"github.com/skillcoder/hamonitor/internal/logic/monitor"
)

type App struct {
	logger   *slog.Logger
	appState appstater
	pingers  pingerRunner
	// components are started in order and must all report ready before the app runs.
	components []appServer
}

// New creates a new application instance with all dependencies wired.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	appState appstater,
	pingers pingerRunner,
) (*App, error) {
	store, err := monitor.NewStore(cfg.Hosts, cfg.Defaults)
	if err != nil {
		return nil, fmt.Errorf("build target store: %w", err)
	}

	prober := probe.New(logger, probe.Config{
		PingTimeout:        cfg.PingTimeout,
		HTTPTimeout:        cfg.HTTPTimeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	})

	notifier := notify.New(logger, notify.Config{
		SlackWebhookURL: cfg.SlackWebhookURL,
		Timeout:         cfg.NotifyTimeout,
		RateLimit:       cfg.NotifyRateLimit,
	})

	monitorService := monitor.New(logger, store, prober, notifier, cronparser.New(), monitor.Options{
		Recipient:       cfg.NotifyRecipient,
		RecheckInterval: cfg.RecheckInterval,
		ProbeTimeout:    cfg.ProbeTimeout(),
		NotifyTimeout:   cfg.NotifyTimeout,
	})

	httpServer := httpserver.New(logger, appState, monitorService, cfg.HTTPPort, cfg.CORSAllowedOrigins)
	metricsServer := httpserver.NewMetricsServer(logger, cfg.MetricsPort)

	a := &App{
		logger:     logger,
		appState:   appState,
		pingers:    pingers,
		components: []appServer{monitorService, metricsServer, httpServer},
	}

	// Shutdown runs in reverse: servers first, then the monitor, then the pinger.
	appState.RegisterShutdowner(pingers)

	for _, c := range a.components {
		err := appState.RegisterPinger(c)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", c.Name(), err)
		}

		appState.RegisterShutdowner(c)
	}

	return a, nil
}

// Run starts every component, marks the application running and blocks until a
// termination signal arrives or ctx is done. It then shuts everything down.
func (a *App) Run(originCtx context.Context) error {
	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	err := a.appState.SetStarting(ctx)
	if err != nil {
		return fmt.Errorf("set starting: %w", err)
	}

	err = a.start(ctx)
	if errors.Is(err, ErrStartInterrupted) {
		a.logger.InfoContext(ctx, "startup interrupted, terminating")
		cancel()

		return a.shutdown(originCtx)
	}

	if err != nil {
		cancel()

		return errors.Join(fmt.Errorf("start: %w", err), a.shutdown(originCtx))
	}

	err = a.appState.SetRunning(ctx)
	if err != nil {
		cancel()

		return errors.Join(fmt.Errorf("set running: %w", err), a.shutdown(originCtx))
	}

	a.logger.InfoContext(ctx, "application is running")

	select {
	case sig := <-a.appState.Quit():
		a.logger.InfoContext(ctx, "received termination signal, terminating", "signal", sig.String())
	case <-ctx.Done():
		a.logger.InfoContext(ctx, "context done, terminating")
	}

	// Host tasks and the pinger loop stop on cancel; Shutdown then waits for them.
	cancel()

	return a.shutdown(originCtx)
}

func (a *App) shutdown(ctx context.Context) error {
	err := a.appState.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func (a *App) start(ctx context.Context) error {
	readies := make([]<-chan struct{}, 0, len(a.components))

	for _, c := range a.components {
		err := c.Start(ctx)
		if err != nil {
			return fmt.Errorf("start %s: %w", c.Name(), err)
		}

		readies = append(readies, c.Ready())
	}

	if !a.waitReady(ctx, allChannelsClose(ctx, a.logger, readies...)) {
		return fmt.Errorf("wait components ready: %w", ErrStartInterrupted)
	}

	// Pingers start last so their first round sees ready components.
	err := a.pingers.Start(ctx)
	if err != nil {
		return fmt.Errorf("start pingers: %w", err)
	}

	if !a.waitReady(ctx, a.pingers.Ready()) {
		return fmt.Errorf("wait pingers ready: %w", ErrStartInterrupted)
	}

	return nil
}

// waitReady blocks until ready is closed. It returns false when ctx is done or a
// termination signal arrives first.
func (a *App) waitReady(ctx context.Context, ready <-chan struct{}) bool {
	select {
	case <-ready:
		return ctx.Err() == nil
	case <-ctx.Done():
		return false
	case sig := <-a.appState.Quit():
		a.logger.InfoContext(ctx, "received termination signal while starting", "signal", sig.String())

		return false
	}
}

// allChannelsClose returns a channel that is closed once every input channel is
// closed, or as soon as ctx is done.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	go func() {
		defer close(out)

		for i, ch := range chans {
			select {
			case <-ch:
			case <-ctx.Done():
				logger.DebugContext(ctx, "stopped waiting for ready channels",
					"pending", len(chans)-i,
					"reason", ctx.Err(),
				)

				return
			}
		}
	}()

	return out
}
