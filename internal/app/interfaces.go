package app

import (
	"context"
	"os"
	"time"

	"github.com/skillcoder/hamonitor/internal/infra/appstate"
	"github.com/skillcoder/hamonitor/internal/infra/pinger"
	"github.com/skillcoder/hamonitor/internal/infra/shutdown"
)

// appstater defines the interface for application state management
type appstater interface {
	RegisterPinger(p pinger.Pinger) error
	RegisterShutdowner(shutdowner shutdown.Shutdowner)
	GetAllStats() map[string]*pinger.Statistics
	GetState() appstate.State
	GetStartTime() time.Time
	GetUptime() time.Duration
	IsHealthy() bool
	IsReady() bool
	Quit() <-chan os.Signal
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// starter is a component with an asynchronous start.
type starter interface {
	Start(ctx context.Context) error
	Ready() <-chan struct{}
}

type appServer interface {
	pinger.Pinger
	starter
	shutdown.Shutdowner
}

type pingerRunner interface {
	starter
	shutdown.Shutdowner
}
