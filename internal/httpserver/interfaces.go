package httpserver

import (
	"time"

	"github.com/skillcoder/hamonitor/internal/infra/appstate"
	"github.com/skillcoder/hamonitor/internal/infra/pinger"
	"github.com/skillcoder/hamonitor/internal/logic/monitor"
)

// appstater is an internal interface for application state management
type appstater interface {
	GetState() appstate.State
	IsHealthy() bool
	IsReady() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
	GetAllStats() map[string]*pinger.Statistics
}

// targetsReader is the read-only view of monitored targets
type targetsReader interface {
	GetStatusSnapshot() map[string]monitor.Status
	Hosts() []monitor.HostStatus
	Host(name string) (monitor.HostStatus, error)
}
