package appstate

import (
	"github.com/skillcoder/hamonitor/internal/infra/pinger"
)

// pingerRegistry is the part of the pinger service the application state depends on.
type pingerRegistry interface {
	Register(p pinger.Pinger) error
	GetAllStats() map[string]*pinger.Statistics
}
