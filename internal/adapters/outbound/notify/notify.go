package notify

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/skillcoder/hamonitor/internal/logic/monitor"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultRateLimit = time.Second
	defaultBurst     = 5
)

// Config selects and tunes the notifier.
type Config struct {
	// SlackWebhookURL enables the Slack notifier when set; alerts are only logged otherwise.
	SlackWebhookURL string
	// Timeout bounds one Send, including the wait for a rate limiter token.
	Timeout time.Duration
	// RateLimit is the minimum spacing between deliveries once the burst is spent.
	RateLimit time.Duration
	Burst     int
}

// New returns the notifier matching cfg.
func New(logger *slog.Logger, cfg Config) monitor.Notifier {
	if cfg.SlackWebhookURL == "" {
		logger.Warn("no webhook configured, notifications are written to the log only")

		return NewLog(logger)
	}

	return NewSlack(logger, cfg)
}

func newLimiter(every time.Duration, burst int) *rate.Limiter {
	if every <= 0 {
		every = defaultRateLimit
	}

	if burst <= 0 {
		burst = defaultBurst
	}

	return rate.NewLimiter(rate.Every(every), burst)
}
