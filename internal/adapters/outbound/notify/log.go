package notify

import (
	"context"
	"log/slog"

	"github.com/skillcoder/hamonitor/internal/logic/monitor"
)

// Log writes alerts to the application log.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger.With("component", "notify-log")}
}

var _ monitor.Notifier = (*Log)(nil)

func (l *Log) Send(ctx context.Context, recipient, text string) error {
	l.logger.WarnContext(ctx, "notification", "recipient", recipient, "text", text)

	return nil
}
