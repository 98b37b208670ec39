package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxFileSizeMB  = 50
	maxFileBackups = 5
	maxFileAgeDays = 28
)

// New builds the process logger and installs it as the slog default.
// When file is set, output goes to a size-rotated file instead of stdout.
func New(logFormat, logLevel, file string) *slog.Logger {
	var out io.Writer = os.Stdout
	if file != "" {
		out = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxFileBackups,
			MaxAge:     maxFileAgeDays,
			Compress:   true,
		}
	}

	logger := slog.New(newHandler(out, logFormat, parseLevel(logLevel)))

	slog.SetDefault(logger)

	return logger
}

func newHandler(out io.Writer, logFormat string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if logFormat == "text" {
		return slog.NewTextHandler(out, opts)
	}

	return slog.NewJSONHandler(out, opts)
}

func parseLevel(logLevel string) slog.Level {
	switch logLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
