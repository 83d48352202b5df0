package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once
)

// Init initializes the default logger. Format "json" writes structured JSON
// to stdout; anything else gets a colorized console handler. It ensures that
// the logger is initialized only once.
func Init(level string, format string) {
	once.Do(func() {
		lvl := parseLevel(level)

		var handler slog.Handler
		if strings.EqualFold(format, "json") {
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
		} else {
			handler = tint.NewHandler(os.Stdout, &tint.Options{
				Level:      lvl,
				TimeFormat: time.Kitchen,
			})
		}

		defaultLogger = slog.New(handler)
		slog.SetDefault(defaultLogger)
	})
}

// Get returns the initialized default logger, initializing it with defaults
// if Init has not been called yet.
func Get() *slog.Logger {
	Init("info", "text")
	return defaultLogger
}

// Info logs an informational message using the default logger.
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning message using the default logger.
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error message using the default logger.
func Error(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	Get().Error(msg, args...)
}

// Debug logs a debug message using the default logger.
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
