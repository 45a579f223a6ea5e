package logger

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"
)

var defaultLogger *slog.Logger

// Initialize sets up the global logger. Every record carries the run-scoped
// identity fields (hostname, app, session_id, platform) so log lines from
// different invocations can be separated downstream. filePath may be empty;
// when set, records go to both stdout and the file.
func Initialize(level, format, filePath string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	}

	out := io.Writer(os.Stdout)
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			slog.Error("Failed to open log file, logging to stdout only", "path", filePath, "error", err)
		} else {
			out = io.MultiWriter(os.Stdout, f)
		}
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	hostname, _ := os.Hostname()
	defaultLogger = slog.New(handler).With(
		"hostname", hostname,
		"app", "loan_notification_system",
		"session_id", uuid.NewString(),
		slog.Group("platform",
			"os", runtime.GOOS,
			"arch", runtime.GOARCH,
			"go", runtime.Version(),
		),
	)
	slog.SetDefault(defaultLogger)
}

// Get returns the default logger.
func Get() *slog.Logger {
	if defaultLogger == nil {
		Initialize("info", "text", "")
	}
	return defaultLogger
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// WithOperation returns a logger with the operation name attached.
func WithOperation(operation string) *slog.Logger {
	return Get().With("operation", operation)
}

// EnterMethod logs method entry (process tracking)
func EnterMethod(methodName string, args ...any) {
	allArgs := append([]any{"method", methodName, "event", "enter"}, args...)
	Get().Debug("→ Method entered", allArgs...)
}

// ExitMethod logs method exit (process tracking)
func ExitMethod(methodName string, args ...any) {
	allArgs := append([]any{"method", methodName, "event", "exit"}, args...)
	Get().Debug("← Method exited", allArgs...)
}

// ExitMethodWithError logs method exit with error (process tracking)
func ExitMethodWithError(methodName string, err error, args ...any) {
	allArgs := append([]any{"method", methodName, "event", "exit", "error", err}, args...)
	Get().Error("← Method exited with error", allArgs...)
}
