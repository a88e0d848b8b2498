package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gperfar/chatbot-admin/internal/config"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// level is shared by every logger built through Setup so SetLevel can
// change verbosity after startup
var level = new(slog.LevelVar)

// Setup builds the process logger from cfg, installs it as the slog default
// and returns it. Every record carries app, the name of the binary.
func Setup(cfg config.LogConfig, app string) (*slog.Logger, error) {
	if err := SetLevel(cfg.Level); err != nil {
		return nil, err
	}
	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   cfg.AddSource,
		ReplaceAttr: formatTime,
	}
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	l := slog.New(handler).With("app", app)
	slog.SetDefault(l)
	l.Debug("logger initialized", "level", level.Level(), "format", cfg.Format, "output", cfg.Output)
	return l, nil
}

// SetLevel changes the level of every logger built by Setup
func SetLevel(s string) error {
	if strings.EqualFold(s, "warning") {
		s = "warn"
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("invalid log level: %s", s)
	}
	level.Set(l)
	return nil
}

// openOutput resolves cfg.Output. A file output creates its directory, so
// the CLI can log next to its config file on first run.
func openOutput(cfg config.LogConfig) (io.Writer, error) {
	switch cfg.Output {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("log file path is required when output is 'file'")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, nil
	}
	return nil, fmt.Errorf("invalid log output: %s", cfg.Output)
}

func formatTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		return slog.String(slog.TimeKey, a.Value.Time().Format(timeFormat))
	}
	return a
}

type contextKey struct{}

var loggerKey contextKey

// FromContext returns the request-scoped logger, or the default one
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// WithContext stores l in ctx
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// WithRequestID tags l with a request id
func WithRequestID(l *slog.Logger, requestID string) *slog.Logger {
	return l.With("request_id", requestID)
}
