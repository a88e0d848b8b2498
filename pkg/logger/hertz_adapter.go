package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// HertzSlogAdapter routes hertz's hlog output into slog. Records are
// tagged component=hertz and filtered by the level hertz asks for.
type HertzSlogAdapter struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

var _ hlog.FullLogger = (*HertzSlogAdapter)(nil)

// NewHertzSlogAdapter creates an adapter writing through logger
func NewHertzSlogAdapter(logger *slog.Logger) *HertzSlogAdapter {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	return &HertzSlogAdapter{
		logger: logger.With("component", "hertz"),
		level:  level,
	}
}

// hlog has six levels above trace; slog has four
func toSlogLevel(level hlog.Level) slog.Level {
	switch level {
	case hlog.LevelTrace, hlog.LevelDebug:
		return slog.LevelDebug
	case hlog.LevelInfo, hlog.LevelNotice:
		return slog.LevelInfo
	case hlog.LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func (h *HertzSlogAdapter) log(ctx context.Context, level hlog.Level, msg string) {
	lvl := toSlogLevel(level)
	if lvl < h.level.Level() {
		return
	}
	if level == hlog.LevelFatal {
		h.logger.Log(ctx, lvl, msg, "fatal", true)
		return
	}
	h.logger.Log(ctx, lvl, msg)
}

func (h *HertzSlogAdapter) Trace(v ...any)  { h.log(context.Background(), hlog.LevelTrace, sprint(v...)) }
func (h *HertzSlogAdapter) Debug(v ...any)  { h.log(context.Background(), hlog.LevelDebug, sprint(v...)) }
func (h *HertzSlogAdapter) Info(v ...any)   { h.log(context.Background(), hlog.LevelInfo, sprint(v...)) }
func (h *HertzSlogAdapter) Notice(v ...any) { h.log(context.Background(), hlog.LevelNotice, sprint(v...)) }
func (h *HertzSlogAdapter) Warn(v ...any)   { h.log(context.Background(), hlog.LevelWarn, sprint(v...)) }
func (h *HertzSlogAdapter) Error(v ...any)  { h.log(context.Background(), hlog.LevelError, sprint(v...)) }
func (h *HertzSlogAdapter) Fatal(v ...any)  { h.log(context.Background(), hlog.LevelFatal, sprint(v...)) }

func (h *HertzSlogAdapter) Tracef(format string, v ...any) {
	h.log(context.Background(), hlog.LevelTrace, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Debugf(format string, v ...any) {
	h.log(context.Background(), hlog.LevelDebug, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Infof(format string, v ...any) {
	h.log(context.Background(), hlog.LevelInfo, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Noticef(format string, v ...any) {
	h.log(context.Background(), hlog.LevelNotice, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Warnf(format string, v ...any) {
	h.log(context.Background(), hlog.LevelWarn, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Errorf(format string, v ...any) {
	h.log(context.Background(), hlog.LevelError, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Fatalf(format string, v ...any) {
	h.log(context.Background(), hlog.LevelFatal, fmt.Sprintf(format, v...))
}

// Ctx variants log through the request-scoped logger when the middleware
// stored one, so hertz records keep the request id.

func (h *HertzSlogAdapter) CtxTracef(ctx context.Context, format string, v ...any) {
	h.ctxLog(ctx, hlog.LevelTrace, format, v...)
}

func (h *HertzSlogAdapter) CtxDebugf(ctx context.Context, format string, v ...any) {
	h.ctxLog(ctx, hlog.LevelDebug, format, v...)
}

func (h *HertzSlogAdapter) CtxInfof(ctx context.Context, format string, v ...any) {
	h.ctxLog(ctx, hlog.LevelInfo, format, v...)
}

func (h *HertzSlogAdapter) CtxNoticef(ctx context.Context, format string, v ...any) {
	h.ctxLog(ctx, hlog.LevelNotice, format, v...)
}

func (h *HertzSlogAdapter) CtxWarnf(ctx context.Context, format string, v ...any) {
	h.ctxLog(ctx, hlog.LevelWarn, format, v...)
}

func (h *HertzSlogAdapter) CtxErrorf(ctx context.Context, format string, v ...any) {
	h.ctxLog(ctx, hlog.LevelError, format, v...)
}

func (h *HertzSlogAdapter) CtxFatalf(ctx context.Context, format string, v ...any) {
	h.ctxLog(ctx, hlog.LevelFatal, format, v...)
}

func (h *HertzSlogAdapter) ctxLog(ctx context.Context, level hlog.Level, format string, v ...any) {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		scoped := &HertzSlogAdapter{logger: l.With("component", "hertz"), level: h.level}
		scoped.log(ctx, level, fmt.Sprintf(format, v...))
		return
	}
	h.log(ctx, level, fmt.Sprintf(format, v...))
}

// SetLevel sets the minimum level forwarded to slog
func (h *HertzSlogAdapter) SetLevel(level hlog.Level) {
	h.level.Set(toSlogLevel(level))
}

// SetOutput is a no-op; the slog handler owns the writer
func (h *HertzSlogAdapter) SetOutput(io.Writer) {}

func sprint(v ...any) string {
	if len(v) == 1 {
		if s, ok := v[0].(string); ok {
			return s
		}
	}
	return fmt.Sprint(v...)
}
