package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gperfar/chatbot-admin/internal/config"
)

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		_ = SetLevel("info")
	})

	path := filepath.Join(t.TempDir(), "logs", "chatadmin.log")
	l, err := Setup(config.LogConfig{Level: "warning", Format: "json", Output: "file", FilePath: path}, "chatadmin")
	require.NoError(t, err)
	assert.Same(t, l, slog.Default())

	slog.Info("dropped")
	require.NoError(t, SetLevel("debug"))
	slog.Debug("written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), `"msg":"written"`)
	assert.Contains(t, string(data), `"app":"chatadmin"`)

	tests := []struct {
		name string
		cfg  config.LogConfig
	}{
		{"bad level", config.LogConfig{Level: "loud", Format: "json", Output: "stdout"}},
		{"bad format", config.LogConfig{Level: "info", Format: "xml", Output: "stdout"}},
		{"bad output", config.LogConfig{Level: "info", Format: "json", Output: "syslog"}},
		{"file without path", config.LogConfig{Level: "info", Format: "json", Output: "file"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Setup(tt.cfg, "chatadmin")
			assert.Error(t, err)
		})
	}
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithContext(context.Background(), WithRequestID(base, "req-1"))
	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=req-1")

	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestHertzSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewHertzSlogAdapter(base)

	adapter.Debug("hidden")
	assert.Empty(t, buf.String())

	adapter.SetLevel(hlog.LevelDebug)
	adapter.Debugf("shown %d", 1)
	assert.Contains(t, buf.String(), "shown 1")
	assert.Contains(t, buf.String(), "component=hertz")

	buf.Reset()
	ctx := WithContext(context.Background(), WithRequestID(base, "req-9"))
	adapter.CtxWarnf(ctx, "slow %s", "handler")
	assert.Contains(t, buf.String(), "request_id=req-9")
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	adapter.Fatal("boom")
	assert.Contains(t, buf.String(), "fatal=true")
}
