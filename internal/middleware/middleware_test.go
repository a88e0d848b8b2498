package middleware

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
)

func newEngine() *server.Hertz {
	h := server.Default(server.WithHostPorts("127.0.0.1:0"))
	h.Use(Recovery(), Logger(), CORS())
	h.GET("/api/ok", func(ctx context.Context, c *app.RequestContext) {
		c.String(consts.StatusOK, "ok")
	})
	h.GET("/api/panic", func(ctx context.Context, c *app.RequestContext) {
		panic("boom")
	})
	return h
}

func TestCORSHeaders(t *testing.T) {
	h := newEngine()

	w := ut.PerformRequest(h.Engine, consts.MethodGet, "/api/ok", nil)
	resp := w.Result()
	assert.Equal(t, consts.StatusOK, resp.StatusCode())
	assert.Equal(t, "*", string(resp.Header.Peek("Access-Control-Allow-Origin")))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", string(resp.Header.Peek("Access-Control-Allow-Methods")))
	assert.Equal(t, "Content-Type", string(resp.Header.Peek("Access-Control-Allow-Headers")))
	assert.NotEmpty(t, string(resp.Header.Peek(RequestIDKey)))
}

func TestPreflight(t *testing.T) {
	h := newEngine()

	w := ut.PerformRequest(h.Engine, consts.MethodOptions, "/api/ok", nil)
	assert.Equal(t, consts.StatusNoContent, w.Result().StatusCode())
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newEngine()

	w := ut.PerformRequest(h.Engine, consts.MethodGet, "/api/ok", nil,
		ut.Header{Key: RequestIDKey, Value: "req-123"})
	assert.Equal(t, "req-123", string(w.Result().Header.Peek(RequestIDKey)))
}

func TestRecovery(t *testing.T) {
	h := newEngine()

	w := ut.PerformRequest(h.Engine, consts.MethodGet, "/api/panic", nil)
	assert.Equal(t, consts.StatusInternalServerError, w.Result().StatusCode())
	assert.Contains(t, string(w.Result().Body()), "INTERNAL_ERROR")
}

func TestQuietPaths(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/health/live", true},
		{"/ping", true},
		{"/index.html", true},
		{"/api/dashboard/summary", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quiet(tt.path), tt.path)
	}
}
