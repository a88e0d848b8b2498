package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"

	"github.com/gperfar/chatbot-admin/pkg/logger"
)

// RequestIDKey is the header carrying the request id
const RequestIDKey = "X-Request-ID"

// quiet paths are probes and static assets; they are logged at debug
func quiet(path string) bool {
	if strings.HasPrefix(path, "/health/") || path == "/ping" {
		return true
	}
	return !strings.HasPrefix(path, "/api/")
}

// Logger tags each request with an id, stores a request-scoped logger in
// the context and logs the outcome
func Logger() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		path := string(c.Path())

		requestID := string(c.Request.Header.Peek(RequestIDKey))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Response.Header.Set(RequestIDKey, requestID)

		reqLogger := logger.WithRequestID(slog.Default(), requestID).With(
			"method", string(c.Method()),
			"path", path,
			"client_ip", c.ClientIP(),
		)
		ctx = logger.WithContext(ctx, reqLogger)

		c.Next(ctx)

		latency := time.Since(start)
		statusCode := c.Response.StatusCode()
		reqLogger = reqLogger.With(
			"status", statusCode,
			"latency_ms", latency.Milliseconds(),
		)

		switch {
		case statusCode >= 500:
			reqLogger.Error("request completed with server error")
		case statusCode >= 400:
			reqLogger.Warn("request completed with client error")
		case quiet(path):
			reqLogger.Debug("request completed")
		default:
			reqLogger.Info("request completed")
		}
	}
}

// GetRequestID returns the id assigned by Logger
func GetRequestID(c *app.RequestContext) string {
	return string(c.Response.Header.Peek(RequestIDKey))
}
