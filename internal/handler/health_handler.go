package handler

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/pkg/logger"
)

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	upstream domain.HealthChecker
}

// NewHealthHandler creates a HealthHandler; readiness follows the upstream API
func NewHealthHandler(upstream domain.HealthChecker) *HealthHandler {
	return &HealthHandler{upstream: upstream}
}

// Ping is the basic liveness check
func (h *HealthHandler) Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{
		"status":  "ok",
		"message": "pong",
	})
}

// Readiness reports ready when the chatbot API answers GET /health
func (h *HealthHandler) Readiness(ctx context.Context, c *app.RequestContext) {
	status, err := h.upstream.Health(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("upstream health check failed", "error", err)
		c.JSON(consts.StatusServiceUnavailable, utils.H{
			"status":   "not_ready",
			"upstream": "unhealthy",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"status":          "ready",
		"upstream":        "healthy",
		"upstream_status": status.Status,
	})
}

// Liveness reports the process is alive
func (h *HealthHandler) Liveness(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{
		"status": "alive",
	})
}

func asNetworkError(err error) (*domain.NetworkError, bool) {
	var netErr *domain.NetworkError
	ok := errors.As(err, &netErr)
	return netErr, ok
}
