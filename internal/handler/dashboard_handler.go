package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/gperfar/chatbot-admin/internal/usecase"
	"github.com/gperfar/chatbot-admin/pkg/logger"
)

// DashboardHandler serves the aggregates of the overview and analytics views
type DashboardHandler struct {
	dashboard usecase.DashboardUsecase
}

// NewDashboardHandler creates a DashboardHandler
func NewDashboardHandler(dashboard usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary returns totals, recent conversations and per-agent performance
func (h *DashboardHandler) Summary(ctx context.Context, c *app.RequestContext) {
	summary, err := h.dashboard.Summary(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to compute dashboard summary", "error", err)
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, summary)
}

// Analytics returns the token and conversation chart series
func (h *DashboardHandler) Analytics(ctx context.Context, c *app.RequestContext) {
	series, err := h.dashboard.Analytics(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to compute analytics", "error", err)
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, series)
}
