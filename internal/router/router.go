package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/gperfar/chatbot-admin/internal/handler"
	"github.com/gperfar/chatbot-admin/internal/middleware"
)

// Setup registers the middleware, probes, dashboard API and static assets
func Setup(
	h *server.Hertz,
	healthHandler *handler.HealthHandler,
	dashboardHandler *handler.DashboardHandler,
	staticDir string,
) {
	h.Use(middleware.Recovery())
	h.Use(middleware.Logger())
	h.Use(middleware.CORS())

	h.GET("/ping", healthHandler.Ping)
	h.GET("/health/ready", healthHandler.Readiness)
	h.GET("/health/live", healthHandler.Liveness)

	api := h.Group("/api/dashboard")
	{
		api.GET("/summary", dashboardHandler.Summary)
		api.GET("/analytics", dashboardHandler.Analytics)
	}

	if staticDir != "" {
		h.StaticFS("/", &app.FS{
			Root:       staticDir,
			IndexNames: []string{"index.html"},
		})
	}
}
