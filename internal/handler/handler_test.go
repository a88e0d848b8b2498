package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
	"github.com/gperfar/chatbot-admin/internal/domain/mocks"
	"github.com/gperfar/chatbot-admin/internal/store"
	"github.com/gperfar/chatbot-admin/internal/usecase"
)

func newTestEngine(gw *mocks.MockGateway) *server.Hertz {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dashboard := usecase.NewDashboardUsecase(gw, store.New(gw, log), log)

	health := NewHealthHandler(gw)
	dash := NewDashboardHandler(dashboard)

	h := server.Default(server.WithHostPorts("127.0.0.1:0"))
	h.GET("/ping", health.Ping)
	h.GET("/health/live", health.Liveness)
	h.GET("/health/ready", health.Readiness)
	h.GET("/api/dashboard/summary", dash.Summary)
	h.GET("/api/dashboard/analytics", dash.Analytics)
	return h
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(body, &out))
	return out
}

func TestHealthProbes(t *testing.T) {
	gw := &mocks.MockGateway{}
	h := newTestEngine(gw)

	w := ut.PerformRequest(h.Engine, consts.MethodGet, "/health/live", nil)
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())

	w = ut.PerformRequest(h.Engine, consts.MethodGet, "/ping", nil)
	assert.Equal(t, "pong", decode(t, w.Result().Body())["message"])

	w = ut.PerformRequest(h.Engine, consts.MethodGet, "/health/ready", nil)
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
	assert.Equal(t, "ready", decode(t, w.Result().Body())["status"])

	gw.HealthFunc = func(context.Context) (*entity.HealthStatus, error) {
		return nil, &domain.NetworkError{Method: "GET", Path: "/health", Err: errors.New("connection refused")}
	}
	w = ut.PerformRequest(h.Engine, consts.MethodGet, "/health/ready", nil)
	assert.Equal(t, consts.StatusServiceUnavailable, w.Result().StatusCode())
}

func TestDashboardSummary(t *testing.T) {
	gw := &mocks.MockGateway{}
	gw.ListAgentsFunc = func(context.Context, bool) ([]entity.Agent, error) {
		return []entity.Agent{{ID: 1, DisplayName: "Support"}}, nil
	}
	gw.ListConversationsFunc = func(context.Context) ([]entity.Conversation, error) {
		return []entity.Conversation{{ID: 1, TotalTokens: 10}, {ID: 2}, {ID: 3, TotalTokens: 25}}, nil
	}
	h := newTestEngine(gw)

	w := ut.PerformRequest(h.Engine, consts.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, consts.StatusOK, w.Result().StatusCode())

	body := decode(t, w.Result().Body())
	assert.Equal(t, "SUCCESS", body["code"])
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(35), data["total_tokens"])
	assert.Equal(t, float64(3), data["total_conversations"])
	assert.Equal(t, float64(1), data["total_agents"])
}

func TestDashboardUpstreamFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"upstream 500", &domain.NetworkError{Method: "GET", Path: "/agents", StatusCode: 500}, consts.StatusBadGateway, "UPSTREAM_ERROR"},
		{"unreachable", &domain.NetworkError{Method: "GET", Path: "/agents", Err: errors.New("refused")}, consts.StatusBadGateway, "UPSTREAM_ERROR"},
		{"decode failure", errors.New("bad json"), consts.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mocks.MockGateway{}
			gw.ListAgentsFunc = func(context.Context, bool) ([]entity.Agent, error) { return nil, tt.err }
			h := newTestEngine(gw)

			w := ut.PerformRequest(h.Engine, consts.MethodGet, "/api/dashboard/analytics", nil)
			assert.Equal(t, tt.wantStatus, w.Result().StatusCode())
			assert.Equal(t, tt.wantCode, decode(t, w.Result().Body())["code"])
		})
	}
}
