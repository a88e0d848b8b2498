package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gperfar/chatbot-admin/internal/analytics"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
	"github.com/gperfar/chatbot-admin/internal/domain/mocks"
	"github.com/gperfar/chatbot-admin/internal/reconciler"
)

func ptr[T any](v T) *T { return &v }

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestPrintLines(t *testing.T) {
	var buf bytes.Buffer
	prevOut, prevNoColor := Out, color.NoColor
	Out, color.NoColor = &buf, true
	t.Cleanup(func() { Out, color.NoColor = prevOut, prevNoColor })

	PrintError("API is offline: %s", "connection refused")
	PrintSuccess("deleted agent %d", 3)

	assert.Equal(t, "✗ API is offline: connection refused\n✓ deleted agent 3\n", buf.String())
}

func TestRenderAgents(t *testing.T) {
	assert.Contains(t, RenderAgents(nil, nil), "No agents found")

	agents := []entity.Agent{
		{ID: 1, Name: "support", DisplayName: "Support Bot", Model: "gpt-4", IsActive: true},
		{ID: 2, Name: "sales", DisplayName: "Sales Bot", Model: "gpt-3.5"},
	}
	counts := map[analytics.AgentKey]int{"1": 7}
	out := RenderAgents(agents, counts)

	assert.Contains(t, out, "Support Bot")
	assert.Contains(t, out, "Inactive")
	assert.Contains(t, out, "7")
}

func TestRenderConversations(t *testing.T) {
	convs := []entity.Conversation{
		{ID: 4, TotalTokens: 12345, CreatedAt: entity.NewTimestamp(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))},
	}
	out := RenderConversations(convs)

	assert.Contains(t, out, "Conversation 4")
	assert.Contains(t, out, "No Agent")
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "2024-03-01")
}

func TestRenderConversationDetail(t *testing.T) {
	detail := &entity.ConversationDetail{
		Conversation: entity.Conversation{
			ID:        9,
			Title:     ptr("Refund request"),
			AgentName: ptr("Support Bot"),
			Messages:  []entity.Message{{Role: "user", Content: "where is my refund"}},
		},
		Usage: []entity.DataSourceUsage{
			{DataSourceName: "orders", Success: false, ErrorMessage: ptr("timeout")},
		},
	}
	out := RenderConversationDetail(detail)

	assert.Contains(t, out, "Refund request")
	assert.Contains(t, out, "where is my refund")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "timeout")
}

func TestRenderDataSources(t *testing.T) {
	out := RenderDataSources([]entity.DataSource{{ID: 1, Name: "crm", Type: entity.DataSourceRESTAPI}})
	assert.Contains(t, out, "REST API")
	assert.Contains(t, out, "crm")

	res := RenderTestResult(entity.DataSource{Name: "crm"}, &entity.DataSourceTestResult{Success: true, DataCount: 12})
	assert.Contains(t, res, "12 records")
}

func TestRenderAssignments(t *testing.T) {
	gw := &mocks.MockGateway{}
	gw.ListDataSourcesFunc = func(context.Context) ([]entity.DataSource, error) {
		return []entity.DataSource{{ID: 1, Name: "orders"}, {ID: 2, Name: "faq"}, {ID: 3, Name: "crm"}}, nil
	}
	gw.ListAssignmentsFunc = func(context.Context, int64) ([]entity.Assignment, error) {
		return []entity.Assignment{{AgentID: 5, DataSourceID: 1, Priority: 2, IsActive: true}}, nil
	}
	r := reconciler.New(gw, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, r.Load(context.Background(), 5))
	r.ToggleAssign(2)

	out := RenderAssignments(entity.Agent{ID: 5, DisplayName: "Support"}, r)

	assert.Contains(t, out, "orders")
	assert.Contains(t, out, "Priority: 2")
	assert.Contains(t, out, "faq #2 (new)")
	assert.Contains(t, out, "crm")
}

func TestRenderCommitResult(t *testing.T) {
	res := &reconciler.CommitResult{
		Created: []int64{4},
		Removed: []int64{1},
		Failures: []reconciler.Failure{
			{Op: reconciler.OpUpdate, DataSourceID: 2, Err: errors.New("HTTP 500")},
		},
		Lost: []int64{2},
	}
	out := RenderCommitResult(res)

	assert.Contains(t, out, "1 created")
	assert.Contains(t, out, "HTTP 500")
	assert.Contains(t, out, "data source 2 was unassigned")
}

func TestRenderSummaryAndAnalytics(t *testing.T) {
	s := &analytics.Summary{
		TotalAgents:        1,
		TotalConversations: 2,
		TotalTokens:        35,
		Agents:             []analytics.AgentStats{{DisplayName: "Support", Conversations: 2, Tokens: 35}},
	}
	out := RenderSummary(s)
	assert.Contains(t, out, "Agent Performance")
	assert.Contains(t, out, "2 conversations • 35 tokens")

	chart := RenderAnalytics(
		[]analytics.DateTokens{{Date: "2024-03-01", Tokens: 10}, {Date: "2024-03-02", Tokens: 25}},
		[]analytics.AgentCount{{DisplayName: "Support", Conversations: 2}},
	)
	assert.Contains(t, chart, "2024-03-02")
	assert.Contains(t, chart, "█")
}
