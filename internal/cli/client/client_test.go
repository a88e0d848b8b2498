package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

type recorded struct {
	method    string
	path      string
	query     string
	body      map[string]any
	requestID string
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*APIClient, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, requestID: r.Header.Get("X-Request-ID")}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			assert.NoError(t, sonic.Unmarshal(data, &rec.body))
		}
		calls = append(calls, rec)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewAPIClient(srv.URL+"/api/", 2*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c, &calls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body, _ := sonic.Marshal(v)
	_, _ = w.Write(body)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"http://localhost:8000/api", "http://localhost:8000/api", false},
		{"http://localhost:8000/api/", "http://localhost:8000/api", false},
		{"localhost:8000/api", "http://localhost:8000/api", false},
		{"https://bots.example.com", "https://bots.example.com", false},
		{"ftp://host", "", true},
		{"http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListAgents(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "name": "support", "display_name": "Support", "temperature": 0.7, "max_tokens": nil,
				"is_active": true, "created_at": "2024-03-01T10:00:00.123456"},
		})
	})

	agents, err := c.ListAgents(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "support", agents[0].Name)
	assert.Nil(t, agents[0].MaxTokens)
	assert.Equal(t, 2024, agents[0].CreatedAt.Year())

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodGet, call.method)
	assert.Equal(t, "/api/agents", call.path)
	assert.Equal(t, "active_only=false", call.query)
	assert.NotEmpty(t, call.requestID)
}

func TestCreateAssignment_NullTrigger(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"agent_id": 5, "data_source_id": 4, "is_active": true, "priority": 0})
	})

	in := domain.NewAssignmentInput(4, entity.AssignmentSettings{IsActive: true})
	_, err := c.CreateAssignment(context.Background(), 5, in)
	require.NoError(t, err)

	call := (*calls)[0]
	assert.Equal(t, "/api/agents/5/data-sources", call.path)
	assert.Equal(t, map[string]any{
		"data_source_id": float64(4),
		"is_active":      true,
		"priority":       float64(0),
		"query_trigger":  nil,
	}, call.body)
}

func TestDeleteAssignment(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteAssignment(context.Background(), 5, 2))
	assert.Equal(t, http.MethodDelete, (*calls)[0].method)
	assert.Equal(t, "/api/agents/5/data-sources/2", (*calls)[0].path)
}

func TestErrorStatusBecomesNetworkError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"detail string", http.StatusNotFound, `{"detail":"Agent not found"}`, "Agent not found"},
		{"raw body", http.StatusInternalServerError, "boom", "boom"},
		{"detail list", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","name"]}]}`, `[{"loc":["body","name"]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetConversation(context.Background(), 3)
			require.Error(t, err)
			assert.True(t, domain.IsNetwork(err))
			assert.False(t, IsOffline(err))

			netErr, ok := err.(*domain.NetworkError)
			require.True(t, ok)
			assert.Equal(t, tt.status, netErr.StatusCode)
			assert.Equal(t, "/conversations/3", netErr.Path)
			assert.Equal(t, tt.wantDetail, netErr.Body)
		})
	}
}

func TestUnreachableIsOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewAPIClient(url+"/api", time.Second, nil)
	require.NoError(t, err)

	_, err = c.Health(context.Background())
	assert.True(t, domain.IsNetwork(err))
	assert.True(t, IsOffline(err))
}

func TestChatCompletionAndTest(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chat/completion":
			writeJSON(w, http.StatusOK, map[string]any{"response": "hello"})
		case "/api/data-sources/4/test":
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "data_count": 0, "error": "bad key"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	resp, err := c.ChatCompletion(context.Background(), &domain.ChatRequest{AgentID: 2, Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Response)
	assert.Equal(t, map[string]any{"agent_id": float64(2), "prompt": "hi"}, (*calls)[0].body)

	result, err := c.TestDataSource(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "bad key", result.Error)
}
