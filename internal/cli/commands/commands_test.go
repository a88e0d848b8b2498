package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gperfar/chatbot-admin/internal/bus"
	"github.com/gperfar/chatbot-admin/internal/cli/config"
	"github.com/gperfar/chatbot-admin/internal/cli/ui"
	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
	"github.com/gperfar/chatbot-admin/internal/domain/mocks"
)

func newTestApp(t *testing.T, gw *mocks.MockGateway) *bytes.Buffer {
	t.Helper()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	a, err := newApp(cfg, gw, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	prevCli, prevOut, prevConfirm, prevForce := cli, ui.Out, confirm, forceDelete
	t.Cleanup(func() {
		cli, ui.Out, confirm, forceDelete = prevCli, prevOut, prevConfirm, prevForce
	})

	out := &bytes.Buffer{}
	cli = a
	ui.Out = out
	return out
}

func agentGateway() *mocks.MockGateway {
	gw := &mocks.MockGateway{}
	gw.ListAgentsFunc = func(ctx context.Context, activeOnly bool) ([]entity.Agent, error) {
		return []entity.Agent{
			{ID: 3, Name: "support", DisplayName: "Support Bot", IsActive: true},
			{ID: 4, Name: "sales", DisplayName: "Sales Bot"},
		}, nil
	}
	return gw
}

func TestNewApp_RegistersEveryAction(t *testing.T) {
	newTestApp(t, &mocks.MockGateway{})

	for _, action := range bus.Actions {
		assert.True(t, cli.bus.Handles(action), "no handler for %s", action)
	}
}

func TestDeleteAgent(t *testing.T) {
	t.Run("cancelled at the prompt", func(t *testing.T) {
		gw := agentGateway()
		deleted := false
		gw.DeleteAgentFunc = func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		}
		out := newTestApp(t, gw)
		forceDelete = false
		var asked string
		confirm = func(message string) (bool, error) {
			asked = message
			return false, nil
		}

		err := cli.dispatch(context.Background(), bus.DeleteAgent, 3)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Contains(t, asked, `agent "Support Bot"`)
		assert.Contains(t, out.String(), "Deletion cancelled")
	})

	t.Run("forced", func(t *testing.T) {
		gw := agentGateway()
		var deletedID int64
		gw.DeleteAgentFunc = func(ctx context.Context, id int64) error {
			deletedID = id
			return nil
		}
		out := newTestApp(t, gw)
		forceDelete = true
		confirm = func(string) (bool, error) {
			t.Fatal("confirm must not be called with --force")
			return false, nil
		}

		err := cli.dispatch(context.Background(), bus.DeleteAgent, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deletedID)
		assert.Contains(t, out.String(), `Agent "Support Bot" deleted successfully`)
	})

	t.Run("unknown agent", func(t *testing.T) {
		newTestApp(t, agentGateway())
		forceDelete = true

		err := cli.dispatch(context.Background(), bus.DeleteAgent, 99)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestDeleteConversation_Forced(t *testing.T) {
	gw := &mocks.MockGateway{}
	var deletedID int64
	gw.DeleteConversationFunc = func(ctx context.Context, id int64) error {
		deletedID = id
		return nil
	}
	out := newTestApp(t, gw)
	forceDelete = true

	require.NoError(t, cli.dispatch(context.Background(), bus.DeleteConversation, 12))
	assert.Equal(t, int64(12), deletedID)
	assert.Contains(t, out.String(), "Conversation 12 deleted successfully")
}

func TestConversationFilter(t *testing.T) {
	newTestApp(t, agentGateway())
	t.Cleanup(func() { convAgent, convDate, convSearch = "", "", "" })

	t.Run("invalid date", func(t *testing.T) {
		convAgent, convDate, convSearch = "", "03/01/2024", ""
		_, err := conversationFilter(context.Background())
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("agent by id", func(t *testing.T) {
		convAgent, convDate, convSearch = "4", "2024-03-01", "refund"
		f, err := conversationFilter(context.Background())
		require.NoError(t, err)
		require.NotNil(t, f.AgentID)
		assert.Equal(t, int64(4), *f.AgentID)
		assert.Equal(t, "2024-03-01", f.Date)
		assert.Equal(t, "refund", f.Search)
	})

	t.Run("agent by name", func(t *testing.T) {
		convAgent, convDate, convSearch = "support", "", ""
		f, err := conversationFilter(context.Background())
		require.NoError(t, err)
		require.NotNil(t, f.AgentID)
		assert.Equal(t, int64(3), *f.AgentID)
	})

	t.Run("unknown agent name", func(t *testing.T) {
		convAgent, convDate, convSearch = "nobody", "", ""
		_, err := conversationFilter(context.Background())
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestPickDataSources_EmptyDoesNotPrompt(t *testing.T) {
	out := newTestApp(t, &mocks.MockGateway{})

	ids, err := pickDataSources("Assign:", nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Contains(t, out.String(), "Nothing to pick")
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, arg := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := parseID(arg)
		assert.True(t, domain.IsValidation(err), "arg %q", arg)
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"interrupt", terminal.InterruptErr, "Cancelled"},
		{"offline", &domain.NetworkError{Method: "GET", Path: "/agents", Err: errors.New("connection refused")}, "API is offline"},
		{"http failure", &domain.NetworkError{Method: "GET", Path: "/agents", StatusCode: 500}, "GET /agents: HTTP 500"},
		{"validation", domain.NewMissingFieldError("name"), "Invalid input: name: is required"},
		{"domain error", &domain.DomainError{Code: "X", Message: "friendly text", Err: errors.New("internal")}, "friendly text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newTestApp(t, &mocks.MockGateway{})
			report(tt.err)
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRootCommand_Tree(t *testing.T) {
	for _, path := range [][]string{
		{"health"}, {"dashboard"}, {"analytics"},
		{"agents", "list"}, {"agents", "delete"},
		{"conversations", "view"}, {"conv", "list"},
		{"datasources", "test"},
		{"assign"}, {"create"}, {"chat"}, {"theme"}, {"config"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, "path %v", path)
		assert.Equal(t, path[len(path)-1], cmd.Name(), "path %v", path)
	}
}
