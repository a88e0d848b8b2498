package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
	"github.com/gperfar/chatbot-admin/internal/domain/mocks"
)

func newTestStore() (*Store, *mocks.MockGateway) {
	gw := &mocks.MockGateway{}
	gw.ListAgentsFunc = func(_ context.Context, activeOnly bool) ([]entity.Agent, error) {
		return []entity.Agent{{ID: 1, Name: "support"}, {ID: 2, Name: "sales"}}, nil
	}
	gw.ListConversationsFunc = func(context.Context) ([]entity.Conversation, error) {
		return []entity.Conversation{{ID: 10, TotalTokens: 5}}, nil
	}
	gw.ListDataSourcesFunc = func(context.Context) ([]entity.DataSource, error) {
		return []entity.DataSource{{ID: 3, Name: "sheet"}}, nil
	}
	return New(gw, slog.New(slog.NewTextHandler(io.Discard, nil))), gw
}

func TestStore_ReloadAndLookup(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.Agent(1)
	assert.True(t, domain.IsNotFound(err), "empty before reload")

	require.NoError(t, s.Reload(context.Background()))

	agent, err := s.Agent(2)
	require.NoError(t, err)
	assert.Equal(t, "sales", agent.Name)

	agent, err = s.AgentByName("support")
	require.NoError(t, err)
	assert.Equal(t, int64(1), agent.ID)

	conv, err := s.Conversation(10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), conv.TotalTokens)

	ds, err := s.DataSource(3)
	require.NoError(t, err)
	assert.Equal(t, "sheet", ds.Name)

	tests := []struct {
		name string
		err  error
	}{
		{"agent", func() error { _, err := s.Agent(99); return err }()},
		{"agent by name", func() error { _, err := s.AgentByName("nobody"); return err }()},
		{"conversation", func() error { _, err := s.Conversation(99); return err }()},
		{"data source", func() error { _, err := s.DataSource(99); return err }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, domain.IsNotFound(tt.err))
		})
	}
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	s, _ := newTestStore()
	require.NoError(t, s.ReloadAgents(context.Background()))

	agents := s.Agents()
	agents[0].Name = "mutated"

	agent, err := s.Agent(1)
	require.NoError(t, err)
	assert.Equal(t, "support", agent.Name)
}

func TestStore_FailedReloadKeepsCache(t *testing.T) {
	s, gw := newTestStore()
	require.NoError(t, s.Reload(context.Background()))

	gw.ListConversationsFunc = func(context.Context) ([]entity.Conversation, error) {
		return nil, &domain.NetworkError{Method: "GET", Path: "/conversations", StatusCode: 503}
	}
	err := s.Reload(context.Background())
	assert.True(t, domain.IsNetwork(err))
	assert.Len(t, s.Conversations(), 1)
	assert.Len(t, s.Agents(), 2)
}

func TestStore_RefreshAndInvalidate(t *testing.T) {
	s, gw := newTestStore()
	conversationsFetched := 0
	gw.ListConversationsFunc = func(context.Context) ([]entity.Conversation, error) {
		conversationsFetched++
		return nil, nil
	}

	s.Refresh(context.Background())
	assert.Len(t, s.Agents(), 2)
	assert.Len(t, s.DataSources(), 1)
	assert.Zero(t, conversationsFetched, "refresh only touches agents and data sources")

	s.Invalidate()
	assert.Empty(t, s.Agents())
	assert.Empty(t, s.DataSources())
}
