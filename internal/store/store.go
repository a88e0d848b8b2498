// Package store caches the last fetched agents, conversations and data
// sources. Every reload replaces a cache wholesale.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// Source fetches the collections the store caches
type Source interface {
	ListAgents(ctx context.Context, activeOnly bool) ([]entity.Agent, error)
	ListConversations(ctx context.Context) ([]entity.Conversation, error)
	ListDataSources(ctx context.Context) ([]entity.DataSource, error)
}

// Store is safe for concurrent use
type Store struct {
	source Source
	logger *slog.Logger

	mu            sync.RWMutex
	agents        []entity.Agent
	conversations []entity.Conversation
	dataSources   []entity.DataSource
}

// New creates an empty store
func New(source Source, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{source: source, logger: logger}
}

// ReloadAgents replaces the agents cache
func (s *Store) ReloadAgents(ctx context.Context) error {
	agents, err := s.source.ListAgents(ctx, false)
	if err != nil {
		return fmt.Errorf("reload agents: %w", err)
	}
	s.mu.Lock()
	s.agents = agents
	s.mu.Unlock()
	return nil
}

// ReloadConversations replaces the conversations cache
func (s *Store) ReloadConversations(ctx context.Context) error {
	conversations, err := s.source.ListConversations(ctx)
	if err != nil {
		return fmt.Errorf("reload conversations: %w", err)
	}
	s.mu.Lock()
	s.conversations = conversations
	s.mu.Unlock()
	return nil
}

// ReloadDataSources replaces the data sources cache
func (s *Store) ReloadDataSources(ctx context.Context) error {
	dataSources, err := s.source.ListDataSources(ctx)
	if err != nil {
		return fmt.Errorf("reload data sources: %w", err)
	}
	s.mu.Lock()
	s.dataSources = dataSources
	s.mu.Unlock()
	return nil
}

// Reload reloads every cache. A failing cache keeps its previous contents.
func (s *Store) Reload(ctx context.Context) error {
	return errors.Join(
		s.ReloadAgents(ctx),
		s.ReloadConversations(ctx),
		s.ReloadDataSources(ctx),
	)
}

// Refresh reloads agents and data sources, logging failures.
// It is the refresh signal fired after an assignment commit.
func (s *Store) Refresh(ctx context.Context) {
	if err := s.ReloadAgents(ctx); err != nil {
		s.logger.Warn("refresh failed", "error", err)
	}
	if err := s.ReloadDataSources(ctx); err != nil {
		s.logger.Warn("refresh failed", "error", err)
	}
}

// Invalidate drops every cache
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents = nil
	s.conversations = nil
	s.dataSources = nil
}

// Agents returns a copy of the cached agents
func (s *Store) Agents() []entity.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.agents)
}

// Conversations returns a copy of the cached conversations
func (s *Store) Conversations() []entity.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.conversations)
}

// DataSources returns a copy of the cached data sources
func (s *Store) DataSources() []entity.DataSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.dataSources)
}

// Agent looks up a cached agent by id
func (s *Store) Agent(id int64) (entity.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.agents {
		if a.ID == id {
			return a, nil
		}
	}
	return entity.Agent{}, domain.NewNotFoundError("agent", id)
}

// AgentByName looks up a cached agent by its unique name
func (s *Store) AgentByName(name string) (entity.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.agents {
		if a.Name == name {
			return a, nil
		}
	}
	return entity.Agent{}, domain.NewNotFoundError("agent", name)
}

// Conversation looks up a cached conversation by id
func (s *Store) Conversation(id int64) (entity.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.conversations {
		if c.ID == id {
			return c, nil
		}
	}
	return entity.Conversation{}, domain.NewNotFoundError("conversation", id)
}

// DataSource looks up a cached data source by id
func (s *Store) DataSource(id int64) (entity.DataSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ds := range s.dataSources {
		if ds.ID == id {
			return ds, nil
		}
	}
	return entity.DataSource{}, domain.NewNotFoundError("data source", id)
}
