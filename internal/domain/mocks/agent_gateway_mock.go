package mocks

import (
	"context"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// MockAgentGateway is a mock implementation of domain.AgentGateway
type MockAgentGateway struct {
	ListAgentsFunc  func(ctx context.Context, activeOnly bool) ([]entity.Agent, error)
	CreateAgentFunc func(ctx context.Context, in *domain.AgentInput) (*entity.Agent, error)
	UpdateAgentFunc func(ctx context.Context, id int64, in *domain.AgentInput) (*entity.Agent, error)
	DeleteAgentFunc func(ctx context.Context, id int64) error
}

// ListAgents mocks the ListAgents method
func (m *MockAgentGateway) ListAgents(ctx context.Context, activeOnly bool) ([]entity.Agent, error) {
	if m.ListAgentsFunc != nil {
		return m.ListAgentsFunc(ctx, activeOnly)
	}
	return []entity.Agent{}, nil
}

// CreateAgent mocks the CreateAgent method
func (m *MockAgentGateway) CreateAgent(ctx context.Context, in *domain.AgentInput) (*entity.Agent, error) {
	if m.CreateAgentFunc != nil {
		return m.CreateAgentFunc(ctx, in)
	}
	return &entity.Agent{Name: in.Name, DisplayName: in.DisplayName}, nil
}

// UpdateAgent mocks the UpdateAgent method
func (m *MockAgentGateway) UpdateAgent(ctx context.Context, id int64, in *domain.AgentInput) (*entity.Agent, error) {
	if m.UpdateAgentFunc != nil {
		return m.UpdateAgentFunc(ctx, id, in)
	}
	return &entity.Agent{ID: id, Name: in.Name, DisplayName: in.DisplayName}, nil
}

// DeleteAgent mocks the DeleteAgent method
func (m *MockAgentGateway) DeleteAgent(ctx context.Context, id int64) error {
	if m.DeleteAgentFunc != nil {
		return m.DeleteAgentFunc(ctx, id)
	}
	return nil
}
