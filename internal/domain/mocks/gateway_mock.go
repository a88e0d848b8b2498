package mocks

import (
	"context"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// MockChatGateway is a mock implementation of domain.ChatGateway and domain.HealthChecker
type MockChatGateway struct {
	ChatCompletionFunc func(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error)
	HealthFunc         func(ctx context.Context) (*entity.HealthStatus, error)
}

// ChatCompletion mocks the ChatCompletion method
func (m *MockChatGateway) ChatCompletion(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	if m.ChatCompletionFunc != nil {
		return m.ChatCompletionFunc(ctx, req)
	}
	return &domain.ChatResponse{Response: "ok"}, nil
}

// Health mocks the Health method
func (m *MockChatGateway) Health(ctx context.Context) (*entity.HealthStatus, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return &entity.HealthStatus{Status: "healthy"}, nil
}

// MockGateway is a mock implementation of the full domain.Gateway
type MockGateway struct {
	MockAgentGateway
	MockConversationGateway
	MockDataSourceGateway
	MockAssignmentGateway
	MockChatGateway
}

var _ domain.Gateway = (*MockGateway)(nil)
