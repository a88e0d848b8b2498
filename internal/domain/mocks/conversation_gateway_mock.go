package mocks

import (
	"context"

	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// MockConversationGateway is a mock implementation of domain.ConversationGateway
type MockConversationGateway struct {
	ListConversationsFunc           func(ctx context.Context) ([]entity.Conversation, error)
	GetConversationFunc             func(ctx context.Context, id int64) (*entity.Conversation, error)
	ListConversationDataSourcesFunc func(ctx context.Context, id int64) ([]entity.DataSourceUsage, error)
	DeleteConversationFunc          func(ctx context.Context, id int64) error
}

// ListConversations mocks the ListConversations method
func (m *MockConversationGateway) ListConversations(ctx context.Context) ([]entity.Conversation, error) {
	if m.ListConversationsFunc != nil {
		return m.ListConversationsFunc(ctx)
	}
	return []entity.Conversation{}, nil
}

// GetConversation mocks the GetConversation method
func (m *MockConversationGateway) GetConversation(ctx context.Context, id int64) (*entity.Conversation, error) {
	if m.GetConversationFunc != nil {
		return m.GetConversationFunc(ctx, id)
	}
	return &entity.Conversation{ID: id}, nil
}

// ListConversationDataSources mocks the ListConversationDataSources method
func (m *MockConversationGateway) ListConversationDataSources(ctx context.Context, id int64) ([]entity.DataSourceUsage, error) {
	if m.ListConversationDataSourcesFunc != nil {
		return m.ListConversationDataSourcesFunc(ctx, id)
	}
	return []entity.DataSourceUsage{}, nil
}

// DeleteConversation mocks the DeleteConversation method
func (m *MockConversationGateway) DeleteConversation(ctx context.Context, id int64) error {
	if m.DeleteConversationFunc != nil {
		return m.DeleteConversationFunc(ctx, id)
	}
	return nil
}
