package mocks

import (
	"context"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// MockAssignmentGateway is a mock implementation of domain.AssignmentGateway
type MockAssignmentGateway struct {
	ListAssignmentsFunc  func(ctx context.Context, agentID int64) ([]entity.Assignment, error)
	CreateAssignmentFunc func(ctx context.Context, agentID int64, in *domain.AssignmentInput) (*entity.Assignment, error)
	DeleteAssignmentFunc func(ctx context.Context, agentID, dataSourceID int64) error
}

// ListAssignments mocks the ListAssignments method
func (m *MockAssignmentGateway) ListAssignments(ctx context.Context, agentID int64) ([]entity.Assignment, error) {
	if m.ListAssignmentsFunc != nil {
		return m.ListAssignmentsFunc(ctx, agentID)
	}
	return []entity.Assignment{}, nil
}

// CreateAssignment mocks the CreateAssignment method
func (m *MockAssignmentGateway) CreateAssignment(ctx context.Context, agentID int64, in *domain.AssignmentInput) (*entity.Assignment, error) {
	if m.CreateAssignmentFunc != nil {
		return m.CreateAssignmentFunc(ctx, agentID, in)
	}
	return &entity.Assignment{
		AgentID:      agentID,
		DataSourceID: in.DataSourceID,
		IsActive:     in.IsActive,
		Priority:     in.Priority,
		QueryTrigger: in.QueryTrigger,
	}, nil
}

// DeleteAssignment mocks the DeleteAssignment method
func (m *MockAssignmentGateway) DeleteAssignment(ctx context.Context, agentID, dataSourceID int64) error {
	if m.DeleteAssignmentFunc != nil {
		return m.DeleteAssignmentFunc(ctx, agentID, dataSourceID)
	}
	return nil
}
