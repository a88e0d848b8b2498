package mocks

import (
	"context"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// MockDataSourceGateway is a mock implementation of domain.DataSourceGateway
type MockDataSourceGateway struct {
	ListDataSourcesFunc  func(ctx context.Context) ([]entity.DataSource, error)
	CreateDataSourceFunc func(ctx context.Context, in *domain.DataSourceInput) (*entity.DataSource, error)
	UpdateDataSourceFunc func(ctx context.Context, id int64, in *domain.DataSourceInput) (*entity.DataSource, error)
	DeleteDataSourceFunc func(ctx context.Context, id int64) error
	TestDataSourceFunc   func(ctx context.Context, id int64) (*entity.DataSourceTestResult, error)
}

// ListDataSources mocks the ListDataSources method
func (m *MockDataSourceGateway) ListDataSources(ctx context.Context) ([]entity.DataSource, error) {
	if m.ListDataSourcesFunc != nil {
		return m.ListDataSourcesFunc(ctx)
	}
	return []entity.DataSource{}, nil
}

// CreateDataSource mocks the CreateDataSource method
func (m *MockDataSourceGateway) CreateDataSource(ctx context.Context, in *domain.DataSourceInput) (*entity.DataSource, error) {
	if m.CreateDataSourceFunc != nil {
		return m.CreateDataSourceFunc(ctx, in)
	}
	return &entity.DataSource{Name: in.Name, Type: in.Type, Config: in.Config, IsActive: in.IsActive}, nil
}

// UpdateDataSource mocks the UpdateDataSource method
func (m *MockDataSourceGateway) UpdateDataSource(ctx context.Context, id int64, in *domain.DataSourceInput) (*entity.DataSource, error) {
	if m.UpdateDataSourceFunc != nil {
		return m.UpdateDataSourceFunc(ctx, id, in)
	}
	return &entity.DataSource{ID: id, Name: in.Name, Type: in.Type, Config: in.Config, IsActive: in.IsActive}, nil
}

// DeleteDataSource mocks the DeleteDataSource method
func (m *MockDataSourceGateway) DeleteDataSource(ctx context.Context, id int64) error {
	if m.DeleteDataSourceFunc != nil {
		return m.DeleteDataSourceFunc(ctx, id)
	}
	return nil
}

// TestDataSource mocks the TestDataSource method
func (m *MockDataSourceGateway) TestDataSource(ctx context.Context, id int64) (*entity.DataSourceTestResult, error) {
	if m.TestDataSourceFunc != nil {
		return m.TestDataSourceFunc(ctx, id)
	}
	return &entity.DataSourceTestResult{Success: true}, nil
}
