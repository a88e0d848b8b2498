package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gperfar/chatbot-admin/internal/configform"
	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
	"github.com/gperfar/chatbot-admin/internal/store"
)

type dataSourceUsecase struct {
	gateway domain.DataSourceGateway
	store   *store.Store
	logger  *slog.Logger
}

// NewDataSourceUsecase creates a DataSourceUsecase
func NewDataSourceUsecase(gateway domain.DataSourceGateway, st *store.Store, logger *slog.Logger) DataSourceUsecase {
	return &dataSourceUsecase{gateway: gateway, store: st, logger: logger}
}

func (u *dataSourceUsecase) List(ctx context.Context) ([]entity.DataSource, error) {
	if err := u.store.ReloadDataSources(ctx); err != nil {
		return nil, err
	}
	return u.store.DataSources(), nil
}

func (u *dataSourceUsecase) Get(id int64) (entity.DataSource, error) {
	return u.store.DataSource(id)
}

// NewForm opens a create form
func (u *dataSourceUsecase) NewForm() *configform.Form {
	return configform.New()
}

// EditForm opens an edit form for a cached data source
func (u *dataSourceUsecase) EditForm(id int64) (*configform.Form, error) {
	ds, err := u.store.DataSource(id)
	if err != nil {
		return nil, err
	}
	return configform.Populate(&ds)
}

// Save submits a validated form, creating or updating depending on how the
// form was opened
func (u *dataSourceUsecase) Save(ctx context.Context, form *configform.Form) (*entity.DataSource, error) {
	submit := u.gateway.CreateDataSource
	action := "created"
	if record := form.Record(); record != nil {
		id := record.ID
		submit = func(ctx context.Context, in *domain.DataSourceInput) (*entity.DataSource, error) {
			return u.gateway.UpdateDataSource(ctx, id, in)
		}
		action = "updated"
	}

	ds, err := form.Submit(ctx, submit)
	if err != nil {
		if domain.IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save data source: %w", err)
	}

	u.logger.Info("data source "+action, "data_source_id", ds.ID, "name", ds.Name, "type", ds.Type)
	if err := u.store.ReloadDataSources(ctx); err != nil {
		u.logger.Warn("failed to reload data sources", "error", err)
	}
	return ds, nil
}

func (u *dataSourceUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.gateway.DeleteDataSource(ctx, id); err != nil {
		return fmt.Errorf("failed to delete data source: %w", err)
	}

	u.logger.Info("data source deleted", "data_source_id", id)
	if err := u.store.ReloadDataSources(ctx); err != nil {
		u.logger.Warn("failed to reload data sources", "error", err)
	}
	return nil
}

// Test asks the backend to fetch a sample from the data source
func (u *dataSourceUsecase) Test(ctx context.Context, id int64) (*entity.DataSourceTestResult, error) {
	result, err := u.gateway.TestDataSource(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to test data source: %w", err)
	}
	if !result.Success {
		u.logger.Warn("data source test failed", "data_source_id", id, "error", result.Error)
	}
	return result, nil
}
