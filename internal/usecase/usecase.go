// Package usecase implements the operator workflows on top of the API
// gateway and the entity store.
package usecase

import (
	"context"

	"github.com/gperfar/chatbot-admin/internal/analytics"
	"github.com/gperfar/chatbot-admin/internal/configform"
	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// AgentUsecase manages agents
type AgentUsecase interface {
	List(ctx context.Context, activeOnly bool) ([]entity.Agent, error)
	Get(id int64) (entity.Agent, error)
	Create(ctx context.Context, in *domain.AgentInput) (*entity.Agent, error)
	Update(ctx context.Context, id int64, in *domain.AgentInput) (*entity.Agent, error)
	Delete(ctx context.Context, id int64) error
}

// ConversationUsecase browses and deletes conversation logs
type ConversationUsecase interface {
	List(ctx context.Context, filter analytics.Filter) ([]entity.Conversation, error)
	View(ctx context.Context, id int64) (*entity.ConversationDetail, error)
	Delete(ctx context.Context, id int64) error
}

// DataSourceUsecase manages data sources through config forms
type DataSourceUsecase interface {
	List(ctx context.Context) ([]entity.DataSource, error)
	Get(id int64) (entity.DataSource, error)
	NewForm() *configform.Form
	EditForm(id int64) (*configform.Form, error)
	Save(ctx context.Context, form *configform.Form) (*entity.DataSource, error)
	Delete(ctx context.Context, id int64) error
	Test(ctx context.Context, id int64) (*entity.DataSourceTestResult, error)
}

// ChatUsecase sends test prompts to agents
type ChatUsecase interface {
	Send(ctx context.Context, agentID int64, prompt string) (string, error)
}

// DashboardUsecase serves the overview and analytics views
type DashboardUsecase interface {
	Health(ctx context.Context) (*entity.HealthStatus, error)
	Summary(ctx context.Context) (*analytics.Summary, error)
	Analytics(ctx context.Context) (*Analytics, error)
}

// Analytics holds the chart series of the analytics view
type Analytics struct {
	TokensByDate          []analytics.DateTokens `json:"tokens_by_date"`
	ConversationsPerAgent []analytics.AgentCount `json:"conversations_per_agent"`
}
