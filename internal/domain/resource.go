package domain

import (
	"context"

	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// AgentInput is the payload of POST /agents and PUT /agents/{id}
type AgentInput struct {
	Name         string  `json:"name" validate:"required,max=100"`
	DisplayName  string  `json:"display_name" validate:"required,max=200"`
	Description  string  `json:"description"`
	SystemPrompt string  `json:"system_prompt" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Temperature  float64 `json:"temperature" validate:"gte=0,lte=2"`
	MaxTokens    *int    `json:"max_tokens" validate:"omitempty,gt=0"`
	IsActive     bool    `json:"is_active"`
	Color        string  `json:"color" validate:"omitempty,hexcolor"`
}

// AgentInputFrom pre-fills an agent form from a stored agent
func AgentInputFrom(agent entity.Agent) AgentInput {
	return AgentInput{
		Name:         agent.Name,
		DisplayName:  agent.DisplayName,
		Description:  agent.Description,
		SystemPrompt: agent.SystemPrompt,
		Model:        agent.Model,
		Temperature:  agent.Temperature,
		MaxTokens:    agent.MaxTokens,
		IsActive:     agent.IsActive,
		Color:        agent.ColorOrDefault(),
	}
}

// DataSourceInput is the payload of POST /data-sources and PUT /data-sources/{id}
type DataSourceInput struct {
	Name        string                `json:"name"`
	Type        entity.DataSourceType `json:"type"`
	Description string                `json:"description"`
	Config      map[string]any        `json:"config"`
	IsActive    bool                  `json:"is_active"`
}

// AssignmentInput is the payload of POST /agents/{id}/data-sources
type AssignmentInput struct {
	DataSourceID int64   `json:"data_source_id"`
	IsActive     bool    `json:"is_active"`
	Priority     int     `json:"priority"`
	QueryTrigger *string `json:"query_trigger"`
}

// NewAssignmentInput builds an assignment payload; an empty trigger is sent as null
func NewAssignmentInput(dataSourceID int64, settings entity.AssignmentSettings) *AssignmentInput {
	in := &AssignmentInput{
		DataSourceID: dataSourceID,
		IsActive:     settings.IsActive,
		Priority:     settings.Priority,
	}
	if settings.QueryTrigger != "" {
		trigger := settings.QueryTrigger
		in.QueryTrigger = &trigger
	}
	return in
}

// ChatRequest is the payload of POST /chat/completion
type ChatRequest struct {
	AgentID int64  `json:"agent_id"`
	Prompt  string `json:"prompt"`
}

// ChatResponse is the body returned by POST /chat/completion
type ChatResponse struct {
	Response string `json:"response"`
}

// AgentGateway defines remote access to agents
type AgentGateway interface {
	ListAgents(ctx context.Context, activeOnly bool) ([]entity.Agent, error)
	CreateAgent(ctx context.Context, in *AgentInput) (*entity.Agent, error)
	UpdateAgent(ctx context.Context, id int64, in *AgentInput) (*entity.Agent, error)
	DeleteAgent(ctx context.Context, id int64) error
}

// ConversationGateway defines remote access to conversation logs
type ConversationGateway interface {
	ListConversations(ctx context.Context) ([]entity.Conversation, error)
	GetConversation(ctx context.Context, id int64) (*entity.Conversation, error)
	ListConversationDataSources(ctx context.Context, id int64) ([]entity.DataSourceUsage, error)
	DeleteConversation(ctx context.Context, id int64) error
}

// DataSourceGateway defines remote access to data sources
type DataSourceGateway interface {
	ListDataSources(ctx context.Context) ([]entity.DataSource, error)
	CreateDataSource(ctx context.Context, in *DataSourceInput) (*entity.DataSource, error)
	UpdateDataSource(ctx context.Context, id int64, in *DataSourceInput) (*entity.DataSource, error)
	DeleteDataSource(ctx context.Context, id int64) error
	TestDataSource(ctx context.Context, id int64) (*entity.DataSourceTestResult, error)
}

// AssignmentGateway defines remote access to agent/data-source assignments.
// There is no update primitive: an update is a delete followed by a create.
type AssignmentGateway interface {
	ListAssignments(ctx context.Context, agentID int64) ([]entity.Assignment, error)
	CreateAssignment(ctx context.Context, agentID int64, in *AssignmentInput) (*entity.Assignment, error)
	DeleteAssignment(ctx context.Context, agentID, dataSourceID int64) error
}

// ChatGateway sends test prompts to an agent
type ChatGateway interface {
	ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// HealthChecker probes the remote API
type HealthChecker interface {
	Health(ctx context.Context) (*entity.HealthStatus, error)
}

// Gateway is the full remote API surface
type Gateway interface {
	AgentGateway
	ConversationGateway
	DataSourceGateway
	AssignmentGateway
	ChatGateway
	HealthChecker
}
