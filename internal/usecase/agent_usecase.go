package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
	"github.com/gperfar/chatbot-admin/internal/store"
)

type agentUsecase struct {
	gateway domain.AgentGateway
	store   *store.Store
	logger  *slog.Logger
}

// NewAgentUsecase creates an AgentUsecase
func NewAgentUsecase(gateway domain.AgentGateway, st *store.Store, logger *slog.Logger) AgentUsecase {
	return &agentUsecase{gateway: gateway, store: st, logger: logger}
}

// List returns every agent (refreshing the store) or only the active ones
func (u *agentUsecase) List(ctx context.Context, activeOnly bool) ([]entity.Agent, error) {
	if activeOnly {
		agents, err := u.gateway.ListAgents(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("failed to list active agents: %w", err)
		}
		return agents, nil
	}
	if err := u.store.ReloadAgents(ctx); err != nil {
		return nil, err
	}
	return u.store.Agents(), nil
}

// Get looks up a cached agent
func (u *agentUsecase) Get(id int64) (entity.Agent, error) {
	return u.store.Agent(id)
}

func (u *agentUsecase) Create(ctx context.Context, in *domain.AgentInput) (*entity.Agent, error) {
	if err := prepareAgentInput(in); err != nil {
		return nil, err
	}

	agent, err := u.gateway.CreateAgent(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	u.logger.Info("agent created", "agent_id", agent.ID, "name", agent.Name)
	u.reload(ctx)
	return agent, nil
}

// Update replaces an agent that must be present in the store
func (u *agentUsecase) Update(ctx context.Context, id int64, in *domain.AgentInput) (*entity.Agent, error) {
	if _, err := u.store.Agent(id); err != nil {
		return nil, err
	}
	if err := prepareAgentInput(in); err != nil {
		return nil, err
	}

	agent, err := u.gateway.UpdateAgent(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("failed to update agent: %w", err)
	}

	u.logger.Info("agent updated", "agent_id", id, "name", agent.Name)
	u.reload(ctx)
	return agent, nil
}

// Delete removes an agent. Its conversations become agentless, so both
// agents and conversations are reloaded.
func (u *agentUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.gateway.DeleteAgent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}

	u.logger.Info("agent deleted", "agent_id", id)
	u.reload(ctx)
	if err := u.store.ReloadConversations(ctx); err != nil {
		u.logger.Warn("failed to reload conversations", "error", err)
	}
	return nil
}

func (u *agentUsecase) reload(ctx context.Context) {
	if err := u.store.ReloadAgents(ctx); err != nil {
		u.logger.Warn("failed to reload agents", "error", err)
	}
}

func prepareAgentInput(in *domain.AgentInput) error {
	if err := domain.ValidateAgentInput(in); err != nil {
		return err
	}
	if in.Color == "" {
		in.Color = entity.DefaultAgentColor
	}
	return nil
}
