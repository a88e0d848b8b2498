package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/store"
)

type chatUsecase struct {
	gateway domain.ChatGateway
	store   *store.Store
	logger  *slog.Logger
}

// NewChatUsecase creates a ChatUsecase
func NewChatUsecase(gateway domain.ChatGateway, st *store.Store, logger *slog.Logger) ChatUsecase {
	return &chatUsecase{gateway: gateway, store: st, logger: logger}
}

// Send posts a test prompt to a cached agent and returns its reply.
// Every exchange is logged by the backend as a conversation, so
// conversations are reloaded afterwards.
func (u *chatUsecase) Send(ctx context.Context, agentID int64, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", domain.NewMissingFieldError("prompt")
	}
	if _, err := u.store.Agent(agentID); err != nil {
		return "", err
	}

	resp, err := u.gateway.ChatCompletion(ctx, &domain.ChatRequest{AgentID: agentID, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to get response from agent: %w", err)
	}

	if err := u.store.ReloadConversations(ctx); err != nil {
		u.logger.Warn("failed to reload conversations", "error", err)
	}
	return resp.Response, nil
}
