package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/gperfar/chatbot-admin/internal/analytics"
	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
	"github.com/gperfar/chatbot-admin/internal/store"
)

type conversationUsecase struct {
	gateway domain.ConversationGateway
	store   *store.Store
	logger  *slog.Logger
}

// NewConversationUsecase creates a ConversationUsecase
func NewConversationUsecase(gateway domain.ConversationGateway, st *store.Store, logger *slog.Logger) ConversationUsecase {
	return &conversationUsecase{gateway: gateway, store: st, logger: logger}
}

// List reloads conversations and applies filter
func (u *conversationUsecase) List(ctx context.Context, filter analytics.Filter) ([]entity.Conversation, error) {
	if err := u.store.ReloadConversations(ctx); err != nil {
		return nil, err
	}
	return analytics.FilterConversations(u.store.Conversations(), filter), nil
}

// View fetches a cached conversation's messages and data-source usage together
func (u *conversationUsecase) View(ctx context.Context, id int64) (*entity.ConversationDetail, error) {
	if _, err := u.store.Conversation(id); err != nil {
		return nil, err
	}

	var (
		conv  *entity.Conversation
		usage []entity.DataSourceUsage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		conv, err = u.gateway.GetConversation(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		usage, err = u.gateway.ListConversationDataSources(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load conversation %d: %w", id, err)
	}

	return &entity.ConversationDetail{Conversation: *conv, Usage: usage}, nil
}

func (u *conversationUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.gateway.DeleteConversation(ctx, id); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	u.logger.Info("conversation deleted", "conversation_id", id)
	if err := u.store.ReloadConversations(ctx); err != nil {
		u.logger.Warn("failed to reload conversations", "error", err)
	}
	return nil
}
