package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gperfar/chatbot-admin/internal/analytics"
	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
	"github.com/gperfar/chatbot-admin/internal/store"
)

type dashboardUsecase struct {
	health domain.HealthChecker
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewDashboardUsecase creates a DashboardUsecase
func NewDashboardUsecase(health domain.HealthChecker, st *store.Store, logger *slog.Logger) DashboardUsecase {
	return &dashboardUsecase{health: health, store: st, logger: logger, now: time.Now}
}

func (u *dashboardUsecase) Health(ctx context.Context) (*entity.HealthStatus, error) {
	status, err := u.health.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("API is offline: %w", err)
	}
	return status, nil
}

// Summary reloads agents and conversations and computes the overview
func (u *dashboardUsecase) Summary(ctx context.Context) (*analytics.Summary, error) {
	if err := u.reload(ctx); err != nil {
		return nil, err
	}
	summary := analytics.Summarize(u.store.Agents(), u.store.Conversations(), u.now())
	return &summary, nil
}

// Analytics reloads agents and conversations and computes the chart series
func (u *dashboardUsecase) Analytics(ctx context.Context) (*Analytics, error) {
	if err := u.reload(ctx); err != nil {
		return nil, err
	}
	agents, conversations := u.store.Agents(), u.store.Conversations()
	return &Analytics{
		TokensByDate:          analytics.TokensByDate(conversations),
		ConversationsPerAgent: analytics.ConversationsPerAgent(agents, conversations),
	}, nil
}

func (u *dashboardUsecase) reload(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return u.store.ReloadAgents(gctx) })
	g.Go(func() error { return u.store.ReloadConversations(gctx) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load dashboard data: %w", err)
	}
	return nil
}
