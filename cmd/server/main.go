package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network/netpoll"
	"github.com/spf13/cobra"

	"github.com/gperfar/chatbot-admin/internal/cli/client"
	"github.com/gperfar/chatbot-admin/internal/config"
	"github.com/gperfar/chatbot-admin/internal/handler"
	"github.com/gperfar/chatbot-admin/internal/router"
	"github.com/gperfar/chatbot-admin/internal/store"
	"github.com/gperfar/chatbot-admin/internal/usecase"
	"github.com/gperfar/chatbot-admin/pkg/logger"
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "chatadmin-server",
	Short: "Dashboard host for the chatbot admin",
	Long: `chatadmin-server serves the static admin dashboard with permissive CORS
headers, liveness/readiness probes and a JSON dashboard summary computed
from the chatbot API.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "path to config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := logger.Setup(cfg.Log, "chatadmin-server"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	slog.Info("dashboard host starting",
		"version", version,
		"config", cfgFile,
	)

	hertzLogger := logger.NewHertzSlogAdapter(slog.Default())
	hlog.SetLogger(hertzLogger)
	if cfg.Server.Mode == "debug" {
		hlog.SetLevel(hlog.LevelDebug)
	} else {
		hlog.SetLevel(hlog.LevelInfo)
	}

	if _, err := os.Stat(cfg.Dashboard.StaticDir); err != nil {
		slog.Warn("static directory is not readable, only the API will be served",
			"static_dir", cfg.Dashboard.StaticDir,
			"error", err,
		)
	}

	apiClient, err := client.NewAPIClient(cfg.Dashboard.APIURL, cfg.Dashboard.Timeout, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Dashboard.Timeout)
	if _, err := apiClient.Health(ctx); err != nil {
		slog.Warn("chatbot API health check failed, readiness will report not_ready", "error", err)
	}
	cancel()

	st := store.New(apiClient, slog.Default())
	dashboardUsecase := usecase.NewDashboardUsecase(apiClient, st, slog.Default())

	healthHandler := handler.NewHealthHandler(apiClient)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)

	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.Server.ReadTimeout),
		server.WithWriteTimeout(cfg.Server.WriteTimeout),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize*1024*1024),
		server.WithTransport(netpoll.NewTransporter),
	)

	router.Setup(h, healthHandler, dashboardHandler, cfg.Dashboard.StaticDir)

	slog.Info("server started",
		"address", cfg.GetServerAddr(),
		"mode", cfg.Server.Mode,
		"api_url", apiClient.BaseURL(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server run failed: %w", err)
		}
		return nil
	case <-quit:
	}

	slog.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := h.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
