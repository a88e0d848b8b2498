package commands

import (
	"github.com/spf13/cobra"

	"github.com/gperfar/chatbot-admin/internal/cli/ui"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the chatbot API is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := cli.dashboard.Health(cmd.Context())
		if err != nil {
			return err
		}
		msg := "API is online"
		if status.Status != "" {
			msg += " (" + status.Status + ")"
		}
		ui.PrintSuccess("%s", msg)
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show totals, recent conversations and agent performance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := cli.dashboard.Summary(cmd.Context())
		if err != nil {
			return err
		}
		ui.Println(ui.Styles.Title.Render("Dashboard"))
		ui.Println(ui.RenderSummary(summary))
		return nil
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show token usage over time and conversations per agent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := cli.dashboard.Analytics(cmd.Context())
		if err != nil {
			return err
		}
		ui.Println(ui.RenderAnalytics(series.TokensByDate, series.ConversationsPerAgent))
		return nil
	},
}
