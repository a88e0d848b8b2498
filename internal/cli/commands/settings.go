package commands

import (
	"github.com/spf13/cobra"

	"github.com/gperfar/chatbot-admin/internal/cli/ui"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			ui.PrintInfo("Theme: %s", cli.cfg.Theme)
			return nil
		}
		if err := cli.cfg.SetTheme(args[0]); err != nil {
			return err
		}
		ui.SetTheme(args[0])
		ui.PrintSuccess("Theme set to %s", args[0])
		return nil
	},
}

var configSetAPIURL string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration or set the API URL",
	Example: `  $ chatadmin config
  $ chatadmin config --set-api-url https://bots.example.com/api`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cli.cfg
		if configSetAPIURL != "" {
			if err := cfg.SetAPIURL(configSetAPIURL); err != nil {
				return err
			}
			ui.PrintSuccess("API URL set to %s", cfg.APIURL)
			return nil
		}
		ui.PrintBold("Configuration (%s)", cfg.Path())
		ui.Println("  api_url:   " + cfg.APIURL)
		ui.Println("  timeout:   " + cfg.Timeout.String())
		ui.Println("  theme:     " + cfg.Theme)
		ui.Println("  log.level: " + cfg.Log.Level)
		return nil
	},
}

func init() {
	configCmd.Flags().StringVar(&configSetAPIURL, "set-api-url", "", "persist a new API base URL")
}
