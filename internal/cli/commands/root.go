package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gperfar/chatbot-admin/internal/cli/client"
	"github.com/gperfar/chatbot-admin/internal/cli/config"
	"github.com/gperfar/chatbot-admin/internal/cli/ui"
	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/pkg/logger"
)

const version = "0.1.0"

var (
	cfgFile    string
	apiURLFlag string
	verbose    bool

	// cli is set by the root pre-run hook
	cli *app
)

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "chatadmin",
	Short:   "Chatbot administration CLI",
	Version: version,
	Long: `A command-line tool for administering a chatbot backend: agents, their
external data sources and the conversation logs they produce.`,
	Example: `  # Check the API and show the overview
  $ chatadmin health
  $ chatadmin dashboard

  # Manage agents and their data sources
  $ chatadmin agents list
  $ chatadmin assign 3

  # Browse conversations of one agent on one day
  $ chatadmin conversations list --agent 3 --date 2024-03-01

  # Create from a YAML file
  $ chatadmin create -f agent.yaml`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the CLI; interrupts cancel in-flight requests
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(formatVersion())
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		report(err)
	}
	return err
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.chatadmin/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "chatbot API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and cache reloads at debug level")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(dataSourcesCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}

	log, err := logger.Setup(cfg.Log, "chatadmin")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevel("debug")
	}
	ui.SetTheme(cfg.Theme)

	apiClient, err := client.NewAPIClient(cfg.APIURL, cfg.Timeout, log)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	cli, err = newApp(cfg, apiClient, log)
	return err
}

// report prints err as a single status line
func report(err error) {
	switch {
	case cancelled(err):
		ui.PrintInfo("Cancelled")
	case client.IsOffline(err):
		ui.PrintError("API is offline: %v", err)
	case domain.IsValidation(err):
		ui.PrintError("Invalid input: %v", err)
	default:
		ui.PrintError("%s", domain.UserMessage(err))
	}
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}` + ui.Styles.Bold.Render("GLOBAL OPTIONS") + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

func formatVersion() string {
	return fmt.Sprintf("chatadmin version %s\n", version)
}
