package commands

import (
	"github.com/spf13/cobra"

	"github.com/gperfar/chatbot-admin/internal/cli/loader"
	"github.com/gperfar/chatbot-admin/internal/cli/ui"
)

var createFile string

var createCmd = &cobra.Command{
	Use:   "create -f <file>",
	Short: "Create an agent or data source from a YAML file",
	Long: `Create a resource from a YAML file. Supported kinds are Agent and
DataSource; data sources are checked exactly like the interactive form.`,
	Example: `  $ cat agent.yaml
  kind: Agent
  spec:
    name: support
    displayName: Support Bot
    model: gpt-4
    systemPrompt: You answer billing questions.

  $ cat sheet.yaml
  kind: DataSource
  spec:
    name: pricing
    type: google_sheets
    config:
      api_key: AIza...
      spreadsheet_id: 1BxiM...

  $ chatadmin create -f agent.yaml`,
	Args: cobra.NoArgs,
	RunE: runCreateFromFile,
}

func init() {
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "YAML file containing the resource definition")
	_ = createCmd.MarkFlagRequired("file")
}

func runCreateFromFile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	resource, err := loader.LoadFromFile(createFile)
	if err != nil {
		return err
	}
	ui.PrintInfo("Creating %s \"%s\" from %s", resource.Kind, resource.Spec.Name, createFile)

	switch resource.Kind {
	case loader.KindAgent:
		in, err := resource.AgentInput()
		if err != nil {
			return err
		}
		agent, err := cli.agents.Create(ctx, in)
		if err != nil {
			return err
		}
		ui.PrintSuccess("Agent \"%s\" created successfully (id %d)", agent.DisplayName, agent.ID)
	default:
		form, err := resource.DataSourceForm()
		if err != nil {
			return err
		}
		if err := cli.saveForm(ctx, form); err != nil {
			return err
		}
	}
	return nil
}
