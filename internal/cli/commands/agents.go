package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/gperfar/chatbot-admin/internal/analytics"
	"github.com/gperfar/chatbot-admin/internal/bus"
	"github.com/gperfar/chatbot-admin/internal/cli/ui"
	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

var (
	agentsActiveOnly  bool
	agentsInteractive bool
	forceDelete       bool
)

var agentsCmd = &cobra.Command{
	Use:     "agents",
	Aliases: []string{"agent"},
	Short:   "Manage agents",
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents with their conversation counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		agents, err := cli.agents.List(ctx, agentsActiveOnly)
		if err != nil {
			return err
		}
		conversations, err := cli.conversations.List(ctx, analytics.Filter{})
		if err != nil {
			return err
		}
		ui.Println(ui.RenderAgents(agents, analytics.ConversationCounts(conversations)))

		if !agentsInteractive || len(agents) == 0 {
			return nil
		}
		rows := make([]row, len(agents))
		for i, a := range agents {
			rows[i] = row{id: a.ID, label: fmt.Sprintf("#%d %s (%s)", a.ID, a.DisplayName, a.Name)}
		}
		return browse(ctx, "Agent:", rows, bus.EditAgent, bus.TestAgent, bus.ManageAssignments, bus.DeleteAgent)
	},
}

var agentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an agent interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := promptAgent(domain.AgentInput{Temperature: 0.7, IsActive: true, Color: entity.DefaultAgentColor})
		if err != nil {
			return err
		}
		agent, err := cli.agents.Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		ui.PrintSuccess("Agent \"%s\" created successfully (id %d)", agent.DisplayName, agent.ID)
		return nil
	},
}

var agentsEditCmd = &cobra.Command{
	Use:   "edit <agent-id>",
	Short: "Edit an agent",
	Args:  cobra.ExactArgs(1),
	RunE:  dispatchArg(bus.EditAgent),
}

var agentsDeleteCmd = &cobra.Command{
	Use:   "delete <agent-id>",
	Short: "Delete an agent",
	Long:  "Delete an agent. Its conversations are kept and show as \"No Agent\".",
	Args:  cobra.ExactArgs(1),
	RunE:  dispatchArg(bus.DeleteAgent),
}

func init() {
	agentsListCmd.Flags().BoolVar(&agentsActiveOnly, "active-only", false, "only list active agents")
	agentsListCmd.Flags().BoolVarP(&agentsInteractive, "interactive", "i", false, "pick an agent and an action after listing")
	agentsDeleteCmd.Flags().BoolVar(&forceDelete, "force", false, "skip confirmation prompt")

	agentsCmd.AddCommand(agentsListCmd, agentsCreateCmd, agentsEditCmd, agentsDeleteCmd)
}

// dispatchArg parses the single id argument and dispatches action on it
func dispatchArg(action bus.Action) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return cli.dispatch(cmd.Context(), action, id)
	}
}

// loadAgent makes sure the agent cache is fresh and returns agent id
func (a *app) loadAgent(ctx context.Context, id int64) (entity.Agent, error) {
	if err := a.store.ReloadAgents(ctx); err != nil {
		return entity.Agent{}, err
	}
	return a.agents.Get(id)
}

func (a *app) editAgent(ctx context.Context, id int64) error {
	agent, err := a.loadAgent(ctx, id)
	if err != nil {
		return err
	}
	ui.Println(ui.RenderAgent(agent))

	in, err := promptAgent(domain.AgentInputFrom(agent))
	if err != nil {
		return err
	}
	updated, err := a.agents.Update(ctx, id, in)
	if err != nil {
		return err
	}
	ui.PrintSuccess("Agent \"%s\" updated successfully", updated.DisplayName)
	return nil
}

func (a *app) deleteAgent(ctx context.Context, id int64) error {
	agent, err := a.loadAgent(ctx, id)
	if err != nil {
		return err
	}
	if ok, err := confirmDelete(fmt.Sprintf("agent \"%s\"", agent.DisplayName)); err != nil || !ok {
		return err
	}
	if err := a.agents.Delete(ctx, id); err != nil {
		return err
	}
	ui.PrintSuccess("Agent \"%s\" deleted successfully", agent.DisplayName)
	return nil
}

// promptAgent asks for every agent field, pre-filled from defaults
func promptAgent(defaults domain.AgentInput) (*domain.AgentInput, error) {
	in := defaults
	maxTokens := ""
	if defaults.MaxTokens != nil {
		maxTokens = strconv.Itoa(*defaults.MaxTokens)
	}
	temperature := strconv.FormatFloat(defaults.Temperature, 'f', -1, 64)

	qs := []*survey.Question{
		{Name: "name", Prompt: &survey.Input{Message: "Name:", Default: in.Name}, Validate: survey.Required},
		{Name: "display", Prompt: &survey.Input{Message: "Display name:", Default: in.DisplayName}, Validate: survey.Required},
		{Name: "description", Prompt: optionalInput("Description", in.Description, "")},
		{Name: "model", Prompt: &survey.Input{Message: "Model:", Default: in.Model, Help: "e.g. gpt-4, gpt-3.5-turbo"}, Validate: survey.Required},
		{Name: "temperature", Prompt: &survey.Input{Message: "Temperature (0-2):", Default: temperature}, Validate: validFloat},
		{Name: "max_tokens", Prompt: optionalInput("Max tokens", maxTokens, "No limit uses the model default"), Validate: validOptionalInt},
		{Name: "color", Prompt: optionalInput("Color", in.Color, "Hex color, e.g. #4F46E5")},
		{Name: "active", Prompt: &survey.Confirm{Message: "Active?", Default: in.IsActive}},
		{Name: "prompt", Prompt: &survey.Multiline{Message: "System prompt:", Default: in.SystemPrompt}, Validate: survey.Required},
	}
	answers := struct {
		Name        string `survey:"name"`
		Display     string `survey:"display"`
		Description string `survey:"description"`
		Model       string `survey:"model"`
		Temperature string `survey:"temperature"`
		MaxTokens   string `survey:"max_tokens"`
		Color       string `survey:"color"`
		Active      bool   `survey:"active"`
		Prompt      string `survey:"prompt"`
	}{}
	if err := survey.Ask(qs, &answers); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(answers.Name)
	in.DisplayName = strings.TrimSpace(answers.Display)
	in.Description = resolveOptional(answers.Description, in.Description)
	in.Model = strings.TrimSpace(answers.Model)
	in.Temperature, _ = strconv.ParseFloat(strings.TrimSpace(answers.Temperature), 64)
	in.MaxTokens = nil
	if v := strings.TrimSpace(resolveOptional(answers.MaxTokens, maxTokens)); v != "" {
		n, _ := strconv.Atoi(v)
		in.MaxTokens = &n
	}
	in.Color = strings.TrimSpace(resolveOptional(answers.Color, in.Color))
	in.IsActive = answers.Active
	in.SystemPrompt = answers.Prompt
	return &in, nil
}

func validFloat(ans any) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(ans)), 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func validOptionalInt(ans any) error {
	s := strings.TrimSpace(fmt.Sprint(ans))
	if s == "" || s == clearValue {
		return nil
	}
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

func validInt(ans any) error {
	if _, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(ans))); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}
