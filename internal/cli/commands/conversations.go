package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gperfar/chatbot-admin/internal/analytics"
	"github.com/gperfar/chatbot-admin/internal/bus"
	"github.com/gperfar/chatbot-admin/internal/cli/ui"
	"github.com/gperfar/chatbot-admin/internal/domain"
)

var (
	convAgent       string
	convDate        string
	convSearch      string
	convInteractive bool
)

var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"conversation", "conv"},
	Short:   "Browse and delete conversation logs",
}

var conversationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	Example: `  $ chatadmin conversations list --agent support --date 2024-03-01
  $ chatadmin conversations list --search refund -i`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		filter, err := conversationFilter(ctx)
		if err != nil {
			return err
		}
		conversations, err := cli.conversations.List(ctx, filter)
		if err != nil {
			return err
		}
		ui.Println(ui.RenderConversations(conversations))

		if !convInteractive || len(conversations) == 0 {
			return nil
		}
		rows := make([]row, len(conversations))
		for i, c := range conversations {
			rows[i] = row{id: c.ID, label: fmt.Sprintf("#%d %s (%s)", c.ID, c.DisplayTitle(), c.DisplayAgentName())}
		}
		return browse(ctx, "Conversation:", rows, bus.ViewConversation, bus.DeleteConversation)
	},
}

var conversationsViewCmd = &cobra.Command{
	Use:   "view <conversation-id>",
	Short: "Show a conversation with its messages and data-source usage",
	Args:  cobra.ExactArgs(1),
	RunE:  dispatchArg(bus.ViewConversation),
}

var conversationsDeleteCmd = &cobra.Command{
	Use:   "delete <conversation-id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  dispatchArg(bus.DeleteConversation),
}

func init() {
	conversationsListCmd.Flags().StringVar(&convAgent, "agent", "", "only conversations of this agent (id or name)")
	conversationsListCmd.Flags().StringVar(&convDate, "date", "", "only conversations created on this day (YYYY-MM-DD, UTC)")
	conversationsListCmd.Flags().StringVar(&convSearch, "search", "", "case-insensitive match on title and agent name")
	conversationsListCmd.Flags().BoolVarP(&convInteractive, "interactive", "i", false, "pick a conversation and an action after listing")
	conversationsDeleteCmd.Flags().BoolVar(&forceDelete, "force", false, "skip confirmation prompt")

	conversationsCmd.AddCommand(conversationsListCmd, conversationsViewCmd, conversationsDeleteCmd)
}

func conversationFilter(ctx context.Context) (analytics.Filter, error) {
	filter := analytics.Filter{Search: convSearch}

	if convDate != "" {
		if _, err := time.Parse("2006-01-02", convDate); err != nil {
			return filter, domain.NewValidationError("date", "must be YYYY-MM-DD")
		}
		filter.Date = convDate
	}

	if convAgent != "" {
		if id, err := strconv.ParseInt(convAgent, 10, 64); err == nil {
			filter.AgentID = &id
			return filter, nil
		}
		if err := cli.store.ReloadAgents(ctx); err != nil {
			return filter, err
		}
		agent, err := cli.store.AgentByName(convAgent)
		if err != nil {
			return filter, err
		}
		filter.AgentID = &agent.ID
	}
	return filter, nil
}

func (a *app) viewConversation(ctx context.Context, id int64) error {
	if err := a.store.ReloadConversations(ctx); err != nil {
		return err
	}
	detail, err := a.conversations.View(ctx, id)
	if err != nil {
		return err
	}
	ui.Println(ui.RenderConversationDetail(detail))
	return nil
}

func (a *app) deleteConversation(ctx context.Context, id int64) error {
	if ok, err := confirmDelete(fmt.Sprintf("conversation %d", id)); err != nil || !ok {
		return err
	}
	if err := a.conversations.Delete(ctx, id); err != nil {
		return err
	}
	ui.PrintSuccess("Conversation %d deleted successfully", id)
	return nil
}
