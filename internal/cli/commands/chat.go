package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gperfar/chatbot-admin/internal/bus"
	"github.com/gperfar/chatbot-admin/internal/cli/tui"
	"github.com/gperfar/chatbot-admin/internal/cli/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat <agent-id>",
	Short: "Open a test chat with an agent",
	Long: `Open an interactive test chat with an agent. Every exchange is recorded
by the backend as a conversation.

Keyboard controls:
  • Enter sends the message
  • ↑/↓ and PgUp/PgDn scroll
  • Esc quits`,
	Args: cobra.ExactArgs(1),
	RunE: dispatchArg(bus.TestAgent),
}

func (a *app) testAgent(ctx context.Context, id int64) error {
	agent, err := a.loadAgent(ctx, id)
	if err != nil {
		return err
	}
	if !agent.IsActive {
		ui.PrintWarning("Agent \"%s\" is inactive", agent.DisplayName)
	}
	if err := tui.NewChatProgram(agent, a.chat.Send, a.cfg.Timeout).Run(); err != nil {
		return fmt.Errorf("failed to run chat: %w", err)
	}
	return nil
}
