package commands

import (
	"context"

	"github.com/AlecAivazis/survey/v2"

	"github.com/gperfar/chatbot-admin/internal/bus"
)

var actionLabels = map[bus.Action]string{
	bus.ViewConversation:   "View",
	bus.DeleteConversation: "Delete",
	bus.EditAgent:          "Edit",
	bus.DeleteAgent:        "Delete",
	bus.TestAgent:          "Test chat",
	bus.ManageAssignments:  "Manage data sources",
	bus.EditDataSource:     "Edit",
	bus.DeleteDataSource:   "Delete",
	bus.TestDataSource:     "Test connection",
}

type row struct {
	id    int64
	label string
}

// browse lets the operator pick a row and an action, then dispatches the
// command. Rows and actions are chosen by index; nothing the backend
// returned is ever evaluated.
func browse(ctx context.Context, message string, rows []row, actions ...bus.Action) error {
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.label
	}
	var picked int
	if err := askOne(&survey.Select{Message: message, Options: labels}, &picked); err != nil {
		return err
	}

	options := make([]string, len(actions))
	for i, a := range actions {
		options[i] = actionLabels[a]
	}
	var action int
	if err := askOne(&survey.Select{Message: "Action:", Options: options}, &action); err != nil {
		return err
	}

	return cli.dispatch(ctx, actions[action], rows[picked].id)
}
