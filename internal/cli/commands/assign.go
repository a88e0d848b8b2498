package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/gperfar/chatbot-admin/internal/bus"
	"github.com/gperfar/chatbot-admin/internal/cli/ui"
	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
	"github.com/gperfar/chatbot-admin/internal/reconciler"
)

var assignCmd = &cobra.Command{
	Use:   "assign <agent-id>",
	Short: "Edit which data sources an agent uses",
	Long: `Open the assignment editor for an agent. Assign and unassign data
sources, edit the priority, trigger and status of one existing assignment,
then save: only the differences against the backend are applied.`,
	Args: cobra.ExactArgs(1),
	RunE: dispatchArg(bus.ManageAssignments),
}

const (
	menuAssign   = "Assign data sources"
	menuUnassign = "Unassign data sources"
	menuEdit     = "Edit assignment settings"
	menuSave     = "Save changes"
	menuCancel   = "Cancel"
)

func (a *app) manageAssignments(ctx context.Context, agentID int64) error {
	agent, err := a.loadAgent(ctx, agentID)
	if err != nil {
		return err
	}

	r := reconciler.New(a.gateway, a.store.Refresh, a.logger)
	if err := r.Load(ctx, agentID); err != nil {
		return err
	}
	defer r.Close()

	for {
		ui.Println(ui.RenderAssignments(agent, r))

		var choice string
		menu := &survey.Select{
			Message: "Action:",
			Options: []string{menuAssign, menuUnassign, menuEdit, menuSave, menuCancel},
		}
		if err := askOne(menu, &choice); err != nil {
			return err
		}

		switch choice {
		case menuAssign:
			ids, err := pickDataSources("Assign:", r.Available())
			if err != nil {
				return err
			}
			for _, id := range ids {
				r.ToggleAssign(id)
			}
		case menuUnassign:
			ids, err := pickDataSources("Unassign:", r.Assigned())
			if err != nil {
				return err
			}
			for _, id := range ids {
				r.ToggleUnassign(id)
			}
		case menuEdit:
			if err := editAssignment(r); err != nil {
				if cancelled(err) {
					return err
				}
				ui.PrintError("%v", err)
			}
		case menuSave:
			result, err := r.Commit(ctx)
			if result == nil {
				// re-fetch failed, nothing applied; the editor is still open
				ui.PrintError("%v", err)
				continue
			}
			ui.Println(ui.RenderCommitResult(result))
			if err != nil {
				return fmt.Errorf("some assignment changes failed: %w", err)
			}
			ui.PrintSuccess("Assignments for \"%s\" saved", agent.DisplayName)
			return nil
		case menuCancel:
			ui.PrintInfo("Changes discarded")
			return nil
		}
	}
}

func pickDataSources(message string, sources []entity.DataSource) ([]int64, error) {
	if len(sources) == 0 {
		ui.PrintInfo("Nothing to pick")
		return nil, nil
	}
	options := make([]string, len(sources))
	for i, ds := range sources {
		options[i] = fmt.Sprintf("#%d %s (%s)", ds.ID, ds.Name, ds.Type.Label())
	}
	var picked []int
	if err := askOne(&survey.MultiSelect{Message: message, Options: options}, &picked); err != nil {
		return nil, err
	}
	ids := make([]int64, len(picked))
	for i, idx := range picked {
		ids[i] = sources[idx].ID
	}
	return ids, nil
}

// editAssignment selects one persisted assignment and edits its draft.
// Selecting replaces any previous selection.
func editAssignment(r *reconciler.Reconciler) error {
	var editable []entity.DataSource
	for _, ds := range r.Assigned() {
		if _, ok := r.Assignment(ds.ID); ok {
			editable = append(editable, ds)
		}
	}
	if len(editable) == 0 {
		return domain.NewNotFoundError("saved assignment", "any")
	}

	options := make([]string, len(editable))
	for i, ds := range editable {
		options[i] = fmt.Sprintf("#%d %s", ds.ID, ds.Name)
	}
	var picked int
	if err := askOne(&survey.Select{Message: "Assignment:", Options: options}, &picked); err != nil {
		return err
	}
	if err := r.SelectForEdit(editable[picked].ID); err != nil {
		return err
	}

	draft := r.Selection().(reconciler.Editing).Draft
	priority := strconv.Itoa(draft.Priority)
	if err := askOne(&survey.Input{Message: "Priority:", Default: priority}, &priority, survey.WithValidator(validInt)); err != nil {
		r.ClearSelection()
		return err
	}
	trigger, err := askOptional("Query trigger", draft.QueryTrigger, "Only consult this source when the question contains it")
	if err != nil {
		r.ClearSelection()
		return err
	}
	active := draft.IsActive
	if err := askOne(&survey.Confirm{Message: "Active?", Default: draft.IsActive}, &active); err != nil {
		r.ClearSelection()
		return err
	}

	p, _ := strconv.Atoi(strings.TrimSpace(priority))
	return r.EditSelection(p, strings.TrimSpace(trigger), active)
}
