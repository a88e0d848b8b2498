package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/gperfar/chatbot-admin/internal/bus"
	"github.com/gperfar/chatbot-admin/internal/cli/ui"
	"github.com/gperfar/chatbot-admin/internal/configform"
	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

var dsInteractive bool

var dataSourcesCmd = &cobra.Command{
	Use:     "datasources",
	Aliases: []string{"datasource", "ds"},
	Short:   "Manage external data sources",
}

var dataSourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List data sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sources, err := cli.dataSources.List(ctx)
		if err != nil {
			return err
		}
		ui.Println(ui.RenderDataSources(sources))

		if !dsInteractive || len(sources) == 0 {
			return nil
		}
		rows := make([]row, len(sources))
		for i, ds := range sources {
			rows[i] = row{id: ds.ID, label: fmt.Sprintf("#%d %s (%s)", ds.ID, ds.Name, ds.Type.Label())}
		}
		return browse(ctx, "Data source:", rows, bus.EditDataSource, bus.TestDataSource, bus.DeleteDataSource)
	},
}

var dataSourcesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a data source interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := cli.dataSources.NewForm()
		if err := fillForm(form); err != nil {
			return err
		}
		return cli.saveForm(cmd.Context(), form)
	},
}

var dataSourcesEditCmd = &cobra.Command{
	Use:   "edit <data-source-id>",
	Short: "Edit a data source (its type cannot change)",
	Args:  cobra.ExactArgs(1),
	RunE:  dispatchArg(bus.EditDataSource),
}

var dataSourcesDeleteCmd = &cobra.Command{
	Use:   "delete <data-source-id>",
	Short: "Delete a data source",
	Args:  cobra.ExactArgs(1),
	RunE:  dispatchArg(bus.DeleteDataSource),
}

var dataSourcesTestCmd = &cobra.Command{
	Use:   "test <data-source-id>",
	Short: "Test the connection of a data source",
	Args:  cobra.ExactArgs(1),
	RunE:  dispatchArg(bus.TestDataSource),
}

func init() {
	dataSourcesListCmd.Flags().BoolVarP(&dsInteractive, "interactive", "i", false, "pick a data source and an action after listing")
	dataSourcesDeleteCmd.Flags().BoolVar(&forceDelete, "force", false, "skip confirmation prompt")

	dataSourcesCmd.AddCommand(dataSourcesListCmd, dataSourcesCreateCmd, dataSourcesEditCmd, dataSourcesDeleteCmd, dataSourcesTestCmd)
}

func (a *app) loadDataSource(ctx context.Context, id int64) (entity.DataSource, error) {
	if err := a.store.ReloadDataSources(ctx); err != nil {
		return entity.DataSource{}, err
	}
	return a.dataSources.Get(id)
}

func (a *app) editDataSource(ctx context.Context, id int64) error {
	if _, err := a.loadDataSource(ctx, id); err != nil {
		return err
	}
	form, err := a.dataSources.EditForm(id)
	if err != nil {
		return err
	}
	if err := fillForm(form); err != nil {
		return err
	}
	return a.saveForm(ctx, form)
}

func (a *app) saveForm(ctx context.Context, form *configform.Form) error {
	ds, err := a.dataSources.Save(ctx, form)
	if err != nil {
		return err
	}
	verb := "created"
	if form.Locked() {
		verb = "updated"
	}
	ui.PrintSuccess("Data source \"%s\" %s successfully", ds.Name, verb)
	return nil
}

func (a *app) deleteDataSource(ctx context.Context, id int64) error {
	ds, err := a.loadDataSource(ctx, id)
	if err != nil {
		return err
	}
	if ok, err := confirmDelete(fmt.Sprintf("data source \"%s\"", ds.Name)); err != nil || !ok {
		return err
	}
	if err := a.dataSources.Delete(ctx, id); err != nil {
		return err
	}
	ui.PrintSuccess("Data source \"%s\" deleted successfully", ds.Name)
	return nil
}

func (a *app) testDataSource(ctx context.Context, id int64) error {
	ds, err := a.loadDataSource(ctx, id)
	if err != nil {
		return err
	}
	ui.PrintInfo("Testing connection to \"%s\"...", ds.Name)
	res, err := a.dataSources.Test(ctx, id)
	if err != nil {
		return err
	}
	ui.Println(ui.RenderTestResult(ds, res))
	return nil
}

// fillForm walks the operator through a config form, re-asking any field
// the form rejects until it validates
func fillForm(form *configform.Form) error {
	if form.Locked() {
		ui.PrintInfo("Type: %s (cannot be changed)", form.Type().Label())
	} else if err := promptType(form); err != nil {
		return err
	}

	if err := promptName(form); err != nil {
		return err
	}
	description, err := askOptional("Description", form.Description(), "")
	if err != nil {
		return err
	}
	if err := form.SetDescription(description); err != nil {
		return err
	}

	fields, err := formFields(form)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if err := promptField(form, f); err != nil {
			return err
		}
	}

	active := form.IsActive()
	if err := askOne(&survey.Confirm{Message: "Active?", Default: active}, &active); err != nil {
		return err
	}
	if err := form.SetActive(active); err != nil {
		return err
	}

	for {
		err := form.Validate()
		if err == nil {
			return nil
		}
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		ui.PrintError("%v", err)
		if err := reask(form, ve.Field); err != nil {
			return err
		}
	}
}

// formFields lists the schema fields of the selected type plus the fields
// of the selected authentication method
func formFields(form *configform.Form) ([]configform.Field, error) {
	schema, err := configform.SchemaFor(form.Type())
	if err != nil {
		return nil, err
	}
	return schema.Fields, nil
}

func reask(form *configform.Form, key string) error {
	if key == "name" {
		return promptName(form)
	}
	fields, err := formFields(form)
	if err != nil {
		return err
	}
	if form.Type() == entity.DataSourceRESTAPI {
		auth, err := configform.AuthFields(form.Field(configform.KeyAuthType))
		if err != nil {
			return err
		}
		fields = append(fields, auth...)
	}
	for _, f := range fields {
		if f.Key == key {
			return promptField(form, f)
		}
	}
	return domain.NewValidationError(key, "cannot be fixed interactively")
}

func promptType(form *configform.Form) error {
	options := make([]string, len(entity.DataSourceTypes))
	for i, t := range entity.DataSourceTypes {
		options[i] = string(t)
	}
	var picked string
	prompt := &survey.Select{
		Message: "Type:",
		Options: options,
		Description: func(value string, _ int) string {
			return entity.DataSourceType(value).Label()
		},
	}
	if form.Type() != "" {
		prompt.Default = string(form.Type())
	}
	if err := askOne(prompt, &picked); err != nil {
		return err
	}
	t := entity.DataSourceType(picked)
	ui.PrintInfo("%s", t.Description())
	return form.SelectType(t)
}

func promptName(form *configform.Form) error {
	name := form.Name()
	if err := askOne(&survey.Input{Message: "Name:", Default: name}, &name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	return form.SetName(name)
}

// promptField asks for one field; choosing an authentication method also
// asks for that method's fields
func promptField(form *configform.Form, f configform.Field) error {
	current := form.Field(f.Key)
	if current == "" {
		current = f.Default
	}

	var value string
	switch {
	case len(f.Options) > 0:
		labels := f.OptionLabels()
		sel := &survey.Select{Message: f.Label + ":", Options: labels, Help: f.Help}
		if i := slices.Index(f.Options, current); i >= 0 {
			sel.Default = labels[i]
		}
		var picked int
		if err := askOne(sel, &picked); err != nil {
			return err
		}
		value = f.Options[picked]
	case f.Secret:
		message := f.Label + ":"
		var opts []survey.AskOpt
		if current != "" {
			message = f.Label + " (leave empty to keep):"
		} else if f.Required {
			opts = append(opts, survey.WithValidator(survey.Required))
		}
		var answer string
		if err := askOne(&survey.Password{Message: message, Help: f.Help}, &answer, opts...); err != nil {
			return err
		}
		value = current
		if answer != "" {
			value = answer
		}
	case f.Required:
		value = current
		if err := askOne(&survey.Input{Message: f.Label + ":", Default: current, Help: f.Help}, &value, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	default:
		var err error
		if value, err = askOptional(f.Label, form.Field(f.Key), f.Help); err != nil {
			return err
		}
	}

	if err := form.Set(f.Key, value); err != nil {
		return err
	}

	if f.Key != configform.KeyAuthType {
		return nil
	}
	auth, err := configform.AuthFields(value)
	if err != nil {
		return err
	}
	for _, af := range auth {
		if err := promptField(form, af); err != nil {
			return err
		}
	}
	return nil
}
