package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/gperfar/chatbot-admin/internal/bus"
	"github.com/gperfar/chatbot-admin/internal/cli/config"
	"github.com/gperfar/chatbot-admin/internal/cli/ui"
	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/store"
	"github.com/gperfar/chatbot-admin/internal/usecase"
)

// app holds everything a command needs; built once per invocation
type app struct {
	cfg     *config.Config
	gateway domain.Gateway
	store   *store.Store
	logger  *slog.Logger

	agents        usecase.AgentUsecase
	conversations usecase.ConversationUsecase
	dataSources   usecase.DataSourceUsecase
	chat          usecase.ChatUsecase
	dashboard     usecase.DashboardUsecase

	bus *bus.Bus
}

func newApp(cfg *config.Config, gateway domain.Gateway, logger *slog.Logger) (*app, error) {
	st := store.New(gateway, logger)
	a := &app{
		cfg:           cfg,
		gateway:       gateway,
		store:         st,
		logger:        logger,
		agents:        usecase.NewAgentUsecase(gateway, st, logger),
		conversations: usecase.NewConversationUsecase(gateway, st, logger),
		dataSources:   usecase.NewDataSourceUsecase(gateway, st, logger),
		chat:          usecase.NewChatUsecase(gateway, st, logger),
		dashboard:     usecase.NewDashboardUsecase(gateway, st, logger),
		bus:           bus.New(),
	}
	if err := a.registerHandlers(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) registerHandlers() error {
	handlers := map[bus.Action]bus.Handler{
		bus.ViewConversation:   a.viewConversation,
		bus.DeleteConversation: a.deleteConversation,
		bus.EditAgent:          a.editAgent,
		bus.DeleteAgent:        a.deleteAgent,
		bus.TestAgent:          a.testAgent,
		bus.ManageAssignments:  a.manageAssignments,
		bus.EditDataSource:     a.editDataSource,
		bus.DeleteDataSource:   a.deleteDataSource,
		bus.TestDataSource:     a.testDataSource,
	}
	for _, action := range bus.Actions {
		if err := a.bus.Register(action, handlers[action]); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) dispatch(ctx context.Context, action bus.Action, id int64) error {
	return a.bus.Dispatch(ctx, bus.Command{Action: action, EntityID: id})
}

// askOne runs a single survey prompt; replaced in tests
var askOne = survey.AskOne

// clearValue typed at an optional prompt empties the field
const clearValue = "-"

// optionalInput prompts for a value that may be left empty. survey
// substitutes Default for an empty answer, so the current value goes in
// the message instead: empty keeps it, clearValue removes it.
func optionalInput(label, current, help string) *survey.Input {
	if current == "" {
		return &survey.Input{Message: label + ":", Help: help}
	}
	return &survey.Input{
		Message: fmt.Sprintf("%s [%s] (%s to clear):", label, current, clearValue),
		Help:    help,
	}
}

// resolveOptional maps an answer to optionalInput onto the new value
func resolveOptional(answer, current string) string {
	switch strings.TrimSpace(answer) {
	case "":
		return current
	case clearValue:
		return ""
	}
	return answer
}

func askOptional(label, current, help string) (string, error) {
	var answer string
	if err := askOne(optionalInput(label, current, help), &answer); err != nil {
		return "", err
	}
	return resolveOptional(answer, current), nil
}

// confirm asks a yes/no question; replaced in tests
var confirm = func(message string) (bool, error) {
	ok := false
	if err := askOne(&survey.Confirm{Message: message}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// confirmed returns true when force is set or the operator agrees
func confirmed(force bool, message string) (bool, error) {
	if force {
		return true, nil
	}
	return confirm(message)
}

// confirmDelete asks before an irreversible delete unless --force is set
func confirmDelete(what string) (bool, error) {
	ok, err := confirmed(forceDelete, fmt.Sprintf("Delete %s? This cannot be undone.", what))
	if err == nil && !ok {
		ui.PrintInfo("Deletion cancelled")
	}
	return ok, err
}

// cancelled reports whether err is the operator pressing Ctrl-C in a prompt
func cancelled(err error) bool {
	return errors.Is(err, terminal.InterruptErr)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", fmt.Sprintf("'%s' is not a valid id", arg))
	}
	return id, nil
}
