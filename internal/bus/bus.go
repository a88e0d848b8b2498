// Package bus dispatches typed operator commands to registered handlers.
// Commands carry an entity id only; names and other display strings never
// take part in dispatch.
package bus

import (
	"context"
	"fmt"
	"sync"
)

// Action is a typed operator action
type Action string

const (
	ViewConversation   Action = "conversation.view"
	DeleteConversation Action = "conversation.delete"
	EditAgent          Action = "agent.edit"
	DeleteAgent        Action = "agent.delete"
	TestAgent          Action = "agent.test"
	ManageAssignments  Action = "agent.assignments"
	EditDataSource     Action = "datasource.edit"
	DeleteDataSource   Action = "datasource.delete"
	TestDataSource     Action = "datasource.test"
)

// Actions lists every known action
var Actions = []Action{
	ViewConversation,
	DeleteConversation,
	EditAgent,
	DeleteAgent,
	TestAgent,
	ManageAssignments,
	EditDataSource,
	DeleteDataSource,
	TestDataSource,
}

// Valid reports whether a is a known action
func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// Command asks for action to be applied to one entity
type Command struct {
	Action   Action
	EntityID int64
}

func (c Command) String() string {
	return fmt.Sprintf("%s(%d)", c.Action, c.EntityID)
}

// Handler executes a command
type Handler func(ctx context.Context, entityID int64) error

// Bus routes commands to handlers. It is safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Action]Handler
}

// New creates an empty bus
func New() *Bus {
	return &Bus{handlers: make(map[Action]Handler)}
}

// Register binds h to action, replacing any previous handler
func (b *Bus) Register(action Action, h Handler) error {
	if !action.Valid() {
		return fmt.Errorf("unknown action %q", action)
	}
	if h == nil {
		return fmt.Errorf("nil handler for %s", action)
	}
	b.mu.Lock()
	b.handlers[action] = h
	b.mu.Unlock()
	return nil
}

// Handles reports whether action has a handler
func (b *Bus) Handles(action Action) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.handlers[action]
	return ok
}

// Dispatch runs the handler registered for cmd.Action
func (b *Bus) Dispatch(ctx context.Context, cmd Command) error {
	b.mu.RLock()
	h, ok := b.handlers[cmd.Action]
	b.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no handler registered for %q", cmd.Action)
	}
	if err := h(ctx, cmd.EntityID); err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}
