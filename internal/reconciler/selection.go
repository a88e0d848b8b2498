package reconciler

import "github.com/gperfar/chatbot-admin/internal/domain/entity"

// Selection is the assignment currently open for configuration edits:
// either NoSelection or Editing.
type Selection interface {
	isSelection()
}

// NoSelection means no assignment is being edited
type NoSelection struct{}

// Editing holds the assignment under edit and the operator's draft of its
// settings. The assignment is the persisted state seen at load time.
type Editing struct {
	Assignment entity.Assignment
	Draft      entity.AssignmentSettings
}

func (NoSelection) isSelection() {}
func (Editing) isSelection()     {}

// Dirty reports whether the draft differs from the loaded settings.
// A nil and an empty query trigger compare equal.
func (e Editing) Dirty() bool {
	return e.Draft != e.Assignment.Settings()
}
