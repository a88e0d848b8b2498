package configform

import (
	"context"
	"fmt"
	"strings"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// State is the lifecycle position of an open form
type State int

const (
	StateEmpty State = iota
	StateTypeSelected
	StateValidated
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateTypeSelected:
		return "type_selected"
	case StateValidated:
		return "validated"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SubmitFunc persists a validated data-source payload
type SubmitFunc func(ctx context.Context, in *domain.DataSourceInput) (*entity.DataSource, error)

// Form is one open data-source form, either creating a new source or
// editing a stored one. Forms are not safe for concurrent use.
type Form struct {
	state       State
	typ         entity.DataSourceType
	name        string
	description string
	isActive    bool
	fields      Fields
	record      *entity.DataSource
	config      map[string]any
	err         error
}

// New opens an empty create form
func New() *Form {
	return &Form{isActive: true}
}

// Populate opens an edit form for ds. The type is locked to the stored one
// and fields are pre-filled from the stored config.
func Populate(ds *entity.DataSource) (*Form, error) {
	if ds == nil {
		return nil, domain.NewValidationError("", "data source is required")
	}
	fields, err := FieldsFromConfig(ds.Type, ds.Config)
	if err != nil {
		return nil, err
	}
	record := *ds
	return &Form{
		state:       StateTypeSelected,
		typ:         ds.Type,
		name:        ds.Name,
		description: ds.Description,
		isActive:    ds.IsActive,
		fields:      fields,
		record:      &record,
	}, nil
}

func (f *Form) State() State                { return f.state }
func (f *Form) Type() entity.DataSourceType { return f.typ }
func (f *Form) Name() string                { return f.name }
func (f *Form) Description() string         { return f.description }
func (f *Form) IsActive() bool              { return f.isActive }

// Locked reports whether the type is fixed (edit form)
func (f *Form) Locked() bool { return f.record != nil }

// Record returns the data source being edited, nil for a create form
func (f *Form) Record() *entity.DataSource { return f.record }

// Err returns the error of the last failed submission
func (f *Form) Err() error { return f.err }

// Fields returns a copy of the current field values
func (f *Form) Fields() Fields { return f.fields.Clone() }

// Field returns the current value of key
func (f *Form) Field(key string) string { return f.fields[key] }

// SelectType chooses the data-source type. Changing the type resets every
// type-specific field to its default. On an edit form any type other than
// the stored one is rejected.
func (f *Form) SelectType(t entity.DataSourceType) error {
	if err := f.editable(); err != nil {
		return err
	}
	if f.Locked() {
		if t != f.record.Type {
			return domain.NewValidationError("type", "cannot be changed after creation")
		}
		return nil
	}
	if f.state != StateEmpty && t == f.typ {
		return nil
	}

	defaults, err := Defaults(t)
	if err != nil {
		return err
	}
	f.typ = t
	f.fields = defaults
	f.touch()
	return nil
}

// Set updates one type-specific field
func (f *Form) Set(key, value string) error {
	if err := f.editable(); err != nil {
		return err
	}
	if f.state == StateEmpty {
		return domain.NewValidationError("type", "select a type first")
	}
	if !knownKey(f.typ, key) {
		return domain.NewValidationError(key, fmt.Sprintf("unknown field for %s", f.typ))
	}
	f.fields[key] = value
	f.touch()
	return nil
}

// SetName updates the data-source name
func (f *Form) SetName(name string) error {
	if err := f.editable(); err != nil {
		return err
	}
	f.name = name
	f.touch()
	return nil
}

// SetDescription updates the description
func (f *Form) SetDescription(description string) error {
	if err := f.editable(); err != nil {
		return err
	}
	f.description = description
	f.touch()
	return nil
}

// SetActive updates the active flag
func (f *Form) SetActive(active bool) error {
	if err := f.editable(); err != nil {
		return err
	}
	f.isActive = active
	f.touch()
	return nil
}

// Validate checks the form and moves it to StateValidated
func (f *Form) Validate() error {
	if err := f.editable(); err != nil {
		return err
	}
	if f.state == StateEmpty {
		return domain.NewMissingFieldError("type")
	}
	if strings.TrimSpace(f.name) == "" {
		return domain.NewMissingFieldError("name")
	}

	config, err := BuildConfig(f.submitType(), f.fields)
	if err != nil {
		return err
	}
	if err := checkConfig(f.submitType(), config); err != nil {
		return err
	}

	f.config = config
	f.state = StateValidated
	return nil
}

// Input returns the payload of a validated form
func (f *Form) Input() (*domain.DataSourceInput, error) {
	if f.state != StateValidated {
		return nil, domain.NewValidationError("", fmt.Sprintf("form is %s, validate before submitting", f.state))
	}
	return &domain.DataSourceInput{
		Name:        strings.TrimSpace(f.name),
		Type:        f.submitType(),
		Description: f.description,
		Config:      f.config,
		IsActive:    f.isActive,
	}, nil
}

// Submit persists a validated form through submit. On failure the form
// returns to StateTypeSelected and the error is kept in Err.
func (f *Form) Submit(ctx context.Context, submit SubmitFunc) (*entity.DataSource, error) {
	in, err := f.Input()
	if err != nil {
		return nil, err
	}

	ds, err := submit(ctx, in)
	if err != nil {
		f.err = err
		f.state = StateTypeSelected
		return nil, err
	}

	f.err = nil
	f.state = StateSubmitted
	return ds, nil
}

// submitType is the record's stored type on an edit form
func (f *Form) submitType() entity.DataSourceType {
	if f.record != nil {
		return f.record.Type
	}
	return f.typ
}

func (f *Form) editable() error {
	if f.state == StateSubmitted {
		return domain.NewValidationError("", "form already submitted")
	}
	return nil
}

// touch invalidates a previous validation
func (f *Form) touch() {
	if f.state != StateEmpty || f.typ != "" {
		f.state = StateTypeSelected
	}
	f.config = nil
}
