package domain

import (
	"errors"
	"fmt"
)

// Predefined domain errors
var (
	// ErrNotFound entity is absent from the local cache
	ErrNotFound = errors.New("resource not found")
	// ErrValidation a required field is missing or invalid
	ErrValidation = errors.New("validation failed")
	// ErrNetwork transport failure or non-2xx response
	ErrNetwork = errors.New("network error")
	// ErrLoad the assignment editor could not load its state
	ErrLoad = errors.New("load failed")
)

// DomainError is the common error shape surfaced to the operator
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface (used for logs and wrapping)
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserMessage returns the operator-facing message without internal details
func (e *DomainError) UserMessage() string {
	return e.Message
}

// Unwrap returns the wrapped error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an entity missing from the local cache
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.Key)
}

// Is lets errors.Is match ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a not-found error for the given resource and key
func NewNotFoundError(resourceType string, key any) error {
	return &NotFoundError{Resource: resourceType, Key: fmt.Sprint(key)}
}

// ValidationError names the first field that failed validation.
// It is always raised before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewMissingFieldError creates the validation error for an absent required field
func NewMissingFieldError(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}

// NetworkError wraps a transport failure or a non-2xx response.
// StatusCode is 0 when the request never got a response.
type NetworkError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: request failed", e.Method, e.Path)
	}
}

// Is lets errors.Is match ErrNetwork
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// Unwrap returns the transport error, if any
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// LoadError wraps a failure while loading reconciler state
type LoadError struct {
	What string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.What, e.Err)
}

// Is lets errors.Is match ErrLoad
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// Unwrap returns the underlying cause
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a load error
func NewLoadError(what string, err error) error {
	return &LoadError{What: what, Err: err}
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNetwork reports whether err is a network error
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsLoad reports whether err is a load error
func IsLoad(err error) bool {
	return errors.Is(err, ErrLoad)
}

// UserMessage extracts the operator-facing message from err
func UserMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.UserMessage()
	}
	return err.Error()
}
