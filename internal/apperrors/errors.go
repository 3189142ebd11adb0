package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrExternalFetch marks failures talking to an external data provider.
var ErrExternalFetch = errors.New("external fetch failed")

// FieldError is a single validation failure tied to an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects field failures. It matches ErrValidation with errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Is lets errors.Is(err, ErrValidation) succeed.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Message returns the message for field, or "" when the field passed.
func (v ValidationErrors) Message(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// NewFieldError builds a FieldError.
func NewFieldError(field, message string) FieldError {
	return FieldError{Field: field, Message: message}
}

// ExternalFetchError describes a failed call to an external provider.
// It is logged and absorbed by callers, never surfaced to clients.
type ExternalFetchError struct {
	Provider   string
	Op         string
	StatusCode int
	Err        error
}

func (e *ExternalFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: http status %d", e.Provider, e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ExternalFetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrExternalFetch) succeed.
func (e *ExternalFetchError) Is(target error) bool {
	return target == ErrExternalFetch
}
