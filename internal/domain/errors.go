package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound               = errors.New("registration not found")
	ErrDuplicateEmail         = errors.New("this email is already registered")
	ErrDuplicateTransactionID = errors.New("this transaction ID is already used")
	ErrCapacityExhausted      = errors.New("stay accommodation is full")
	ErrInvalidCredentials     = errors.New("invalid username or password")
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one or more field-level failures. It maps to a 400
// response with the individual messages attached.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add appends a field failure.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// InstitutionClosedError signals that an otherwise valid submission names an
// institution whose registration window is closed. Kept distinct from
// ValidationError so the API can answer with a dedicated message.
type InstitutionClosedError struct {
	Institution Institution
}

func (e *InstitutionClosedError) Error() string {
	return fmt.Sprintf("%s registration is closed", e.Institution)
}

// AmountMismatchError is returned when the client-supplied total disagrees
// with the server-computed total. The submission is rejected, never silently
// corrected.
type AmountMismatchError struct {
	Expected int
	Got      int
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("invalid total amount: expected %d, got %d", e.Expected, e.Got)
}
