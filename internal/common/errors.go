package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation failed")
	ErrorTransport    = errors.New("transport error")

	// Token errors. Both classify as ErrorUnauthorized.
	ErrInvalidToken = &authError{msg: "invalid token"}
	ErrTokenExpired = &authError{msg: "token expired"}

	// Client-side flow errors.
	ErrBlankTitle           = &ValidationError{Fields: []FieldError{{Field: "title", Message: "Title is required"}}}
	ErrEntryPending         = errors.New("task is not confirmed by the server yet")
	ErrNotAuthenticated     = &authError{msg: "not authenticated"}
	ErrAlreadyAuthenticated = errors.New("already authenticated")
)

type authError struct {
	msg string
}

func (e *authError) Error() string { return e.msg }

func (e *authError) Is(target error) bool { return target == ErrorUnauthorized }

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// ValidationError carries field-level details and matches ErrorValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrorValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrorValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrorValidation }

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// TransportError reports that a request never produced an interpretable response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return ErrorTransport.Error() + ": " + e.Op
	}
	return ErrorTransport.Error() + ": " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrorTransport }
