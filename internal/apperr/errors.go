package apperr

import "fmt"

// ValidationError reports invalid user input: configuration, catalogs or request parameters.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

func NewFieldValidation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing resource such as a results artifact.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return e.Resource + " not found: " + e.Err.Error()
	}
	return e.Resource + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func NewNotFound(resource string, err error) *NotFoundError {
	return &NotFoundError{Resource: resource, Err: err}
}
