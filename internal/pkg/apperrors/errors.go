package apperrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeNotFound         Code = "NOT_FOUND"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodeInternal         Code = "INTERNAL"
)

// AppError is the error type every service returns to the API layer.
// Details carries field-level messages for validation failures.
type AppError struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"errors,omitempty"`
	Cause   error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithField adds a field-level message and returns the same error.
func (e *AppError) WithField(field, message string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[field] = message
	return e
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Forbidden(message string) *AppError {
	return New(CodePermissionDenied, message)
}

func Unauthenticated(message string) *AppError {
	return New(CodeUnauthenticated, message)
}

func Internal(message string, cause error) *AppError {
	return Wrap(CodeInternal, message, cause)
}

// Validation builds a VALIDATION_FAILED error with a single field detail.
// An empty field produces an error without details.
func Validation(field, message string) *AppError {
	err := New(CodeValidationFailed, "validation failed")
	if field != "" {
		err.WithField(field, message)
	} else {
		err.Message = message
	}
	return err
}

// CodeOf returns the code of the first AppError in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
