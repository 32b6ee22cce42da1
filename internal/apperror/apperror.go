// Package apperror defines the error kinds that the domain services report and their mapping onto
// HTTP status codes.
package apperror

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies an error by the way it has to be reported to the client.
type Kind int

const (
	Internal Kind = iota
	Validation
	AlreadyExists
	InvalidCredentials
	Unauthorized
	NotFound
)

// FieldError is a single rule violation of an input field.
type FieldError struct {
	Field   string
	Message string
}

// Error is a failure detected by the validation layer or by a domain service. Message is safe to
// be shown to the client. Fields is only populated for Validation errors.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewNotFound creates a NotFound error.
func NewNotFound(message string) *Error {
	return New(NotFound, message)
}

// NewValidation creates a Validation error.
func NewValidation(message string) *Error {
	return New(Validation, message)
}

// NewFieldValidation creates a Validation error whose message lists all field violations.
func NewFieldValidation(fields []FieldError) *Error {
	messages := make([]string, 0, len(fields))
	for _, f := range fields {
		messages = append(messages, f.Message)
	}
	return &Error{Kind: Validation, Message: strings.Join(messages, ", "), Fields: fields}
}

// StatusCode returns the HTTP status code for the kind.
func (k Kind) StatusCode() int {
	switch k {
	case Validation, AlreadyExists:
		return http.StatusBadRequest
	case InvalidCredentials, Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// InternalMessage is the only message that is shown for unexpected failures.
const InternalMessage = "internal server error"

// Resolve determines status code and client message for any error. Errors that are not an *Error
// anywhere in their chain are internal faults and get a generic message.
func Resolve(err error) (status int, message string) {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != Internal {
		return appErr.Kind.StatusCode(), appErr.Message
	}
	return http.StatusInternalServerError, InternalMessage
}
