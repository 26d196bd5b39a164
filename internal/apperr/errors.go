package apperr

import (
	"errors" // Standard error helpers
	"fmt"    // Message formatting
)

// Kind classifies an application error so the API layer can map it to a response
type Kind string

// Error kinds surfaced by the services and middleware
const (
	Internal                     Kind = "INTERNAL"
	Validation                   Kind = "VALIDATION_ERROR"
	DuplicateEmail               Kind = "DUPLICATE_EMAIL"
	MissingCredentials           Kind = "MISSING_CREDENTIALS"
	InvalidCredentials           Kind = "INVALID_CREDENTIALS"
	TooManyAttempts              Kind = "TOO_MANY_ATTEMPTS"
	MissingOrMalformedAuthHeader Kind = "MISSING_OR_MALFORMED_AUTH_HEADER"
	InvalidToken                 Kind = "INVALID_TOKEN"
	ExpiredToken                 Kind = "EXPIRED_TOKEN"
	MalformedToken               Kind = "MALFORMED_TOKEN"
	UnknownUser                  Kind = "UNKNOWN_USER"
	NotFound                     Kind = "NOT_FOUND"
	Forbidden                    Kind = "FORBIDDEN"
	InvalidTransition            Kind = "INVALID_TRANSITION"
)

// Kinds lists every kind, Internal first
var Kinds = []Kind{
	Internal, Validation, DuplicateEmail, MissingCredentials, InvalidCredentials, TooManyAttempts,
	MissingOrMalformedAuthHeader, InvalidToken, ExpiredToken, MalformedToken, UnknownUser,
	NotFound, Forbidden, InvalidTransition,
}

// FieldError describes a single failing input field
type FieldError struct {
	Field   string `json:"field"`   // Input field name
	Message string `json:"message"` // Human readable reason
}

// Error is the error type returned across component boundaries
type Error struct {
	Kind    Kind         // Error classification
	Message string       // Client facing message
	Fields  []FieldError // Per-field detail for validation errors
	Err     error        // Underlying cause, never shown to clients
}

// New creates an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new error of the given kind
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Invalid builds a validation error listing every failing field
func Invalid(fields ...FieldError) *Error {
	return &Error{Kind: Validation, Message: "validation failed", Fields: fields}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by kind so errors.Is(err, apperr.New(apperr.NotFound, "")) works
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Extensions exposes the kind to GraphQL clients under "extensions.code"
func (e *Error) Extensions() map[string]any {
	ext := map[string]any{"code": string(e.Kind)}
	if len(e.Fields) > 0 {
		ext["fields"] = e.Fields
	}
	return ext
}

// KindOf returns the kind of err, or Internal for errors not created by this package
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
