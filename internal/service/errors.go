package service

import "errors"

// Kind classifies a service failure for the HTTP boundary
type Kind int

// Failure kinds
const (
	KindInternal     Kind = iota // Hashing, storage or mail transport failure
	KindValidation               // Malformed or missing input, caught before persistence
	KindNotFound                 // Entity absent
	KindConflict                 // Uniqueness violation
	KindUnauthorized             // Bad credentials
)

// Error is a typed service failure carrying the message shown to the client
type Error struct {
	Kind    Kind   // Failure classification
	Message string // Client-facing message
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Validation builds a validation failure
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound builds a not-found failure
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict builds a uniqueness-conflict failure
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Unauthorized builds a bad-credentials failure
func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// KindOf classifies any error; untyped errors are internal
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
