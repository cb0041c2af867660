// Package apperr defines the error taxonomy shared by repositories, caching
// decorators, usecases and the HTTP boundary.
package apperr

import "errors"

// Kind classifies an application error. Kinds are themselves errors so that
// callers can write errors.Is(err, apperr.ErrNotFound).
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	// ErrNotFound is raised when an entity or a collection is absent.
	ErrNotFound Kind = "not found"
	// ErrConflict is raised when a relational rule is violated, e.g. deleting a category that has children.
	ErrConflict Kind = "conflict"
	// ErrPersistence is raised when the store rejects a write.
	ErrPersistence Kind = "persistence failure"
	// ErrLogin is raised when a credential check fails.
	ErrLogin Kind = "login failed"
	// ErrValidation is raised for malformed input.
	ErrValidation Kind = "validation failed"
)

// Error carries a Kind, a user facing message and an optional cause. Field
// names the request field a validation error belongs to.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New builds an Error of the given kind.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error of the given kind around cause.
func Wrap(kind Kind, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func NotFound(message string) error { return New(ErrNotFound, message) }

func Conflict(message string) error { return New(ErrConflict, message) }

func Persistence(message string, cause error) error { return Wrap(ErrPersistence, message, cause) }

func Login(message string) error { return New(ErrLogin, message) }

// Invalid builds a validation error reported against field.
func Invalid(field, message string, cause error) error {
	return &Error{Kind: ErrValidation, Message: message, Field: field, Err: cause}
}

// KindOf returns the Kind carried by err, or "" if err is not an application error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return ""
}

// FieldOf returns the request field err is reported against, or "".
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// MessageOf returns the user facing message of err without its cause chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	if k := KindOf(err); k != "" {
		return string(k)
	}
	return err.Error()
}
