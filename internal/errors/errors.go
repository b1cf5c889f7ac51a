// Package errors defines the domain errors surfaced to API callers.
//
// Services return *DomainError values (usually the package-level sentinels);
// handlers translate the Kind into an HTTP status. Anything that is not a
// DomainError is treated as an infrastructure failure.
package errors

import (
	stderrors "errors"
)

// Kind classifies a domain error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindBusinessRule
	KindUnauthorized
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindBusinessRule:
		return "business_rule"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

type DomainError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on Code so that a sentinel with a more specific message still
// compares equal to the sentinel it was derived from.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of e carrying a different message.
func (e *DomainError) WithMessage(msg string) *DomainError {
	return &DomainError{Kind: e.Kind, Code: e.Code, Message: msg}
}

func New(kind Kind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

// KindOf reports the Kind of err, or KindInternal if err is not a DomainError.
func KindOf(err error) Kind {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Validation builds a validation error with a caller-facing message.
func Validation(message string) *DomainError {
	return ErrValidation.WithMessage(message)
}

var (
	ErrValidation   = New(KindValidation, "VALIDATION_FAILED", "invalid request")
	ErrUnauthorized = New(KindUnauthorized, "UNAUTHORIZED", "unauthorized")
)
