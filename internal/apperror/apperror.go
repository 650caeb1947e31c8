package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary
type Kind int

const (
	KindUnknown Kind = iota
	KindInputValidation
	KindInvalidInput
	KindDomain
	KindNotFound
	KindConflict
	KindInfrastructure
)

// String returns the kind name used in logs
func (k Kind) String() string {
	switch k {
	case KindInputValidation:
		return "input_validation"
	case KindInvalidInput:
		return "invalid_input"
	case KindDomain:
		return "domain"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInfrastructure:
		return "infrastructure"
	default:
		return "unknown"
	}
}

// Error is the single error type produced by every layer of the catalog.
// Field is only set for input-validation errors, Err only for infrastructure errors.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, &Error{Kind: KindNotFound}) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Domain reports an invariant violation inside the domain model
func Domain(format string, args ...interface{}) error {
	return newError(KindDomain, format, args...)
}

// InvalidInput reports a DTO that cannot be assembled into the domain
func InvalidInput(format string, args ...interface{}) error {
	return newError(KindInvalidInput, format, args...)
}

// NotFound reports a lookup by identifier that returned nothing
func NotFound(format string, args ...interface{}) error {
	return newError(KindNotFound, format, args...)
}

// Conflict reports a uniqueness violation
func Conflict(format string, args ...interface{}) error {
	return newError(KindConflict, format, args...)
}

// InputValidation reports a request schema violation on a single field
func InputValidation(field, message string) error {
	return &Error{Kind: KindInputValidation, Field: field, Message: message}
}

// Infrastructure wraps a driver or otherwise unexpected failure
func Infrastructure(message string, cause error) error {
	return &Error{Kind: KindInfrastructure, Message: message, Err: cause}
}

// Preserve returns err unchanged when it already carries a kind the caller
// must see (domain, conflict); everything else becomes an infrastructure error.
func Preserve(message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case KindDomain, KindConflict, KindInfrastructure:
			return err
		}
	}
	return Infrastructure(message, err)
}

// KindOf extracts the kind of err, KindUnknown for foreign errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// MessageOf returns the user visible message of err
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsDomain reports whether err is a domain error
func IsDomain(err error) bool {
	return KindOf(err) == KindDomain
}

// IsConflict reports whether err is a conflict error
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}
