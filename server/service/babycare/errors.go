package babycare

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrygo/nursery/store"
)

// Kind classifies an Error for presentation and status mapping.
type Kind string

const (
	KindNotFound             Kind = "not_found"
	KindValidation           Kind = "validation"
	KindUnavailable          Kind = "unavailable"
	KindPartialFinalization  Kind = "partial_finalization"
	KindConfirmationRequired Kind = "confirmation_required"
	KindInternal             Kind = "internal"
)

// Error is the error value returned by every Service operation.
// Fields carries the per-field messages of a validation failure.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrNoUpdates is returned by edit operations that were given nothing to change.
var ErrNoUpdates = &Error{Kind: KindValidation, Message: "No updates provided"}

// KindOf returns the kind of err; errors not produced by this package are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func notFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// fromStore classifies a store failure. The store's field messages are kept verbatim.
func fromStore(action string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	var validation *store.ValidationError
	switch {
	case errors.As(err, &validation):
		return &Error{
			Kind:    KindValidation,
			Message: fmt.Sprintf("Failed to %s: %s", action, validation.Message()),
			Fields:  validation.Fields,
			Cause:   err,
		}
	case errors.Is(err, store.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: fmt.Sprintf("Failed to %s: not found", action), Cause: err}
	case store.IsTransient(err), errors.Is(err, context.Canceled):
		return &Error{Kind: KindUnavailable, Message: fmt.Sprintf("Failed to %s: %v", action, err), Cause: err}
	default:
		return &Error{Kind: KindInternal, Message: fmt.Sprintf("Failed to %s: %v", action, err), Cause: err}
	}
}
