package apperr

import (
	"errors"

	"slot-swapper-api/internal/store"
)

// FromStore converts a store error into the taxonomy. Errors that already
// carry a code pass through. Anything unrecognised is reported as TRANSIENT:
// the transaction was rolled back, so the caller may retry the whole call.
func FromStore(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var e *Error
	switch {
	case errors.As(err, &e):
		return e
	case errors.Is(err, store.ErrNotFound):
		return New(NotFound, notFound)
	case errors.Is(err, store.ErrDuplicate):
		return New(Conflict, "already exists")
	default:
		return New(Transient, "temporary storage failure, retry")
	}
}
