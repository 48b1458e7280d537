package quiz

import (
	"fmt"

	"github.com/google/uuid"
)

// DataUnavailableError wraps a read failure against the backing store:
// the store could not be reached or the query itself failed.
type DataUnavailableError struct {
	Op  string
	Err error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s: store unavailable: %v", e.Op, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed insert or update. Causes (constraint
// violation, permission denial, network failure) are not distinguished;
// the caller decides whether to retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: write failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotFoundError reports that a referenced id does not resolve to a record.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidStateError reports an operation attempted against a session whose
// state forbids it, e.g. updating a session that is already completed.
type InvalidStateError struct{ Message string }

func (e *InvalidStateError) Error() string { return e.Message }

// InsufficientPoolError reports that the filtered catalog is too small to
// build the requested quiz.
type InsufficientPoolError struct {
	Need int
	Have int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("not enough birds for a quiz: need %d, have %d", e.Need, e.Have)
}
