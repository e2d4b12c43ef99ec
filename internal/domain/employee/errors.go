package employee

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound - no record with the given id exists.
	ErrNotFound = errors.New("employee not found")
	// ErrNotVisible - the record exists but is soft-deleted. Kept distinct
	// from ErrNotFound so callers can tell "never existed" from "was removed".
	ErrNotVisible = errors.New("employee is not visible")
	// ErrPrivate - the record exists but is marked private.
	ErrPrivate = errors.New("employee is private")
)

// UnconfirmedDataError - the record is visible but its owner has not
// confirmed it yet. Carries name and email so the caller can prompt
// re-confirmation.
type UnconfirmedDataError struct {
	Name  string
	Email string
}

func (e *UnconfirmedDataError) Error() string {
	return fmt.Sprintf("employee %s has to confirm data, check %s mail", e.Name, e.Email)
}
