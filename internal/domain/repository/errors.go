package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrReferenceMissing reports a foreign key pointing at no row.
	ErrReferenceMissing = errors.New("referenced record does not exist")
)

// UniqueViolationError reports a write rejected by a unique constraint.
// Field is empty when the store could not say which column collided.
type UniqueViolationError struct {
	Field      string
	Constraint string
}

func (e *UniqueViolationError) Error() string {
	if e.Field == "" {
		return "unique constraint violated"
	}
	return fmt.Sprintf("unique constraint violated on %s", e.Field)
}
