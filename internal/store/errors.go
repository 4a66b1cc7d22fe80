// ABOUTME: Error taxonomy for the note store.
// ABOUTME: Validation errors are sentinels; backend failures wrap into PersistenceError.

package store

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIndex        = errors.New("index out of range")
	ErrInvalidCategory     = errors.New("category does not exist")
	ErrInvalidCategoryName = errors.New("category name cannot be empty")
	ErrDuplicateCategory   = errors.New("category already exists")
	ErrNoteNotFound        = errors.New("note not found")
	ErrNoInstance          = errors.New("note store is not open")
	ErrPersistence         = errors.New("persistence failure")
)

// PersistenceError reports a failed backend call. It matches both
// ErrPersistence and the underlying error with errors.Is.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

func invalidIndex(what string, index, length int) error {
	return fmt.Errorf("%w: %s %d (have %d)", ErrInvalidIndex, what, index, length)
}
