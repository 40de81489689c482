// Package dberr classifies store errors into the taxonomy the service
// layer reports across the UI boundary, and provides bounded retry for
// transient SQLITE_BUSY conditions.
package dberr

import (
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// DuplicateTitleError reports a title collision on an entity with a
// globally unique title.
type DuplicateTitleError struct {
	Entity string
	Title  string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("%s with title %q already exists", e.Entity, e.Title)
}

// BusyError is surfaced only after the bounded retry window is exhausted.
type BusyError struct {
	Attempts int
	Err      error
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("store busy after %d attempts: %v", e.Attempts, e.Err)
}

func (e *BusyError) Unwrap() error { return e.Err }

// ConstraintError reports a uniqueness or foreign key violation not
// otherwise classified.
type ConstraintError struct {
	Err error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("store constraint violated: %v", e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// IsBusy reports whether err is a transient SQLITE_BUSY/SQLITE_LOCKED
// response that is worth retrying.
func IsBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

// IsConstraint reports whether err is a uniqueness or FK violation.
func IsConstraint(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	var constraintErr *ConstraintError
	return errors.As(err, &constraintErr)
}

// IsNotFound reports whether err represents a missing record.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateTitle reports whether err is a title collision.
func IsDuplicateTitle(err error) bool {
	var dup *DuplicateTitleError
	return errors.As(err, &dup)
}

// RetryPolicy bounds the automatic retry applied to busy responses.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetry matches the store's own busy window: a handful of attempts
// with a short pause between them.
var DefaultRetry = RetryPolicy{Attempts: 5, Backoff: 50 * time.Millisecond}

// WithRetry runs fn, retrying on busy responses per the policy. The final
// busy error is wrapped in BusyError; any other error is returned as is.
func (p RetryPolicy) WithRetry(fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !IsBusy(err) {
			return err
		}
		time.Sleep(p.Backoff)
	}
	return &BusyError{Attempts: attempts, Err: err}
}
