package services

import (
	"errors"

	"github.com/berean-study/berean/internal/database/dberr"
	"github.com/berean-study/berean/internal/versification"
)

// ErrorKind classifies a failed mutation for the UI layer.
type ErrorKind string

const (
	ErrorNotFound       ErrorKind = "not_found"
	ErrorDuplicateTitle ErrorKind = "duplicate_title"
	ErrorUnknownBook    ErrorKind = "unknown_book"
	ErrorOutOfRange     ErrorKind = "out_of_range"
	ErrorStoreBusy      ErrorKind = "store_busy"
	ErrorConstraint     ErrorKind = "store_constraint"
	ErrorInternal       ErrorKind = "internal"
)

// MutationResult is the structured outcome of every mutating operation.
// Failures are carried as data, never raised across the UI boundary.
type MutationResult struct {
	Success bool        `json:"success"`
	Record  interface{} `json:"db_object,omitempty"`
	Error   ErrorKind   `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func okResult(record interface{}) MutationResult {
	return MutationResult{Success: true, Record: record}
}

func failResult(err error) MutationResult {
	return MutationResult{Success: false, Error: classify(err), Message: err.Error()}
}

func classify(err error) ErrorKind {
	var notFound *dberr.NotFoundError
	var duplicate *dberr.DuplicateTitleError
	var busy *dberr.BusyError
	var constraint *dberr.ConstraintError
	var unknownBook *versification.UnknownBookError
	var outOfRange *versification.RangeError
	switch {
	case errors.As(err, &notFound):
		return ErrorNotFound
	case errors.As(err, &duplicate):
		return ErrorDuplicateTitle
	case errors.As(err, &unknownBook):
		return ErrorUnknownBook
	case errors.As(err, &outOfRange):
		return ErrorOutOfRange
	case errors.As(err, &busy):
		return ErrorStoreBusy
	case errors.As(err, &constraint):
		return ErrorConstraint
	default:
		return ErrorInternal
	}
}
