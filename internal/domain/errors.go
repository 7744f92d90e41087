package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is matched by every InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError rejects a query before the table is consulted.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// SchemaError reports a dataset whose header cannot be used. It is fatal at startup.
type SchemaError struct {
	Missing []string
	Reason  string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("dataset schema: missing columns: %s", strings.Join(e.Missing, ", "))
	}
	return "dataset schema: " + e.Reason
}

// RowError reports a malformed or duplicate data row. Line is 1-based and counts
// the header. Previous is the line of the first row with the same key for
// duplicates, zero otherwise.
type RowError struct {
	Line     int
	Previous int
	Column   string
	Err      error
}

func (e *RowError) Error() string {
	switch {
	case e.Previous > 0:
		return fmt.Sprintf("dataset line %d: %v (first seen at line %d)", e.Line, e.Err, e.Previous)
	case e.Column == "":
		return fmt.Sprintf("dataset line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("dataset line %d, column %q: %v", e.Line, e.Column, e.Err)
	}
}

func (e *RowError) Unwrap() error { return e.Err }

// ErrDuplicateKey is wrapped by a RowError when two rows share a key.
var ErrDuplicateKey = errors.New("duplicate configuration key")
