package property

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by the plain-search entry points when nothing
// matches. Filtered listing returns an empty page instead.
var ErrNotFound = errors.New("no properties found")

// MalformedRowError - the spreadsheet row could not be read as a column
// mapping at all. Missing optional fields are not malformed.
type MalformedRowError struct {
	Index  int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d is malformed: %s", e.Index, e.Reason)
}

// MissingFieldError - a required field is absent or empty after trimming.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// InvalidFieldError - a field is present but cannot be decoded.
type InvalidFieldError struct {
	Field string
	Value string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q", e.Value, e.Field)
}

// PersistenceError wraps a storage failure. Unavailable marks failures of the
// store itself (connection refused, timeout); those abort a running batch,
// while per-record constraint failures such as a duplicate slug stay
// row-scoped.
type PersistenceError struct {
	Op          string
	Err         error
	Unavailable bool
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
