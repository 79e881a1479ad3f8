package task

import (
	"errors"
	"fmt"
)

// ErrEmptyID marks a record with a missing or whitespace-only task id.
// Batch ingestion skips these rather than failing (tolerant-ingestion
// policy); the skip is surfaced as a warning.
var ErrEmptyID = errors.New("task record has empty id")

// ValidationError describes a record that cannot be normalized into a Task.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid task record: field %q (%v): %s", e.Field, e.Value, e.Reason)
}
