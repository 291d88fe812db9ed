package contracts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSnapshotNotFound is returned by snapshot stores when a generation
// does not exist for a domain
var ErrSnapshotNotFound = errors.New("snapshot not found")

// MissingFieldError reports a required raw field absent from an entity record
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// InvalidValueError reports a field that cannot be coerced to the
// expected numeric type
type InvalidValueError struct {
	Field string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q", e.Value, e.Field)
}

// ValidationError reports a malformed record during commit.
// The commit is aborted; previously committed state is untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// InsufficientHistoryError reports a diff requested before both
// generations exist. Recoverable: callers treat it as "no deltas yet".
type InsufficientHistoryError struct {
	Domain  string
	Missing Generation
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history for domain %q: no %s snapshot", e.Domain, e.Missing)
}

// IncompleteSnapshotError aborts a freeze whose required artifacts are
// not all present. Every missing artifact is listed, not just the first.
type IncompleteSnapshotError struct {
	Period  string
	Missing []string
}

func (e *IncompleteSnapshotError) Error() string {
	return fmt.Sprintf("freeze of period %q aborted, missing required artifacts: %s",
		e.Period, strings.Join(e.Missing, ", "))
}

// AlreadyFrozenError aborts a re-freeze of an archived period
type AlreadyFrozenError struct {
	Period   string
	Manifest string
}

func (e *AlreadyFrozenError) Error() string {
	return fmt.Sprintf("period %q is already frozen (manifest: %s)", e.Period, e.Manifest)
}
