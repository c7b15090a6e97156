package engine

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/induct-org/induct/hierarchy"
	"github.com/induct-org/induct/relation"
)

// ============================================================================
// ERROR TAXONOMY
// ============================================================================
// Sentinels for the caller to branch on with errors.Is, plus one rich error
// type carrying the offending attribute, row, and value. Threshold failures
// are NOT errors — the engine reports those as Result warnings and keeps the
// best achievable output.
// ============================================================================

var (
	// ErrEmptyRelation is returned when Run is given a relation with no tuples.
	ErrEmptyRelation = errors.New("empty relation")

	// ErrInvalidConfig is returned when the run configuration is inconsistent
	// with itself or with the input schema.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownValue marks an input value absent from its attribute's
	// hierarchy. Identical to the hierarchy package's sentinel, re-exported so
	// engine callers need not import it.
	ErrUnknownValue = hierarchy.ErrUnknownValue
)

// UnknownValueError reports an input value that its attribute's hierarchy
// cannot place. Row is the zero-based index of the first tuple holding the
// value. It matches ErrUnknownValue under errors.Is.
type UnknownValueError struct {
	Attribute string
	Row       int
	Value     relation.Value

	cause error
}

func newUnknownValueError(attr string, row int, v relation.Value, cause error) *UnknownValueError {
	return &UnknownValueError{Attribute: attr, Row: row, Value: v, cause: cause}
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("attribute %q: value %#v at row %d not in hierarchy",
		e.Attribute, e.Value, e.Row)
}

func (e *UnknownValueError) Unwrap() error { return e.cause }
