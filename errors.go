package twalk

import (
	"errors"
	"fmt"
)

// Tokenizing errors. Any of these means the document was never touched.
var (
	// ErrEmptyPath is returned when the path string is empty.
	ErrEmptyPath = errors.New("empty path")

	// ErrEmptyIdentifier is returned when a path segment is empty after
	// splitting (leading/trailing or doubled separator).
	ErrEmptyIdentifier = errors.New("empty identifier in path")

	// ErrIndexNotAnInteger is returned when a bracketed segment does not
	// contain a valid integer ("[]", "[a]", "[1.5]").
	ErrIndexNotAnInteger = errors.New("array access without integer index")
)

// Resolution errors. A read that fails with one of these never mutated the
// document; an insert may have created intermediate containers before the
// failing segment.
var (
	// ErrNoIndexInTable is returned when an index segment is applied to a
	// table node.
	ErrNoIndexInTable = errors.New("cannot index into table")

	// ErrExpectedTable is returned when an identifier segment is applied
	// to a non-table node.
	ErrExpectedTable = errors.New("identifier can only address a table")

	// ErrExpectedArray is returned when an index segment is applied to a
	// scalar node.
	ErrExpectedArray = errors.New("index can only address an array")
)

// Delete errors.
var (
	ErrCannotDeleteNonEmptyTable = errors.New("cannot delete non-empty table")
	ErrCannotDeleteNonEmptyArray = errors.New("cannot delete non-empty array")
)

// ErrNullValue is returned by the JSON bridge: the document union has no
// null variant.
var ErrNullValue = errors.New("document values cannot represent null")

// TypeError reports that a resolved value's kind did not match the caller's
// expectation.
type TypeError struct {
	Expected Kind
	Actual   Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// NotFoundError reports that a typed getter found nothing at the path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("nothing found at %q", e.Path)
}
