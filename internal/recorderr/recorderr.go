// =============================================================================
// Database to XML Converter - Record Error Taxonomy
// =============================================================================
//
// This package defines the per-record failure value used throughout the
// pipeline. A record failure is ordinary data, not control flow: the
// normalizer and validator return it, the pipeline inspects it, the report
// counts it. Record errors never abort a run.
//
// The kind set is closed: date, amount, account, description.
//
// =============================================================================

package recorderr

import (
	"errors"
	"fmt"
)

// Kind identifies which field of a record failed.
type Kind string

// The closed set of record failure kinds.
const (
	KindDate        Kind = "date"
	KindAmount      Kind = "amount"
	KindAccount     Kind = "account"
	KindDescription Kind = "description"
)

// Kinds lists every failure kind in reporting order.
func Kinds() []Kind {
	return []Kind{KindDate, KindAccount, KindAmount, KindDescription}
}

// Error describes a single field failing normalization or validation.
type Error struct {
	// Kind is the failing field category.
	Kind Kind

	// RowID identifies the source row, 1-based read order.
	RowID int

	// Value is the offending raw value.
	Value string

	// Reason is a human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("row %d: %s %q: %s", e.RowID, e.Kind, e.Value, e.Reason)
}

// New creates a record error for the given kind.
func New(kind Kind, rowID int, value, reason string) *Error {
	return &Error{Kind: kind, RowID: rowID, Value: value, Reason: reason}
}

// KindOf extracts the failure kind from an error, or empty string when err
// is not a record error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// IsRecordError reports whether err is a per-record failure (as opposed to
// a fatal run-level error).
func IsRecordError(err error) bool {
	var re *Error
	return errors.As(err, &re)
}
