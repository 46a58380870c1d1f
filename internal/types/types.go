// =============================================================================
// Database to XML Converter - Shared Types
// =============================================================================
//
// This package contains the record types shared across the pipeline stages.
// Types defined here are used by:
//   - normalizer
//   - validator
//   - pipeline
//   - xmlwriter
//
// Data flows strictly one direction:
//   RawRecord -> NormalizedRecord -> Verdict -> OutputEntry
//
// =============================================================================

package types

// =============================================================================
// RECORD TYPES
// =============================================================================

// RawRecord is a journal entry exactly as read from the source table.
// One RawRecord corresponds to one source row and is never mutated.
type RawRecord struct {
	// RowID is the 1-based position of the row in the read order.
	// Used for error reporting and order preservation.
	RowID int

	// Date is the raw date text (any of the accepted input formats).
	Date string

	// Account is the raw account text (may contain separators, spaces).
	Account string

	// Amount is the raw amount text (may contain currency symbols,
	// thousands grouping, comma decimals).
	Amount string

	// Description is the raw free-text description, nil when the source
	// column was NULL.
	Description *string
}

// NormalizedRecord holds the canonical representation of a single record.
// It is derived from exactly one RawRecord and never mutated afterwards.
type NormalizedRecord struct {
	// RowID carries the source row identity through the pipeline.
	RowID int

	// Date in canonical YYYY-MM-DD form.
	Date string

	// Account as a plain digit string (3-12 digits).
	Account string

	// Amount as signed decimal text with exactly 2 fraction digits.
	Amount string

	// Description is the trimmed description, nil when absent.
	Description *string
}

// =============================================================================
// VERDICT
// =============================================================================

// Verdict classifies a NormalizedRecord after schema-level validation.
type Verdict struct {
	// Valid is true when the record satisfies every schema constraint.
	Valid bool

	// Reason holds the failure when Valid is false, nil otherwise.
	Reason error
}

// ValidVerdict returns the verdict for a record that passed validation.
func ValidVerdict() Verdict {
	return Verdict{Valid: true}
}

// InvalidVerdict returns the verdict for a record that failed validation.
func InvalidVerdict(reason error) Verdict {
	return Verdict{Valid: false, Reason: reason}
}

// =============================================================================
// OUTPUT ENTRY
// =============================================================================

// OutputEntry is the serialized form of a valid NormalizedRecord, 1:1 with it.
// Field order here mirrors the fixed element order of the output document:
// Date, Account, Amount, Description.
type OutputEntry struct {
	Date        string
	Account     string
	Amount      string
	Description *string
}

// EntryFromRecord converts a valid NormalizedRecord into its OutputEntry.
func EntryFromRecord(rec NormalizedRecord) OutputEntry {
	return OutputEntry{
		Date:        rec.Date,
		Account:     rec.Account,
		Amount:      rec.Amount,
		Description: rec.Description,
	}
}
