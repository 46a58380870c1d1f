// =============================================================================
// Database to XML Converter - Record Validator
// =============================================================================
//
// This module applies the schema contract to a NormalizedRecord and produces
// a Verdict. All four fields are individually normalized before they arrive
// here; the validator re-checks the schema-level constraints so that nothing
// downstream has to trust the normalizer:
//   - Date matches \d{4}-\d{2}-\d{2}, is a real calendar date, and falls in
//     the plausibility window
//   - Account matches \d{3,12}
//   - Amount matches -?\d+(\.\d{1,2})?
//   - Description, when present, is at most 255 characters
//
// Validation is a pure function: no side effects, deterministic for the
// same input.
//
// =============================================================================

package validator

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/recorderr"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/schema"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/types"
)

// Plausibility window for entry dates. Dates outside this range are assumed
// to be data corruption that survived normalization.
var (
	MinDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	MaxDate = time.Date(2100, 12, 31, 0, 0, 0, 0, time.UTC)
)

// Validator checks normalized records against a schema contract.
type Validator struct {
	contract *schema.Contract
}

// New creates a Validator for the given contract.
func New(contract *schema.Contract) *Validator {
	return &Validator{contract: contract}
}

// Validate produces the Verdict for a single normalized record.
func (v *Validator) Validate(rec types.NormalizedRecord) types.Verdict {
	if err := v.validateDate(rec); err != nil {
		return types.InvalidVerdict(err)
	}
	if err := v.validateAccount(rec); err != nil {
		return types.InvalidVerdict(err)
	}
	if err := v.validateAmount(rec); err != nil {
		return types.InvalidVerdict(err)
	}
	if err := v.validateDescription(rec); err != nil {
		return types.InvalidVerdict(err)
	}
	return types.ValidVerdict()
}

func (v *Validator) validateDate(rec types.NormalizedRecord) error {
	if !v.contract.DatePattern.MatchString(rec.Date) {
		return recorderr.New(recorderr.KindDate, rec.RowID, rec.Date, "date does not match schema pattern")
	}

	t, err := time.Parse("2006-01-02", rec.Date)
	if err != nil {
		return recorderr.New(recorderr.KindDate, rec.RowID, rec.Date, "not a valid calendar date")
	}
	if t.Before(MinDate) || t.After(MaxDate) {
		return recorderr.New(recorderr.KindDate, rec.RowID, rec.Date,
			fmt.Sprintf("date outside plausible range %s..%s",
				MinDate.Format("2006-01-02"), MaxDate.Format("2006-01-02")))
	}
	return nil
}

func (v *Validator) validateAccount(rec types.NormalizedRecord) error {
	if rec.Account == "" {
		return recorderr.New(recorderr.KindAccount, rec.RowID, rec.Account, "account is empty")
	}
	if !v.contract.AccountPattern.MatchString(rec.Account) {
		return recorderr.New(recorderr.KindAccount, rec.RowID, rec.Account, "account does not match schema pattern")
	}
	return nil
}

func (v *Validator) validateAmount(rec types.NormalizedRecord) error {
	if !v.contract.AmountPattern.MatchString(rec.Amount) {
		return recorderr.New(recorderr.KindAmount, rec.RowID, rec.Amount, "amount does not match schema pattern")
	}
	return nil
}

func (v *Validator) validateDescription(rec types.NormalizedRecord) error {
	if rec.Description == nil {
		return nil
	}
	if utf8.RuneCountInString(*rec.Description) > v.contract.MaxDescriptionLength {
		return recorderr.New(recorderr.KindDescription, rec.RowID, *rec.Description,
			fmt.Sprintf("description exceeds %d characters", v.contract.MaxDescriptionLength))
	}
	return nil
}
