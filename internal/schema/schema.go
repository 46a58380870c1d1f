// =============================================================================
// Database to XML Converter - Journal Schema Contract
// =============================================================================
//
// This module holds the output document contract the emitter and the final
// whole-document check must satisfy exactly:
//
//   <Journal>
//     <Entry>                       (one or more)
//       <Date>        \d{4}-\d{2}-\d{2}          required
//       <Account>     \d{3,12}                   required
//       <Amount>      -?\d+(\.\d{1,2})?          required
//       <Description> max length 255             optional
//     </Entry>
//   </Journal>
//
// Element order within Entry is fixed: Date, Account, Amount, Description.
//
// The contract is defined in code; field rules may additionally be loaded
// from an XLSX rule template (see template.go).
//
// =============================================================================

package schema

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/types"
)

// =============================================================================
// CONTRACT
// =============================================================================

// Element names of the output document.
const (
	RootElement        = "Journal"
	EntryElement       = "Entry"
	DateElement        = "Date"
	AccountElement     = "Account"
	AmountElement      = "Amount"
	DescriptionElement = "Description"
)

// Default field rules.
const (
	DefaultDatePattern          = `^\d{4}-\d{2}-\d{2}$`
	DefaultAccountPattern       = `^\d{3,12}$`
	DefaultAmountPattern        = `^-?\d+(\.\d{1,2})?$`
	DefaultMaxDescriptionLength = 255
)

// Contract is the compiled schema contract.
type Contract struct {
	DatePattern          *regexp.Regexp
	AccountPattern       *regexp.Regexp
	AmountPattern        *regexp.Regexp
	MaxDescriptionLength int

	// MinEntries is the minimum number of Entry elements a conformant
	// document must contain. The schema requires at least one.
	MinEntries int
}

// Default returns the built-in Journal contract.
func Default() *Contract {
	return &Contract{
		DatePattern:          regexp.MustCompile(DefaultDatePattern),
		AccountPattern:       regexp.MustCompile(DefaultAccountPattern),
		AmountPattern:        regexp.MustCompile(DefaultAmountPattern),
		MaxDescriptionLength: DefaultMaxDescriptionLength,
		MinEntries:           1,
	}
}

// =============================================================================
// WHOLE-DOCUMENT CHECK
// =============================================================================

// CheckDocument validates an assembled document against the contract as a
// whole-document post-condition. A failure here is fatal for the run: the
// document must not be published.
func (c *Contract) CheckDocument(entries []types.OutputEntry) error {
	if len(entries) < c.MinEntries {
		return fmt.Errorf("document has %d entries, schema requires at least %d",
			len(entries), c.MinEntries)
	}

	for i, entry := range entries {
		if err := c.CheckEntry(entry); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return nil
}

// CheckEntry validates a single output entry against the contract.
func (c *Contract) CheckEntry(entry types.OutputEntry) error {
	if !c.DatePattern.MatchString(entry.Date) {
		return fmt.Errorf("Date %q does not match %s", entry.Date, c.DatePattern)
	}
	if !c.AccountPattern.MatchString(entry.Account) {
		return fmt.Errorf("Account %q does not match %s", entry.Account, c.AccountPattern)
	}
	if !c.AmountPattern.MatchString(entry.Amount) {
		return fmt.Errorf("Amount %q does not match %s", entry.Amount, c.AmountPattern)
	}
	if entry.Description != nil && utf8.RuneCountInString(*entry.Description) > c.MaxDescriptionLength {
		return fmt.Errorf("Description exceeds %d characters", c.MaxDescriptionLength)
	}
	return nil
}
