// =============================================================================
// Database to XML Converter - XLSX Rule Template
// =============================================================================
//
// Loads field rule overrides for the Journal contract from an XLSX rule
// template. The template carries one row per field on its first sheet:
//
//   | Field       | Pattern              | MaxLength |
//   | Date        | \d{4}-\d{2}-\d{2}    |           |
//   | Account     | \d{3,10}             |           |
//   | Description |                      | 120       |
//
// Empty cells keep the built-in rule. This exists for consumers whose
// intake systems enforce stricter rules than the published schema (shorter
// account ranges, tighter description limits); the template can only ever
// narrow the contract in practice, the published XSD stays the source of
// truth.
//
// =============================================================================

package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Template column indexes on the rule sheet.
const (
	columnField     = 0
	columnPattern   = 1
	columnMaxLength = 2
)

// LoadTemplate reads an XLSX rule template and returns the default contract
// with the template's overrides applied.
func LoadTemplate(path string) (*Contract, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule template: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("rule template has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rule sheet: %w", err)
	}

	contract := Default()
	for i, row := range rows {
		if isHeaderRow(i, row) || isEmptyRow(row) {
			continue
		}
		if err := applyRuleRow(contract, row); err != nil {
			return nil, fmt.Errorf("rule template row %d: %w", i+1, err)
		}
	}
	return contract, nil
}

// applyRuleRow applies a single template row to the contract.
func applyRuleRow(contract *Contract, row []string) error {
	field := strings.TrimSpace(cell(row, columnField))
	pattern := strings.TrimSpace(cell(row, columnPattern))
	maxLength := strings.TrimSpace(cell(row, columnMaxLength))

	switch field {
	case DateElement, AccountElement, AmountElement:
		if pattern == "" {
			return nil
		}
		re, err := regexp.Compile("^" + pattern + "$")
		if err != nil {
			return fmt.Errorf("invalid pattern for %s: %w", field, err)
		}
		switch field {
		case DateElement:
			contract.DatePattern = re
		case AccountElement:
			contract.AccountPattern = re
		case AmountElement:
			contract.AmountPattern = re
		}
		return nil

	case DescriptionElement:
		if maxLength == "" {
			return nil
		}
		limit, err := strconv.Atoi(maxLength)
		if err != nil || limit <= 0 {
			return fmt.Errorf("invalid max length %q for %s", maxLength, field)
		}
		contract.MaxDescriptionLength = limit
		return nil

	default:
		return fmt.Errorf("unknown field %q", field)
	}
}

// cell returns row[index] or empty when the row is short.
func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return row[index]
}

// isHeaderRow detects the optional header row by its first cell.
func isHeaderRow(index int, row []string) bool {
	return index == 0 && strings.EqualFold(strings.TrimSpace(cell(row, columnField)), "field")
}

// isEmptyRow reports whether every cell in the row is blank.
func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
