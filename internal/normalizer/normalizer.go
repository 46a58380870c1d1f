// =============================================================================
// Database to XML Converter - Field Normalizer
// =============================================================================
//
// This module converts raw textual fields into the canonical representations
// required by the Journal schema. Every function is total: each input
// produces either a canonical value or a typed record error. No partial or
// ambiguous value ever reaches the validator.
//
// NORMALIZATION RULES:
//   Date        : fixed, ordered list of accepted layouts. The first layout
//                 whose shape structurally matches the input decides; if the
//                 matched value is not a real calendar date the field fails
//                 without falling through to later layouts. Ambiguous numeric
//                 forms (e.g. "03/04/2024") are therefore resolved by list
//                 priority, not per-record guessing.
//   Amount      : currency symbols and whitespace stripped, decimal and
//                 thousands separators resolved by context (or forced via
//                 configuration), rounded half-up to 2 fraction digits.
//   Account     : non-digits stripped, 3-12 digits required.
//   Description : trimmed, never truncated, 255 characters maximum.
//
// =============================================================================

package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/recorderr"
)

// =============================================================================
// OPTIONS
// =============================================================================

// SeparatorMode controls how the decimal separator of an amount is resolved.
type SeparatorMode string

const (
	// SeparatorAuto detects the decimal separator from context.
	SeparatorAuto SeparatorMode = "auto"

	// SeparatorComma forces "," as the decimal separator ("." is grouping).
	SeparatorComma SeparatorMode = "comma"

	// SeparatorDot forces "." as the decimal separator ("," is grouping).
	SeparatorDot SeparatorMode = "dot"
)

// DefaultDateFormats is the documented format priority order, highest first.
// Layouts use Go reference time notation.
var DefaultDateFormats = []string{
	"2006-01-02",          // ISO date
	"2006-01-02T15:04:05", // ISO datetime with T
	"2006-01-02 15:04:05", // ISO datetime with space
	"01/02/2006",          // US format MM/DD/YYYY
	"02-01-2006",          // European format DD-MM-YYYY
}

// Options configures a Normalizer.
type Options struct {
	// DateFormats is the ordered list of accepted date layouts.
	// Empty means DefaultDateFormats.
	DateFormats []string

	// DecimalSeparator selects the amount separator policy.
	// Empty means SeparatorAuto.
	DecimalSeparator SeparatorMode

	// MaxDescriptionLength is the description character limit.
	// Zero means 255, the schema contract limit.
	MaxDescriptionLength int
}

// =============================================================================
// NORMALIZER
// =============================================================================

// Normalizer holds compiled normalization rules. Its methods are pure and
// safe for reuse across records.
type Normalizer struct {
	formats    []dateFormat
	decimalSep SeparatorMode
	maxDescLen int
}

// dateFormat pairs a Go time layout with the structural pattern derived
// from it. The pattern decides whether the layout claims an input; the
// layout then decides whether the claimed input is a real date.
type dateFormat struct {
	layout  string // lenient layout used for parsing
	display string // layout as configured, for error messages
	shape   *regexp.Regexp
}

// New creates a Normalizer from the given options.
func New(opts Options) (*Normalizer, error) {
	layouts := opts.DateFormats
	if len(layouts) == 0 {
		layouts = DefaultDateFormats
	}

	formats := make([]dateFormat, 0, len(layouts))
	for _, layout := range layouts {
		df, err := compileDateFormat(layout)
		if err != nil {
			return nil, fmt.Errorf("invalid date format %q: %w", layout, err)
		}
		formats = append(formats, df)
	}

	sep := opts.DecimalSeparator
	if sep == "" {
		sep = SeparatorAuto
	}
	switch sep {
	case SeparatorAuto, SeparatorComma, SeparatorDot:
	default:
		return nil, fmt.Errorf("invalid decimal separator mode %q", sep)
	}

	maxDescLen := opts.MaxDescriptionLength
	if maxDescLen == 0 {
		maxDescLen = 255
	}

	return &Normalizer{
		formats:    formats,
		decimalSep: sep,
		maxDescLen: maxDescLen,
	}, nil
}

// =============================================================================
// DATE NORMALIZATION
// =============================================================================

// NormalizeDate converts a raw date to canonical YYYY-MM-DD form.
//
// The formats are tried in priority order. The first format whose shape
// matches the input claims it; a claimed input that is not a valid calendar
// date fails immediately, later formats are not consulted.
func (n *Normalizer) NormalizeDate(rowID int, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", recorderr.New(recorderr.KindDate, rowID, raw, "empty date")
	}

	for _, f := range n.formats {
		if !f.shape.MatchString(s) {
			continue
		}
		t, err := time.Parse(f.layout, s)
		if err != nil {
			return "", recorderr.New(recorderr.KindDate, rowID, raw,
				fmt.Sprintf("not a valid calendar date for format %s", f.display))
		}
		return t.Format("2006-01-02"), nil
	}

	return "", recorderr.New(recorderr.KindDate, rowID, raw, "unrecognized date format")
}

// compileDateFormat derives the structural pattern for a Go time layout and
// a lenient parsing layout that accepts unpadded month and day components.
func compileDateFormat(layout string) (dateFormat, error) {
	var shape strings.Builder
	var lenient strings.Builder
	shape.WriteString(`^`)

	rest := layout
	seen := false
	for len(rest) > 0 {
		switch {
		case strings.HasPrefix(rest, "2006"):
			shape.WriteString(`\d{4}`)
			lenient.WriteString("2006")
			rest = rest[4:]
			seen = true
		case strings.HasPrefix(rest, "15"):
			shape.WriteString(`\d{2}`)
			lenient.WriteString("15")
			rest = rest[2:]
		case strings.HasPrefix(rest, "01"):
			shape.WriteString(`\d{1,2}`)
			lenient.WriteString("1")
			rest = rest[2:]
			seen = true
		case strings.HasPrefix(rest, "02"):
			shape.WriteString(`\d{1,2}`)
			lenient.WriteString("2")
			rest = rest[2:]
			seen = true
		case strings.HasPrefix(rest, "04"):
			shape.WriteString(`\d{2}`)
			lenient.WriteString("4")
			rest = rest[2:]
		case strings.HasPrefix(rest, "05"):
			shape.WriteString(`\d{2}`)
			lenient.WriteString("5")
			rest = rest[2:]
		default:
			r, size := utf8.DecodeRuneInString(rest)
			if unicode.IsDigit(r) {
				return dateFormat{}, fmt.Errorf("unsupported layout component at %q", rest)
			}
			shape.WriteString(regexp.QuoteMeta(string(r)))
			lenient.WriteString(string(r))
			rest = rest[size:]
		}
	}
	if !seen {
		return dateFormat{}, fmt.Errorf("layout has no date components")
	}
	shape.WriteString(`$`)

	re, err := regexp.Compile(shape.String())
	if err != nil {
		return dateFormat{}, err
	}
	return dateFormat{layout: lenient.String(), display: layout, shape: re}, nil
}

// =============================================================================
// AMOUNT NORMALIZATION
// =============================================================================

// currencySymbols are stripped from amounts before parsing.
const currencySymbols = "$€£¥"

// NormalizeAmount converts a raw amount to signed decimal text with exactly
// two fraction digits.
//
// Separator resolution in auto mode: the last "," or "." followed by 1-2
// trailing digits is the decimal point; a separator followed by a 3-digit
// group and further content is thousands grouping and removed. A single
// separator with a 3-digit tail is read as a decimal point and the value
// rounded.
func (n *Normalizer) NormalizeAmount(rowID int, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", recorderr.New(recorderr.KindAmount, rowID, raw, "empty amount")
	}

	// Strip currency symbols and interior whitespace.
	var cleaned strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || strings.ContainsRune(currencySymbols, r) {
			continue
		}
		cleaned.WriteRune(r)
	}
	s = cleaned.String()

	// Extract the sign.
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	// Only digits and separators may remain.
	for _, r := range s {
		if !unicode.IsDigit(r) && r != ',' && r != '.' {
			return "", recorderr.New(recorderr.KindAmount, rowID, raw,
				fmt.Sprintf("unexpected character %q", r))
		}
	}

	intPart, fracPart, err := n.splitAmount(s)
	if err != nil {
		return "", recorderr.New(recorderr.KindAmount, rowID, raw, err.Error())
	}
	if intPart == "" && fracPart == "" {
		return "", recorderr.New(recorderr.KindAmount, rowID, raw, "no digits")
	}
	if intPart == "" {
		intPart = "0"
	}

	text := intPart
	if fracPart != "" {
		text += "." + fracPart
	}
	if neg {
		text = "-" + text
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return "", recorderr.New(recorderr.KindAmount, rowID, raw, "not a valid decimal")
	}

	// Round half-up to two places; canonicalizes "-0" to "0.00" as well.
	return d.Round(2).StringFixed(2), nil
}

// splitAmount resolves separators and returns the digit-only integer and
// fraction parts.
func (n *Normalizer) splitAmount(s string) (string, string, error) {
	last := strings.LastIndexAny(s, ",.")
	if last == -1 {
		return s, "", nil
	}

	var decimalAt int
	switch n.decimalSep {
	case SeparatorComma:
		decimalAt = forcedDecimalIndex(s, ',')
	case SeparatorDot:
		decimalAt = forcedDecimalIndex(s, '.')
	default:
		tail := len(s) - last - 1
		switch {
		case tail >= 1 && tail <= 2:
			decimalAt = last
		case tail == 3 && strings.Count(s, ",")+strings.Count(s, ".") == 1:
			// Lone separator with a 3-digit tail: decimal point, rounded later.
			decimalAt = last
		default:
			// Trailing group of 3 with other separators present: grouping.
			decimalAt = -1
		}
	}

	intRaw := s
	frac := ""
	if decimalAt >= 0 {
		intRaw = s[:decimalAt]
		frac = s[decimalAt+1:]
		if frac == "" {
			return "", "", fmt.Errorf("no digits after decimal separator")
		}
		if strings.ContainsAny(frac, ",.") {
			return "", "", fmt.Errorf("separator after decimal point")
		}
	}

	intDigits, err := stripGrouping(intRaw)
	if err != nil {
		return "", "", err
	}
	return intDigits, frac, nil
}

// forcedDecimalIndex locates the decimal separator when the mode pins it to
// a specific character. Returns -1 when the character is absent; a repeated
// decimal character is rejected via the grouping check that follows.
func forcedDecimalIndex(s string, sep byte) int {
	first := strings.IndexByte(s, sep)
	if first != strings.LastIndexByte(s, sep) {
		// Repeated decimal character cannot be a decimal point.
		return -1
	}
	return first
}

// stripGrouping removes thousands separators from the integer part,
// requiring every group after a separator to hold exactly 3 digits.
func stripGrouping(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	groups := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '.' })
	seps := strings.Count(s, ",") + strings.Count(s, ".")
	if seps == 0 {
		return s, nil
	}
	if len(groups) != seps+1 {
		return "", fmt.Errorf("malformed thousands grouping")
	}
	for i, g := range groups {
		if i == 0 {
			if len(g) < 1 || len(g) > 3 {
				return "", fmt.Errorf("malformed thousands grouping")
			}
			continue
		}
		if len(g) != 3 {
			return "", fmt.Errorf("thousands group %q is not 3 digits", g)
		}
	}
	return strings.Join(groups, ""), nil
}

// =============================================================================
// ACCOUNT NORMALIZATION
// =============================================================================

// NormalizeAccount strips every non-digit character and requires the
// remaining digit count to fall within [3,12].
func (n *Normalizer) NormalizeAccount(rowID int, raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	account := digits.String()
	if len(account) < 3 || len(account) > 12 {
		return "", recorderr.New(recorderr.KindAccount, rowID, raw,
			fmt.Sprintf("account must contain 3-12 digits, got %d", len(account)))
	}
	return account, nil
}

// =============================================================================
// DESCRIPTION NORMALIZATION
// =============================================================================

// NormalizeDescription trims the description and enforces the length limit.
// Absent input stays absent; a trimmed-empty description is treated as
// absent. Overlong descriptions fail the record, never truncate.
func (n *Normalizer) NormalizeDescription(rowID int, raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}

	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > n.maxDescLen {
		return nil, recorderr.New(recorderr.KindDescription, rowID, *raw,
			fmt.Sprintf("description exceeds %d characters", n.maxDescLen))
	}
	return &trimmed, nil
}
