// =============================================================================
// Database to XML Converter - XSD Generation
// =============================================================================
//
// Generates the XSD document describing the Journal contract, so downstream
// consumers can validate our output with stock XML tooling. The generated
// schema mirrors Contract exactly: any document accepted by CheckDocument
// validates against this XSD and vice versa.
//
// =============================================================================

package schema

import (
	"bytes"
	"fmt"
	"strings"
)

// XSD renders the contract as an XML Schema Definition document.
func (c *Contract) XSD() []byte {
	var buffer bytes.Buffer

	buffer.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">

`)

	// Root element: Journal with at least MinEntries entries.
	buffer.WriteString(fmt.Sprintf(`  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="%s" minOccurs="%d" maxOccurs="unbounded"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>

`, RootElement, EntryElement, c.MinEntries))

	// Entry element: fixed child order Date, Account, Amount, Description.
	buffer.WriteString(fmt.Sprintf(`  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
`, EntryElement))

	writePatternElement(&buffer, DateElement, xsdPattern(c.DatePattern.String()), true)
	writePatternElement(&buffer, AccountElement, xsdPattern(c.AccountPattern.String()), true)
	writePatternElement(&buffer, AmountElement, xsdPattern(c.AmountPattern.String()), true)
	writeLengthElement(&buffer, DescriptionElement, c.MaxDescriptionLength, false)

	buffer.WriteString(`      </xs:sequence>
    </xs:complexType>
  </xs:element>

</xs:schema>
`)

	return buffer.Bytes()
}

// writePatternElement writes an element restricted by a regex pattern.
func writePatternElement(buffer *bytes.Buffer, name, pattern string, required bool) {
	minOccurs := "0"
	if required {
		minOccurs = "1"
	}

	buffer.WriteString(fmt.Sprintf(`        <xs:element name="%s" minOccurs="%s">
          <xs:simpleType>
            <xs:restriction base="xs:string">
              <xs:pattern value="%s"/>
            </xs:restriction>
          </xs:simpleType>
        </xs:element>
`, name, minOccurs, escapeAttr(pattern)))
}

// writeLengthElement writes an element restricted by a maximum length.
func writeLengthElement(buffer *bytes.Buffer, name string, maxLength int, required bool) {
	minOccurs := "0"
	if required {
		minOccurs = "1"
	}

	buffer.WriteString(fmt.Sprintf(`        <xs:element name="%s" minOccurs="%s">
          <xs:simpleType>
            <xs:restriction base="xs:string">
              <xs:maxLength value="%d"/>
            </xs:restriction>
          </xs:simpleType>
        </xs:element>
`, name, minOccurs, maxLength))
}

// xsdPattern converts a Go anchored regex to XSD pattern form.
// XSD patterns are implicitly anchored, so the ^ and $ markers are dropped.
func xsdPattern(pattern string) string {
	pattern = strings.TrimPrefix(pattern, "^")
	pattern = strings.TrimSuffix(pattern, "$")
	return pattern
}

// escapeAttr escapes characters not allowed inside an XML attribute value.
func escapeAttr(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
