// =============================================================================
// Database to XML Converter - XML Writer Module
// =============================================================================
//
// This module serializes the ordered sequence of output entries into the
// Journal document. It is deliberately dumb: entry order is preserved as
// given, element order within an Entry is fixed (Date, Account, Amount,
// Description), text content is escaped, and the Description element is
// omitted entirely when absent (never emitted empty).
//
// XML STRUCTURE:
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <Journal>
//     <Entry>
//       <Date>2024-12-31</Date>
//       <Account>1001</Account>
//       <Amount>1.20</Amount>
//       <Description>Office</Description>
//     </Entry>
//   </Journal>
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"fmt"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/schema"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/types"
)

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for one indentation level.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to emit the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// Encoding is the encoding named in the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// Pretty enables indentation and newlines. When false the document is
	// emitted on a single line after the declaration.
	// Default: true
	Pretty bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		Encoding:              "UTF-8",
		Pretty:                true,
	}
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate creates the Journal document from the ordered entries using the
// default options.
func Generate(entries []types.OutputEntry) []byte {
	return GenerateWithOptions(entries, DefaultGenerateOptions())
}

// GenerateWithOptions creates the Journal document with custom options.
// Generation is deterministic: identical entries and options yield
// byte-identical output.
func GenerateWithOptions(entries []types.OutputEntry, options GenerateOptions) []byte {
	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"1.0\" encoding=\"%s\"?>\n", options.Encoding))
	}

	newline := "\n"
	indent := options.Indent
	if !options.Pretty {
		newline = ""
		indent = ""
	}

	buffer.WriteString("<" + schema.RootElement + ">" + newline)

	for _, entry := range entries {
		writeEntry(&buffer, entry, indent, newline)
	}

	buffer.WriteString("</" + schema.RootElement + ">\n")

	return buffer.Bytes()
}

// writeEntry writes one Entry element with its fixed child order.
func writeEntry(buffer *bytes.Buffer, entry types.OutputEntry, indent, newline string) {
	buffer.WriteString(indent + "<" + schema.EntryElement + ">" + newline)

	writeField(buffer, schema.DateElement, entry.Date, indent, newline)
	writeField(buffer, schema.AccountElement, entry.Account, indent, newline)
	writeField(buffer, schema.AmountElement, entry.Amount, indent, newline)
	if entry.Description != nil {
		writeField(buffer, schema.DescriptionElement, *entry.Description, indent, newline)
	}

	buffer.WriteString(indent + "</" + schema.EntryElement + ">" + newline)
}

// writeField writes a leaf element with escaped text content.
func writeField(buffer *bytes.Buffer, name, value, indent, newline string) {
	buffer.WriteString(indent + indent)
	buffer.WriteString("<" + name + ">")
	buffer.WriteString(escapeXML(value))
	buffer.WriteString("</" + name + ">" + newline)
}

// escapeXML escapes the characters with special meaning in XML text.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}
