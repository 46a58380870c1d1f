// =============================================================================
// Database to XML Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the journalx CLI. It initializes the
// Cobra CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   journalx export    - Export journal entries to a Journal XML document
//   journalx validate  - Validate configuration without processing
//   journalx schema    - Print the Journal XSD
//   journalx version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : core pipeline logic (not for external import)
//   - pkg/       : shared utilities
//
// =============================================================================

package main

import (
	"github.com/rodionmaulenov/database-to-xml-converter/cmd"
)

func main() {
	cmd.Execute()
}
