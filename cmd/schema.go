// =============================================================================
// Database to XML Converter - Schema Command
// =============================================================================
//
// This file defines the 'schema' command, which renders the Journal XSD so
// downstream consumers can validate exported documents with stock XML
// tooling. The XSD reflects the effective contract, including any XLSX
// rule template overrides from the configuration.
//
// COMMAND USAGE:
//   journalx schema              # print to stdout
//   journalx schema --out p.xsd  # write to a file
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/config"
)

// schemaOut is the optional destination file for the XSD.
var schemaOut string

// schemaCmd represents the 'schema' command.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the Journal XSD for the effective schema contract",

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		contract, err := loadContract(cfg)
		if err != nil {
			return err
		}

		xsd := contract.XSD()
		if schemaOut == "" {
			fmt.Print(string(xsd))
			return nil
		}

		if err := os.WriteFile(schemaOut, xsd, 0o644); err != nil {
			return fmt.Errorf("failed to write schema: %w", err)
		}
		fmt.Printf("Schema written to %s\n", schemaOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVar(
		&schemaOut,
		"out",
		"",
		"Write the XSD to this path instead of stdout",
	)
}
