// =============================================================================
// Database to XML Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which loads and checks the
// configuration (and the XLSX rule template, when configured) without
// touching the source or the destination. Useful before wiring the tool
// into a scheduled job.
//
// COMMAND USAGE:
//   journalx validate
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/config"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration without processing",
	Long: `The validate command loads the configuration file, applies defaults, and
checks every enumerated option: log level, decimal separator mode, date
format layouts, and the optional schema rule template. Nothing is read from
the database and nothing is written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if _, err := loadContract(cfg); err != nil {
			return fmt.Errorf("schema template: %w", err)
		}

		fmt.Printf("Configuration OK (%s)\n", cfgFile)
		fmt.Printf("  output:            %s\n", cfg.Output.Path)
		fmt.Printf("  log level:         %s\n", cfg.Logging.Level)
		fmt.Printf("  decimal separator: %s\n", cfg.Processing.DecimalSeparator)
		fmt.Printf("  date formats:      %v\n", cfg.Processing.DateFormats)
		fmt.Printf("  strict:            %v\n", cfg.Processing.Strict)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
