// =============================================================================
// Database to XML Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// (export, validate, schema, version) are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (journalx)
//   ├── exportCmd   (journalx export)
//   ├── validateCmd (journalx validate)
//   ├── schemaCmd   (journalx schema)
//   └── versionCmd  (journalx version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose forces debug-level logging regardless of the configured level.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "journalx",
	Short: "Export accounting journal entries from a database to schema-valid XML",
	Long: `journalx reads accounting journal entries from a relational table,
normalizes inconsistently formatted fields (dates, amounts, account numbers,
descriptions), and produces a Journal XML document conforming to a fixed
schema. Records that cannot be normalized are skipped and reported; a single
bad row never aborts the run.

Example Usage:
  journalx export                         # Run with config.yaml defaults
  journalx export --output ./journal.xml  # Override the destination
  journalx export --strict                # Abort on the first skipped record
  journalx validate                       # Check the configuration only
  journalx schema                         # Print the Journal XSD`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
