// =============================================================================
// Database to XML Converter - Export Command
// =============================================================================
//
// This file defines the 'export' command, the main command of the tool. It
// wires the source, normalizer, schema contract and pipeline together and
// runs one batch export.
//
// COMMAND USAGE:
//   journalx export [flags]
//
// FLAGS:
//   --dsn     : Postgres connection string (overrides config and DATABASE_URL)
//   --output  : Destination path for the XML document (overrides config)
//   --strict  : Abort on the first skipped record
//
// EXIT STATUS:
//   0 on success, including runs where some records were skipped.
//   Non-zero on any fatal condition: source unreadable, destination
//   unwritable, final document failing the schema check, or --strict with
//   at least one skipped record.
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/config"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/logger"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/normalizer"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/pipeline"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/recorderr"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/schema"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/source"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/xmlwriter"
)

// Export command flags.
var (
	exportDSN    string
	exportOutput string
	exportStrict bool
)

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journal entries to a schema-valid XML document",
	Long: `The export command reads every journal entry from the source table,
normalizes and validates each record, and writes the Journal XML document.

Records that fail normalization or validation are skipped, counted by
reason, and reported in the end-of-run summary; the run continues. The
assembled document is checked against the Journal schema before publication
and written atomically: a failed run never leaves a partial file at the
output path.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(
		&exportDSN,
		"dsn",
		"",
		"Postgres connection string (overrides config and DATABASE_URL)",
	)

	exportCmd.Flags().StringVar(
		&exportOutput,
		"output",
		"",
		"Destination path for the XML document (overrides config)",
	)

	exportCmd.Flags().BoolVar(
		&exportStrict,
		"strict",
		false,
		"Abort on the first skipped record",
	)
}

// runExport runs one batch export with the effective configuration.
func runExport(ctx context.Context) error {
	// .env is optional; it typically carries DATABASE_URL in development.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	applyExportFlags(cfg)

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log := logger.New(level)

	contract, err := loadContract(cfg)
	if err != nil {
		return err
	}

	norm, err := normalizer.New(normalizer.Options{
		DateFormats:      cfg.Processing.DateFormats,
		DecimalSeparator: normalizer.SeparatorMode(cfg.Processing.DecimalSeparator),
	})
	if err != nil {
		return err
	}

	if cfg.Source.DSN == "" {
		return errors.New("no source DSN: set source.dsn, --dsn, or DATABASE_URL")
	}

	src, err := source.Open(ctx, cfg.Source.DSN)
	if err != nil {
		return err
	}
	defer src.Close()

	xmlOptions := xmlwriter.DefaultGenerateOptions()
	xmlOptions.Pretty = *cfg.Output.Pretty
	xmlOptions.IncludeXMLDeclaration = *cfg.Output.Declaration

	p := pipeline.New(pipeline.Options{
		Source:     src,
		OutputPath: cfg.Output.Path,
		Normalizer: norm,
		Contract:   contract,
		XMLOptions: xmlOptions,
		Strict:     cfg.Processing.Strict,
		Logger:     log,
	})

	summary, err := p.Run(ctx)
	printSummary(summary.RecordsRead, summary.RecordsEmitted, summary.RecordsSkipped,
		summary.SkipsByReason)
	if err != nil {
		return err
	}

	fmt.Printf("Output:          %s\n", cfg.Output.Path)
	return nil
}

// applyExportFlags overlays command-line flags and the environment onto the
// configuration. Flags win over the file; the environment fills gaps.
func applyExportFlags(cfg *config.Config) {
	if exportDSN != "" {
		cfg.Source.DSN = exportDSN
	}
	if cfg.Source.DSN == "" {
		cfg.Source.DSN = os.Getenv("DATABASE_URL")
	}
	if exportOutput != "" {
		cfg.Output.Path = exportOutput
	}
	if exportStrict {
		cfg.Processing.Strict = true
	}
}

// loadContract returns the schema contract, applying the XLSX rule template
// when one is configured.
func loadContract(cfg *config.Config) (*schema.Contract, error) {
	if cfg.Schema.Template == "" {
		return schema.Default(), nil
	}
	return schema.LoadTemplate(cfg.Schema.Template)
}

// printSummary writes the human-readable end-of-run summary.
func printSummary(read, emitted, skipped int, byReason map[recorderr.Kind]int) {
	fmt.Println("\n=== Export Complete ===")
	fmt.Printf("Records read:    %d\n", read)
	fmt.Printf("Records emitted: %d\n", emitted)
	fmt.Printf("Records skipped: %d\n", skipped)
	for _, kind := range recorderr.Kinds() {
		if count := byReason[kind]; count > 0 {
			fmt.Printf("  %-13s  %d\n", kind+":", count)
		}
	}
}
