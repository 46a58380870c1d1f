// =============================================================================
// Database to XML Converter - Pipeline
// =============================================================================
//
// The pipeline orchestrates one batch run:
//
//   extract    pull every raw record from the source collaborator
//   transform  normalize and validate each record; skip failures
//   load       assemble the document, check it against the schema contract,
//              publish it atomically
//
// Per-record states: Raw -> Normalizing -> {NormalizeFailed | Normalized}
// -> Validating -> {Invalid | Valid} -> {Skipped | Emitted}. The first
// field failure short-circuits the remaining normalization steps for that
// record: no partially normalized record is carried forward.
//
// A record failure never aborts the run (unless strict mode reclassifies
// the first one as fatal). Fatal conditions are limited to: source read
// fault, destination write fault, and the whole-document schema check.
// The run is single-threaded and synchronous; records share no mutable
// state beyond the append-only run report.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/normalizer"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/recorderr"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/report"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/schema"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/source"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/types"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/validator"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/xmlwriter"
	"github.com/rodionmaulenov/database-to-xml-converter/pkg/fileutil"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Logger is the narrow logging interface the pipeline depends on.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Options assembles a pipeline.
type Options struct {
	// Source yields the raw records. Required.
	Source source.Source

	// OutputPath is the destination document path. Required.
	OutputPath string

	// Normalizer converts raw fields to canonical form. Required.
	Normalizer *normalizer.Normalizer

	// Contract is the output schema contract. Nil means schema.Default().
	Contract *schema.Contract

	// XMLOptions controls document rendering.
	XMLOptions xmlwriter.GenerateOptions

	// Strict reclassifies the first skipped record as a fatal error.
	Strict bool

	// Logger receives progress and skip diagnostics. Nil disables logging.
	Logger Logger
}

// Pipeline runs the extract-transform-load cycle once.
type Pipeline struct {
	src        source.Source
	outputPath string
	norm       *normalizer.Normalizer
	valid      *validator.Validator
	contract   *schema.Contract
	xmlOptions xmlwriter.GenerateOptions
	strict     bool
	log        Logger
}

// New creates a pipeline from the given options.
func New(opts Options) *Pipeline {
	contract := opts.Contract
	if contract == nil {
		contract = schema.Default()
	}

	log := opts.Logger
	if log == nil {
		log = noopLogger{}
	}

	return &Pipeline{
		src:        opts.Source,
		outputPath: opts.OutputPath,
		norm:       opts.Normalizer,
		valid:      validator.New(contract),
		contract:   contract,
		xmlOptions: opts.XMLOptions,
		strict:     opts.Strict,
		log:        log,
	}
}

// =============================================================================
// RUN
// =============================================================================

// Run executes the complete pipeline and returns the run summary. The
// returned summary is meaningful even when the error is non-nil: it
// reflects everything counted up to the failure.
func (p *Pipeline) Run(ctx context.Context) (report.Summary, error) {
	rep := report.NewRunReport()
	p.log.Info("starting run", "run_id", rep.RunID)

	// -------------------------------------------------------------------------
	// EXTRACT
	// -------------------------------------------------------------------------

	start := time.Now()
	rawRecords, err := p.src.Fetch(ctx)
	rep.ExtractTime = time.Since(start)
	if err != nil {
		return rep.Snapshot(), fmt.Errorf("extract: %w", err)
	}
	p.log.Info("extracted records", "count", len(rawRecords), "elapsed", rep.ExtractTime)

	// -------------------------------------------------------------------------
	// TRANSFORM
	// -------------------------------------------------------------------------

	start = time.Now()
	entries := make([]types.OutputEntry, 0, len(rawRecords))

	for _, raw := range rawRecords {
		rep.RecordRead()

		entry, err := p.processRecord(raw)
		if err != nil {
			rep.RecordSkipped(recorderr.KindOf(err))
			p.log.Debug("skipped record", "row", raw.RowID, "reason", err)
			if p.strict {
				rep.TransformTime = time.Since(start)
				return rep.Snapshot(), fmt.Errorf("strict mode: %w", err)
			}
			continue
		}

		entries = append(entries, entry)
		rep.RecordEmitted()
	}
	rep.TransformTime = time.Since(start)
	p.log.Info("transformed records",
		"valid", rep.RecordsEmitted, "skipped", rep.RecordsSkipped, "elapsed", rep.TransformTime)

	// -------------------------------------------------------------------------
	// LOAD
	// -------------------------------------------------------------------------

	start = time.Now()
	err = p.load(entries)
	rep.LoadTime = time.Since(start)
	if err != nil {
		return rep.Snapshot(), err
	}

	summary := rep.Snapshot()
	p.log.Info("run complete", "summary", summary.String())
	return summary, nil
}

// =============================================================================
// PER-RECORD PROCESSING
// =============================================================================

// processRecord takes one raw record through normalization and validation.
// It returns the output entry for a valid record, or the record error that
// routed it to Skipped.
func (p *Pipeline) processRecord(raw types.RawRecord) (types.OutputEntry, error) {
	// Normalizing. The first failing field wins; later fields are not
	// normalized for this record.
	date, err := p.norm.NormalizeDate(raw.RowID, raw.Date)
	if err != nil {
		return types.OutputEntry{}, err
	}
	account, err := p.norm.NormalizeAccount(raw.RowID, raw.Account)
	if err != nil {
		return types.OutputEntry{}, err
	}
	amount, err := p.norm.NormalizeAmount(raw.RowID, raw.Amount)
	if err != nil {
		return types.OutputEntry{}, err
	}
	description, err := p.norm.NormalizeDescription(raw.RowID, raw.Description)
	if err != nil {
		return types.OutputEntry{}, err
	}

	normalized := types.NormalizedRecord{
		RowID:       raw.RowID,
		Date:        date,
		Account:     account,
		Amount:      amount,
		Description: description,
	}

	// Validating.
	verdict := p.valid.Validate(normalized)
	if !verdict.Valid {
		return types.OutputEntry{}, verdict.Reason
	}

	return types.EntryFromRecord(normalized), nil
}

// =============================================================================
// LOAD
// =============================================================================

// load checks the assembled document against the schema contract and
// publishes it atomically. The check runs before anything touches the
// destination path, so a failing run leaves no partial output behind.
func (p *Pipeline) load(entries []types.OutputEntry) error {
	if err := p.contract.CheckDocument(entries); err != nil {
		return fmt.Errorf("document schema check: %w", err)
	}

	doc := xmlwriter.GenerateWithOptions(entries, p.xmlOptions)

	if err := fileutil.AtomicWrite(p.outputPath, doc, 0o644); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	p.log.Info("document written", "path", p.outputPath, "entries", len(entries))
	return nil
}

// noopLogger discards everything.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
