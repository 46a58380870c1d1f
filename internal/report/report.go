// =============================================================================
// Database to XML Converter - Run Report
// =============================================================================
//
// RunReport is the mutable aggregate the pipeline owns for the lifetime of
// one run: counts, a per-reason skip breakdown, and per-stage timings. It
// is created at run start, finalized at run end, and never shared across
// runs. The reporter is purely observational: nothing in here influences
// pipeline decisions.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/recorderr"
)

// =============================================================================
// RUN REPORT
// =============================================================================

// RunReport accumulates counts and timings for a single pipeline run.
type RunReport struct {
	// RunID uniquely identifies this run in logs and summaries.
	RunID string

	// StartedAt is the wall-clock time the run began.
	StartedAt time.Time

	// Counters.
	RecordsRead    int
	RecordsEmitted int
	RecordsSkipped int

	// SkipsByReason breaks skipped records down by failure kind.
	SkipsByReason map[recorderr.Kind]int

	// Per-stage elapsed time.
	ExtractTime   time.Duration
	TransformTime time.Duration
	LoadTime      time.Duration
}

// NewRunReport creates an empty report for a fresh run.
func NewRunReport() *RunReport {
	return &RunReport{
		RunID:         uuid.NewString(),
		StartedAt:     time.Now(),
		SkipsByReason: make(map[recorderr.Kind]int),
	}
}

// RecordRead counts one record pulled from the source.
func (r *RunReport) RecordRead() {
	r.RecordsRead++
}

// RecordEmitted counts one record that reached the output document.
func (r *RunReport) RecordEmitted() {
	r.RecordsEmitted++
}

// RecordSkipped counts one skipped record under its failure kind.
func (r *RunReport) RecordSkipped(kind recorderr.Kind) {
	r.RecordsSkipped++
	r.SkipsByReason[kind]++
}

// TotalTime is the sum of the stage timings.
func (r *RunReport) TotalTime() time.Duration {
	return r.ExtractTime + r.TransformTime + r.LoadTime
}

// =============================================================================
// SUMMARY SNAPSHOT
// =============================================================================

// Summary is the read-only snapshot exposed at run end.
type Summary struct {
	RunID          string
	RecordsRead    int
	RecordsEmitted int
	RecordsSkipped int
	SkipsByReason  map[recorderr.Kind]int
	ExtractTime    time.Duration
	TransformTime  time.Duration
	LoadTime       time.Duration
	TotalTime      time.Duration
}

// Snapshot copies the report into an immutable summary.
func (r *RunReport) Snapshot() Summary {
	skips := make(map[recorderr.Kind]int, len(r.SkipsByReason))
	for kind, count := range r.SkipsByReason {
		skips[kind] = count
	}

	return Summary{
		RunID:          r.RunID,
		RecordsRead:    r.RecordsRead,
		RecordsEmitted: r.RecordsEmitted,
		RecordsSkipped: r.RecordsSkipped,
		SkipsByReason:  skips,
		ExtractTime:    r.ExtractTime,
		TransformTime:  r.TransformTime,
		LoadTime:       r.LoadTime,
		TotalTime:      r.TotalTime(),
	}
}

// String renders the end-of-run summary for logs and the CLI.
func (s Summary) String() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "run %s: read=%d emitted=%d skipped=%d",
		s.RunID, s.RecordsRead, s.RecordsEmitted, s.RecordsSkipped)

	if s.RecordsSkipped > 0 {
		builder.WriteString(" (")
		first := true
		for _, kind := range recorderr.Kinds() {
			count := s.SkipsByReason[kind]
			if count == 0 {
				continue
			}
			if !first {
				builder.WriteString(", ")
			}
			fmt.Fprintf(&builder, "%s=%d", kind, count)
			first = false
		}
		builder.WriteString(")")
	}

	fmt.Fprintf(&builder, " extract=%s transform=%s load=%s total=%s",
		s.ExtractTime.Round(time.Millisecond),
		s.TransformTime.Round(time.Millisecond),
		s.LoadTime.Round(time.Millisecond),
		s.TotalTime.Round(time.Millisecond))

	return builder.String()
}
