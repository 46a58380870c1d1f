package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/normalizer"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/recorderr"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/types"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/xmlwriter"
)

// fakeSource serves canned records, standing in for the database.
type fakeSource struct {
	records []types.RawRecord
	err     error
	closed  bool
}

func (s *fakeSource) Fetch(ctx context.Context) ([]types.RawRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

func strPtr(s string) *string { return &s }

func record(rowID int, date, account, amount string, description *string) types.RawRecord {
	return types.RawRecord{
		RowID:       rowID,
		Date:        date,
		Account:     account,
		Amount:      amount,
		Description: description,
	}
}

func newTestPipeline(t *testing.T, src *fakeSource, outputPath string, strict bool) *Pipeline {
	t.Helper()

	norm, err := normalizer.New(normalizer.Options{})
	if err != nil {
		t.Fatalf("normalizer.New returned error: %v", err)
	}

	return New(Options{
		Source:     src,
		OutputPath: outputPath,
		Normalizer: norm,
		XMLOptions: xmlwriter.DefaultGenerateOptions(),
		Strict:     strict,
	})
}

func TestRun_HappyPath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "journal.xml")
	src := &fakeSource{records: []types.RawRecord{
		record(1, "12/31/2024", "1001", "1,20", strPtr("Office")),
	}}

	summary, err := newTestPipeline(t, src, out, false).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if summary.RecordsRead != 1 || summary.RecordsEmitted != 1 || summary.RecordsSkipped != 0 {
		t.Errorf("summary = read %d emitted %d skipped %d, want 1/1/0",
			summary.RecordsRead, summary.RecordsEmitted, summary.RecordsSkipped)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output document not written: %v", err)
	}
	doc := string(data)
	for _, want := range []string{
		"<Date>2024-12-31</Date>",
		"<Account>1001</Account>",
		"<Amount>1.20</Amount>",
		"<Description>Office</Description>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestRun_SkipAndContinue(t *testing.T) {
	out := filepath.Join(t.TempDir(), "journal.xml")
	src := &fakeSource{records: []types.RawRecord{
		record(1, "2024-13-40", "1001", "5.00", nil),   // invalid calendar date
		record(2, "2024-01-01", "12", "5.00", nil),     // account below minimum
		record(3, "2024-01-01", "1001", "abc", nil),    // unparseable amount
		record(4, "2024-01-01", "1001", "5.00", nil),   // valid
	}}

	summary, err := newTestPipeline(t, src, out, false).Run(context.Background())
	if err != nil {
		t.Fatalf("record failures must not abort the run: %v", err)
	}

	if summary.RecordsRead != 4 || summary.RecordsEmitted != 1 || summary.RecordsSkipped != 3 {
		t.Errorf("summary = read %d emitted %d skipped %d, want 4/1/3",
			summary.RecordsRead, summary.RecordsEmitted, summary.RecordsSkipped)
	}

	wantReasons := map[recorderr.Kind]int{
		recorderr.KindDate:    1,
		recorderr.KindAccount: 1,
		recorderr.KindAmount:  1,
	}
	for kind, want := range wantReasons {
		if got := summary.SkipsByReason[kind]; got != want {
			t.Errorf("skips[%s] = %d, want %d", kind, got, want)
		}
	}
}

func TestRun_AbsentDescriptionOmitted(t *testing.T) {
	out := filepath.Join(t.TempDir(), "journal.xml")
	src := &fakeSource{records: []types.RawRecord{
		record(1, "2024-01-01", "1001", "5.00", nil),
	}}

	if _, err := newTestPipeline(t, src, out, false).Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	data, _ := os.ReadFile(out)
	if strings.Contains(string(data), "Description") {
		t.Errorf("absent description must omit the element entirely:\n%s", data)
	}
}

// A source with zero records completes the transform stage cleanly but
// fails the whole-document schema check: the schema requires at least one
// Entry. No file may appear at the output path.
func TestRun_EmptySourceIsFatal(t *testing.T) {
	out := filepath.Join(t.TempDir(), "journal.xml")
	src := &fakeSource{}

	summary, err := newTestPipeline(t, src, out, false).Run(context.Background())
	if err == nil {
		t.Fatal("empty document passed the schema check")
	}
	if !strings.Contains(err.Error(), "schema") {
		t.Errorf("error %q should name the schema check", err)
	}
	if summary.RecordsRead != 0 {
		t.Errorf("RecordsRead = %d, want 0", summary.RecordsRead)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("fatal run must not leave a file at the output path")
	}
}

func TestRun_StrictModeAbortsOnFirstSkip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "journal.xml")
	src := &fakeSource{records: []types.RawRecord{
		record(1, "2024-01-01", "1001", "5.00", nil),
		record(2, "not a date", "1001", "5.00", nil),
		record(3, "2024-01-01", "1001", "5.00", nil),
	}}

	summary, err := newTestPipeline(t, src, out, true).Run(context.Background())
	if err == nil {
		t.Fatal("strict mode must turn the first skip into a fatal error")
	}
	if !strings.Contains(err.Error(), "strict") {
		t.Errorf("error %q should name strict mode", err)
	}
	if summary.RecordsRead != 2 {
		t.Errorf("RecordsRead = %d, want 2 (processing stops at the failure)", summary.RecordsRead)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("strict abort must not publish any output")
	}
}

func TestRun_SourceFaultIsFatal(t *testing.T) {
	out := filepath.Join(t.TempDir(), "journal.xml")
	src := &fakeSource{err: errors.New("connection refused")}

	_, err := newTestPipeline(t, src, out, false).Run(context.Background())
	if err == nil {
		t.Fatal("source fault must abort the run")
	}
	if !strings.Contains(err.Error(), "extract") {
		t.Errorf("error %q should identify the failing stage", err)
	}
}

func TestRun_UnwritableDestinationIsFatal(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// The destination's parent is a regular file, so nothing can be
	// created beneath it.
	out := filepath.Join(blocker, "journal.xml")
	src := &fakeSource{records: []types.RawRecord{
		record(1, "2024-01-01", "1001", "5.00", nil),
	}}

	if _, err := newTestPipeline(t, src, out, false).Run(context.Background()); err == nil {
		t.Fatal("unwritable destination must abort the run")
	}
}

func TestRun_OrderPreserved(t *testing.T) {
	out := filepath.Join(t.TempDir(), "journal.xml")
	src := &fakeSource{records: []types.RawRecord{
		record(1, "2024-03-03", "3003", "3.00", nil),
		record(2, "2024-01-01", "1001", "1.00", nil),
		record(3, "bad", "9999", "9.00", nil), // skipped, must not disturb order
		record(4, "2024-02-02", "2002", "2.00", nil),
	}}

	if _, err := newTestPipeline(t, src, out, false).Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	data, _ := os.ReadFile(out)
	doc := string(data)
	first := strings.Index(doc, "3003")
	second := strings.Index(doc, "1001")
	third := strings.Index(doc, "2002")
	if !(first >= 0 && first < second && second < third) {
		t.Errorf("entries out of read order:\n%s", doc)
	}
}

// Two runs over the same source and configuration produce byte-identical
// documents.
func TestRun_Idempotent(t *testing.T) {
	records := []types.RawRecord{
		record(1, "12/31/2024", "1001", "1,20", strPtr("Office")),
		record(2, "2024-01-01", "2002", "-42.1", nil),
	}

	outA := filepath.Join(t.TempDir(), "a.xml")
	outB := filepath.Join(t.TempDir(), "b.xml")

	if _, err := newTestPipeline(t, &fakeSource{records: records}, outA, false).Run(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := newTestPipeline(t, &fakeSource{records: records}, outB, false).Run(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	a, _ := os.ReadFile(outA)
	b, _ := os.ReadFile(outB)
	if !bytes.Equal(a, b) {
		t.Error("identical source and configuration must yield byte-identical output")
	}
}

// The first failing field routes the record to Skipped with that field's
// reason; later fields are not consulted.
func TestRun_FirstFailureWins(t *testing.T) {
	out := filepath.Join(t.TempDir(), "journal.xml")
	src := &fakeSource{records: []types.RawRecord{
		record(1, "not a date", "12", "abc", nil), // every field is bad
		record(2, "2024-01-01", "1001", "5.00", nil),
	}}

	summary, err := newTestPipeline(t, src, out, false).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if summary.SkipsByReason[recorderr.KindDate] != 1 {
		t.Error("record with multiple bad fields must be counted under the first failing field")
	}
	if summary.RecordsSkipped != 1 {
		t.Errorf("RecordsSkipped = %d, want 1", summary.RecordsSkipped)
	}
}
