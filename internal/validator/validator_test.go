package validator

import (
	"strings"
	"testing"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/recorderr"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/schema"
	"github.com/rodionmaulenov/database-to-xml-converter/internal/types"
)

func validRecord() types.NormalizedRecord {
	desc := "Office"
	return types.NormalizedRecord{
		RowID:       1,
		Date:        "2024-12-31",
		Account:     "1001",
		Amount:      "1.20",
		Description: &desc,
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	v := New(schema.Default())

	verdict := v.Validate(validRecord())
	if !verdict.Valid {
		t.Fatalf("valid record rejected: %v", verdict.Reason)
	}
	if verdict.Reason != nil {
		t.Error("valid verdict must carry no reason")
	}
}

func TestValidate_NoDescription(t *testing.T) {
	v := New(schema.Default())

	rec := validRecord()
	rec.Description = nil
	if verdict := v.Validate(rec); !verdict.Valid {
		t.Errorf("record without description rejected: %v", verdict.Reason)
	}
}

func TestValidate_Invalid(t *testing.T) {
	v := New(schema.Default())
	long := strings.Repeat("x", 256)

	tests := []struct {
		name     string
		mutate   func(*types.NormalizedRecord)
		wantKind recorderr.Kind
	}{
		{
			name:     "date wrong shape",
			mutate:   func(r *types.NormalizedRecord) { r.Date = "12/31/2024" },
			wantKind: recorderr.KindDate,
		},
		{
			name:     "date not a calendar date",
			mutate:   func(r *types.NormalizedRecord) { r.Date = "2024-02-30" },
			wantKind: recorderr.KindDate,
		},
		{
			name:     "date before plausibility window",
			mutate:   func(r *types.NormalizedRecord) { r.Date = "1899-12-31" },
			wantKind: recorderr.KindDate,
		},
		{
			name:     "date after plausibility window",
			mutate:   func(r *types.NormalizedRecord) { r.Date = "2101-01-01" },
			wantKind: recorderr.KindDate,
		},
		{
			name:     "account empty",
			mutate:   func(r *types.NormalizedRecord) { r.Account = "" },
			wantKind: recorderr.KindAccount,
		},
		{
			name:     "account too short",
			mutate:   func(r *types.NormalizedRecord) { r.Account = "12" },
			wantKind: recorderr.KindAccount,
		},
		{
			name:     "account too long",
			mutate:   func(r *types.NormalizedRecord) { r.Account = "1234567890123" },
			wantKind: recorderr.KindAccount,
		},
		{
			name:     "amount three fraction digits",
			mutate:   func(r *types.NormalizedRecord) { r.Amount = "1.234" },
			wantKind: recorderr.KindAmount,
		},
		{
			name:     "amount not numeric",
			mutate:   func(r *types.NormalizedRecord) { r.Amount = "abc" },
			wantKind: recorderr.KindAmount,
		},
		{
			name:     "description over limit",
			mutate:   func(r *types.NormalizedRecord) { r.Description = &long },
			wantKind: recorderr.KindDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			verdict := v.Validate(rec)
			if verdict.Valid {
				t.Fatal("invalid record accepted")
			}
			if got := recorderr.KindOf(verdict.Reason); got != tt.wantKind {
				t.Errorf("reason kind = %q, want %q", got, tt.wantKind)
			}
		})
	}
}

// Validation is deterministic: the same record always yields the same verdict.
func TestValidate_Deterministic(t *testing.T) {
	v := New(schema.Default())
	rec := validRecord()

	first := v.Validate(rec)
	second := v.Validate(rec)
	if first.Valid != second.Valid {
		t.Error("verdict changed between identical calls")
	}
}
