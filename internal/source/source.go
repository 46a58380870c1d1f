// =============================================================================
// Database to XML Converter - Source Collaborator Contract
// =============================================================================
//
// The source produces the sequence of raw records the pipeline consumes.
// Order is preserved exactly as the source emits it; connection lifecycle
// is the source's own responsibility.
//
// =============================================================================

package source

import (
	"context"

	"github.com/rodionmaulenov/database-to-xml-converter/internal/types"
)

// Source yields raw journal records in read order.
type Source interface {
	// Fetch reads every record from the backing store. A non-nil error is
	// fatal for the run.
	Fetch(ctx context.Context) ([]types.RawRecord, error)

	// Close releases the source's resources. Safe to call after a failed
	// Fetch.
	Close() error
}
