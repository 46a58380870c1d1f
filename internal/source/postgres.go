// =============================================================================
// Database to XML Converter - Postgres Source
// =============================================================================
//
// Reads journal entries from the journal_entries table over database/sql
// with the lib/pq driver. The table contract matches the column names of
// the raw record: date, account, amount, description (description is
// nullable). Rows are read in primary key order so that repeated runs over
// an unchanged table observe the same sequence.
//
// =============================================================================

package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver
	"github.com/rodionmaulenov/database-to-xml-converter/internal/types"
)

// journalQuery reads the source table in stable order. Every column is read
// as text: normalization, not the driver, decides what the bytes mean.
const journalQuery = `
	SELECT date, account, amount, description
	FROM journal_entries
	ORDER BY id`

// PostgresSource reads raw records from a Postgres journal_entries table.
type PostgresSource struct {
	db *sql.DB
}

// Open connects to Postgres using the given DSN and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return &PostgresSource{db: db}, nil
}

// NewPostgresSource wraps an existing database handle.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Fetch reads every journal entry. RowID is assigned from the 1-based read
// order, which is also the emission order downstream.
func (s *PostgresSource) Fetch(ctx context.Context) ([]types.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx, journalQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var records []types.RawRecord
	rowID := 0

	for rows.Next() {
		rowID++

		var date, account, amount sql.NullString
		var description sql.NullString
		if err := rows.Scan(&date, &account, &amount, &description); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", rowID, err)
		}

		record := types.RawRecord{
			RowID:   rowID,
			Date:    date.String,
			Account: account.String,
			Amount:  amount.String,
		}
		if description.Valid {
			desc := description.String
			record.Description = &desc
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal entries: %w", err)
	}
	return records, nil
}

// Close releases the database handle.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}
