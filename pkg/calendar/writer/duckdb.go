package writer

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/trading-calendar/internal/types"
)

// TableName is the DuckDB table the records are staged in before export.
const TableName = "trading_calendar"

// DuckDBWriter implements the CalendarWriter interface for DuckDB.
// Records are staged in an in-memory table and exported to Parquet on Finalize.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	sq         squirrel.StatementBuilderType
	outputPath string // Parquet file written by Finalize
}

// NewDuckDBWriter creates a new DuckDBWriter.
// outputPath specifies the Parquet file that Finalize will create.
func NewDuckDBWriter(outputPath string) CalendarWriter {
	return &DuckDBWriter{
		outputPath: outputPath,
		sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Initialize opens an in-memory database, creates the staging table and begins a transaction.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	_, err = w.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			"Date" DATE,
			"HolidayDivision" BIGINT
		)
	`, TableName))
	if err != nil {
		w.db.Close()
		w.db = nil

		return fmt.Errorf("failed to create table: %w", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()
		w.db = nil

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	return nil
}

// Write inserts a single record within the open transaction.
func (w *DuckDBWriter) Write(record types.CalendarRecord) error {
	if w.tx == nil {
		return fmt.Errorf("writer not initialized or transaction is nil")
	}

	_, err := w.sq.
		Insert(TableName).
		Columns(`"Date"`, `"HolidayDivision"`).
		Values(record.Date, int64(record.HolidayDivision)).
		RunWith(w.tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	return nil
}

// Finalize commits the transaction and exports the table to a Parquet file, rows in insertion order.
func (w *DuckDBWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", fmt.Errorf("writer not initialized or transaction is nil")
	}

	if err = w.tx.Commit(); err != nil {
		w.tx.Rollback()
		w.tx = nil

		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.tx = nil

	_, err = w.db.Exec(fmt.Sprintf(`COPY %s TO '%s' (FORMAT PARQUET)`, TableName, EscapeLiteral(w.outputPath)))
	if err != nil {
		return "", fmt.Errorf("failed to export to Parquet: %w", err)
	}

	return w.outputPath, nil
}

// Close rolls back any open transaction and closes the database connection.
func (w *DuckDBWriter) Close() error {
	var closeErrors []string

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to rollback transaction: %v", err))
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close db connection: %v", err))
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		return fmt.Errorf("errors occurred during close:\n- %s", strings.Join(closeErrors, "\n- "))
	}

	return nil
}

// GetOutputPath returns the Parquet file path.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}

// EscapeLiteral escapes s for use inside a single-quoted SQL string literal.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
