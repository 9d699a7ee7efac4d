package writer

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/stock-history/internal/types"
)

// ParquetWriter implements MarketDataWriter on an in-memory DuckDB database
// and exports the collected bars as a Parquet file on Finalize.
type ParquetWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	sq         squirrel.StatementBuilderType
	outputPath string
}

// NewParquetWriter creates a new ParquetWriter.
// outputPath is the Parquet file written by Finalize.
func NewParquetWriter(outputPath string) MarketDataWriter {
	return &ParquetWriter{
		sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		outputPath: outputPath,
	}
}

// Initialize opens the database, creates the table and begins a transaction.
func (w *ParquetWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS price_history (
			"Date" DATE,
			"Open" DOUBLE,
			"High" DOUBLE,
			"Low" DOUBLE,
			"Close" DOUBLE,
			"Adj Close" DOUBLE,
			"Volume" BIGINT
		)
	`)
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

// Write inserts a single bar within the open transaction.
func (w *ParquetWriter) Write(bar types.PriceBar) error {
	if w.tx == nil {
		return fmt.Errorf("writer not initialized or transaction is nil")
	}

	_, err := w.sq.
		Insert("price_history").
		Columns(`"Date"`, `"Open"`, `"High"`, `"Low"`, `"Close"`, `"Adj Close"`, `"Volume"`).
		Values(
			squirrel.Expr("CAST(? AS DATE)", bar.DateString()),
			bar.Open.InexactFloat64(),
			bar.High.InexactFloat64(),
			bar.Low.InexactFloat64(),
			bar.Close.InexactFloat64(),
			bar.AdjClose.InexactFloat64(),
			bar.Volume,
		).
		RunWith(w.tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert data: %w", err)
	}

	return nil
}

// Finalize commits the transaction and exports the table to Parquet.
func (w *ParquetWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", fmt.Errorf("writer not initialized or transaction is nil")
	}

	if err = w.tx.Commit(); err != nil {
		w.tx.Rollback()
		w.tx = nil

		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.tx = nil

	escaped := strings.ReplaceAll(w.outputPath, "'", "''")

	_, err = w.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM price_history) TO '%s' (FORMAT PARQUET)`, escaped))
	if err != nil {
		return "", fmt.Errorf("failed to export to Parquet: %w", err)
	}

	return w.outputPath, nil
}

// Close rolls back any open transaction and closes the database.
func (w *ParquetWriter) Close() error {
	var closeErrors []error

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to rollback transaction: %w", err))
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close db connection: %w", err))
		}

		w.db = nil
	}

	return errors.Join(closeErrors...)
}

// GetOutputPath returns the configured output file path.
func (w *ParquetWriter) GetOutputPath() string {
	return w.outputPath
}
