// =============================================================================
// Fechamento - Sales Store
// =============================================================================
//
// SQLite-backed durable sink for validated sales rows.
//
// APPEND-ONLY ENFORCEMENT:
//   The store never issues UPDATE or DELETE against the sales table. A
//   run's rows are inserted in dataset order inside a single transaction;
//   prior runs' rows are untouched.
//
// WAL MODE:
//   The database is opened with WAL (Write-Ahead Logging): readers do not
//   block while the single per-run writer appends, and crash recovery is
//   cleaner. Coordination of multiple concurrent writers is a deployment
//   concern, not handled here.
//
// MIGRATION:
//   Init applies the schema with CREATE ... IF NOT EXISTS on every run, so
//   it is safe to call speculatively and idempotent by construction.
//
// =============================================================================

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/vmsantos/fechamento/internal/sales"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS sales (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	date        DATE NOT NULL,
	store_id    TEXT NOT NULL,
	product_id  TEXT NOT NULL,
	quantity    INTEGER NOT NULL,
	unit_price  NUMERIC NOT NULL,
	total_value NUMERIC NOT NULL,
	source_file TEXT,
	imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sales_date  ON sales(date);
CREATE INDEX IF NOT EXISTS idx_sales_store ON sales(store_id);
`

const insertSQL = `
INSERT INTO sales (date, store_id, product_id, quantity, unit_price, total_value, source_file)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// dateLayout is how sale dates are stored in the DATE column.
const dateLayout = "2006-01-02"

// Store is an open handle to the sales database. Callers own the handle
// and must Close it on every exit path.
type Store struct {
	db   *sql.DB
	path string
}

// Open ensures the parent directory exists and opens the database at path,
// creating the file on first use. The connection uses WAL journal mode and
// a busy timeout so a concurrent reader never trips a writer immediately.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the filesystem location the store was opened at.
func (s *Store) Path() string {
	return s.path
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Init applies the sales schema. It is idempotent: calling it on an
// already-initialized database succeeds without altering structures or
// adding rows.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Append inserts every record of the dataset as a new row, in order,
// inside one transaction. It returns the number of rows appended. An empty
// dataset appends zero rows without error. imported_at is filled by the
// column default at insert time.
func (s *Store) Append(ctx context.Context, ds *sales.Dataset) (int, error) {
	if ds == nil || len(ds.Records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range ds.Records {
		_, err := stmt.ExecContext(ctx,
			rec.Date.Format(dateLayout),
			rec.StoreID,
			rec.ProductID,
			rec.Quantity,
			rec.UnitPrice.String(),
			rec.TotalValue.String(),
			rec.SourceFile,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert row %d (%s): %w", i+1, rec.SourceFile, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit append: %w", err)
	}
	return len(ds.Records), nil
}

// Count returns the total number of persisted sales rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

// Recent returns the n most recently inserted rows, newest first. Used by
// the check command to spot-verify an import.
func (s *Store) Recent(ctx context.Context, n int) ([]sales.SalesRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, store_id, product_id, quantity, unit_price, total_value, source_file, imported_at
		FROM sales ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent rows: %w", err)
	}
	defer rows.Close()

	var records []sales.SalesRecord
	for rows.Next() {
		var (
			rec        sales.SalesRecord
			unitPrice  string
			totalValue string
		)
		// The driver maps the DATE/DATETIME declared types to time.Time;
		// the NUMERIC money columns come back as strings for exact
		// decimal reconstruction.
		err := rows.Scan(&rec.Date, &rec.StoreID, &rec.ProductID, &rec.Quantity,
			&unitPrice, &totalValue, &rec.SourceFile, &rec.ImportedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if rec.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("failed to parse stored unit price %q: %w", unitPrice, err)
		}
		if rec.TotalValue, err = decimal.NewFromString(totalValue); err != nil {
			return nil, fmt.Errorf("failed to parse stored total %q: %w", totalValue, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
