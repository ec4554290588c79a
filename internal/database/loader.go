package database

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// DDL for the two analytical tables. Column types are kept portable
// between SQLite and PostgreSQL.
const (
	AccountsDDL = `CREATE TABLE IF NOT EXISTS accounts (
	account_id TEXT NOT NULL,
	as_of_date DATE NOT NULL,
	customer_id TEXT,
	product_code TEXT,
	region_code TEXT,
	customer_segment TEXT,
	adjusted_eop_balance NUMERIC,
	original_balance NUMERIC,
	days_past_due INTEGER,
	current_credit_score INTEGER,
	origination_date DATE
)`

	ComputedMetricsDDL = `CREATE TABLE IF NOT EXISTS computed_metrics (
	as_of_date DATE NOT NULL,
	total_outstanding_balance NUMERIC,
	total_accounts INTEGER,
	total_originations NUMERIC,
	delinquency_rate_30_plus NUMERIC,
	delinquency_rate_90_plus NUMERIC,
	gross_charge_off_rate NUMERIC,
	net_charge_off_rate NUMERIC,
	ecl_coverage_ratio NUMERIC
)`
)

// Loader seeds the analytical tables from CSV extracts.
type Loader struct {
	db     *sql.DB
	driver string
}

// NewLoader creates a loader. The driver name decides the bind-parameter
// style for inserts.
func NewLoader(db *sql.DB, driver string) *Loader {
	return &Loader{db: db, driver: driver}
}

// EnsureSchema creates the analytical tables if they do not exist.
func (l *Loader) EnsureSchema(ctx context.Context) error {
	for _, ddl := range []string{AccountsDDL, ComputedMetricsDDL} {
		if _, err := l.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// LoadCSV reads a CSV with a header row and inserts every record into
// the named table inside one transaction. onRow, if non-nil, is called
// once per inserted row for progress reporting. Returns the number of
// rows inserted.
func (l *Loader) LoadCSV(ctx context.Context, table string, r io.Reader, onRow func()) (int, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
		if !validIdent(header[i]) {
			return 0, fmt.Errorf("invalid column name in CSV header: %q", header[i])
		}
	}
	if !validIdent(table) {
		return 0, fmt.Errorf("invalid table name: %q", table)
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, l.insertStatement(table, header))
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("reading CSV record %d: %w", count+1, err)
		}

		args := make([]any, len(record))
		for i, field := range record {
			if field == "" {
				args[i] = nil
			} else {
				args[i] = field
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", count+1, err)
		}
		count++
		if onRow != nil {
			onRow()
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load: %w", err)
	}
	return count, nil
}

func (l *Loader) insertStatement(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		if l.driver == "postgres" {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
