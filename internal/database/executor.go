// Package database executes generated SQL against the portfolio store
// and classifies failures for the retry orchestrator. SQLite backs local
// development; PostgreSQL backs shared deployments.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Executor runs one read-only query and returns its rows as maps keyed
// by column name.
type Executor interface {
	Execute(ctx context.Context, query string) ([]map[string]any, error)
}

// Open opens a database handle for the given driver ("sqlite" or
// "postgres") and DSN, and verifies connectivity.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s database: %w", driver, err)
	}
	return db, nil
}

// SQLExecutor is the production Executor over a database/sql handle.
type SQLExecutor struct {
	db      *sql.DB
	timeout time.Duration
	maxRows int
}

// NewSQLExecutor wraps db with a per-query timeout and a row cap.
func NewSQLExecutor(db *sql.DB, timeout time.Duration, maxRows int) *SQLExecutor {
	return &SQLExecutor{db: db, timeout: timeout, maxRows: maxRows}
}

// Execute runs a single SELECT statement. Anything other than a SELECT
// is rejected before touching the database.
func (e *SQLExecutor) Execute(ctx context.Context, query string) ([]map[string]any, error) {
	if err := checkReadOnly(query); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out, err := scanRows(rows, e.maxRows)
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// checkReadOnly rejects statements that are not a single SELECT. The
// read-only rule is a business rule, so violations count as semantic
// failures rather than syntax ones.
func checkReadOnly(query string) error {
	trimmed := strings.TrimSpace(query)
	trimmed = strings.TrimSuffix(trimmed, ";")

	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return &QueryError{
			Kind:    KindSemantic,
			Message: "only SELECT statements may be executed against the portfolio database",
		}
	}
	if strings.Contains(trimmed, ";") {
		return &QueryError{
			Kind:    KindSemantic,
			Message: "multiple SQL statements are not allowed",
		}
	}
	return nil
}

// scanRows converts the result set into maps keyed by column name,
// decoding []byte cells to strings.
func scanRows(rows *sql.Rows, maxRows int) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for rows.Next() {
		if maxRows > 0 && len(out) >= maxRows {
			break
		}

		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
