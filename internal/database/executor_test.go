package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func newMockExecutor(t *testing.T, maxRows int) (*SQLExecutor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLExecutor(db, 5*time.Second, maxRows), mock
}

func TestExecuteScansRows(t *testing.T) {
	exec, mock := newMockExecutor(t, 500)

	query := "SELECT region_code, total FROM accounts"
	mock.ExpectQuery(query).WillReturnRows(
		sqlmock.NewRows([]string{"region_code", "total"}).
			AddRow("NORTH", 1200.5).
			AddRow("SOUTH", []byte("800.25")))

	rows, err := exec.Execute(context.Background(), query)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["region_code"] != "NORTH" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	if rows[1]["total"] != "800.25" {
		t.Errorf("byte cells should decode to strings, got %T %v", rows[1]["total"], rows[1]["total"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestExecuteCapsRows(t *testing.T) {
	exec, mock := newMockExecutor(t, 2)

	query := "SELECT account_id FROM accounts"
	rs := sqlmock.NewRows([]string{"account_id"})
	for _, id := range []string{"a", "b", "c", "d"} {
		rs.AddRow(id)
	}
	mock.ExpectQuery(query).WillReturnRows(rs)

	rows, err := exec.Execute(context.Background(), query)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected row cap of 2, got %d", len(rows))
	}
}

func TestExecuteRejectsNonSelect(t *testing.T) {
	exec, _ := newMockExecutor(t, 500)

	for _, q := range []string{
		"DELETE FROM accounts",
		"UPDATE accounts SET days_past_due = 0",
		"DROP TABLE computed_metrics",
		"INSERT INTO accounts VALUES ('x')",
	} {
		_, err := exec.Execute(context.Background(), q)
		var qe *QueryError
		if !errors.As(err, &qe) {
			t.Fatalf("Execute(%q): expected QueryError, got %v", q, err)
		}
		if qe.Kind != KindSemantic {
			t.Errorf("Execute(%q): write statements are semantic failures, got %s", q, qe.Kind)
		}
	}
}

func TestExecuteRejectsMultipleStatements(t *testing.T) {
	exec, _ := newMockExecutor(t, 500)

	_, err := exec.Execute(context.Background(), "SELECT 1; DELETE FROM accounts")
	var qe *QueryError
	if !errors.As(err, &qe) || qe.Kind != KindSemantic {
		t.Errorf("stacked statements must be rejected as semantic, got %v", err)
	}
}

func TestExecuteAllowsCTE(t *testing.T) {
	exec, mock := newMockExecutor(t, 500)

	query := "WITH latest AS (SELECT MAX(as_of_date) d FROM computed_metrics) SELECT d FROM latest"
	mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"d"}).AddRow("2025-06-30"))

	if _, err := exec.Execute(context.Background(), query); err != nil {
		t.Errorf("CTE SELECT should pass the read-only check: %v", err)
	}
}

func TestExecuteClassifiesQueryFailure(t *testing.T) {
	exec, mock := newMockExecutor(t, 500)

	query := "SELECT x FROM accounts"
	mock.ExpectQuery(query).WillReturnError(errors.New("SQL logic error: no such column: x (1)"))

	_, err := exec.Execute(context.Background(), query)
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QueryError, got %v", err)
	}
	if qe.Kind != KindSyntax {
		t.Errorf("expected syntax classification, got %s", qe.Kind)
	}
	if !strings.Contains(qe.Message, "no such column") {
		t.Errorf("message should carry the driver text, got %q", qe.Message)
	}
}
