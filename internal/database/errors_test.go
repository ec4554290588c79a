package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestClassifyPostgresErrors(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
		want ErrorKind
	}{
		{"syntax error", "42601", KindSyntax},
		{"undefined table", "42P01", KindSyntax},
		{"undefined column", "42703", KindSyntax},
		{"grouping violation", "42803", KindSemantic},
		{"datatype mismatch", "42804", KindSemantic},
		{"division by zero", "22012", KindSemantic},
		{"connection failure", "08006", KindExecution},
		{"insufficient resources", "53100", KindExecution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qe := classify(&pq.Error{Code: tt.code, Message: tt.name})
			if qe.Kind != tt.want {
				t.Errorf("code %s: got %s, want %s", tt.code, qe.Kind, tt.want)
			}
		})
	}
}

func TestClassifySQLiteErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"syntax", errors.New(`SQL logic error: near "FORM": syntax error (1)`), KindSyntax},
		{"unknown table", errors.New("SQL logic error: no such table: metrics (1)"), KindSyntax},
		{"unknown column", errors.New("SQL logic error: no such column: fico_band (1)"), KindSyntax},
		{"aggregate misuse", errors.New("SQL logic error: misuse of aggregate: SUM() (1)"), KindSemantic},
		{"ambiguous column", errors.New("SQL logic error: ambiguous column name: as_of_date (1)"), KindSemantic},
		{"locked database", errors.New("database is locked (5)"), KindExecution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qe := classify(tt.err)
			if qe.Kind != tt.want {
				t.Errorf("got %s, want %s", qe.Kind, tt.want)
			}
		})
	}
}

func TestClassifyContextErrors(t *testing.T) {
	wrapped := fmt.Errorf("query: %w", context.DeadlineExceeded)
	if qe := classify(wrapped); qe.Kind != KindExecution {
		t.Errorf("deadline exceeded should be execution, got %s", qe.Kind)
	}
	if qe := classify(context.Canceled); qe.Kind != KindExecution {
		t.Errorf("cancellation should be execution, got %s", qe.Kind)
	}
}

func TestQueryErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	qe := classify(fmt.Errorf("outer: %w", inner))
	if !errors.Is(qe, inner) {
		t.Error("QueryError should unwrap to the driver error")
	}
}
