package database

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
)

// ErrorKind classifies a query failure so the retry orchestrator can
// pick the right budget and feedback wording.
type ErrorKind int

const (
	// KindSyntax covers queries the database could not parse or bind:
	// bad grammar, unknown identifiers that slipped past validation.
	KindSyntax ErrorKind = iota
	// KindSemantic covers queries that parsed but are logically wrong:
	// aggregate misuse, grouping violations, type mismatches, or
	// statements that break the read-only rule.
	KindSemantic
	// KindExecution covers environmental failures: timeouts, lost
	// connections, cancelled contexts.
	KindExecution
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindSemantic:
		return "semantic"
	default:
		return "execution"
	}
}

// QueryError wraps a database failure with its classification.
type QueryError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// classify maps a driver error onto an ErrorKind. Unrecognized errors
// default to execution failures, which get the smallest retry budget.
func classify(err error) *QueryError {
	qe := &QueryError{Message: err.Error(), Err: err}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		qe.Kind = KindExecution
		return qe
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "42601", // syntax_error
			pqErr.Code == "42P01", // undefined_table
			pqErr.Code == "42703": // undefined_column
			qe.Kind = KindSyntax
		case pqErr.Code.Class() == "42":
			// Remaining class 42 errors (grouping violations, wrong
			// argument types, aggregate misuse) are semantic.
			qe.Kind = KindSemantic
		case pqErr.Code.Class() == "22":
			// Data exceptions such as division by zero.
			qe.Kind = KindSemantic
		default:
			qe.Kind = KindExecution
		}
		return qe
	}

	// SQLite reports everything as text.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "syntax error"),
		strings.Contains(msg, "unrecognized token"),
		strings.Contains(msg, "incomplete input"),
		strings.Contains(msg, "no such table"),
		strings.Contains(msg, "no such column"):
		qe.Kind = KindSyntax
	case strings.Contains(msg, "misuse of aggregate"),
		strings.Contains(msg, "aggregate functions are not allowed"),
		strings.Contains(msg, "group by"),
		strings.Contains(msg, "ambiguous column"):
		qe.Kind = KindSemantic
	default:
		qe.Kind = KindExecution
	}
	return qe
}
