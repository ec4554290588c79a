// Package pipeline orchestrates the question-to-answer flow: ambiguity
// detection, SQL generation, schema validation, execution, and the
// bounded category-aware retry loop around them.
package pipeline

import (
	"github.com/yogeshramchandani7/cr360-backend/internal/ambiguity"
)

// Category labels one class of attempt failure. Each category carries
// its own retry budget.
type Category string

const (
	CategorySchemaHallucination Category = "SCHEMA_HALLUCINATION"
	CategorySyntaxError         Category = "SYNTAX_ERROR"
	CategorySemanticError       Category = "SEMANTIC_ERROR"
	CategoryExecutionError      Category = "EXECUTION_ERROR"
)

// RetryBudgets bounds retries per failure category plus an overall cap
// on generation attempts.
type RetryBudgets struct {
	SchemaHallucination int
	Syntax              int
	Semantic            int
	Execution           int
	MaxAttempts         int
}

// DefaultRetryBudgets mirrors the shipped configuration defaults.
func DefaultRetryBudgets() RetryBudgets {
	return RetryBudgets{
		SchemaHallucination: 2,
		Syntax:              2,
		Semantic:            1,
		Execution:           1,
		MaxAttempts:         3,
	}
}

func (b RetryBudgets) forCategory(c Category) int {
	switch c {
	case CategorySchemaHallucination:
		return b.SchemaHallucination
	case CategorySyntaxError:
		return b.Syntax
	case CategorySemanticError:
		return b.Semantic
	default:
		return b.Execution
	}
}

// AttemptRecord documents one generation attempt for the response's
// attempt trail.
type AttemptRecord struct {
	Number   int      `json:"number"`
	SQL      string   `json:"sql,omitempty"`
	Category Category `json:"category,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Success  bool     `json:"success"`
}

// TokenUsage aggregates model token consumption over all attempts.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// QueryResult is the terminal outcome of processing one question.
type QueryResult struct {
	Success            bool                `json:"success"`
	GeneratedQuery     string              `json:"generated_query,omitempty"`
	Data               []map[string]any    `json:"data,omitempty"`
	Explanation        string              `json:"explanation,omitempty"`
	Confidence         float64             `json:"confidence"`
	Attempts           []AttemptRecord     `json:"attempts,omitempty"`
	NeedsClarification bool                `json:"needs_clarification"`
	Clarification      *ambiguity.Request  `json:"clarification,omitempty"`
	MetricsUsed        []string            `json:"metrics_used,omitempty"`
	VisualizationHint  string              `json:"visualization_hint,omitempty"`
	RowCount           int                 `json:"row_count"`
	Usage              TokenUsage          `json:"usage"`
	Suggestions        []string            `json:"suggestions,omitempty"`
	SessionID          string              `json:"session_id,omitempty"`
}
