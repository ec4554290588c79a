package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yogeshramchandani7/cr360-backend/internal/database"
	"github.com/yogeshramchandani7/cr360-backend/internal/llm"
	"github.com/yogeshramchandani7/cr360-backend/internal/validator"
)

// GenerationSettings are the model parameters used for every attempt.
type GenerationSettings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Orchestrator drives the generate-validate-execute loop with bounded,
// category-aware retries.
type Orchestrator struct {
	provider     llm.Provider
	validator    *validator.Validator
	executor     database.Executor
	budgets      RetryBudgets
	settings     GenerationSettings
	systemPrompt string
	suggestions  []string
	log          *zap.Logger
}

// NewOrchestrator wires the loop. systemPrompt is the schema-bearing
// generation prompt; suggestions are example questions surfaced when
// all retries are exhausted.
func NewOrchestrator(provider llm.Provider, v *validator.Validator, executor database.Executor, budgets RetryBudgets, settings GenerationSettings, systemPrompt string, suggestions []string, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		provider:     provider,
		validator:    v,
		executor:     executor,
		budgets:      budgets,
		settings:     settings,
		systemPrompt: systemPrompt,
		suggestions:  suggestions,
		log:          log,
	}
}

// Run processes one question through the retry loop and always returns
// a terminal result: either a successful query with data or a fallback
// explaining the failures. It never returns a transient state.
func (o *Orchestrator) Run(ctx context.Context, question, memoryContext string) *QueryResult {
	res := &QueryResult{}
	spent := map[Category]int{}
	feedback := ""
	failed := 0

	for attempt := 1; attempt <= o.budgets.MaxAttempts; attempt++ {
		rec := AttemptRecord{Number: attempt}

		sql, genErr := o.generate(ctx, question, memoryContext, feedback, res)
		rec.SQL = sql

		category, attemptErrs := o.evaluate(ctx, sql, genErr, res)
		if category == "" {
			rec.Success = true
			res.Attempts = append(res.Attempts, rec)
			res.Success = true
			res.GeneratedQuery = sql
			res.Confidence = confidence(failed)
			recordQuery("success")
			o.log.Info("query succeeded",
				zap.Int("attempt", attempt),
				zap.Int("rows", len(res.Data)))
			return res
		}

		rec.Category = category
		rec.Errors = attemptErrs
		res.Attempts = append(res.Attempts, rec)
		failed++
		spent[category]++
		recordAttempt(string(category))
		o.log.Warn("attempt failed",
			zap.Int("attempt", attempt),
			zap.String("category", string(category)),
			zap.Strings("errors", attemptErrs))

		if spent[category] > o.budgets.forCategory(category) {
			break
		}
		feedback = llm.RetryFeedback(string(category), sql, attemptErrs)
	}

	res.Success = false
	res.Confidence = confidence(failed)
	res.Explanation = fallbackExplanation(res.Attempts)
	res.Suggestions = o.suggestions
	recordQuery("fallback")
	return res
}

// generate runs one completion and extracts the SQL. Provider failures
// and unparseable responses surface as errors.
func (o *Orchestrator) generate(ctx context.Context, question, memoryContext, feedback string, res *QueryResult) (string, error) {
	resp, err := o.provider.Complete(ctx, llm.CompletionRequest{
		Model:       o.settings.Model,
		Messages:    llm.BuildSQLMessages(o.systemPrompt, memoryContext, question, feedback),
		MaxTokens:   o.settings.MaxTokens,
		Temperature: o.settings.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	res.Usage.InputTokens += resp.InputTokens
	res.Usage.OutputTokens += resp.OutputTokens

	gen := llm.ParseSQLResponse(resp.Content)
	if gen.SQL == "" {
		return "", errors.New("model response contained no SQL statement")
	}

	res.Explanation = gen.Explanation
	res.MetricsUsed = gen.Metrics
	return gen.SQL, nil
}

// evaluate validates and executes one generated query. It returns the
// failure category and messages, or an empty category on success.
func (o *Orchestrator) evaluate(ctx context.Context, sql string, genErr error, res *QueryResult) (Category, []string) {
	if genErr != nil {
		return CategoryExecutionError, []string{genErr.Error()}
	}

	if vres := o.validator.Validate(sql); !vres.Valid {
		return CategorySchemaHallucination, vres.Errors
	}

	data, err := o.executor.Execute(ctx, sql)
	if err != nil {
		return executionCategory(err), []string{err.Error()}
	}

	res.Data = data
	res.RowCount = len(data)
	return "", nil
}

func executionCategory(err error) Category {
	var qe *database.QueryError
	if errors.As(err, &qe) {
		switch qe.Kind {
		case database.KindSyntax:
			return CategorySyntaxError
		case database.KindSemantic:
			return CategorySemanticError
		}
	}
	return CategoryExecutionError
}

// confidence degrades with each failed attempt.
func confidence(failedAttempts int) float64 {
	c := 0.95 - 0.25*float64(failedAttempts)
	if c < 0.2 {
		return 0.2
	}
	return c
}

func fallbackExplanation(attempts []AttemptRecord) string {
	if len(attempts) == 0 {
		return "The question could not be answered."
	}
	last := attempts[len(attempts)-1]
	msg := "I could not produce a working query for this question."
	if len(last.Errors) > 0 {
		msg += " Last failure: " + last.Errors[0]
	}
	msg += " Try rephrasing, or start from one of the example questions."
	return msg
}
