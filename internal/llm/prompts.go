package llm

import (
	"fmt"
	"regexp"
	"strings"
)

// GenerationResult is the parsed form of a model response to a SQL
// generation prompt.
type GenerationResult struct {
	SQL         string
	Explanation string
	Metrics     []string
}

const sqlResponseFormat = `Respond in exactly this format:

` + "```sql" + `
<the SQL query>
` + "```" + `
Explanation: <one or two sentences describing what the query computes>
Metrics used: <comma-separated metric names, or "none">`

// SQLSystemPrompt assembles the system prompt for SQL generation from
// the rendered schema context. The routing rules steer the model toward
// the pre-aggregated table for portfolio-level questions and toward the
// account-level table for anything requiring row-level filters.
func SQLSystemPrompt(schemaContext string) string {
	var b strings.Builder

	b.WriteString("You are a SQL analyst for a credit-risk portfolio database. ")
	b.WriteString("Translate the user's question into a single read-only SQL SELECT statement.\n\n")
	b.WriteString(schemaContext)
	b.WriteString("\n# Query Routing\n")
	b.WriteString("  - Use `computed_metrics` for portfolio-level totals, rates, and trends that it already contains. It is pre-aggregated by as_of_date.\n")
	b.WriteString("  - Use `accounts` when the question needs grouping, filtering, or dimensions (region, product, segment) that `computed_metrics` does not carry.\n")
	b.WriteString("  - Never join the two tables.\n")
	b.WriteString("\n# Rules\n")
	b.WriteString("  - Use only the tables and columns listed above. Do not invent identifiers.\n")
	b.WriteString("  - Generate exactly one SELECT statement. No INSERT, UPDATE, DELETE, DDL, or multiple statements.\n")
	b.WriteString("  - When no time period is given, use the most recent as_of_date.\n")
	b.WriteString("  - Prefer explicit column lists over SELECT *.\n\n")
	b.WriteString(sqlResponseFormat)

	return b.String()
}

// BuildSQLMessages assembles the conversation for one generation attempt.
// memoryContext and feedback are optional; feedback carries the failure
// summary of the previous attempt on retries.
func BuildSQLMessages(systemPrompt, memoryContext, question, feedback string) []Message {
	msgs := []Message{{Role: RoleSystem, Content: systemPrompt}}

	var user strings.Builder
	if memoryContext != "" {
		user.WriteString("# Conversation Context\n")
		user.WriteString(memoryContext)
		user.WriteString("\n")
	}
	fmt.Fprintf(&user, "Question: %s", question)
	if feedback != "" {
		user.WriteString("\n\n")
		user.WriteString(feedback)
	}

	msgs = append(msgs, Message{Role: RoleUser, Content: user.String()})
	return msgs
}

// RetryFeedback renders the previous attempt's failure into corrective
// instructions for the next generation attempt. The wording depends on
// the failure category so the model fixes the right thing.
func RetryFeedback(category, previousSQL string, errors []string) string {
	var b strings.Builder

	b.WriteString("Your previous query failed. Previous query:\n")
	b.WriteString("```sql\n")
	b.WriteString(strings.TrimSpace(previousSQL))
	b.WriteString("\n```\n")

	switch category {
	case "SCHEMA_HALLUCINATION":
		b.WriteString("It referenced tables or columns that do not exist:\n")
	case "SYNTAX_ERROR":
		b.WriteString("It was rejected by the database as invalid SQL:\n")
	case "SEMANTIC_ERROR":
		b.WriteString("It was syntactically valid but semantically wrong:\n")
	default:
		b.WriteString("It failed during execution:\n")
	}
	for _, e := range errors {
		fmt.Fprintf(&b, "  - %s\n", e)
	}
	b.WriteString("Write a corrected query using only the documented schema.")

	return b.String()
}

var sqlFenceRe = regexp.MustCompile("(?s)```sql\\s*(.*?)```")

// ParseSQLResponse extracts the SQL statement, explanation, and metric
// list from a model response in the documented format. Responses without
// a fenced block fall back to treating the whole content as SQL if it
// starts with SELECT.
func ParseSQLResponse(content string) GenerationResult {
	var res GenerationResult

	if m := sqlFenceRe.FindStringSubmatch(content); m != nil {
		res.SQL = strings.TrimSpace(m[1])
	} else if trimmed := strings.TrimSpace(content); strings.HasPrefix(strings.ToUpper(trimmed), "SELECT") {
		res.SQL = trimmed
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := cutPrefixFold(line, "explanation:"); ok {
			res.Explanation = strings.TrimSpace(rest)
			continue
		}
		if rest, ok := cutPrefixFold(line, "metrics used:"); ok {
			for _, name := range strings.Split(rest, ",") {
				name = strings.TrimSpace(name)
				if name == "" || strings.EqualFold(name, "none") {
					continue
				}
				res.Metrics = append(res.Metrics, name)
			}
		}
	}

	return res
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return "", false
}
