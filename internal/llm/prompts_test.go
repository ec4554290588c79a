package llm

import (
	"strings"
	"testing"
)

func TestParseSQLResponse(t *testing.T) {
	content := "Here is the query.\n```sql\nSELECT region_code, SUM(adjusted_eop_balance)\nFROM accounts\nGROUP BY region_code\n```\nExplanation: Sums balances by region.\nMetrics used: gross_exposure\n"

	res := ParseSQLResponse(content)
	if !strings.HasPrefix(res.SQL, "SELECT region_code") {
		t.Errorf("unexpected SQL: %q", res.SQL)
	}
	if strings.Contains(res.SQL, "```") {
		t.Errorf("SQL should not contain fence markers: %q", res.SQL)
	}
	if res.Explanation != "Sums balances by region." {
		t.Errorf("unexpected explanation: %q", res.Explanation)
	}
	if len(res.Metrics) != 1 || res.Metrics[0] != "gross_exposure" {
		t.Errorf("unexpected metrics: %v", res.Metrics)
	}
}

func TestParseSQLResponseBareSelect(t *testing.T) {
	res := ParseSQLResponse("SELECT COUNT(*) FROM accounts")
	if res.SQL != "SELECT COUNT(*) FROM accounts" {
		t.Errorf("unfenced SELECT should be accepted, got %q", res.SQL)
	}
}

func TestParseSQLResponseNoSQL(t *testing.T) {
	res := ParseSQLResponse("I cannot answer that question.")
	if res.SQL != "" {
		t.Errorf("expected empty SQL, got %q", res.SQL)
	}
}

func TestParseSQLResponseMetricsNone(t *testing.T) {
	res := ParseSQLResponse("```sql\nSELECT 1\n```\nMetrics used: none")
	if len(res.Metrics) != 0 {
		t.Errorf("expected no metrics, got %v", res.Metrics)
	}
}

func TestSQLSystemPromptContainsSchema(t *testing.T) {
	prompt := SQLSystemPrompt("# Database Schema\n## Table `accounts`")
	for _, want := range []string{"accounts", "computed_metrics", "SELECT", "Respond in exactly this format"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestBuildSQLMessages(t *testing.T) {
	msgs := BuildSQLMessages("system", "Region focus: northeast", "What about products?", "")
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleSystem {
		t.Errorf("first message should be system, got %s", msgs[0].Role)
	}
	if !strings.Contains(msgs[1].Content, "Region focus: northeast") {
		t.Error("memory context should be included in the user message")
	}
	if !strings.Contains(msgs[1].Content, "Question: What about products?") {
		t.Error("question should be included in the user message")
	}
}

func TestRetryFeedbackWording(t *testing.T) {
	fb := RetryFeedback("SCHEMA_HALLUCINATION", "SELECT x FROM metrics", []string{`unknown table "metrics"`})
	if !strings.Contains(fb, "do not exist") {
		t.Errorf("schema feedback should mention nonexistent identifiers, got %q", fb)
	}
	if !strings.Contains(fb, "SELECT x FROM metrics") {
		t.Error("feedback should include the failed query")
	}

	fb = RetryFeedback("SYNTAX_ERROR", "SELEC 1", []string{"syntax error"})
	if !strings.Contains(fb, "invalid SQL") {
		t.Errorf("syntax feedback wording wrong, got %q", fb)
	}
}
