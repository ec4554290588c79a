// Package memory keeps per-session conversation state: a sliding window
// of recent turns plus an active context of extracted entity slots, so
// follow-up questions like "what about the northeast?" resolve against
// what was discussed before.
package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/yogeshramchandani7/cr360-backend/internal/catalog"
)

// Turn is one message in the conversation window.
type Turn struct {
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	GeneratedQuery string    `json:"generated_query,omitempty"`
	ResultSummary  string    `json:"result_summary,omitempty"`
}

// ActiveContext holds the entity slots extracted from user turns. A slot
// keeps its value until a later turn mentions a new one.
type ActiveContext struct {
	RegionFocus      string `json:"region_focus,omitempty"`
	ProductFocus     string `json:"product_focus,omitempty"`
	SegmentFocus     string `json:"segment_focus,omitempty"`
	MetricFocus      string `json:"metric_focus,omitempty"`
	TimePeriod       string `json:"time_period,omitempty"`
	ComparisonPeriod string `json:"comparison_period,omitempty"`
	ComparisonMode   string `json:"comparison_mode,omitempty"`
}

const contentTruncateLen = 200

// Memory is the conversation state for a single session. It is not safe
// for concurrent use; the session manager serializes access.
type Memory struct {
	maxTurns int
	turns    []Turn
	active   ActiveContext
	ext      *extractor
}

// New creates a memory holding at most maxTurns question/answer pairs.
func New(maxTurns int, patterns catalog.Patterns) (*Memory, error) {
	ext, err := newExtractor(patterns)
	if err != nil {
		return nil, err
	}
	return &Memory{maxTurns: maxTurns, ext: ext}, nil
}

// AddUserTurn records a user message and updates the active context with
// any entities the message mentions.
func (m *Memory) AddUserTurn(content string) {
	m.ext.apply(&m.active, content)
	m.append(Turn{Role: "user", Content: content, Timestamp: time.Now()})
}

// AddAssistantTurn records an assistant response together with the query
// it ran and a short result summary.
func (m *Memory) AddAssistantTurn(content, generatedQuery, resultSummary string) {
	m.append(Turn{
		Role:           "assistant",
		Content:        content,
		Timestamp:      time.Now(),
		GeneratedQuery: generatedQuery,
		ResultSummary:  resultSummary,
	})
}

// append adds a turn and evicts the oldest beyond the window cap. The
// cap is in messages: maxTurns pairs.
func (m *Memory) append(t Turn) {
	m.turns = append(m.turns, t)
	if max := m.maxTurns * 2; len(m.turns) > max {
		m.turns = m.turns[len(m.turns)-max:]
	}
}

// Active returns a copy of the current slot values.
func (m *Memory) Active() ActiveContext {
	return m.active
}

// Turns returns the retained conversation window, oldest first.
func (m *Memory) Turns() []Turn {
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Clear drops all turns and slot values.
func (m *Memory) Clear() {
	m.turns = nil
	m.active = ActiveContext{}
}

// ContextForPrompt renders the session state as a prompt section: active
// slots first, then the last executed query, then the recent turns.
// Empty sections are omitted; a fresh session renders as "".
func (m *Memory) ContextForPrompt() string {
	var b strings.Builder

	slots := [][2]string{
		{"Region focus", m.active.RegionFocus},
		{"Product focus", m.active.ProductFocus},
		{"Segment focus", m.active.SegmentFocus},
		{"Metric focus", m.active.MetricFocus},
		{"Time period", m.active.TimePeriod},
		{"Comparison", m.active.ComparisonPeriod},
		{"Comparison mode", m.active.ComparisonMode},
	}
	wroteHeader := false
	for _, s := range slots {
		if s[1] == "" {
			continue
		}
		if !wroteHeader {
			b.WriteString("Active context:\n")
			wroteHeader = true
		}
		fmt.Fprintf(&b, "  - %s: %s\n", s[0], s[1])
	}

	if q, summary := m.lastQuery(); q != "" {
		fmt.Fprintf(&b, "Last query:\n  %s\n", truncate(q, contentTruncateLen))
		if summary != "" {
			fmt.Fprintf(&b, "  Result: %s\n", truncate(summary, contentTruncateLen))
		}
	}

	if len(m.turns) > 0 {
		b.WriteString("Recent turns:\n")
		for _, t := range m.turns {
			fmt.Fprintf(&b, "  [%s] %s\n", t.Role, truncate(t.Content, contentTruncateLen))
		}
	}

	return b.String()
}

func (m *Memory) lastQuery() (query, summary string) {
	for i := len(m.turns) - 1; i >= 0; i-- {
		if m.turns[i].GeneratedQuery != "" {
			return m.turns[i].GeneratedQuery, m.turns[i].ResultSummary
		}
	}
	return "", ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
