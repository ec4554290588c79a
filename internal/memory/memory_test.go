package memory

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yogeshramchandani7/cr360-backend/internal/catalog"
)

func newTestMemory(t *testing.T) *Memory {
	t.Helper()
	m, err := New(5, catalog.Default().Patterns())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestSlotCarryOver(t *testing.T) {
	m := newTestMemory(t)

	m.AddUserTurn("Show me delinquency rates for the northeast region")
	ac := m.Active()
	if ac.RegionFocus != "Northeast" {
		t.Errorf("expected region Northeast, got %q", ac.RegionFocus)
	}
	if ac.MetricFocus != "delinquency" {
		t.Errorf("expected metric delinquency, got %q", ac.MetricFocus)
	}

	// A follow-up that names only a product keeps the region.
	m.AddUserTurn("What about credit cards?")
	ac = m.Active()
	if ac.ProductFocus != "Credit Card" {
		t.Errorf("expected product Credit Card, got %q", ac.ProductFocus)
	}
	if ac.RegionFocus != "Northeast" {
		t.Errorf("region should carry over, got %q", ac.RegionFocus)
	}
	if ac.MetricFocus != "delinquency" {
		t.Errorf("metric should carry over, got %q", ac.MetricFocus)
	}
}

func TestSlotOverwrite(t *testing.T) {
	m := newTestMemory(t)

	m.AddUserTurn("Gross exposure in the northeast")
	m.AddUserTurn("And in the southwest?")
	if got := m.Active().RegionFocus; got != "Southwest" {
		t.Errorf("newer mention should overwrite, got %q", got)
	}
}

func TestLastMentionWinsWithinTurn(t *testing.T) {
	m := newTestMemory(t)

	m.AddUserTurn("Compare the northeast against the southwest")
	if got := m.Active().RegionFocus; got != "Southwest" {
		t.Errorf("last mention in the turn should win, got %q", got)
	}
}

func TestComparisonFillsPeriodAndMode(t *testing.T) {
	m := newTestMemory(t)

	m.AddUserTurn("How does exposure compare to last quarter?")
	ac := m.Active()
	if ac.ComparisonPeriod != "last quarter" {
		t.Errorf("expected comparison period 'last quarter', got %q", ac.ComparisonPeriod)
	}
	if ac.ComparisonMode != "quarter_over_quarter" {
		t.Errorf("expected mode quarter_over_quarter, got %q", ac.ComparisonMode)
	}
}

func TestTimePeriodExtraction(t *testing.T) {
	m := newTestMemory(t)

	m.AddUserTurn("Show originations for Q2 2025")
	if got := m.Active().TimePeriod; got != "q2 2025" {
		t.Errorf("expected time period 'q2 2025', got %q", got)
	}
}

func TestWindowEviction(t *testing.T) {
	m := newTestMemory(t)

	for i := 0; i < 8; i++ {
		m.AddUserTurn(fmt.Sprintf("question %d", i))
		m.AddAssistantTurn(fmt.Sprintf("answer %d", i), "", "")
	}

	turns := m.Turns()
	if len(turns) != 10 {
		t.Fatalf("window should cap at 10 messages, got %d", len(turns))
	}
	if turns[0].Content != "question 3" {
		t.Errorf("oldest turns should be evicted first, got %q", turns[0].Content)
	}
	if turns[len(turns)-1].Content != "answer 7" {
		t.Errorf("newest turn should be retained, got %q", turns[len(turns)-1].Content)
	}
}

func TestEvictionKeepsSlots(t *testing.T) {
	m := newTestMemory(t)

	m.AddUserTurn("Delinquency in the northeast")
	for i := 0; i < 10; i++ {
		m.AddUserTurn(fmt.Sprintf("question %d", i))
		m.AddAssistantTurn(fmt.Sprintf("answer %d", i), "", "")
	}

	// The originating turn is long gone but the slot survives.
	if got := m.Active().RegionFocus; got != "Northeast" {
		t.Errorf("slots must outlive the turn window, got %q", got)
	}
}

func TestContextForPrompt(t *testing.T) {
	m := newTestMemory(t)

	if got := m.ContextForPrompt(); got != "" {
		t.Errorf("fresh session should render empty, got %q", got)
	}

	m.AddUserTurn("Show delinquency for the northeast")
	m.AddAssistantTurn("Here are the rates.", "SELECT delinquency_rate_30_plus FROM computed_metrics", "4 rows")

	ctx := m.ContextForPrompt()
	for _, want := range []string{
		"Region focus: Northeast",
		"SELECT delinquency_rate_30_plus",
		"4 rows",
		"[user] Show delinquency for the northeast",
		"[assistant] Here are the rates.",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("prompt context missing %q in:\n%s", want, ctx)
		}
	}
}

func TestContextForPromptTruncatesLongContent(t *testing.T) {
	m := newTestMemory(t)

	m.AddUserTurn(strings.Repeat("x", 500))
	ctx := m.ContextForPrompt()
	if !strings.Contains(ctx, "...") {
		t.Error("long turns should be truncated in the prompt context")
	}
	if strings.Contains(ctx, strings.Repeat("x", 300)) {
		t.Error("truncation did not shorten the turn content")
	}
}

func TestClear(t *testing.T) {
	m := newTestMemory(t)

	m.AddUserTurn("Exposure in the northeast")
	m.Clear()
	if len(m.Turns()) != 0 {
		t.Error("Clear should drop turns")
	}
	if m.Active() != (ActiveContext{}) {
		t.Error("Clear should drop slot values")
	}
}

func TestManagerSessions(t *testing.T) {
	mgr := NewManager(5, catalog.Default().Patterns())

	s1, err := mgr.Get("alpha")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	s2, err := mgr.Get("alpha")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s1 != s2 {
		t.Error("same ID must return the same session")
	}

	anon, err := mgr.Get("")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if anon.ID == "" {
		t.Error("empty ID should allocate a generated one")
	}
	if mgr.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", mgr.Len())
	}

	mem, unlock := s1.Lock()
	mem.AddUserTurn("Exposure in the northeast")
	unlock()

	mgr.Reset("alpha")
	mem, unlock = s1.Lock()
	if len(mem.Turns()) != 0 {
		t.Error("Reset should clear the session memory")
	}
	unlock()

	mgr.Remove("alpha")
	if mgr.Len() != 1 {
		t.Errorf("expected 1 session after Remove, got %d", mgr.Len())
	}
}

func TestSessionIsolation(t *testing.T) {
	mgr := NewManager(5, catalog.Default().Patterns())

	a, _ := mgr.Get("a")
	b, _ := mgr.Get("b")

	mem, unlock := a.Lock()
	mem.AddUserTurn("Delinquency in the northeast")
	unlock()

	mem, unlock = b.Lock()
	defer unlock()
	if mem.Active().RegionFocus != "" {
		t.Error("sessions must not share state")
	}
}
