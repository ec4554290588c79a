package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/yogeshramchandani7/cr360-backend/internal/catalog"
	"github.com/yogeshramchandani7/cr360-backend/internal/llm"
	"github.com/yogeshramchandani7/cr360-backend/internal/memory"
	"github.com/yogeshramchandani7/cr360-backend/internal/pipeline"
	"github.com/yogeshramchandani7/cr360-backend/internal/validator"
)

type mockProvider struct{}

func (mockProvider) Name() string { return "mock" }

func (mockProvider) Complete(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{
		Content: "```sql\nSELECT region_code FROM accounts\n```\nExplanation: mock.\nMetrics used: none",
	}, nil
}

type mockExecutor struct{}

func (mockExecutor) Execute(context.Context, string) ([]map[string]any, error) {
	return []map[string]any{{"region_code": "NORTH"}}, nil
}

func newTestMCPServer(t *testing.T) *Server {
	t.Helper()
	cat := catalog.Default()
	orch := pipeline.NewOrchestrator(
		mockProvider{},
		validator.New(cat),
		mockExecutor{},
		pipeline.DefaultRetryBudgets(),
		pipeline.GenerationSettings{Temperature: 0.1, MaxTokens: 512},
		llm.SQLSystemPrompt(cat.ContextForLLM()),
		cat.ExampleQuestions(),
		zap.NewNop(),
	)
	engine, err := pipeline.NewEngine(cat, orch, memory.NewManager(5, cat.Patterns()), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return NewServer(engine)
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"run_query", runQueryTool, "run_query"},
		{"list_metrics", listMetricsTool, "list_metrics"},
		{"get_schema", getSchemaTool, "get_schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestMCPServer(t)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.engine == nil {
		t.Fatal("engine not set")
	}
}

func TestHandleRunQuery(t *testing.T) {
	srv := newTestMCPServer(t)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"question": "Show originations by region"}

	result, err := srv.handleRunQuery(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
}

func TestHandleRunQueryClarification(t *testing.T) {
	srv := newTestMCPServer(t)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"question": "What's our exposure?"}

	result, err := srv.handleRunQuery(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("clarification is not a tool error: %v", result.Content)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Clarification needed") {
		t.Errorf("expected clarification text, got %q", text)
	}
}

func TestHandleRunQueryMissingQuestion(t *testing.T) {
	srv := newTestMCPServer(t)

	req := mcp.CallToolRequest{}
	result, err := srv.handleRunQuery(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("missing question should be a tool error")
	}
}

func TestHandleListMetrics(t *testing.T) {
	srv := newTestMCPServer(t)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"search": "nco"}

	result, err := srv.handleListMetrics(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "net_charge_offs") {
		t.Errorf("expected net_charge_offs in %q", text)
	}
}

func TestHandleGetSchema(t *testing.T) {
	srv := newTestMCPServer(t)

	result, err := srv.handleGetSchema(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	for _, want := range []string{"accounts", "computed_metrics", "Business Rules"} {
		if !strings.Contains(text, want) {
			t.Errorf("schema text missing %q", want)
		}
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var b strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}
