package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleRunQuery pushes a question through the full pipeline and renders
// the terminal result as text.
func (s *Server) handleRunQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}
	sessionID := request.GetString("session_id", "")

	res, err := s.engine.Process(ctx, question, sessionID, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	if res.NeedsClarification {
		var b strings.Builder
		b.WriteString("Clarification needed before this can run.\n\n")
		b.WriteString(res.Clarification.Message)
		b.WriteString("\n\n")
		b.WriteString(res.Clarification.DefaultAction)
		fmt.Fprintf(&b, "\nExample: %s", res.Clarification.ExampleQuery)
		return mcp.NewToolResultText(b.String()), nil
	}

	if !res.Success {
		var b strings.Builder
		b.WriteString(res.Explanation)
		if len(res.Suggestions) > 0 {
			b.WriteString("\n\nExample questions:\n")
			for _, sugg := range res.Suggestions {
				fmt.Fprintf(&b, "  - %s\n", sugg)
			}
		}
		return mcp.NewToolResultError(b.String()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SQL:\n%s\n\n", res.GeneratedQuery)
	if res.Explanation != "" {
		fmt.Fprintf(&b, "%s\n\n", res.Explanation)
	}
	fmt.Fprintf(&b, "Rows: %d\n", res.RowCount)

	data, err := json.MarshalIndent(res.Data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding results: %v", err)), nil
	}
	b.Write(data)

	return mcp.NewToolResultText(b.String()), nil
}

// handleListMetrics lists or searches the metric catalog.
func (s *Server) handleListMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cat := s.engine.Catalog()

	metrics := cat.Metrics()
	if search := request.GetString("search", ""); search != "" {
		metrics = cat.SearchMetrics(search)
	}
	if len(metrics) == 0 {
		return mcp.NewToolResultText("No metrics matched."), nil
	}

	var b strings.Builder
	for _, m := range metrics {
		fmt.Fprintf(&b, "- %s: %s", m.Name, m.Description)
		if m.Formula != "" {
			fmt.Fprintf(&b, " [%s]", m.Formula)
		}
		if len(m.Synonyms) > 0 {
			fmt.Fprintf(&b, " (also: %s)", strings.Join(m.Synonyms, ", "))
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleGetSchema returns the rendered semantic model.
func (s *Server) handleGetSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.engine.Catalog().ContextForLLM()), nil
}
