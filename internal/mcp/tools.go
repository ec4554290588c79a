package mcp

import "github.com/mark3labs/mcp-go/mcp"

// runQueryTool defines the run_query MCP tool.
var runQueryTool = mcp.NewTool("run_query",
	mcp.WithDescription("Answer a natural-language question about the credit portfolio by generating and executing SQL. May return a clarification request when the question uses an ambiguous term."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("Natural language question about the portfolio"),
	),
	mcp.WithString("session_id",
		mcp.Description("Session identifier for conversational context; omit for a one-off question"),
	),
)

// listMetricsTool defines the list_metrics MCP tool.
var listMetricsTool = mcp.NewTool("list_metrics",
	mcp.WithDescription("List the defined portfolio metrics, optionally filtered by a search term matched against names, descriptions, and synonyms."),
	mcp.WithString("search",
		mcp.Description("Optional search term"),
	),
)

// getSchemaTool defines the get_schema MCP tool.
var getSchemaTool = mcp.NewTool("get_schema",
	mcp.WithDescription("Get the queryable schema: tables, columns, metric definitions, and business rules."),
)
