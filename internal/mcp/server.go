// Package mcp exposes the query pipeline as MCP tools so coding agents
// and chat clients can query the portfolio over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/yogeshramchandani7/cr360-backend/internal/pipeline"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes portfolio query tools.
type Server struct {
	engine *pipeline.Engine
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server around the pipeline engine.
func NewServer(engine *pipeline.Engine) *Server {
	s := &Server{engine: engine}

	s.mcp = server.NewMCPServer(
		"cr360",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(runQueryTool, s.handleRunQuery)
	s.mcp.AddTool(listMetricsTool, s.handleListMetrics)
	s.mcp.AddTool(getSchemaTool, s.handleGetSchema)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
