// Package mcp exposes the extraction pipeline over the Model Context
// Protocol, so editor agents can transform sources and fetch the generated
// stylesheet without shelling out to the CLI.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/cascadiacollections/fluentstatic/pkg/mcplog"
	"github.com/cascadiacollections/fluentstatic/pkg/runner"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server, exposing extraction tools backed by a
// shared runner.
type Server struct {
	mcpServer *server.MCPServer
	runner    *runner.Runner
	logger    *mcplog.Logger // nil disables call logging
}

// NewServer creates an MCP server on top of r. A nil log disables the
// per-call JSONL log.
func NewServer(r *runner.Runner, log *mcplog.Logger) *Server {
	s := &Server{runner: r, logger: log}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if log != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("fluentstatic", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: extractSourceTool(), Handler: s.handleExtractSource},
		server.ServerTool{Tool: extractProjectTool(), Handler: s.handleExtractProject},
		server.ServerTool{Tool: getStylesheetTool(), Handler: s.handleGetStylesheet},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
