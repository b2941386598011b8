// Package mcp exposes the trip actions as MCP tools so external agents
// can read and mutate trip state over the Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/viajo-ai/viajo/internal/actions"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes trip planning tools.
type Server struct {
	router *actions.Router
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server backed by the action router.
func NewServer(router *actions.Router) *Server {
	s := &Server{router: router}

	s.mcp = server.NewMCPServer(
		"viajo",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(getTripContextTool, s.handleGetTripContext)
	s.mcp.AddTool(saveTripInfoTool, s.handleSaveTripInfo)
	s.mcp.AddTool(createTripTool, s.handleCreateTrip)
	s.mcp.AddTool(updateTripPhaseTool, s.handleUpdateTripPhase)
	s.mcp.AddTool(getUserProfileTool, s.handleGetUserProfile)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
