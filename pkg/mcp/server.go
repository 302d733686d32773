package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/urmzd/homesim/pkg/home"
)

// Server wraps the MCP server around a running Home
type Server struct {
	mcpServer *server.MCPServer
	home      *home.Home
}

// NewServer creates a new MCP server exposing device, sensor and automation tools
func NewServer(h *home.Home, version string) *Server {
	s := &Server{home: h}

	s.mcpServer = server.NewMCPServer(
		"homesim",
		version,
		server.WithToolCapabilities(true),
	)

	// Register all tools
	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
