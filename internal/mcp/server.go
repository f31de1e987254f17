// ABOUTME: MCP server setup for the health dashboard.
// ABOUTME: Wraps the MCP server around a shared Dashboard.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/healthdash/internal/dashboard"
)

// Server wraps the MCP server with dashboard access.
type Server struct {
	mcpServer *mcp.Server
	dash      *dashboard.Dashboard
}

// NewServer creates a new MCP server over dash.
func NewServer(dash *dashboard.Dashboard) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "healthdash",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		dash:      dash,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
