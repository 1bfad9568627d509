// ABOUTME: MCP server setup for the fittrack tracker.
// ABOUTME: Wraps the MCP server with the tracker service and acting user.
package mcp

import (
	"context"

	"github.com/harperreed/fittrack/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with tracker access. The acting user is fixed
// at startup; auth is the host's concern.
type Server struct {
	mcpServer *mcp.Server
	tracker   *service.Tracker
	userID    string
}

// NewServer creates a new MCP server acting as the given user.
func NewServer(tracker *service.Tracker, userID string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fittrack",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		tracker:   tracker,
		userID:    userID,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
