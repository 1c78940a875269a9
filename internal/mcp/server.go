// ABOUTME: MCP server setup for the intervals workout store.
// ABOUTME: Wraps MCP server with storage Repository connection and a workout generator.
package mcp

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/intervals/internal/logging"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/harperreed/intervals/internal/workout"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	gen       *workout.Generator
	now       func() time.Time
	log       *log.Logger
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, version string, logger *log.Logger) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "intervals",
			Version: version,
		},
		nil,
	)
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		now:       time.Now,
		log:       logger,
	}
	s.gen = workout.NewGenerator(nil, func() time.Time { return s.now() })

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
