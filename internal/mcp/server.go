// ABOUTME: MCP server for folio integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts for category and note management.

package mcp

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harper/folio/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server *mcp.Server
	store  *store.Store
	log    *log.Logger

	// mu serializes calls; each one reloads and then reads the shared
	// projections.
	mu sync.Mutex
}

func NewServer(st *store.Store, logger *log.Logger) *Server {
	s := &Server{store: st, log: logger}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "folio",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// serialized wraps a tool handler so only one runs at a time.
func (s *Server) serialized(h mcp.ToolHandler) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.log.Debug("tool call", "name", req.Params.Name)
		return h(ctx, req)
	}
}

// categoryIndex reloads every category and returns the position of name.
func (s *Server) categoryIndex(ctx context.Context, name string) (int, error) {
	if err := s.store.LoadCategories(ctx, ""); err != nil {
		return 0, err
	}
	return s.store.CategoryIndex(name)
}
