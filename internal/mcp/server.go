package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/errdex/errdex/internal/catalog"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes error catalog tools.
type Server struct {
	catalog *catalog.Service
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server backed by the loaded catalog.
func NewServer(cat *catalog.Service) *Server {
	s := &Server{catalog: cat}

	s.mcp = server.NewMCPServer(
		"errdex",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchErrorsTool, s.handleSearchErrors)
	s.mcp.AddTool(getErrorTool, s.handleGetError)
	s.mcp.AddTool(listCategoriesTool, s.handleListCategories)
	s.mcp.AddTool(catalogStatsTool, s.handleCatalogStats)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
