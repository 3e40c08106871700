package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/nextgen-ti/kbportal/internal/catalog"
	"github.com/nextgen-ti/kbportal/internal/chat"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the knowledge base to agents.
type Server struct {
	catalog  *catalog.Catalog
	selector *chat.Selector
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server over the catalog and assistant rules.
func NewServer(c *catalog.Catalog, selector *chat.Selector) *Server {
	if selector == nil {
		selector = chat.DefaultSelector()
	}
	s := &Server{
		catalog:  c,
		selector: selector,
	}

	s.mcp = server.NewMCPServer(
		"kbportal",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listCategoriesTool, s.handleListCategories)
	s.mcp.AddTool(searchArticlesTool, s.handleSearchArticles)
	s.mcp.AddTool(getArticleTool, s.handleGetArticle)
	s.mcp.AddTool(askAssistantTool, s.handleAskAssistant)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
