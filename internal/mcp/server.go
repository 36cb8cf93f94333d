// Package mcp exposes sidebar lookups and validation to coding agents over
// the Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/sidenav/internal/content"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Options configures the tools.
type Options struct {
	// DefaultSidebar is used when a tool call names no sidebar.
	DefaultSidebar string
	// Validate is the base for validate_sidebar; Content becomes its
	// Resolver when set.
	Validate sidebar.ValidateOptions
	Content  *content.Set
}

// Server wraps an MCP server that exposes sidebar tools.
type Server struct {
	file *sidebar.File
	opts Options
	mcp  *server.MCPServer
}

// NewServer creates a new MCP server over a loaded sidebar file.
func NewServer(file *sidebar.File, opts Options) *Server {
	s := &Server{
		file: file,
		opts: opts,
	}

	s.mcp = server.NewMCPServer(
		"sidenav",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listSidebarsTool, s.handleListSidebars)
	s.mcp.AddTool(getSidebarTool, s.handleGetSidebar)
	s.mcp.AddTool(findDocumentTool, s.handleFindDocument)
	s.mcp.AddTool(validateSidebarTool, s.handleValidateSidebar)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
