package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewWflintMCPServer creates an MCP server exposing workflow validation for
// the repository rooted at projectPath.
func NewWflintMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"wflint",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
