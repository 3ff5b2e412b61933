package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/wflint/internal/adapters/outbound/config"
	"github.com/abdidvp/wflint/internal/adapters/outbound/schema"
)

func registerResources(s *server.MCPServer, projectPath string) {
	// wflint://schema - the schema workflows are validated against
	s.AddResource(
		mcplib.NewResource(
			"wflint://schema",
			"Workflow Schema",
			mcplib.WithResourceDescription("JSON Schema used to validate workflow files"),
			mcplib.WithMIMEType("application/schema+json"),
		),
		handleSchemaResource(projectPath),
	)

	// wflint://config - effective configuration
	s.AddResource(
		mcplib.NewResource(
			"wflint://config",
			"Configuration",
			mcplib.WithResourceDescription("Effective wflint configuration for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)
}

func handleSchemaResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		src, err := schema.LoadSource(cfg.Schema, nil)
		if err != nil {
			return nil, err
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "wflint://schema",
				MIMEType: "application/schema+json",
				Text:     string(src.Data),
			},
		}, nil
	}
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "wflint://config",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
