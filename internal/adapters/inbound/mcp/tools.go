package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/abdidvp/wflint/internal/adapters/outbound/config"
	"github.com/abdidvp/wflint/internal/adapters/outbound/parser"
	"github.com/abdidvp/wflint/internal/adapters/outbound/scanner"
	"github.com/abdidvp/wflint/internal/adapters/outbound/schema"
	"github.com/abdidvp/wflint/internal/application"
	"github.com/abdidvp/wflint/internal/domain"
)

// validateResponse is the JSON body of wflint_validate.
type validateResponse struct {
	Dir     string         `json:"dir"`
	Passed  bool           `json:"passed"`
	Failing int            `json:"failing"`
	Files   domain.Outcome `json:"files"`
}

func registerTools(s *server.MCPServer, projectPath string) {
	s.AddTool(
		mcplib.NewTool("wflint_validate",
			mcplib.WithDescription("Validates every workflow file in a directory and returns the failing files with their errors as JSON"),
			mcplib.WithString("dir",
				mcplib.Description("Workflow directory relative to the project root (defaults to the configured directory, usually .github/workflows)"),
			),
		),
		handleValidate(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("wflint_validate_file",
			mcplib.WithDescription("Validates a single workflow file and returns its result as JSON"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the workflow file, relative to the project root"),
			),
		),
		handleValidateFile(projectPath),
	)
}

func handleValidate(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, svc, err := newLintService(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		dir := cfg.WorkflowDir
		if d, ok := request.GetArguments()["dir"].(string); ok && d != "" {
			dir = d
		}
		dir = resolve(projectPath, dir)

		outcome, err := svc.ValidateDir(dir)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(validateResponse{
			Dir:     dir,
			Passed:  outcome.Passed(),
			Failing: len(outcome),
			Files:   outcome,
		})
	}
}

func handleValidateFile(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		_, svc, err := newLintService(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(svc.ValidateFile(resolve(projectPath, file)))
	}
}

// newLintService loads the project config and compiles its schema.
func newLintService(projectPath string) (domain.Config, *application.LintService, error) {
	cfg, err := config.New().Load(projectPath)
	if err != nil {
		return domain.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}
	src, err := schema.LoadSource(cfg.Schema, cfg.MetaSchemas)
	if err != nil {
		return domain.Config{}, nil, err
	}
	v, err := schema.Compile(src, zerolog.Nop())
	if err != nil {
		return domain.Config{}, nil, err
	}
	svc := application.NewLintService(scanner.New(cfg.SkipPrefix), parser.New(), v, cfg.Jobs, zerolog.Nop())
	return cfg, svc, nil
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// jsonResult marshals v into a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
