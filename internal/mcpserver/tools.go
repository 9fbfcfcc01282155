package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/panbanda/f90lens/internal/output"
	"github.com/panbanda/f90lens/internal/service/analysis"
	outputSvc "github.com/panbanda/f90lens/internal/service/output"
	"github.com/panbanda/f90lens/pkg/analyzer/contents"
	"github.com/panbanda/f90lens/pkg/analyzer/inventory"
	"github.com/panbanda/f90lens/pkg/analyzer/summary"
)

var errNoFortranFiles = errors.New("no Fortran files found")

// Common input structures for tools

// AnalyzeInput is the base input for all tools.
type AnalyzeInput struct {
	Paths  []string `json:"paths,omitempty" jsonschema:"Paths to analyze. Defaults to current directory if empty."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default), json, yaml, or markdown."`
}

// SummaryInput adds the summary counting modes.
type SummaryInput struct {
	AnalyzeInput
	TopLevelBlocks bool `json:"top_level_blocks,omitempty" jsonschema:"Count only the outermost blocks of each file."`
	TopLevelVars   bool `json:"top_level_vars,omitempty" jsonschema:"With top_level_blocks, count only variables declared directly in those blocks."`
}

// VariablesInput adds variable listing options.
type VariablesInput struct {
	AnalyzeInput
	NoDuplicates bool `json:"no_duplicates,omitempty" jsonschema:"List each variable only under its innermost block."`
}

// Helper functions

func getPaths(input AnalyzeInput) []string {
	if len(input.Paths) == 0 {
		return []string{"."}
	}
	return input.Paths
}

func getFormat(input AnalyzeInput) output.Format {
	switch input.Format {
	case "json":
		return output.FormatJSON
	case "yaml", "yml":
		return output.FormatYAML
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func formatOutput(data any, format output.Format) (string, error) {
	svc, err := outputSvc.New(outputSvc.WithFormat(format), outputSvc.WithColor(false))
	if err != nil {
		return "", err
	}
	return svc.FormatData(data)
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// parse scans and parses the requested paths. A scan without Fortran files is an
// error so the caller gets a message instead of an empty report.
func (s *Server) parse(ctx context.Context, input AnalyzeInput) (*analysis.Result, error) {
	svc := analysis.New(analysis.WithConfig(s.config))
	result, err := svc.ParsePaths(ctx, getPaths(input), analysis.ParseOptions{})
	if err != nil {
		return nil, err
	}
	if len(result.Fortran()) == 0 {
		return nil, errNoFortranFiles
	}
	return result, nil
}

// Tool handlers

func (s *Server) handleSummary(ctx context.Context, req *mcp.CallToolRequest, input SummaryInput) (*mcp.CallToolResult, any, error) {
	result, err := s.parse(ctx, input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}

	report, err := summary.New(
		summary.WithTopLevelBlocks(input.TopLevelBlocks),
		summary.WithTopLevelVars(input.TopLevelVars),
	).Analyze(ctx, result.Files)
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(report, getFormat(input.AnalyzeInput))
}

func (s *Server) handleVariables(ctx context.Context, req *mcp.CallToolRequest, input VariablesInput) (*mcp.CallToolResult, any, error) {
	result, err := s.parse(ctx, input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}

	report, err := inventory.New(inventory.WithNoDuplicates(input.NoDuplicates)).Analyze(ctx, result.Files)
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(report, getFormat(input.AnalyzeInput))
}

func (s *Server) handleRawContents(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	result, err := s.parse(ctx, input)
	if err != nil {
		return toolError(err.Error())
	}

	report, err := contents.New().Analyze(ctx, result.Files)
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(report, getFormat(input))
}
