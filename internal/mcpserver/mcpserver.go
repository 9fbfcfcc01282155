package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/panbanda/f90lens/pkg/config"
)

// Server wraps the MCP server and registers the f90lens analysis tools.
type Server struct {
	server *mcp.Server
	config *config.Config
}

// NewServer creates a new MCP server with all f90lens tools registered. A nil cfg
// falls back to the config file found in the working directory, or the defaults.
func NewServer(version string, cfg *config.Config) (*Server, error) {
	if version == "" {
		version = "dev"
	}
	if cfg == nil {
		cfg = config.LoadOrDefault()
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "f90lens",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server, config: cfg}
	s.registerTools()
	if err := s.registerPrompts(); err != nil {
		return nil, err
	}
	return s, nil
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds the Fortran analysis tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fortran_summary",
		Description: describeSummary(),
	}, s.handleSummary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fortran_variables",
		Description: describeVariables(),
	}, s.handleVariables)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fortran_raw_contents",
		Description: describeRawContents(),
	}, s.handleRawContents)
}
