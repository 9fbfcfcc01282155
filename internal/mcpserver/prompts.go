package mcpserver

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/*.md
var promptFiles embed.FS

// promptFrontmatter is parsed from YAML frontmatter in prompt files.
type promptFrontmatter struct {
	Description string `yaml:"description"`
}

// prompt is one embedded prompt file split into its frontmatter and body.
type prompt struct {
	name        string
	description string
	body        string
}

// loadPrompts reads every markdown prompt in the prompts directory of fsys. Each
// prompt must carry a description in its frontmatter.
func loadPrompts(fsys fs.FS) ([]prompt, error) {
	entries, err := fs.ReadDir(fsys, "prompts")
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts: %w", err)
	}

	var prompts []prompt
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join("prompts", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt %s: %w", entry.Name(), err)
		}

		description, body := parseFrontmatter(content)
		if description == "" {
			return nil, fmt.Errorf("prompt %s has no description", entry.Name())
		}
		prompts = append(prompts, prompt{
			name:        strings.TrimSuffix(entry.Name(), ".md"),
			description: description,
			body:        body,
		})
	}
	return prompts, nil
}

// registerPrompts registers the embedded prompts on the server.
func (s *Server) registerPrompts() error {
	prompts, err := loadPrompts(promptFiles)
	if err != nil {
		return err
	}
	for _, p := range prompts {
		s.server.AddPrompt(&mcp.Prompt{
			Name:        p.name,
			Description: p.description,
		}, makePromptHandler(p.description, p.body))
	}
	return nil
}

// parseFrontmatter extracts YAML frontmatter and returns description and body.
func parseFrontmatter(content []byte) (description string, body string) {
	if !bytes.HasPrefix(content, []byte("---\n")) {
		return "", string(content)
	}

	rest := content[4:]
	end := bytes.Index(rest, []byte("\n---\n"))
	if end == -1 {
		return "", string(content)
	}

	var fm promptFrontmatter
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return "", string(content)
	}

	body = strings.TrimPrefix(string(rest[end+5:]), "\n")
	return fm.Description, body
}

func makePromptHandler(description, body string) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: description,
			Messages: []*mcp.PromptMessage{
				{
					Role:    "user",
					Content: &mcp.TextContent{Text: body},
				},
			},
		}, nil
	}
}
