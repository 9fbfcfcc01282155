package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/f90lens/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes the f90lens
reports as tools that LLMs can invoke.

To use with an MCP client, add to its config:
  {
    "mcpServers": {
      "f90lens": {
        "command": "f90lens",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - fortran_summary       Block and variable counts by kind and data type
  - fortran_variables     Code blocks with their declared variables
  - fortran_raw_contents  Logical statements of each file`,
		Action: runMCPCmd,
		Subcommands: []*cli.Command{
			{
				Name:  "manifest",
				Usage: "Print the MCP registry manifest (server.json)",
				Action: func(c *cli.Context) error {
					data, err := mcpserver.GenerateManifest(version)
					if err != nil {
						return err
					}
					fmt.Println(string(data))
					return nil
				},
			},
		},
	}
}

func runMCPCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	server, err := mcpserver.NewServer(version, cfg)
	if err != nil {
		return err
	}
	return server.Run(c.Context)
}
