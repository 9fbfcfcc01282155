package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "f90lens",
		Usage:   "Structural analysis of Fortran 90 sources",
		Version: version,
		Description: `f90lens parses free-form Fortran 90 files into code blocks (programs,
modules, subprograms, derived types, interfaces, DO loops and IF blocks) and
their declared variables, and reports on them.

Only .f90 files are read unless --beta-extensions is given.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"F90LENS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, yaml, markdown, toon (default: from --output, else config)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable caching",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
			&cli.BoolFlag{
				Name:  "raise-errors",
				Usage: "Fail on the first file that cannot be parsed",
			},
			&cli.BoolFlag{
				Name:  "beta-extensions",
				Usage: "Also parse .f, .F90 and .F files",
			},
			&cli.BoolFlag{
				Name:  "all-files",
				Usage: "List non-Fortran files in reports",
			},
		},
		Commands: []*cli.Command{
			rawContentsCmd(),
			summaryCmd(),
			variablesCmd(),
			watchCmd(),
			mcpCmd(),
			configCmd(),
			cacheCmd(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		stop()
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
