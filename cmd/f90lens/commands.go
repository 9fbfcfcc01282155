package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/f90lens/internal/service/analysis"
	"github.com/panbanda/f90lens/pkg/analyzer/contents"
	"github.com/panbanda/f90lens/pkg/analyzer/inventory"
	"github.com/panbanda/f90lens/pkg/analyzer/summary"
)

func rawContentsCmd() *cli.Command {
	return &cli.Command{
		Name:      "raw-contents",
		Aliases:   []string{"raw"},
		Usage:     "Print the logical statements of each Fortran file",
		ArgsUsage: "[path...]",
		Action: func(c *cli.Context) error {
			return report(c, func(ctx context.Context, result *analysis.Result) (any, error) {
				res, err := contents.New().Analyze(ctx, result.Files)
				if err != nil {
					return nil, err
				}
				return contentsReport(res), nil
			})
		},
	}
}

func summaryCmd() *cli.Command {
	return &cli.Command{
		Name:      "summary",
		Aliases:   []string{"sum"},
		Usage:     "Count code blocks and variables by kind and data type",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "top-level-blocks",
				Usage: "Count only the outermost blocks of each file",
			},
			&cli.BoolFlag{
				Name:  "top-level-vars",
				Usage: "With --top-level-blocks, count only variables declared directly in those blocks",
			},
		},
		Action: func(c *cli.Context) error {
			return report(c, func(ctx context.Context, result *analysis.Result) (any, error) {
				res, err := summary.New(
					summary.WithTopLevelBlocks(c.Bool("top-level-blocks")),
					summary.WithTopLevelVars(c.Bool("top-level-vars")),
				).Analyze(ctx, result.Files)
				if err != nil {
					return nil, err
				}
				return summaryReport(res), nil
			})
		},
	}
}

func variablesCmd() *cli.Command {
	return &cli.Command{
		Name:      "variables",
		Aliases:   []string{"vars"},
		Usage:     "List every code block with its declared variables",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-duplicates",
				Usage: "List each variable only under the innermost block declaring it",
			},
		},
		Action: func(c *cli.Context) error {
			return report(c, func(ctx context.Context, result *analysis.Result) (any, error) {
				res, err := inventory.New(inventory.WithNoDuplicates(c.Bool("no-duplicates"))).Analyze(ctx, result.Files)
				if err != nil {
					return nil, err
				}
				return variablesReport(res), nil
			})
		},
	}
}
