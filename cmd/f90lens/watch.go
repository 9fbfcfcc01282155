package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/f90lens/internal/service/analysis"
	"github.com/panbanda/f90lens/pkg/analyzer/summary"
	"github.com/panbanda/f90lens/pkg/models"
	"github.com/panbanda/f90lens/pkg/watch"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch for Fortran file changes and re-summarize them",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Value: watch.DefaultDebounce,
				Usage: "Quiet period before a changed file is re-parsed",
			},
		},
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(getPaths(c)[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	watcher, err := watch.NewWatcher(absPath, cfg, c.Duration("debounce"))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	svc := analysis.New(analysis.WithConfig(cfg), analysis.WithLogger(newLogger(cfg)))
	watcher.SetCallback(func(changedPath string) {
		summarizeChange(c.Context, os.Stdout, svc, absPath, changedPath)
	})

	err = watcher.Start(c.Context)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nStopping watch...")
		return nil
	}
	return err
}

// summarizeChange re-parses one changed file and prints a one-line summary of it.
func summarizeChange(ctx context.Context, w io.Writer, svc *analysis.Service, root, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		// Removed or renamed between the event and the debounce firing.
		return
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	file := svc.ParseSource(rel, content)
	if file.FailedParse {
		fmt.Fprintln(w, color.RedString("  %s", file.ParseError))
		return
	}

	s, err := summary.New().Analyze(ctx, []*models.SourceFile{file})
	if err != nil {
		return
	}
	fmt.Fprintf(w, "  %d blocks, %d comments, %d statement lines (%.0f%% in top-level blocks)\n",
		s.Blocks.Total(), s.CommentCount, s.Coverage.StatementLines, s.Coverage.Ratio*100)
	for _, d := range file.Diagnostics {
		fmt.Fprintln(w, color.YellowString("  line %d: %s", d.Line, d.Message))
	}
}
