package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/f90lens/internal/cache"
	"github.com/panbanda/f90lens/internal/progress"
	"github.com/panbanda/f90lens/internal/service/analysis"
	outputSvc "github.com/panbanda/f90lens/internal/service/output"
	scannerSvc "github.com/panbanda/f90lens/internal/service/scanner"
	"github.com/panbanda/f90lens/pkg/config"
)

// loadConfig loads the config named by --config (or found in the working directory)
// and applies the global flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var opts []config.LoadOption
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithPath(path))
	}

	result, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, err
	}

	cfg := result.Config
	if c.Bool("raise-errors") {
		cfg.Parse.RaiseErrors = true
	}
	if c.Bool("beta-extensions") {
		cfg.Scan.IncludeBetaExtensions = true
	}
	if c.Bool("all-files") {
		cfg.Scan.FortranOnly = false
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

// newLogger returns the stderr diagnostics logger: debug level when verbose,
// warnings only otherwise.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newOutput builds the output service from --format and --output. Without either,
// the configured format is used.
func newOutput(c *cli.Context, cfg *config.Config) (*outputSvc.Service, error) {
	opts := []outputSvc.Option{outputSvc.WithColor(cfg.Output.Color)}

	name := c.String("format")
	if name == "" && c.String("output") == "" {
		name = cfg.Output.Format
	}
	if name != "" {
		format, err := outputSvc.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, outputSvc.WithFormat(format))
	}
	if path := c.String("output"); path != "" {
		opts = append(opts, outputSvc.WithFile(path))
	}

	return outputSvc.New(opts...)
}

// parseProject scans the command's paths and parses every Fortran file found. A
// scan without Fortran files still yields a result so reports come out with zero
// counts.
func parseProject(ctx context.Context, c *cli.Context, cfg *config.Config) (*analysis.Result, error) {
	logger := newLogger(cfg)

	scanResult, err := scannerSvc.New(scannerSvc.WithConfig(cfg)).ScanPaths(getPaths(c))
	if err != nil {
		return nil, err
	}
	if scanResult.SkippedBySize > 0 {
		logger.Warn("scan.skipped_by_size", "files", scanResult.SkippedBySize, "max_file_size", cfg.Scan.MaxFileSize)
	}
	if len(scanResult.Fortran) == 0 {
		fmt.Fprintln(os.Stderr, color.YellowString("No Fortran files found"))
		svc := analysis.New(analysis.WithConfig(cfg), analysis.WithLogger(logger))
		return svc.ParseFiles(ctx, scanResult, analysis.ParseOptions{})
	}

	fileCache, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.Enabled)
	if err != nil {
		return nil, err
	}

	svc := analysis.New(
		analysis.WithConfig(cfg),
		analysis.WithCache(fileCache),
		analysis.WithLogger(logger),
	)

	tracker := progress.NewTracker("Parsing Fortran files...", len(scanResult.Fortran))
	result, err := svc.ParseFiles(ctx, scanResult, analysis.ParseOptions{OnProgress: tracker.Tick})
	if err != nil {
		tracker.FinishError(err)
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	tracker.FinishSuccess()

	logger.Debug("parse.summary",
		"files", len(result.Files),
		"failed", len(result.Failed()),
		"cache_hits", result.CacheHits,
	)
	return result, nil
}

// report runs the shared command pipeline: config, parse, then render whatever
// build returns.
func report(c *cli.Context, build func(ctx context.Context, result *analysis.Result) (any, error)) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	out, err := newOutput(c, cfg)
	if err != nil {
		return err
	}
	defer out.Close()

	result, err := parseProject(c.Context, c, cfg)
	if err != nil {
		return err
	}

	data, err := build(c.Context, result)
	if err != nil {
		return err
	}
	if err := out.Output(data); err != nil {
		return err
	}

	if failed := result.Failed(); len(failed) > 0 && out.Format() == outputSvc.FormatText {
		fmt.Println()
		color.Yellow("Failed to parse (%d):", len(failed))
		for _, f := range failed {
			fmt.Printf("  - %s\n", f.ParseError)
		}
	}
	return nil
}
