package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/f90lens/internal/cache"
	outputSvc "github.com/panbanda/f90lens/internal/service/output"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the parse cache",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show the number, size and age of cached parse results",
				Action: runCacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Remove every cached parse result",
				Action: runCacheClear,
			},
		},
	}
}

// openCache loads the configuration and opens the configured cache together with
// the output service for the command.
func openCache(c *cli.Context) (*cache.Cache, *outputSvc.Service, string, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, "", err
	}
	out, err := newOutput(c, cfg)
	if err != nil {
		return nil, nil, "", err
	}
	fileCache, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.Enabled)
	if err != nil {
		out.Close()
		return nil, nil, "", err
	}
	return fileCache, out, cfg.Cache.Dir, nil
}

func runCacheStats(c *cli.Context) error {
	fileCache, out, dir, err := openCache(c)
	if err != nil {
		return err
	}
	defer out.Close()

	if !fileCache.Enabled() {
		out.Formatter().Warning("Cache is disabled")
		return nil
	}

	stats, err := fileCache.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	return out.Output(outputSvc.NewTable(
		"Parse Cache",
		[]string{"Metric", "Value"},
		[][]string{
			{"Directory", dir},
			{"Entries", fmt.Sprintf("%d", stats.Entries)},
			{"Size", fmt.Sprintf("%d bytes", stats.TotalSize)},
			{"Oldest", stats.OldestAge.Round(time.Second).String()},
			{"Newest", stats.NewestAge.Round(time.Second).String()},
		},
		nil,
		stats,
	))
}

func runCacheClear(c *cli.Context) error {
	fileCache, out, dir, err := openCache(c)
	if err != nil {
		return err
	}
	defer out.Close()

	if !fileCache.Enabled() {
		out.Formatter().Warning("Cache is disabled")
		return nil
	}

	stats, err := fileCache.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}
	out.Formatter().Info("Removing %d cached entries from %s", stats.Entries, dir)

	if err := fileCache.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	out.Formatter().Success("Cache cleared")
	return nil
}
