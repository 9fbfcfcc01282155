package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for f90lens.
type Config struct {
	// Which files are considered during a scan
	Scan ScanConfig `koanf:"scan" toml:"scan"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Parser behaviour
	Parse ParseConfig `koanf:"parse" toml:"parse"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// ScanConfig controls file discovery.
type ScanConfig struct {
	Extensions            []string `koanf:"extensions" toml:"extensions"`
	BetaExtensions        []string `koanf:"beta_extensions" toml:"beta_extensions"`
	IncludeBetaExtensions bool     `koanf:"include_beta_extensions" toml:"include_beta_extensions"`
	FortranOnly           bool     `koanf:"fortran_only" toml:"fortran_only"`
	MaxFileSize           int64    `koanf:"max_file_size" toml:"max_file_size"` // bytes, 0 = unlimited
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns" toml:"patterns"`
	Dirs      []string `koanf:"dirs" toml:"dirs"`
	Gitignore bool     `koanf:"gitignore" toml:"gitignore"`
}

// ParseConfig controls how parse failures and parallelism are handled.
type ParseConfig struct {
	RaiseErrors bool `koanf:"raise_errors" toml:"raise_errors"`
	Workers     int  `koanf:"workers" toml:"workers"` // 0 = 2x NumCPU
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, yaml, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "yaml", "markdown", "toon"}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Extensions:     []string{".f90"},
			BetaExtensions: []string{".f", ".F90", ".F"},
			FortranOnly:    true,
		},
		Exclude: ExcludeConfig{
			Dirs: []string{
				".git",
				".f90lens",
				"build",
				"_build",
				"CMakeFiles",
			},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".f90lens/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k, err := loadKoanf(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadRaw loads a config file without applying defaults, for schema validation.
func LoadRaw(path string) (map[string]any, error) {
	k, err := loadKoanf(path)
	if err != nil {
		return nil, err
	}
	return k.Raw(), nil
}

func loadKoanf(path string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	// Determine parser based on extension
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	return k, nil
}

// configNames are the file names searched for, in order.
var configNames = []string{
	"f90lens.toml",
	"f90lens.yaml",
	"f90lens.yml",
	"f90lens.json",
	".f90lens.toml",
	".f90lens.yaml",
	".f90lens.yml",
	".f90lens.json",
}

// searchDirs are the directories searched for config files.
var searchDirs = []string{".", ".f90lens"}

// FindConfigFile returns the first config file found in the standard locations under
// root, or "" when there is none.
func FindConfigFile(root string) string {
	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(root, dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	if path := FindConfigFile("."); path != "" {
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}

// LoadResult is a loaded, validated config and the file it came from.
type LoadResult struct {
	Config *Config
	// Source is the config file path, or "" when defaults were used.
	Source string
}

type loadOptions struct {
	path string
	root string
}

// LoadOption configures LoadConfig.
type LoadOption func(*loadOptions)

// WithPath loads the given file instead of searching the standard locations.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) { o.path = path }
}

// WithRoot searches the standard locations under root instead of the working directory.
func WithRoot(root string) LoadOption {
	return func(o *loadOptions) { o.root = root }
}

// LoadConfig loads and validates configuration. An explicit path that cannot be read
// is an error; when searching, a missing file yields the defaults.
func LoadConfig(opts ...LoadOption) (*LoadResult, error) {
	o := loadOptions{root: "."}
	for _, opt := range opts {
		opt(&o)
	}

	path := o.path
	if path == "" {
		path = FindConfigFile(o.root)
	}
	if path == "" {
		return &LoadResult{Config: DefaultConfig()}, nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &LoadResult{Config: cfg, Source: path}, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Scan.Extensions) == 0 {
		errs = append(errs, errors.New("scan.extensions must not be empty"))
	}
	for _, ext := range append(slices.Clone(c.Scan.Extensions), c.Scan.BetaExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extension %q must start with '.'", ext))
		}
	}
	if c.Scan.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("scan.max_file_size must be >= 0, got %d", c.Scan.MaxFileSize))
	}
	if c.Parse.Workers < 0 {
		errs = append(errs, fmt.Errorf("parse.workers must be >= 0, got %d", c.Parse.Workers))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must be >= 0, got %d", c.Cache.TTL))
	}
	if c.Cache.Enabled && c.Cache.Dir == "" {
		errs = append(errs, errors.New("cache.dir must be set when the cache is enabled"))
	}
	if !slices.Contains(Formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format %q must be one of %s", c.Output.Format, strings.Join(Formats, ", ")))
	}

	return errors.Join(errs...)
}

// FortranExtensions returns the extensions treated as Fortran source.
func (c *Config) FortranExtensions() []string {
	exts := slices.Clone(c.Scan.Extensions)
	if c.Scan.IncludeBetaExtensions {
		exts = append(exts, c.Scan.BetaExtensions...)
	}
	return exts
}

// IsFortranFile reports whether path has one of the configured Fortran extensions.
// Extensions compare case-sensitively, so ".F90" is distinct from ".f90".
func (c *Config) IsFortranFile(path string) bool {
	return slices.Contains(c.FortranExtensions(), filepath.Ext(path))
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	// Check directory exclusions
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	// Check pattern exclusions
	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
