// Package analysis turns scanned files into parsed source file records.
package analysis

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/panbanda/f90lens/internal/cache"
	"github.com/panbanda/f90lens/internal/fileproc"
	scannerSvc "github.com/panbanda/f90lens/internal/service/scanner"
	"github.com/panbanda/f90lens/pkg/config"
	"github.com/panbanda/f90lens/pkg/models"
	"github.com/panbanda/f90lens/pkg/parser"
)

// Service orchestrates parsing of scanned files.
type Service struct {
	config *config.Config
	parser *parser.Parser
	cache  *cache.Results
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithCache stores and reuses parse results in c.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		if c != nil && c.Enabled() {
			s.cache = cache.NewResults(c)
		}
	}
}

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a new analysis service.
func New(opts ...Option) *Service {
	s := &Service{
		config: config.LoadOrDefault(),
		parser: parser.New(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseOptions configures a parse run.
type ParseOptions struct {
	// OnProgress is called once per Fortran file.
	OnProgress func()
}

// Result is the outcome of parsing a scan.
type Result struct {
	Root  string
	Files []*models.SourceFile
	// SkippedBySize counts Fortran files over scan.max_file_size.
	SkippedBySize int
	CacheHits     int
}

// Fortran returns the Fortran file records.
func (r *Result) Fortran() []*models.SourceFile {
	var files []*models.SourceFile
	for _, f := range r.Files {
		if f.IsFortran {
			files = append(files, f)
		}
	}
	return files
}

// Failed returns the Fortran files whose parse failed.
func (r *Result) Failed() []*models.SourceFile {
	var files []*models.SourceFile
	for _, f := range r.Files {
		if f.IsFortran && f.FailedParse {
			files = append(files, f)
		}
	}
	return files
}

// ParseFiles parses every Fortran file of a scan in parallel and records the other
// files as non-Fortran entries. Files are reported relative to the scan root, sorted
// by path.
//
// A file that fails to parse becomes a record with FailedParse set, unless
// parse.raise_errors is on, in which case the first failure (in scan order) aborts
// the run and is returned.
func (s *Service) ParseFiles(ctx context.Context, scan *scannerSvc.ScanResult, opts ParseOptions) (*Result, error) {
	raise := s.config.Parse.RaiseErrors
	var hits atomic.Int64

	parsed, errs := fileproc.MapFilesN(ctx, scan.Fortran, func(path string) (*models.SourceFile, error) {
		file, hit, err := s.parseFile(scan.RelPath(path), path)
		if hit {
			hits.Add(1)
		}
		if err == nil {
			return file, nil
		}
		if raise {
			return nil, err
		}
		s.logger.Warn("parse.failed", "path", scan.RelPath(path), "err", err)
		return &models.SourceFile{
			Path:        scan.RelPath(path),
			IsFortran:   true,
			FailedParse: true,
			ParseError:  err.Error(),
		}, nil
	}, fileproc.Options{
		Workers:    s.config.Parse.Workers,
		FailFast:   raise,
		OnProgress: opts.OnProgress,
	})

	if errs != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errs.Errors[0].Err
	}

	files := parsed
	for _, path := range scan.Other {
		files = append(files, &models.SourceFile{Path: scan.RelPath(path)})
	}
	slices.SortFunc(files, func(a, b *models.SourceFile) int {
		return strings.Compare(a.Path, b.Path)
	})

	return &Result{
		Root:          scan.Root,
		Files:         files,
		SkippedBySize: scan.SkippedBySize,
		CacheHits:     int(hits.Load()),
	}, nil
}

// ParsePaths scans paths with the service's configuration and parses the result.
func (s *Service) ParsePaths(ctx context.Context, paths []string, opts ParseOptions) (*Result, error) {
	scan, err := scannerSvc.New(scannerSvc.WithConfig(s.config)).ScanPaths(paths)
	if err != nil {
		return nil, err
	}
	return s.ParseFiles(ctx, scan, opts)
}

// parseFile reads and parses one file. relPath is the identity recorded in blocks
// and variables; the returned bool reports a cache hit.
func (s *Service) parseFile(relPath, absPath string) (*models.SourceFile, bool, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", relPath, err)
	}

	res, hash, hit := s.cache.Lookup(relPath, content)
	if hit {
		s.logger.Debug("cache.hit", "path", relPath)
		return sourceFile(res), true, nil
	}

	start := time.Now()
	res, err = s.parser.ParseReader(relPath, bytes.NewReader(content))
	if err != nil {
		return nil, false, err
	}
	s.logger.Debug("parse.done",
		"path", relPath,
		"statements", len(res.Statements),
		"blocks", len(res.Blocks),
		"elapsed", time.Since(start),
	)

	if err := s.cache.Store(relPath, hash, res); err != nil {
		s.logger.Warn("cache.store_failed", "path", relPath, "err", err)
	}
	return sourceFile(res), false, nil
}

// ParseSource parses in-memory content under the given path identity, bypassing
// the scan and the cache.
func (s *Service) ParseSource(path string, content []byte) *models.SourceFile {
	res, err := s.parser.ParseReader(path, bytes.NewReader(content))
	if err != nil {
		return &models.SourceFile{Path: path, IsFortran: true, FailedParse: true, ParseError: err.Error()}
	}
	return sourceFile(res)
}

func sourceFile(res *parser.Result) *models.SourceFile {
	return &models.SourceFile{
		Path:        res.Path,
		IsFortran:   true,
		Statements:  res.Statements,
		Components:  res.Blocks,
		Diagnostics: res.Diagnostics,
	}
}
