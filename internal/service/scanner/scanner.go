package scanner

import (
	"os"
	"path/filepath"

	"github.com/panbanda/f90lens/internal/scanner"
	"github.com/panbanda/f90lens/pkg/config"
)

// ScanResult contains the result of a file scan.
type ScanResult struct {
	// Files holds every file kept by the scan, Fortran or not, in walk order.
	Files   []string
	Fortran []string
	Other   []string
	// Root is the directory file paths are reported relative to.
	Root string
	// SkippedBySize counts Fortran files dropped by scan.max_file_size.
	SkippedBySize int
}

// Service provides file scanning functionality.
type Service struct {
	config *config.Config
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// New creates a new scanner service.
func New(opts ...Option) *Service {
	s := &Service{
		config: config.LoadOrDefault(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.config == nil {
		s.config = config.DefaultConfig()
	}
	return s
}

// ScanPaths scans directories and single files and returns the files found.
// Directories are walked recursively; a file argument is kept when it passes the
// same filters a walked file would.
func (s *Service) ScanPaths(paths []string) (*ScanResult, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	scan := scanner.NewScanner(s.config)
	result := &ScanResult{}

	for i, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, &PathError{Path: path, Err: err}
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, &PathError{Path: path, Err: err}
		}

		if i == 0 {
			result.Root = absPath
			if !info.IsDir() {
				result.Root = filepath.Dir(absPath)
			}
		}

		if !info.IsDir() {
			ok, err := scan.ScanFile(absPath)
			if err != nil {
				return nil, &ScanError{Path: path, Err: err}
			}
			if ok {
				result.Files = append(result.Files, absPath)
			}
			continue
		}

		found, err := scan.ScanDir(absPath)
		if err != nil {
			return nil, &ScanError{Path: path, Err: err}
		}
		result.Files = append(result.Files, found...)
	}

	result.Fortran, result.Other = scan.Partition(result.Files)
	result.Fortran, result.SkippedBySize = scanner.FilterBySize(result.Fortran, s.config.Scan.MaxFileSize)

	return result, nil
}

// RelPath returns path relative to the scan root, falling back to path itself.
func (r *ScanResult) RelPath(path string) string {
	if r.Root == "" {
		return path
	}
	rel, err := filepath.Rel(r.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// FilterBySize filters files by maximum size.
func (s *Service) FilterBySize(files []string, maxSize int64) ([]string, int) {
	return scanner.FilterBySize(files, maxSize)
}

// PathError indicates an invalid path.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return "invalid path " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ScanError indicates a scanning failure.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return "failed to scan " + e.Path + ": " + e.Err.Error()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
