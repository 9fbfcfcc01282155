// Package contents reports the reconstructed statements of parsed Fortran files.
package contents

import (
	"context"

	"github.com/panbanda/f90lens/pkg/analyzer"
	"github.com/panbanda/f90lens/pkg/models"
)

// Ensure Analyzer implements analyzer.SourceAnalyzer.
var _ analyzer.SourceAnalyzer[*Contents] = (*Analyzer)(nil)

// File holds one file's statements. Statements are absent for non-Fortran and
// failed files.
type File struct {
	Path        string   `json:"path" yaml:"filePath" toon:"path"`
	FailedParse bool     `json:"failed_parse" yaml:"failedFortranParse" toon:"failed_parse"`
	Contents    []string `json:"contents,omitempty" yaml:"contents,omitempty" toon:"contents,omitempty"`
}

// Contents is the raw statement listing over a set of files.
type Contents struct {
	analyzer.FileCounts `yaml:",inline"`

	Files []File `json:"files" yaml:"files" toon:"files"`
}

// StatementCount returns the number of statements listed.
func (c *Contents) StatementCount() int {
	n := 0
	for _, f := range c.Files {
		n += len(f.Contents)
	}
	return n
}

// Analyzer builds Contents.
type Analyzer struct{}

// New creates a new contents analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze lists the statement text of every parsed file, one entry per statement.
// Statements split from one line by semicolons appear separately.
func (a *Analyzer) Analyze(ctx context.Context, files []*models.SourceFile) (*Contents, error) {
	c := &Contents{
		FileCounts: analyzer.CountFiles(files),
		Files:      make([]File, 0, len(files)),
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := File{Path: f.Path, FailedParse: f.FailedParse}
		if f.Parsed() {
			entry.Contents = make([]string, 0, len(f.Statements))
			for _, s := range f.Statements {
				entry.Contents = append(entry.Contents, s.Content)
			}
		}
		c.Files = append(c.Files, entry)
	}
	return c, nil
}
