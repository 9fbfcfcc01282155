package analyzer

import (
	"context"

	"github.com/panbanda/f90lens/pkg/models"
)

// SourceAnalyzer is the interface implemented by analyzers that report on parsed
// Fortran sources. Files include non-Fortran and failed records so analyzers can
// report file counts the same way.
type SourceAnalyzer[T any] interface {
	// Analyze processes a collection of parsed files and returns the analysis result.
	// The context is checked between files.
	Analyze(ctx context.Context, files []*models.SourceFile) (T, error)
}

// FileCounts are the file totals shared by every report.
type FileCounts struct {
	FileCount        int `json:"file_count" yaml:"fileCount" toon:"file_count"`
	FortranFileCount int `json:"fortran_file_count" yaml:"fortranFileCount" toon:"fortran_file_count"`
	FailedFileCount  int `json:"fortran_files_failed_to_parse" yaml:"fortranFilesFailedToParse" toon:"fortran_files_failed_to_parse"`
}

// CountFiles tallies all files, Fortran files (parsed or failed), and failures.
func CountFiles(files []*models.SourceFile) FileCounts {
	c := FileCounts{FileCount: len(files)}
	for _, f := range files {
		if f.IsFortran {
			c.FortranFileCount++
		}
		if f.FailedParse {
			c.FailedFileCount++
		}
	}
	return c
}
