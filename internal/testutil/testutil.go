// Package testutil holds helpers for tests that need Fortran sources on disk or
// already parsed.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/panbanda/f90lens/pkg/models"
	"github.com/panbanda/f90lens/pkg/parser"
)

// WriteFile writes content to a file in the real filesystem, creating parent
// directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll(%s) error: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", path, err)
	}
}

// ReadFile reads content from a file.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error: %v", path, err)
	}
	return string(data)
}

// Project creates a temporary source tree from a map of relative path -> content
// and returns its root. The tree is removed when the test ends.
func Project(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		WriteFile(t, filepath.Join(root, name), content)
	}
	return root
}

// SourceFile parses src as the Fortran file at path and returns its record. The
// parse must succeed.
func SourceFile(t *testing.T, path, src string) *models.SourceFile {
	t.Helper()
	res, err := parser.New().ParseReader(path, strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseReader(%s) error: %v", path, err)
	}
	return &models.SourceFile{
		Path:        path,
		IsFortran:   true,
		Statements:  res.Statements,
		Components:  res.Blocks,
		Diagnostics: res.Diagnostics,
	}
}
