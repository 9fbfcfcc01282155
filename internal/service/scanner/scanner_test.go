package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/panbanda/f90lens/pkg/config"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("program p\nend program p\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false
	return cfg
}

func TestNew(t *testing.T) {
	svc := New()
	if svc == nil || svc.config == nil {
		t.Fatal("New() returned nil or has nil config")
	}
}

func TestNewWithConfig(t *testing.T) {
	cfg := &config.Config{}
	svc := New(WithConfig(cfg))
	if svc.config != cfg {
		t.Error("WithConfig did not set config")
	}
}

func TestScanPaths_InvalidPath(t *testing.T) {
	svc := New(WithConfig(testConfig()))
	_, err := svc.ScanPaths([]string{"/nonexistent/path/that/does/not/exist"})
	if err == nil {
		t.Fatal("expected error for nonexistent path")
	}
	var pathErr *PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("expected *PathError, got %T", err)
	}
}

func TestScanPaths_ValidDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "main.f90", "notes.txt")

	svc := New(WithConfig(testConfig()))
	result, err := svc.ScanPaths([]string{tmpDir})
	if err != nil {
		t.Fatalf("ScanPaths() error = %v", err)
	}
	if len(result.Files) != 1 || len(result.Fortran) != 1 || len(result.Other) != 0 {
		t.Fatalf("got files=%v fortran=%v other=%v", result.Files, result.Fortran, result.Other)
	}
	if result.Fortran[0] != filepath.Join(tmpDir, "main.f90") {
		t.Errorf("unexpected file %s", result.Fortran[0])
	}
	if result.Root != tmpDir {
		t.Errorf("Root = %s, want %s", result.Root, tmpDir)
	}
}

func TestScanPaths_AllFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "main.f90", "docs/notes.txt", "src/mod.f90")

	cfg := testConfig()
	cfg.Scan.FortranOnly = false

	result, err := New(WithConfig(cfg)).ScanPaths([]string{tmpDir})
	if err != nil {
		t.Fatalf("ScanPaths() error = %v", err)
	}
	if len(result.Files) != 3 {
		t.Errorf("expected 3 files, got %d", len(result.Files))
	}
	if len(result.Fortran) != 2 {
		t.Errorf("expected 2 Fortran files, got %d", len(result.Fortran))
	}
	if len(result.Other) != 1 || result.RelPath(result.Other[0]) != "docs/notes.txt" {
		t.Errorf("unexpected other files %v", result.Other)
	}
}

func TestScanPaths_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "solo.f90", "skip.txt")

	svc := New(WithConfig(testConfig()))
	result, err := svc.ScanPaths([]string{
		filepath.Join(tmpDir, "solo.f90"),
		filepath.Join(tmpDir, "skip.txt"),
	})
	if err != nil {
		t.Fatalf("ScanPaths() error = %v", err)
	}
	if len(result.Fortran) != 1 {
		t.Fatalf("expected 1 Fortran file, got %v", result.Fortran)
	}
	if result.Root != tmpDir {
		t.Errorf("Root = %s, want %s", result.Root, tmpDir)
	}
	if got := result.RelPath(result.Fortran[0]); got != "solo.f90" {
		t.Errorf("RelPath = %s, want solo.f90", got)
	}
}

func TestScanPaths_MaxFileSize(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.f90")

	cfg := testConfig()
	cfg.Scan.MaxFileSize = 4

	result, err := New(WithConfig(cfg)).ScanPaths([]string{tmpDir})
	if err != nil {
		t.Fatalf("ScanPaths() error = %v", err)
	}
	if len(result.Fortran) != 0 || result.SkippedBySize != 1 {
		t.Errorf("fortran=%v skipped=%d, want none and 1", result.Fortran, result.SkippedBySize)
	}
}

func TestRelPathWithoutRoot(t *testing.T) {
	r := &ScanResult{}
	if got := r.RelPath("/a/b.f90"); got != "/a/b.f90" {
		t.Errorf("RelPath = %s", got)
	}
}

func TestErrorTypes(t *testing.T) {
	inner := errors.New("boom")

	pathErr := &PathError{Path: "x", Err: inner}
	if pathErr.Error() != "invalid path x: boom" || !errors.Is(pathErr, inner) {
		t.Errorf("PathError = %q", pathErr.Error())
	}

	scanErr := &ScanError{Path: "y", Err: inner}
	if scanErr.Error() != "failed to scan y: boom" || !errors.Is(scanErr, inner) {
		t.Errorf("ScanError = %q", scanErr.Error())
	}
}
