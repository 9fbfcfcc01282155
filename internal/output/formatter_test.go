package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"TEXT", FormatText, false},
		{"", FormatText, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"toon", FormatTOON, false},
		{"xml", "", true},
		{"unknown", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"report.json", FormatJSON, false},
		{"out/report.YAML", FormatYAML, false},
		{"report.yml", FormatYAML, false},
		{"report.md", FormatMarkdown, false},
		{"report.toon", FormatTOON, false},
		{"report.txt", FormatText, false},
		{"report", "", true},
		{"report.csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		path    string
		want    Format
		wantErr bool
	}{
		{"default", "", "", FormatText, false},
		{"name only", "yaml", "", FormatYAML, false},
		{"path only", "", "summary.json", FormatJSON, false},
		{"matching", "yaml", "summary.yml", FormatYAML, false},
		{"mismatch", "json", "summary.yaml", "", true},
		{"unknown extension", "json", "summary.csv", "", true},
		{"no extension", "toon", "summary", FormatTOON, false},
		{"path without extension", "", "summary", "", true},
		{"bad name", "xml", "summary.xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFormat(tt.format, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveFormat(%q, %q) error = %v, wantErr %v", tt.format, tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveFormat(%q, %q) = %q, want %q", tt.format, tt.path, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	f, err := NewFormatter(FormatText, "", true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	defer f.Close()

	if f.file != nil {
		t.Error("file should be nil for stdout")
	}
	if f.Format() != FormatText || !f.Colored() || f.Writer() == nil {
		t.Errorf("unexpected formatter state: %+v", f)
	}
}

func TestNewFormatterWithFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "output.json")

	f, err := NewFormatter(FormatJSON, outputPath, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	if f.file == nil {
		t.Error("file should not be nil for file output")
	}
	if f.Colored() {
		t.Error("colored should be false when writing to file")
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		t.Error("output file should exist")
	}
}

func TestNewFormatterInvalidPath(t *testing.T) {
	if _, err := NewFormatter(FormatText, "/nonexistent/directory/file.txt", false); err == nil {
		t.Error("NewFormatter() should error for invalid path")
	}
}

func TestTableRenderText(t *testing.T) {
	table := NewTable("Code Blocks", []string{"Kind", "Count"}, [][]string{
		{"module", "2"},
		{"subroutine", "5"},
	}, []string{"Total", "7"}, nil)

	var buf bytes.Buffer
	if err := table.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Code Blocks", "===========", "module", "subroutine", "7"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	table := NewTable("Variables", []string{"Name", "Type"}, [][]string{{"n", "INTEGER"}}, nil, nil)

	var buf bytes.Buffer
	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	want := "## Variables\n\n| Name | Type |\n| --- | --- |\n| n | INTEGER |\n\n"
	if buf.String() != want {
		t.Errorf("RenderMarkdown() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestTableRenderData(t *testing.T) {
	t.Run("rows", func(t *testing.T) {
		table := NewTable("", []string{"Kind", "Count"}, [][]string{{"module", "1"}}, nil, nil)
		rows, ok := table.RenderData().([]map[string]string)
		if !ok || len(rows) != 1 {
			t.Fatalf("RenderData() = %#v", table.RenderData())
		}
		if rows[0]["Kind"] != "module" || rows[0]["Count"] != "1" {
			t.Errorf("unexpected row %v", rows[0])
		}
	})

	t.Run("data", func(t *testing.T) {
		data := map[string]int{"moduleCount": 1}
		table := NewTable("", nil, nil, nil, data)
		if got, ok := table.RenderData().(map[string]int); !ok || got["moduleCount"] != 1 {
			t.Errorf("RenderData() should return the wrapped data, got %#v", table.RenderData())
		}
	})
}

func TestSectionRender(t *testing.T) {
	section := &Section{
		Title:   "Summary",
		Content: "3 Fortran files",
		Sections: []Section{
			{Title: "Failures", Content: "none"},
		},
	}

	var text bytes.Buffer
	if err := section.RenderText(&text, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	want := "Summary\n=======\n3 Fortran files\n\nFailures\n--------\nnone\n"
	if text.String() != want {
		t.Errorf("RenderText() =\n%q\nwant\n%q", text.String(), want)
	}

	var md bytes.Buffer
	if err := section.RenderMarkdown(&md); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}
	if !strings.Contains(md.String(), "## Summary") || !strings.Contains(md.String(), "### Failures") {
		t.Errorf("markdown headings missing:\n%s", md.String())
	}

	if section.RenderData() != section {
		t.Error("RenderData() without Data should return the section")
	}
}

func TestReportRender(t *testing.T) {
	report := &Report{
		Title: "Fortran Summary",
		Sections: []Renderable{
			&Section{Title: "Files", Content: "2"},
			NewTable("Blocks", []string{"Kind"}, [][]string{{"program"}}, nil, nil),
		},
	}

	var text bytes.Buffer
	if err := report.RenderText(&text, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	for _, want := range []string{"Fortran Summary", "Files", "Blocks", "program"} {
		if !strings.Contains(text.String(), want) {
			t.Errorf("text output missing %q", want)
		}
	}

	var md bytes.Buffer
	if err := report.RenderMarkdown(&md); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}
	if !strings.HasPrefix(md.String(), "# Fortran Summary\n") {
		t.Errorf("markdown should start with the title, got %q", md.String())
	}

	data, ok := report.RenderData().(map[string]any)
	if !ok || data["title"] != "Fortran Summary" {
		t.Fatalf("RenderData() = %#v", report.RenderData())
	}
	if parts, ok := data["sections"].([]any); !ok || len(parts) != 2 {
		t.Errorf("sections = %#v, want 2", data["sections"])
	}
}

type fileCount struct {
	FileCount        int `json:"file_count" yaml:"fileCount" toon:"file_count"`
	FortranFileCount int `json:"fortran_file_count" yaml:"fortranFileCount" toon:"fortran_file_count"`
}

func TestFormatterOutputFormats(t *testing.T) {
	report := &Section{Title: "Summary", Data: fileCount{FileCount: 3, FortranFileCount: 2}}

	tests := []struct {
		format Format
		check  func(t *testing.T, out string)
	}{
		{FormatJSON, func(t *testing.T, out string) {
			var got fileCount
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid JSON %q: %v", out, err)
			}
			if got.FileCount != 3 || got.FortranFileCount != 2 {
				t.Errorf("decoded %+v", got)
			}
		}},
		{FormatYAML, func(t *testing.T, out string) {
			var got fileCount
			if err := yaml.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid YAML %q: %v", out, err)
			}
			if got.FileCount != 3 || got.FortranFileCount != 2 {
				t.Errorf("decoded %+v", got)
			}
			if !strings.Contains(out, "fortranFileCount: 2") {
				t.Errorf("YAML keys should be camel case, got %q", out)
			}
		}},
		{FormatTOON, func(t *testing.T, out string) {
			if !strings.Contains(out, "file_count") || !strings.Contains(out, "3") {
				t.Errorf("unexpected TOON output %q", out)
			}
		}},
		{FormatText, func(t *testing.T, out string) {
			if !strings.HasPrefix(out, "Summary\n") {
				t.Errorf("text output should render the section, got %q", out)
			}
		}},
		{FormatMarkdown, func(t *testing.T, out string) {
			if !strings.HasPrefix(out, "## Summary") {
				t.Errorf("markdown output should render the section, got %q", out)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			f := NewWriterFormatter(tt.format, &buf, false)
			if err := f.Output(report); err != nil {
				t.Fatalf("Output() error: %v", err)
			}
			tt.check(t, buf.String())
		})
	}
}

func TestFormatterOutputRaw(t *testing.T) {
	tests := []struct {
		format Format
		prefix string
	}{
		{FormatJSON, "{"},
		{FormatText, "{"},
		{FormatMarkdown, "```json"},
		{FormatYAML, "count: 42"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			f := NewWriterFormatter(tt.format, &buf, false)
			if err := f.Output(map[string]int{"count": 42}); err != nil {
				t.Fatalf("Output() error: %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("output %q should start with %q", buf.String(), tt.prefix)
			}
		})
	}
}

func TestFormatterMessageMethods(t *testing.T) {
	tests := []struct {
		name   string
		method func(*Formatter, string, ...any)
		want   string
	}{
		{"success", (*Formatter).Success, "done 3\n"},
		{"warning", (*Formatter).Warning, "WARNING: done 3\n"},
		{"error", (*Formatter).Error, "ERROR: done 3\n"},
		{"info", (*Formatter).Info, "done 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			f := NewWriterFormatter(FormatText, &buf, false)
			tt.method(f, "done %d", 3)
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
