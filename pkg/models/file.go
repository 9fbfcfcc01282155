package models

// Diagnostic is a non-fatal finding produced while parsing a file, such as a
// declaration that could not be split into variables.
type Diagnostic struct {
	Line    int    `json:"line" yaml:"line" toon:"line"`
	Message string `json:"message" yaml:"message" toon:"message"`
}

// SourceFile is the parsed representation of one file found during a scan.
// Non-Fortran files and files whose parse failed carry no statements or components.
type SourceFile struct {
	Path        string       `json:"path" yaml:"filePath" toon:"path"`
	IsFortran   bool         `json:"is_fortran" yaml:"isFortran" toon:"is_fortran"`
	FailedParse bool         `json:"failed_parse" yaml:"failedFortranParse" toon:"failed_parse"`
	ParseError  string       `json:"parse_error,omitempty" yaml:"parseError,omitempty" toon:"parse_error,omitempty"`
	Statements  []*Statement `json:"statements,omitempty" yaml:"statements,omitempty" toon:"statements,omitempty"`
	Components  []*CodeBlock `json:"components,omitempty" yaml:"components,omitempty" toon:"components,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" toon:"diagnostics,omitempty"`
}

// Parsed reports whether the file is Fortran and parsed successfully.
func (f *SourceFile) Parsed() bool {
	return f.IsFortran && !f.FailedParse
}

// CommentCount returns the number of statements that carry a comment.
func (f *SourceFile) CommentCount() int {
	n := 0
	for _, s := range f.Statements {
		if s.ContainsComment {
			n++
		}
	}
	return n
}

// AllBlocks returns every block in the file, top-level components first in file
// order, each followed by its flattened subprograms.
func (f *SourceFile) AllBlocks() []*CodeBlock {
	var all []*CodeBlock
	for _, c := range f.Components {
		all = append(all, c)
		if subs, err := c.AllSubprograms(); err == nil {
			all = append(all, subs...)
		}
	}
	return all
}
