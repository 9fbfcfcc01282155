package inventory

import (
	"github.com/panbanda/f90lens/pkg/analyzer"
	"github.com/panbanda/f90lens/pkg/models"
)

// Variable is a declared variable with its derived flags.
type Variable struct {
	Name           string   `json:"name" yaml:"variableName" toon:"name"`
	DataType       string   `json:"data_type" yaml:"dataType" toon:"data_type"`
	Attributes     []string `json:"attributes" yaml:"attributes" toon:"attributes"`
	LineDeclared   int      `json:"line_declared" yaml:"lineDeclared" toon:"line_declared"`
	PossiblyUnused bool     `json:"possibly_unused" yaml:"possiblyUnused" toon:"possibly_unused"`
	IsArray        bool     `json:"is_array" yaml:"isArray" toon:"is_array"`
	IsPointer      bool     `json:"is_pointer" yaml:"isPointer" toon:"is_pointer"`
}

// Component is one code block and its nested blocks. Optional fields are present
// only for kinds that carry them.
type Component struct {
	Kind            models.BlockKind `json:"kind" yaml:"blockType" toon:"kind"`
	StartLine       int              `json:"start_line" yaml:"startLineNumber" toon:"start_line"`
	EndLine         int              `json:"end_line" yaml:"endLineNumber" toon:"end_line"`
	Name            *string          `json:"name,omitempty" yaml:"blockName,omitempty" toon:"name,omitempty"`
	IsRecursive     *bool            `json:"is_recursive,omitempty" yaml:"isRecursive,omitempty" toon:"is_recursive,omitempty"`
	SubprogramCount *int             `json:"subprogram_count,omitempty" yaml:"subprogramCount,omitempty" toon:"subprogram_count,omitempty"`
	Subprograms     []Component      `json:"subprograms,omitempty" yaml:"subprograms,omitempty" toon:"subprograms,omitempty"`
	VariableCount   int              `json:"variable_count" yaml:"variableCount" toon:"variable_count"`
	Variables       []Variable       `json:"variables" yaml:"variables" toon:"variables"`
}

// File lists the components of one scanned file. Non-Fortran and failed files carry
// no components.
type File struct {
	Path           string              `json:"path" yaml:"filePath" toon:"path"`
	FailedParse    bool                `json:"failed_parse" yaml:"failedFortranParse" toon:"failed_parse"`
	ParseError     string              `json:"parse_error,omitempty" yaml:"parseError,omitempty" toon:"parse_error,omitempty"`
	ComponentCount *int                `json:"component_count,omitempty" yaml:"componentCount,omitempty" toon:"component_count,omitempty"`
	Components     []Component         `json:"components,omitempty" yaml:"components,omitempty" toon:"components,omitempty"`
	Diagnostics    []models.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" toon:"diagnostics,omitempty"`
}

// Inventory is the variable listing over a set of files.
type Inventory struct {
	analyzer.FileCounts `yaml:",inline"`

	NoDuplicates bool   `json:"no_duplicate_variable_information" yaml:"noDuplicateVariableInformation" toon:"no_duplicate_variable_information"`
	Files        []File `json:"files" yaml:"files" toon:"files"`
}

// VariableCount returns the number of variables listed across all files.
func (inv *Inventory) VariableCount() int {
	n := 0
	for _, f := range inv.Files {
		for _, c := range f.Components {
			n += c.totalVariables()
		}
	}
	return n
}

func (c Component) totalVariables() int {
	n := c.VariableCount
	for _, sub := range c.Subprograms {
		n += sub.totalVariables()
	}
	return n
}
