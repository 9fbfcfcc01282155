package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOperation is returned by scope queries on block kinds that
	// structurally lack subprograms, such as derived types.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInconsistentBlock is returned when subprograms are supplied to a block kind
	// that cannot own them.
	ErrInconsistentBlock = errors.New("inconsistent block")
)

// CodeBlock is a contiguous, nested region of a Fortran file delimited by a start and
// an end statement. Kind-specific fields are governed by Kind.Capabilities().
type CodeBlock struct {
	Kind           BlockKind    `json:"kind" yaml:"blockType" toon:"kind"`
	ParentFilePath string       `json:"parent_file_path" yaml:"parentFilePath" toon:"parent_file_path"`
	Contents       []*Statement `json:"-" yaml:"-" toon:"-"`
	Name           string       `json:"name,omitempty" yaml:"blockName,omitempty" toon:"name,omitempty"`
	IsRecursive    bool         `json:"is_recursive,omitempty" yaml:"isRecursive,omitempty" toon:"is_recursive,omitempty"`
	Variables      []Variable   `json:"variables,omitempty" yaml:"variables,omitempty" toon:"variables,omitempty"`
	Subprograms    []*CodeBlock `json:"subprograms,omitempty" yaml:"subprograms,omitempty" toon:"subprograms,omitempty"`
}

// NewCodeBlock creates a block of the given kind. Supplying subprograms to a kind that
// does not support them is an internal consistency fault.
func NewCodeBlock(kind BlockKind, parentFilePath string, contents []*Statement, subprograms []*CodeBlock) (*CodeBlock, error) {
	if _, ok := capabilities[kind]; !ok {
		return nil, fmt.Errorf("%w: unknown block kind %q", ErrInconsistentBlock, kind)
	}
	if len(subprograms) > 0 && !kind.SupportsSubprograms() {
		return nil, fmt.Errorf("%w: %s block cannot contain %d subprogram(s)", ErrInconsistentBlock, kind, len(subprograms))
	}

	b := &CodeBlock{
		Kind:           kind,
		ParentFilePath: parentFilePath,
		Contents:       contents,
	}
	if kind.SupportsSubprograms() {
		b.Subprograms = subprograms
		if b.Subprograms == nil {
			b.Subprograms = []*CodeBlock{}
		}
	}
	return b, nil
}

// StartLineNumber is the line number of the first statement, or 0 if empty.
func (b *CodeBlock) StartLineNumber() int {
	if len(b.Contents) == 0 {
		return 0
	}
	return b.Contents[0].LineNumber
}

// EndLineNumber is the line number of the last statement, or 0 if empty.
func (b *CodeBlock) EndLineNumber() int {
	if len(b.Contents) == 0 {
		return 0
	}
	return b.Contents[len(b.Contents)-1].LineNumber
}

// Length is the number of source lines the block spans.
func (b *CodeBlock) Length() int {
	if len(b.Contents) == 0 {
		return 0
	}
	return b.EndLineNumber() - b.StartLineNumber() + 1
}

// ContainsBlock reports whether other lies strictly inside b. Blocks with equal
// bounds never contain each other.
func (b *CodeBlock) ContainsBlock(other *CodeBlock) bool {
	if other == nil || b.ParentFilePath != other.ParentFilePath {
		return false
	}
	return b.StartLineNumber() < other.StartLineNumber() && b.EndLineNumber() > other.EndLineNumber()
}

// AllSubprograms flattens the subprogram tree depth first, parents before children.
func (b *CodeBlock) AllSubprograms() ([]*CodeBlock, error) {
	if !b.Kind.SupportsSubprograms() {
		return nil, fmt.Errorf("%w: %s block has no subprograms", ErrUnsupportedOperation, b.Kind)
	}

	var all []*CodeBlock
	for _, sub := range b.Subprograms {
		all = append(all, sub)
		if !sub.Kind.SupportsSubprograms() {
			continue
		}
		nested, err := sub.AllSubprograms()
		if err != nil {
			return nil, err
		}
		all = append(all, nested...)
	}
	return all, nil
}

// VariablesNotInSubprograms returns the block's variables minus any variable that is
// also declared by one of its direct subprograms.
func (b *CodeBlock) VariablesNotInSubprograms() ([]Variable, error) {
	if !b.Kind.SupportsSubprograms() {
		return nil, fmt.Errorf("%w: %s block has no subprogram scope", ErrUnsupportedOperation, b.Kind)
	}

	var inSubprograms []Variable
	for _, sub := range b.Subprograms {
		inSubprograms = append(inSubprograms, sub.Variables...)
	}

	result := make([]Variable, 0, len(b.Variables))
	for _, v := range b.Variables {
		if !ContainsVariable(inSubprograms, v) {
			result = append(result, v)
		}
	}
	return result, nil
}

// CountBlocks returns the number of blocks in the tree rooted at b, including b.
func (b *CodeBlock) CountBlocks() int {
	n := 1
	for _, sub := range b.Subprograms {
		n += sub.CountBlocks()
	}
	return n
}

func (b *CodeBlock) String() string {
	if b.Name != "" {
		return fmt.Sprintf("CodeBlock(kind=%s, name=%q, lines=%d-%d)", b.Kind, b.Name, b.StartLineNumber(), b.EndLineNumber())
	}
	return fmt.Sprintf("CodeBlock(kind=%s, lines=%d-%d)", b.Kind, b.StartLineNumber(), b.EndLineNumber())
}
