package parser

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/panbanda/f90lens/pkg/models"
)

// Parser recovers the block structure of free-form Fortran 90 source.
// It holds no per-file state and is safe for concurrent use.
type Parser struct {
	rules []patternRule
}

// Result is the structural model of one file.
type Result struct {
	Path        string
	Statements  []*models.Statement
	Blocks      []*models.CodeBlock
	Diagnostics []models.Diagnostic
}

// New creates a new parser instance.
func New() *Parser {
	return &Parser{rules: patternRules}
}

// ParseFile reads and parses a source file.
func (p *Parser) ParseFile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.ParseReader(path, bytes.NewReader(source))
}

// ParseReader parses the lines read from r. path identifies the file in blocks,
// variables and errors; it is never opened.
func (p *Parser) ParseReader(path string, r io.Reader) (*Result, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.Parse(path, lines)
}

// Statements reconstructs, splits and classifies raw lines into tagged statements.
func (p *Parser) Statements(lines []string) []*models.Statement {
	var stmts []*models.Statement
	for _, line := range ReconstructLines(lines) {
		for _, s := range SplitStatements(line) {
			classify(p.rules, s)
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// Parse assembles the block tree of one file from its raw lines. Any imbalance
// between start and end statements fails the whole file with a *ParseError and no
// partial tree.
func (p *Parser) Parse(path string, lines []string) (*Result, error) {
	stmts := p.Statements(lines)
	result := &Result{Path: path, Statements: stmts}

	var stack Stack
	seen := make(map[models.Diagnostic]struct{})

	for i, s := range stmts {
		if !s.HasMatchedPatterns() {
			continue
		}

		if s.IsEndStatement() {
			frame, err := stack.Pop()
			if err != nil {
				kind, _ := s.EndKind()
				return nil, &ParseError{Path: path, Kind: kind, Line: s.LineNumber, Err: ErrUnmatchedEnd}
			}

			block, diags, err := buildBlock(frame.Kind, path, stmts[frame.StartIndex:i+1], frame.Subprograms)
			if err != nil {
				return nil, &ParseError{Path: path, Kind: frame.Kind, Line: s.LineNumber, Depth: stack.Size() + 1, Err: err}
			}
			for _, d := range diags {
				if _, dup := seen[d]; !dup {
					seen[d] = struct{}{}
					result.Diagnostics = append(result.Diagnostics, d)
				}
			}

			if stack.IsEmpty() {
				result.Blocks = append(result.Blocks, block)
			} else if err := stack.AddSubprogramToTop(block); err != nil {
				return nil, &ParseError{Path: path, Kind: frame.Kind, Line: s.LineNumber, Err: err}
			}
			continue
		}

		if kind, ok := s.StartKind(); ok {
			stack.Push(&Frame{Kind: kind, StartLineNumber: s.LineNumber, StartIndex: i})
		}
	}

	if top, err := stack.Peek(); err == nil {
		return nil, &ParseError{
			Path:  path,
			Kind:  top.Kind,
			Line:  top.StartLineNumber,
			Depth: stack.Size(),
			Err:   ErrUnterminatedBlock,
		}
	}

	slices.SortStableFunc(result.Diagnostics, func(a, b models.Diagnostic) int {
		return cmp.Compare(a.Line, b.Line)
	})
	return result, nil
}
