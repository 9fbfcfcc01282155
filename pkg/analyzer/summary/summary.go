// Package summary aggregates block and variable counts over parsed Fortran files.
package summary

import (
	"context"
	"errors"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/panbanda/f90lens/pkg/analyzer"
	"github.com/panbanda/f90lens/pkg/models"
	"github.com/panbanda/f90lens/pkg/stats"
)

// Ensure Analyzer implements analyzer.SourceAnalyzer.
var _ analyzer.SourceAnalyzer[*Summary] = (*Analyzer)(nil)

// Analyzer builds a Summary.
type Analyzer struct {
	topLevelBlocks bool
	topLevelVars   bool
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithTopLevelBlocks counts only top-level components instead of every nested block.
func WithTopLevelBlocks(enabled bool) Option {
	return func(a *Analyzer) {
		a.topLevelBlocks = enabled
	}
}

// WithTopLevelVars counts only variables that no direct subprogram also declares.
// Counting every block already implies it, so the option matters only together with
// WithTopLevelBlocks.
func WithTopLevelVars(enabled bool) Option {
	return func(a *Analyzer) {
		a.topLevelVars = enabled
	}
}

// New creates a new summary analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze summarizes files. Only successfully parsed Fortran files contribute blocks,
// variables and comments.
func (a *Analyzer) Analyze(ctx context.Context, files []*models.SourceFile) (*Summary, error) {
	s := &Summary{
		FileCounts:     analyzer.CountFiles(files),
		TopLevelBlocks: a.topLevelBlocks,
		TopLevelVars:   a.topLevelVars,
	}

	var blocks []*models.CodeBlock
	var statementLines, coveredLines uint64
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !f.Parsed() {
			continue
		}

		s.CommentCount += f.CommentCount()
		if a.topLevelBlocks {
			blocks = append(blocks, f.Components...)
		} else {
			blocks = append(blocks, f.AllBlocks()...)
		}

		total, covered := coverage(f)
		statementLines += total
		coveredLines += covered
	}

	lengths := make([]float64, 0, len(blocks))
	for _, b := range blocks {
		s.Blocks.add(b.Kind)
		lengths = append(lengths, float64(b.Length()))

		vars, err := a.variables(b)
		if err != nil {
			return nil, err
		}
		for _, v := range vars {
			s.Variables.add(v.DataType)
		}
	}

	s.BlockLengths = stats.Describe(lengths)
	s.Coverage = Coverage{
		StatementLines: int(statementLines),
		CoveredLines:   int(coveredLines),
		Ratio:          stats.Round(stats.Ratio(coveredLines, statementLines), 4),
	}
	return s, nil
}

// variables selects the variables a block contributes. Outside top-level-blocks mode
// every nested block is counted on its own, so a block must not repeat the variables
// its subprograms declare.
func (a *Analyzer) variables(b *models.CodeBlock) ([]models.Variable, error) {
	if a.topLevelBlocks && !a.topLevelVars {
		return b.Variables, nil
	}
	vars, err := b.VariablesNotInSubprograms()
	if errors.Is(err, models.ErrUnsupportedOperation) {
		return b.Variables, nil
	}
	return vars, err
}

// coverage returns the number of distinct statement lines in f and how many of them
// lie inside a top-level component.
func coverage(f *models.SourceFile) (total, covered uint64) {
	lines := roaring.New()
	for _, st := range f.Statements {
		lines.Add(uint32(st.LineNumber))
	}

	spans := roaring.New()
	for _, c := range f.Components {
		if c.Length() == 0 {
			continue
		}
		spans.AddRange(uint64(c.StartLineNumber()), uint64(c.EndLineNumber())+1)
	}

	return lines.GetCardinality(), roaring.And(lines, spans).GetCardinality()
}

func (c *BlockCounts) add(kind models.BlockKind) {
	switch kind {
	case models.KindDoLoop:
		c.DoLoop++
	case models.KindFunction:
		c.Function++
	case models.KindIfBlock:
		c.IfBlock++
	case models.KindInterface:
		c.Interface++
	case models.KindModule:
		c.Module++
	case models.KindProgram:
		c.Program++
	case models.KindSubroutine:
		c.Subroutine++
	case models.KindType:
		c.DerivedType++
	}
}

func (c *VariableCounts) add(dataType string) {
	for _, t := range models.BuiltinDataTypes {
		if !strings.Contains(dataType, t) {
			continue
		}
		switch t {
		case "CHARACTER":
			c.Character++
		case "COMPLEX":
			c.Complex++
		case "DOUBLE COMPLEX":
			c.DoubleComplex++
		case "DOUBLE PRECISION":
			c.DoublePrecision++
		case "INTEGER":
			c.Integer++
		case "LOGICAL":
			c.Logical++
		case "REAL":
			c.Real++
		}
	}
}

// Count returns the number of variables counted for a built-in data type name.
func (c VariableCounts) Count(dataType string) int {
	switch dataType {
	case "CHARACTER":
		return c.Character
	case "COMPLEX":
		return c.Complex
	case "DOUBLE COMPLEX":
		return c.DoubleComplex
	case "DOUBLE PRECISION":
		return c.DoublePrecision
	case "INTEGER":
		return c.Integer
	case "LOGICAL":
		return c.Logical
	case "REAL":
		return c.Real
	}
	return 0
}

// Count returns the number of blocks counted for kind.
func (c BlockCounts) Count(kind models.BlockKind) int {
	switch kind {
	case models.KindDoLoop:
		return c.DoLoop
	case models.KindFunction:
		return c.Function
	case models.KindIfBlock:
		return c.IfBlock
	case models.KindInterface:
		return c.Interface
	case models.KindModule:
		return c.Module
	case models.KindProgram:
		return c.Program
	case models.KindSubroutine:
		return c.Subroutine
	case models.KindType:
		return c.DerivedType
	}
	return 0
}
