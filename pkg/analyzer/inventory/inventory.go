// Package inventory lists the code blocks and variables of parsed Fortran files.
package inventory

import (
	"context"

	"github.com/panbanda/f90lens/pkg/analyzer"
	"github.com/panbanda/f90lens/pkg/models"
)

// Ensure Analyzer implements analyzer.SourceAnalyzer.
var _ analyzer.SourceAnalyzer[*Inventory] = (*Analyzer)(nil)

// Analyzer builds an Inventory.
type Analyzer struct {
	noDuplicates bool
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithNoDuplicates lists a variable only on the innermost block that declares it.
func WithNoDuplicates(enabled bool) Option {
	return func(a *Analyzer) {
		a.noDuplicates = enabled
	}
}

// New creates a new inventory analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze lists every file in order.
func (a *Analyzer) Analyze(ctx context.Context, files []*models.SourceFile) (*Inventory, error) {
	inv := &Inventory{
		FileCounts:   analyzer.CountFiles(files),
		NoDuplicates: a.noDuplicates,
		Files:        make([]File, 0, len(files)),
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := File{
			Path:        f.Path,
			FailedParse: f.FailedParse,
			ParseError:  f.ParseError,
		}
		if f.Parsed() {
			count := len(f.Components)
			entry.ComponentCount = &count
			entry.Components = make([]Component, 0, count)
			for _, c := range f.Components {
				comp, err := a.component(c)
				if err != nil {
					return nil, err
				}
				entry.Components = append(entry.Components, comp)
			}
			entry.Diagnostics = f.Diagnostics
		}
		inv.Files = append(inv.Files, entry)
	}

	return inv, nil
}

func (a *Analyzer) component(b *models.CodeBlock) (Component, error) {
	caps := b.Kind.Capabilities()
	c := Component{
		Kind:      b.Kind,
		StartLine: b.StartLineNumber(),
		EndLine:   b.EndLineNumber(),
	}

	if caps.Named {
		name := b.Name
		c.Name = &name
	}
	if caps.Recursion {
		recursive := b.IsRecursive
		c.IsRecursive = &recursive
	}

	vars := b.Variables
	if caps.Subprograms {
		count := len(b.Subprograms)
		c.SubprogramCount = &count
		c.Subprograms = make([]Component, 0, count)
		for _, sub := range b.Subprograms {
			sc, err := a.component(sub)
			if err != nil {
				return Component{}, err
			}
			c.Subprograms = append(c.Subprograms, sc)
		}

		if a.noDuplicates {
			own, err := b.VariablesNotInSubprograms()
			if err != nil {
				return Component{}, err
			}
			vars = own
		}
	}

	c.VariableCount = len(vars)
	c.Variables = make([]Variable, 0, len(vars))
	for _, v := range vars {
		c.Variables = append(c.Variables, newVariable(v))
	}
	return c, nil
}

func newVariable(v models.Variable) Variable {
	attrs := v.Attributes
	if attrs == nil {
		attrs = []string{}
	}
	return Variable{
		Name:           v.Name,
		DataType:       v.DataType,
		Attributes:     attrs,
		LineDeclared:   v.LineDeclared,
		PossiblyUnused: v.PossiblyUnused,
		IsArray:        v.IsArray(),
		IsPointer:      v.IsPointer(),
	}
}
