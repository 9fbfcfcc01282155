package main

import (
	"fmt"
	"strings"

	"github.com/panbanda/f90lens/internal/output"
	outputSvc "github.com/panbanda/f90lens/internal/service/output"
	"github.com/panbanda/f90lens/pkg/analyzer/contents"
	"github.com/panbanda/f90lens/pkg/analyzer/inventory"
	"github.com/panbanda/f90lens/pkg/analyzer/summary"
	"github.com/panbanda/f90lens/pkg/models"
)

func summaryReport(s *summary.Summary) *output.Report {
	title := "Fortran Summary"
	switch {
	case s.TopLevelBlocks && s.TopLevelVars:
		title += " (top-level blocks and variables)"
	case s.TopLevelBlocks:
		title += " (top-level blocks)"
	}

	files := outputSvc.NewTable("Files", []string{"Metric", "Value"}, [][]string{
		{"Files", fmt.Sprintf("%d", s.FileCount)},
		{"Fortran files", fmt.Sprintf("%d", s.FortranFileCount)},
		{"Failed to parse", fmt.Sprintf("%d", s.FailedFileCount)},
		{"Comments", fmt.Sprintf("%d", s.CommentCount)},
		{"Statement lines", fmt.Sprintf("%d", s.Coverage.StatementLines)},
		{"Lines in top-level blocks", fmt.Sprintf("%d (%.1f%%)", s.Coverage.CoveredLines, s.Coverage.Ratio*100)},
	}, nil, nil)

	blockRows := make([][]string, 0, len(models.AllBlockKinds))
	for _, kind := range models.AllBlockKinds {
		blockRows = append(blockRows, []string{kind.Title(), fmt.Sprintf("%d", s.Blocks.Count(kind))})
	}
	blocks := outputSvc.NewTable("Code Blocks", []string{"Kind", "Count"}, blockRows,
		[]string{"Total", fmt.Sprintf("%d", s.Blocks.Total())}, nil)

	varRows := make([][]string, 0, len(models.BuiltinDataTypes))
	for _, dt := range models.BuiltinDataTypes {
		varRows = append(varRows, []string{dt, fmt.Sprintf("%d", s.Variables.Count(dt))})
	}
	variables := outputSvc.NewTable("Variables by Data Type", []string{"Data Type", "Count"}, varRows, nil, nil)

	d := s.BlockLengths
	lengths := outputSvc.NewTable("Block Lengths (lines)", []string{"Count", "Min", "Median", "Mean", "P90", "Max"}, [][]string{{
		fmt.Sprintf("%d", d.Count),
		fmt.Sprintf("%.0f", d.Min),
		fmt.Sprintf("%.1f", d.Median),
		fmt.Sprintf("%.1f", d.Mean),
		fmt.Sprintf("%.1f", d.P90),
		fmt.Sprintf("%.0f", d.Max),
	}}, nil, nil)

	return &output.Report{
		Title:    title,
		Sections: []output.Renderable{files, blocks, variables, lengths},
		Data:     s,
	}
}

func variablesReport(inv *inventory.Inventory) *output.Table {
	var rows [][]string
	for _, f := range inv.Files {
		for _, c := range f.Components {
			rows = appendVariableRows(rows, f.Path, "", c)
		}
	}

	return outputSvc.NewTable(
		"Fortran Variables",
		[]string{"File", "Block", "Variable", "Type", "Attributes", "Line"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", inv.FortranFileCount),
			fmt.Sprintf("Variables: %d", inv.VariableCount()),
		},
		inv,
	)
}

// appendVariableRows adds a row per variable of c and its subprograms. Blocks are
// named by their path from the top-level block, e.g. "module grid/subroutine refine".
func appendVariableRows(rows [][]string, file, parent string, c inventory.Component) [][]string {
	block := strings.ToLower(c.Kind.Title())
	if c.Name != nil {
		block += " " + *c.Name
	}
	if parent != "" {
		block = parent + "/" + block
	}

	for _, v := range c.Variables {
		rows = append(rows, []string{
			file,
			block,
			v.Name,
			v.DataType,
			strings.Join(v.Attributes, ", "),
			fmt.Sprintf("%d", v.LineDeclared),
		})
	}
	for _, sub := range c.Subprograms {
		rows = appendVariableRows(rows, file, block, sub)
	}
	return rows
}

func contentsReport(c *contents.Contents) *output.Report {
	var sections []output.Renderable
	for _, f := range c.Files {
		if len(f.Contents) == 0 {
			continue
		}
		sections = append(sections, &output.Section{
			Title:   f.Path,
			Content: strings.Join(f.Contents, "\n"),
		})
	}

	return &output.Report{
		Title:    fmt.Sprintf("Fortran Statements (%d)", c.StatementCount()),
		Sections: sections,
		Data:     c,
	}
}
