package parser

import (
	"regexp"
	"strings"

	"github.com/panbanda/f90lens/pkg/models"
)

var (
	recursiveRe = regexp.MustCompile(`(?i)\bRECURSIVE\b`)

	// keywordRe strips the opening keyword of kinds whose name is the remaining text.
	keywordRe = map[models.BlockKind]*regexp.Regexp{
		models.KindProgram:   regexp.MustCompile(`(?i)^\s*PROGRAM\b`),
		models.KindModule:    regexp.MustCompile(`(?i)^\s*MODULE\b`),
		models.KindInterface: regexp.MustCompile(`(?i)^\s*(?:ABSTRACT\s+)?INTERFACE\b`),
	}

	procedureNameRe = regexp.MustCompile(`(?i)\b(?:FUNCTION|SUBROUTINE)\s+(\w+)`)
	typeNameRe      = regexp.MustCompile(`(\w+)\s*$`)
)

// blockName derives a block's name from its opening statement.
func blockName(kind models.BlockKind, first *models.Statement) string {
	if !kind.Capabilities().Named {
		return ""
	}
	code := strings.TrimSpace(StripComment(first.Content))

	switch kind {
	case models.KindFunction, models.KindSubroutine:
		if m := procedureNameRe.FindStringSubmatch(code); m != nil {
			return m[1]
		}
		return ""
	case models.KindType:
		if _, after, ok := cutOutside(code, "::", false); ok {
			code = after
		}
		if m := typeNameRe.FindStringSubmatch(code); m != nil {
			return m[1]
		}
		return ""
	default:
		return strings.TrimSpace(keywordRe[kind].ReplaceAllString(code, ""))
	}
}

// buildBlock constructs the block for a closed frame from its statement slice. It
// returns the diagnostics raised while extracting the block's variables.
func buildBlock(kind models.BlockKind, path string, contents []*models.Statement, subprograms []*models.CodeBlock) (*models.CodeBlock, []models.Diagnostic, error) {
	b, err := models.NewCodeBlock(kind, path, contents, subprograms)
	if err != nil {
		return nil, nil, err
	}
	if len(contents) == 0 {
		return b, nil, nil
	}

	b.Name = blockName(kind, contents[0])
	if kind.Capabilities().Recursion {
		b.IsRecursive = recursiveRe.MatchString(StripComment(contents[0].Content))
	}

	vars, diags := ExtractVariables(path, contents)
	b.Variables = vars
	return b, diags, nil
}
