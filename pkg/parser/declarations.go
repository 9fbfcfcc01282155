package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/panbanda/f90lens/pkg/models"
)

var (
	errNoSeparator = errors.New("declaration has no '::' separator")
	errNoDataType  = errors.New("declaration has no data type")

	identifierRe = regexp.MustCompile(`^[A-Za-z]\w{0,30}$`)
	parenSpaceRe = regexp.MustCompile(`\s*([()])\s*`)
)

// normalizeSpec upper-cases a type or attribute and collapses its whitespace.
func normalizeSpec(s string) string {
	s = strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	return parenSpaceRe.ReplaceAllString(s, "$1")
}

func hasDimension(attrs []string) bool {
	for _, a := range attrs {
		if strings.HasPrefix(a, "DIMENSION") {
			return true
		}
	}
	return false
}

// ExtractVariables collects the variables declared by the VARIABLE_DECLARATION
// statements in contents. A variable is possibly unused unless its name appears as a
// word in a later statement of contents, comments excluded. Declarations that cannot
// be split are skipped and reported as diagnostics.
func ExtractVariables(path string, contents []*models.Statement) ([]models.Variable, []models.Diagnostic) {
	var (
		vars  []models.Variable
		diags []models.Diagnostic
		code  []string
	)

	for i, stmt := range contents {
		if !stmt.HasPattern(models.PatternVariableDeclaration) {
			continue
		}

		declared, err := splitDeclaration(StripComment(stmt.Content))
		if err != nil {
			diags = append(diags, models.Diagnostic{Line: stmt.LineNumber, Message: err.Error()})
			continue
		}

		if code == nil {
			code = make([]string, len(contents))
			for j, s := range contents {
				code[j] = StripComment(s.Content)
			}
		}

		for _, d := range declared {
			if d.err != nil {
				diags = append(diags, models.Diagnostic{Line: stmt.LineNumber, Message: d.err.Error()})
				continue
			}
			d.v.ParentFilePath = path
			d.v.LineDeclared = stmt.LineNumber
			d.v.PossiblyUnused = !usedAfter(d.v.Name, code[i+1:])
			vars = append(vars, d.v)
		}
	}

	return vars, diags
}

// usedAfter reports whether name occurs as a whole word in any of the statements.
func usedAfter(name string, statements []string) bool {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	for _, s := range statements {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

type declaredVariable struct {
	v   models.Variable
	err error
}

// splitDeclaration splits "type, attrs :: a, b(3) = ..., c*10" into variables. The
// statement-level error is returned when the declaration has no "::" separator or no
// data type; per-name problems are reported on the individual entries.
func splitDeclaration(code string) ([]declaredVariable, error) {
	head, tail, ok := cutOutside(code, "::", true)
	if !ok {
		return nil, errNoSeparator
	}

	specs := SplitOutsideQuotesAndParens(head, ",")
	dataType := normalizeSpec(specs[0])
	if dataType == "" {
		return nil, errNoDataType
	}

	attrs := make([]string, 0, len(specs)-1)
	for _, a := range specs[1:] {
		if a = normalizeSpec(a); a != "" {
			attrs = append(attrs, a)
		}
	}

	var out []declaredVariable
	for _, entity := range SplitOutsideQuotesAndParens(tail, ",") {
		out = append(out, splitEntity(entity, dataType, attrs))
	}
	return out, nil
}

// splitEntity parses one entry of a declaration list.
func splitEntity(entity, dataType string, attrs []string) declaredVariable {
	name, _, _ := cutOutside(entity, "=", true)
	name, _, _ = cutOutside(name, "*", true)
	name = strings.TrimSpace(name)

	v := models.Variable{
		DataType:   dataType,
		Attributes: append(make([]string, 0, len(attrs)+1), attrs...),
	}

	if i := strings.IndexByte(name, '('); i >= 0 {
		suffix := normalizeSpec(name[i:])
		name = strings.TrimSpace(name[:i])
		if !hasDimension(v.Attributes) {
			v.AddAttribute("DIMENSION" + suffix)
		}
	}

	if !identifierRe.MatchString(name) {
		return declaredVariable{err: fmt.Errorf("invalid variable name %q in declaration", strings.TrimSpace(entity))}
	}
	v.Name = name
	return declaredVariable{v: v}
}
