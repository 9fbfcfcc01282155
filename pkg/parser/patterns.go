package parser

import (
	"regexp"

	"github.com/panbanda/f90lens/pkg/models"
)

// Building blocks for the pattern table. Every expression is case-insensitive and
// anchored to the whole statement, with an optional trailing comment.
const (
	// parenGroup matches a parenthesized group with one level of nesting.
	parenGroup = `\((?:[^()]|\([^()]*\))*\)`

	// builtinType matches an intrinsic type keyword with an optional kind or length.
	builtinType = `(?:INTEGER|REAL|COMPLEX|LOGICAL|CHARACTER|DOUBLE\s+PRECISION|DOUBLE\s+COMPLEX)` +
		`(?:\s*` + parenGroup + `|\s*\*\s*(?:\d+|\(\s*\*\s*\)))?`

	// derivedType matches a TYPE(name) or CLASS(name) reference.
	derivedType = `(?:TYPE|CLASS)\s*\(\s*[\w*]+\s*\)`

	// prefixes matches procedure prefixes that may precede FUNCTION or SUBROUTINE.
	prefixes = `(?:(?:RECURSIVE|PURE|ELEMENTAL)\s+)*`

	// label matches an optional numeric statement label.
	label = `(?:\d+\s+)?`

	// construct matches an optional construct name such as "outer:".
	construct = `(?:\w+\s*:\s*)?`

	// trailer matches trailing whitespace and an optional comment through end of line.
	trailer = `\s*(?:!.*)?$`

	// identifier matches a Fortran 90 name of 1 to 31 characters.
	identifier = `[A-Za-z]\w{0,30}`

	// declarationHead matches the type keyword that opens a declaration. The rest of
	// the head is read loosely so nested kind and attribute expressions still match.
	declarationHead = `(?:(?:INTEGER|REAL|COMPLEX|LOGICAL|CHARACTER|DOUBLE\s+PRECISION|DOUBLE\s+COMPLEX)\b|(?:TYPE|CLASS)\s*\()`

	genericSpec = `(?:\s+\w+|\s+(?:OPERATOR|ASSIGNMENT)\s*\([^)]*\))?`
)

type patternRule struct {
	pattern models.Pattern
	regex   *regexp.Regexp
}

func rule(p models.Pattern, expr string) patternRule {
	return patternRule{pattern: p, regex: regexp.MustCompile(`(?i)^\s*` + expr + trailer)}
}

// patternRules is the ordered classification table. Start and end expressions are
// mutually exclusive; a bare END is both a MODULE_END and a PROGRAM_END.
var patternRules = []patternRule{
	rule(models.PatternModule, `MODULE\s+\w+`),
	rule(models.PatternModuleEnd, `END(?:\s*MODULE(?:\s+\w+)?)?`),
	rule(models.PatternProgram, `PROGRAM\s+\w+`),
	rule(models.PatternProgramEnd, `END(?:\s*PROGRAM(?:\s+\w+)?)?`),
	rule(models.PatternFunction, prefixes+`(?:(?:`+builtinType+`|`+derivedType+`)\s+)?`+prefixes+
		`FUNCTION\s+\w+\s*\([^)]*\)(?:\s*RESULT\s*\(\s*\w+\s*\))?`),
	rule(models.PatternFunctionEnd, `END\s*FUNCTION(?:\s+\w+)?`),
	rule(models.PatternSubroutine, prefixes+`SUBROUTINE\s+\w+\s*(?:\([^)]*\))?`),
	rule(models.PatternSubroutineEnd, `END\s*SUBROUTINE(?:\s+\w+)?`),
	rule(models.PatternType, `TYPE(?:\s*,[^:!]*::|\s*::|\s+)\s*\w+`),
	rule(models.PatternTypeEnd, `END\s*TYPE(?:\s+\w+)?`),
	rule(models.PatternInterface, `(?:ABSTRACT\s+)?INTERFACE`+genericSpec),
	rule(models.PatternInterfaceEnd, `END\s*INTERFACE`+genericSpec),
	rule(models.PatternDoLoop, label+construct+
		`(?:DO(?:\s+\d+)?(?:\s*,?\s*WHILE\s*\(.*\)|\s+\w+\s*=.*)?|WHILE\s*\(.*\)\s*DO)`),
	rule(models.PatternDoLoopEnd, label+`END\s*DO(?:\s+\w+)?`),
	rule(models.PatternIfBlock, label+construct+`IF\s*\(.*\)\s*THEN`),
	rule(models.PatternIfBlockEnd, label+`END\s*IF(?:\s+\w+)?`),
	// Only the first name is checked here; the entity list is validated when the
	// declaration is split, so unreadable entries become diagnostics.
	rule(models.PatternVariableDeclaration, declarationHead+`[^!]*?::\s*`+identifier+`\b.*`),
}

// Match reports whether a statement's content matches the expression for p.
func Match(p models.Pattern, content string) bool {
	for _, r := range patternRules {
		if r.pattern == p {
			return r.regex.MatchString(content)
		}
	}
	return false
}

// Classify tags stmt with every pattern its content matches, in table order.
func Classify(stmt *models.Statement) {
	classify(patternRules, stmt)
}

func classify(rules []patternRule, stmt *models.Statement) {
	for _, r := range rules {
		if r.regex.MatchString(stmt.Content) {
			stmt.AddPattern(r.pattern)
		}
	}
}
