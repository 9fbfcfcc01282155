package models

import "fmt"

// Statement is a single Fortran instruction. Statements split from the same logical
// line by semicolons share its line number.
type Statement struct {
	LineNumber      int       `json:"line_number" yaml:"lineNumber" toon:"line_number"`
	Content         string    `json:"content" yaml:"content" toon:"content"`
	MatchedPatterns []Pattern `json:"matched_patterns,omitempty" yaml:"matchedPatterns,omitempty" toon:"matched_patterns,omitempty"`
	ContainsComment bool      `json:"contains_comment" yaml:"containsComment" toon:"contains_comment"`
}

// NewStatement creates a statement. containsComment is supplied by the splitter,
// which owns the quote-aware comment scan.
func NewStatement(lineNumber int, content string, containsComment bool) *Statement {
	return &Statement{
		LineNumber:      lineNumber,
		Content:         content,
		ContainsComment: containsComment,
	}
}

// AddPattern records a pattern the statement matched.
func (s *Statement) AddPattern(p Pattern) {
	s.MatchedPatterns = append(s.MatchedPatterns, p)
}

// HasMatchedPatterns reports whether any pattern matched the statement.
func (s *Statement) HasMatchedPatterns() bool {
	return len(s.MatchedPatterns) > 0
}

// HasPattern reports whether the statement carries the given tag.
func (s *Statement) HasPattern(p Pattern) bool {
	for _, m := range s.MatchedPatterns {
		if m == p {
			return true
		}
	}
	return false
}

// IsEndStatement reports whether any matched pattern closes a block.
func (s *Statement) IsEndStatement() bool {
	for _, p := range s.MatchedPatterns {
		if p.IsEnd() {
			return true
		}
	}
	return false
}

// StartKind returns the kind of the first start pattern the statement matched.
func (s *Statement) StartKind() (BlockKind, bool) {
	for _, p := range s.MatchedPatterns {
		if p.IsStart() {
			k, _ := p.Kind()
			return k, true
		}
	}
	return "", false
}

// EndKind returns the kind of the first end pattern the statement matched.
func (s *Statement) EndKind() (BlockKind, bool) {
	for _, p := range s.MatchedPatterns {
		if p.IsEnd() {
			k, _ := p.Kind()
			return k, true
		}
	}
	return "", false
}

func (s *Statement) String() string {
	return fmt.Sprintf("Statement(line_number=%d, content=%q)", s.LineNumber, s.Content)
}
