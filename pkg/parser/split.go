package parser

import (
	"strings"

	"github.com/panbanda/f90lens/pkg/models"
)

// scanOutside walks text tracking quoted literals (and, when parens is set,
// parenthesis depth) and returns the byte offsets of up to limit occurrences of delim
// found outside them. A negative limit returns every occurrence. openQuote reports
// whether the text ends inside a quoted literal.
//
// Quote tracking is a single active-quote flag: a quote character opens a literal and
// only the same character closes it, so doubled quotes ('It''s') close and reopen.
func scanOutside(text, delim string, parens bool, limit int) (offsets []int, openQuote bool) {
	var quote byte
	depth := 0
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case parens && c == '(':
			depth++
		case parens && c == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && delim != "" && strings.HasPrefix(text[i:], delim):
			offsets = append(offsets, i)
			if limit >= 0 && len(offsets) >= limit {
				return offsets, false
			}
			i += len(delim)
			continue
		}
		i++
	}
	return offsets, quote != 0
}

func splitAt(text string, offsets []int, delimLen int) []string {
	parts := make([]string, 0, len(offsets)+1)
	start := 0
	for _, off := range offsets {
		parts = append(parts, text[start:off])
		start = off + delimLen
	}
	return append(parts, text[start:])
}

// SplitOutsideQuotes splits text on every occurrence of delim that is not inside a
// quoted literal. A tail that ends inside an unterminated literal stays whole.
func SplitOutsideQuotes(text, delim string) []string {
	offsets, _ := scanOutside(text, delim, false, -1)
	return splitAt(text, offsets, len(delim))
}

// SplitOutsideQuotesAndParens is SplitOutsideQuotes that also ignores delimiters
// nested inside parentheses, as in "DIMENSION(3, 3)".
func SplitOutsideQuotesAndParens(text, delim string) []string {
	offsets, _ := scanOutside(text, delim, true, -1)
	return splitAt(text, offsets, len(delim))
}

// cutOutside splits text around the first delim outside quotes (and parentheses when
// parens is set).
func cutOutside(text, delim string, parens bool) (before, after string, found bool) {
	offsets, _ := scanOutside(text, delim, parens, 1)
	if len(offsets) == 0 {
		return text, "", false
	}
	return text[:offsets[0]], text[offsets[0]+len(delim):], true
}

// FindComment returns the trailing comment of a line, starting at the first '!' that
// is not inside a quoted literal.
func FindComment(line string) (string, bool) {
	if !strings.Contains(line, "!") {
		return "", false
	}
	offsets, _ := scanOutside(line, "!", false, 1)
	if len(offsets) == 0 {
		return "", false
	}
	return line[offsets[0]:], true
}

// StripComment returns line without its trailing comment.
func StripComment(line string) string {
	comment, ok := FindComment(line)
	if !ok {
		return line
	}
	return line[:len(line)-len(comment)]
}

// endsInsideQuote reports whether text finishes inside an open quoted literal.
func endsInsideQuote(text string) bool {
	_, open := scanOutside(text, "", false, 0)
	return open
}

// SplitStatements splits a logical line into statements on semicolons outside quotes.
// The line's comment is re-attached to the final statement. Every statement shares
// the logical line's number. A blank line yields one empty statement.
func SplitStatements(line LogicalLine) []*models.Statement {
	comment, hasComment := FindComment(line.Text)
	code := line.Text[:len(line.Text)-len(comment)]

	segments := SplitOutsideQuotes(code, ";")
	segments[len(segments)-1] += comment

	statements := make([]*models.Statement, 0, len(segments))
	for i, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		withComment := hasComment && i == len(segments)-1
		statements = append(statements, models.NewStatement(line.Number, seg, withComment))
	}

	if len(statements) == 0 {
		statements = append(statements, models.NewStatement(line.Number, "", false))
	}
	return statements
}
