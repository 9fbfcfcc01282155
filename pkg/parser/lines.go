package parser

import (
	"bufio"
	"io"
	"strings"
)

// continuationMarker joins a physical line to the next one in free-form source.
const continuationMarker = "&"

// LogicalLine is one or more physical lines joined by continuation markers. Number
// is the 1-based line number of the first physical line.
type LogicalLine struct {
	Number int
	Text   string
}

// ReadLines reads r into physical lines without their line terminators.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// continued reports whether a physical line ends with a continuation marker and
// returns the line's code with the marker and any trailing comment removed. A marker
// inside a quoted literal does not continue the line.
func continued(line string) (string, bool) {
	code := strings.TrimRight(StripComment(line), " \t")
	if !strings.HasSuffix(code, continuationMarker) || endsInsideQuote(code) {
		return line, false
	}
	return strings.TrimRight(strings.TrimSuffix(code, continuationMarker), " \t"), true
}

// isBlankOrComment reports whether a physical line holds no code.
func isBlankOrComment(line string) bool {
	return strings.TrimSpace(StripComment(line)) == ""
}

// ReconstructLines joins continued physical lines into logical lines. The whitespace
// around each join collapses to a single space, and blank or comment-only lines
// between a continued line and its continuation are skipped.
func ReconstructLines(lines []string) []LogicalLine {
	logical := make([]LogicalLine, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		number := i + 1
		text := strings.TrimRight(lines[i], "\r\n")

		for {
			head, ok := continued(text)
			if !ok {
				break
			}

			next := i + 1
			for next < len(lines) && isBlankOrComment(lines[next]) {
				next++
			}
			if next >= len(lines) {
				text = head
				i = next - 1
				break
			}

			tail := strings.TrimLeft(strings.TrimRight(lines[next], "\r\n"), " \t")
			tail = strings.TrimLeft(strings.TrimPrefix(tail, continuationMarker), " \t")
			text = head + " " + tail
			i = next
		}

		logical = append(logical, LogicalLine{Number: number, Text: text})
	}

	return logical
}
