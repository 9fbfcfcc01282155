package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []LogicalLine
	}{
		{
			name:  "no continuation",
			lines: []string{"a = 1", "b = 2"},
			want:  []LogicalLine{{1, "a = 1"}, {2, "b = 2"}},
		},
		{
			name:  "simple continuation",
			lines: []string{"x = a + &", "    b"},
			want:  []LogicalLine{{1, "x = a + b"}},
		},
		{
			name:  "leading marker on next line",
			lines: []string{"call foo(a, &", "   &  b)"},
			want:  []LogicalLine{{1, "call foo(a, b)"}},
		},
		{
			name:  "comment after marker",
			lines: []string{"x = 1 + & ! first part", "2"},
			want:  []LogicalLine{{1, "x = 1 + 2"}},
		},
		{
			name:  "marker inside quotes is text",
			lines: []string{"s = 'a &", "b = 2"},
			want:  []LogicalLine{{1, "s = 'a &"}, {2, "b = 2"}},
		},
		{
			name:  "three physical lines",
			lines: []string{"INTEGER :: a, &", "  b, &", "  c", "END"},
			want:  []LogicalLine{{1, "INTEGER :: a, b, c"}, {4, "END"}},
		},
		{
			name:  "blank and comment lines between continuations",
			lines: []string{"x = 1 + &", "", "! interlude", "  2", "y = 3"},
			want:  []LogicalLine{{1, "x = 1 + 2"}, {5, "y = 3"}},
		},
		{
			name:  "marker on last line dropped",
			lines: []string{"a = 1", "b = &"},
			want:  []LogicalLine{{1, "a = 1"}, {2, "b ="}},
		},
		{
			name:  "carriage returns removed",
			lines: []string{"a = 1\r", "b = 2\r"},
			want:  []LogicalLine{{1, "a = 1"}, {2, "b = 2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReconstructLines(tt.lines))
		})
	}
}

func TestReconstructLinesEmpty(t *testing.T) {
	assert.Empty(t, ReconstructLines(nil))
}

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("PROGRAM p\r\n  x = 1\nEND PROGRAM p\n"))
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "  x = 1", lines[1])
	assert.Equal(t, "END PROGRAM p", lines[2])
}
