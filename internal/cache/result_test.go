package cache

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/f90lens/pkg/models"
	"github.com/panbanda/f90lens/pkg/parser"
)

const nestedSource = `module physics
  real :: g = 9.81
contains
  recursive function fact(n) result(r)
    integer :: n, r
    if (n <= 1) then
      r = 1
    end if
  end function fact
end module physics
`

func parse(t *testing.T, path, src string) *parser.Result {
	t.Helper()
	res, err := parser.New().ParseReader(path, strings.NewReader(src))
	require.NoError(t, err)
	return res
}

func TestEncodeDecodeResult(t *testing.T) {
	res := parse(t, "physics.f90", nestedSource)

	data, err := EncodeResult(res)
	require.NoError(t, err)

	got, err := DecodeResult("physics.f90", data)
	require.NoError(t, err)

	require.Len(t, got.Statements, len(res.Statements))
	require.Len(t, got.Blocks, 1)

	mod := got.Blocks[0]
	assert.Equal(t, models.KindModule, mod.Kind)
	assert.Equal(t, "physics", mod.Name)
	assert.Equal(t, 1, mod.StartLineNumber())
	assert.Equal(t, 10, mod.EndLineNumber())
	assert.Same(t, got.Statements[0], mod.Contents[0], "blocks share the decoded statements")

	require.Len(t, mod.Subprograms, 1)
	fn := mod.Subprograms[0]
	assert.Equal(t, "fact", fn.Name)
	assert.True(t, fn.IsRecursive)
	assert.Equal(t, 4, fn.StartLineNumber())
	assert.Equal(t, 9, fn.EndLineNumber())
	require.Len(t, fn.Subprograms, 1)
	assert.Equal(t, models.KindIfBlock, fn.Subprograms[0].Kind)

	require.Len(t, fn.Variables, 2)
	for i, v := range res.Blocks[0].Subprograms[0].Variables {
		assert.True(t, v.Equal(fn.Variables[i]))
		assert.Equal(t, v.PossiblyUnused, fn.Variables[i].PossiblyUnused)
	}
}

func TestDecodeResultRejectsBadRanges(t *testing.T) {
	_, err := DecodeResult("x.f90", []byte(`{"statements":[],"blocks":[{"kind":"program","first":0,"last":3}]}`))
	assert.ErrorIs(t, err, errBadRange)

	_, err = DecodeResult("x.f90", []byte(`{`))
	assert.Error(t, err)
}

func TestEncodeResultRejectsForeignStatements(t *testing.T) {
	res := parse(t, "a.f90", "program a\nend program a\n")
	other := parse(t, "b.f90", "program b\nend program b\n")
	res.Blocks = other.Blocks

	_, err := EncodeResult(res)
	assert.ErrorIs(t, err, errBadRange)
}

func TestResultsLookupAndStore(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache"), 24, true)
	require.NoError(t, err)
	results := NewResults(c)

	content := []byte(nestedSource)
	_, hash, ok := results.Lookup("physics.f90", content)
	require.False(t, ok)
	assert.Equal(t, HashBytes(content), hash)

	require.NoError(t, results.Store("physics.f90", hash, parse(t, "physics.f90", nestedSource)))

	got, _, ok := results.Lookup("physics.f90", content)
	require.True(t, ok)
	assert.Equal(t, "physics", got.Blocks[0].Name)

	_, _, ok = results.Lookup("physics.f90", []byte(nestedSource+"! edited\n"))
	assert.False(t, ok, "changed content must miss")
}

func TestResultsDisabled(t *testing.T) {
	c, _ := New("", 0, false)
	results := NewResults(c)

	assert.NoError(t, results.Store("a.f90", "h", parse(t, "a.f90", "program a\nend program a\n")))
	_, hash, ok := results.Lookup("a.f90", []byte("x"))
	assert.False(t, ok)
	assert.NotEmpty(t, hash)

	var nilResults *Results
	_, _, ok = nilResults.Lookup("a.f90", []byte("x"))
	assert.False(t, ok)
}
