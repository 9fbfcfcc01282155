package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/panbanda/f90lens/pkg/models"
	"github.com/panbanda/f90lens/pkg/parser"
)

// resultFormat is part of every result key; bump it when the parser's output for
// unchanged input can differ.
const resultFormat = "parse/v1"

var errBadRange = errors.New("block statement range out of bounds")

// cachedBlock mirrors models.CodeBlock with its contents stored as an index range
// into the file's statements, since blocks share statement pointers.
type cachedBlock struct {
	Kind        models.BlockKind  `json:"kind"`
	First       int               `json:"first"`
	Last        int               `json:"last"`
	Name        string            `json:"name,omitempty"`
	IsRecursive bool              `json:"is_recursive,omitempty"`
	Variables   []models.Variable `json:"variables,omitempty"`
	Subprograms []cachedBlock     `json:"subprograms,omitempty"`
}

type cachedResult struct {
	Statements  []*models.Statement `json:"statements"`
	Blocks      []cachedBlock       `json:"blocks"`
	Diagnostics []models.Diagnostic `json:"diagnostics,omitempty"`
}

// EncodeResult serializes a parse result.
func EncodeResult(res *parser.Result) ([]byte, error) {
	index := make(map[*models.Statement]int, len(res.Statements))
	for i, s := range res.Statements {
		index[s] = i
	}

	blocks := make([]cachedBlock, 0, len(res.Blocks))
	for _, b := range res.Blocks {
		cb, err := encodeBlock(b, index)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, cb)
	}

	return json.Marshal(cachedResult{
		Statements:  res.Statements,
		Blocks:      blocks,
		Diagnostics: res.Diagnostics,
	})
}

func encodeBlock(b *models.CodeBlock, index map[*models.Statement]int) (cachedBlock, error) {
	if len(b.Contents) == 0 {
		return cachedBlock{}, fmt.Errorf("%w: empty %s block", errBadRange, b.Kind)
	}
	first, ok1 := index[b.Contents[0]]
	last, ok2 := index[b.Contents[len(b.Contents)-1]]
	if !ok1 || !ok2 {
		return cachedBlock{}, fmt.Errorf("%w: %s block statements not owned by the result", errBadRange, b.Kind)
	}

	cb := cachedBlock{
		Kind:        b.Kind,
		First:       first,
		Last:        last,
		Name:        b.Name,
		IsRecursive: b.IsRecursive,
		Variables:   b.Variables,
	}
	for _, sub := range b.Subprograms {
		csub, err := encodeBlock(sub, index)
		if err != nil {
			return cachedBlock{}, err
		}
		cb.Subprograms = append(cb.Subprograms, csub)
	}
	return cb, nil
}

// DecodeResult rebuilds a parse result for path. Blocks reference the decoded
// statements directly, as freshly parsed blocks do.
func DecodeResult(path string, data []byte) (*parser.Result, error) {
	var cr cachedResult
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, fmt.Errorf("failed to decode cached result: %w", err)
	}

	res := &parser.Result{
		Path:        path,
		Statements:  cr.Statements,
		Diagnostics: cr.Diagnostics,
	}
	for _, cb := range cr.Blocks {
		b, err := decodeBlock(path, cb, cr.Statements)
		if err != nil {
			return nil, err
		}
		res.Blocks = append(res.Blocks, b)
	}
	return res, nil
}

func decodeBlock(path string, cb cachedBlock, stmts []*models.Statement) (*models.CodeBlock, error) {
	if cb.First < 0 || cb.Last < cb.First || cb.Last >= len(stmts) {
		return nil, fmt.Errorf("%w: [%d, %d] of %d", errBadRange, cb.First, cb.Last, len(stmts))
	}

	var subs []*models.CodeBlock
	for _, csub := range cb.Subprograms {
		sub, err := decodeBlock(path, csub, stmts)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	b, err := models.NewCodeBlock(cb.Kind, path, stmts[cb.First:cb.Last+1], subs)
	if err != nil {
		return nil, err
	}
	b.Name = cb.Name
	b.IsRecursive = cb.IsRecursive
	b.Variables = cb.Variables
	for i := range b.Variables {
		b.Variables[i].ParentFilePath = path
	}
	return b, nil
}

// Results caches parse results keyed by file path and validated by content hash.
type Results struct {
	cache *Cache
}

// NewResults wraps c for parse results.
func NewResults(c *Cache) *Results {
	return &Results{cache: c}
}

func resultKey(path string) string {
	return resultFormat + ":" + path
}

// Lookup returns the cached result for path when content is unchanged. The content
// hash is returned either way so a miss can be stored without rehashing.
func (r *Results) Lookup(path string, content []byte) (*parser.Result, string, bool) {
	hash := HashBytes(content)
	if r == nil || !r.cache.Enabled() {
		return nil, hash, false
	}

	data, ok := r.cache.GetWithHash(resultKey(path), hash)
	if !ok {
		return nil, hash, false
	}
	res, err := DecodeResult(path, data)
	if err != nil {
		_ = r.cache.Invalidate(resultKey(path))
		return nil, hash, false
	}
	return res, hash, true
}

// Store caches res for path under the content hash returned by Lookup.
func (r *Results) Store(path, hash string, res *parser.Result) error {
	if r == nil || !r.cache.Enabled() {
		return nil
	}
	data, err := EncodeResult(res)
	if err != nil {
		return err
	}
	return r.cache.SetWithHash(resultKey(path), hash, data)
}
