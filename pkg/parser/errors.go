package parser

import (
	"errors"
	"fmt"

	"github.com/panbanda/f90lens/pkg/models"
)

var (
	// ErrUnterminatedBlock is returned when input ends with blocks still open.
	ErrUnterminatedBlock = errors.New("unterminated block")

	// ErrUnmatchedEnd is returned when an end statement has no open block to close.
	ErrUnmatchedEnd = errors.New("unmatched end statement")
)

// ParseError describes why a file could not be assembled into a block tree.
// It wraps ErrUnterminatedBlock, ErrUnmatchedEnd or models.ErrInconsistentBlock.
type ParseError struct {
	Path string
	// Kind is the block kind involved: the innermost open frame for an unterminated
	// block, the kind named by the end statement for an unmatched end.
	Kind models.BlockKind
	Line int
	// Depth is the number of open frames when the failure was detected.
	Depth int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v (%s, depth %d)", e.Path, e.Line, e.Err, e.Kind, e.Depth)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
