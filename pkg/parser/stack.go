package parser

import (
	"errors"

	"github.com/panbanda/f90lens/pkg/models"
)

// ErrEmptyStack is returned when popping or peeking an empty stack.
var ErrEmptyStack = errors.New("stack is empty")

// Frame is an open block awaiting its end statement.
type Frame struct {
	Kind            models.BlockKind
	StartLineNumber int
	// StartIndex is the index of the opening statement in the file's statement list.
	StartIndex  int
	Subprograms []*models.CodeBlock
}

// Stack holds the open blocks of the file being assembled, innermost last.
type Stack struct {
	frames []*Frame
}

// Push opens a new innermost frame.
func (s *Stack) Push(f *Frame) {
	s.frames = append(s.frames, f)
}

// Pop removes and returns the innermost frame.
func (s *Stack) Pop() (*Frame, error) {
	if len(s.frames) == 0 {
		return nil, ErrEmptyStack
	}
	f := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return f, nil
}

// Peek returns the innermost frame without removing it.
func (s *Stack) Peek() (*Frame, error) {
	if len(s.frames) == 0 {
		return nil, ErrEmptyStack
	}
	return s.frames[len(s.frames)-1], nil
}

// AddSubprogramToTop appends a finished block to the innermost frame.
func (s *Stack) AddSubprogramToTop(b *models.CodeBlock) error {
	top, err := s.Peek()
	if err != nil {
		return err
	}
	top.Subprograms = append(top.Subprograms, b)
	return nil
}

// Size returns the number of open frames.
func (s *Stack) Size() int { return len(s.frames) }

// IsEmpty reports whether no frames are open.
func (s *Stack) IsEmpty() bool { return len(s.frames) == 0 }
