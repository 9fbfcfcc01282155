package parser

import (
	"errors"
	"testing"

	"github.com/panbanda/f90lens/pkg/models"
)

func TestStack(t *testing.T) {
	var s Stack

	if !s.IsEmpty() {
		t.Fatal("new stack should be empty")
	}
	if _, err := s.Pop(); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("Pop() on empty stack error = %v, want ErrEmptyStack", err)
	}
	if _, err := s.Peek(); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("Peek() on empty stack error = %v, want ErrEmptyStack", err)
	}
	if err := s.AddSubprogramToTop(&models.CodeBlock{}); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("AddSubprogramToTop() on empty stack error = %v, want ErrEmptyStack", err)
	}

	s.Push(&Frame{Kind: models.KindModule, StartLineNumber: 1})
	s.Push(&Frame{Kind: models.KindFunction, StartLineNumber: 3, StartIndex: 2})

	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}

	top, err := s.Peek()
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if top.Kind != models.KindFunction {
		t.Errorf("Peek().Kind = %s, want function", top.Kind)
	}
	if s.Size() != 2 {
		t.Error("Peek() should not remove the frame")
	}

	sub := &models.CodeBlock{Kind: models.KindDoLoop}
	if err := s.AddSubprogramToTop(sub); err != nil {
		t.Fatalf("AddSubprogramToTop() error = %v", err)
	}

	popped, err := s.Pop()
	if err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
	if len(popped.Subprograms) != 1 || popped.Subprograms[0] != sub {
		t.Errorf("popped frame subprograms = %v, want [%v]", popped.Subprograms, sub)
	}
	if popped.StartIndex != 2 {
		t.Errorf("StartIndex = %d, want 2", popped.StartIndex)
	}

	next, _ := s.Pop()
	if next.Kind != models.KindModule {
		t.Errorf("second Pop().Kind = %s, want module", next.Kind)
	}
	if !s.IsEmpty() {
		t.Error("stack should be empty after popping every frame")
	}
}
