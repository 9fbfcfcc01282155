package models

// String methods for all custom string types.
// These are required for toon serialization, which uses fmt.Stringer.

// BlockKind
func (k BlockKind) String() string { return string(k) }

// Pattern
func (p Pattern) String() string { return string(p) }
