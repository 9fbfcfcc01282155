package models

import (
	"fmt"
	"strings"
)

// BuiltinDataTypes lists the intrinsic Fortran 90 data types.
var BuiltinDataTypes = []string{
	"CHARACTER",
	"COMPLEX",
	"DOUBLE COMPLEX",
	"DOUBLE PRECISION",
	"INTEGER",
	"LOGICAL",
	"REAL",
}

// Variable is a declared Fortran variable.
type Variable struct {
	DataType       string   `json:"data_type" yaml:"dataType" toon:"data_type"`
	Attributes     []string `json:"attributes" yaml:"attributes" toon:"attributes"`
	Name           string   `json:"name" yaml:"variableName" toon:"name"`
	ParentFilePath string   `json:"parent_file_path" yaml:"parentFilePath" toon:"parent_file_path"`
	LineDeclared   int      `json:"line_declared" yaml:"lineDeclared" toon:"line_declared"`
	PossiblyUnused bool     `json:"possibly_unused" yaml:"possiblyUnused" toon:"possibly_unused"`
}

// AddAttribute adds an attribute unless an equal one is already present.
func (v *Variable) AddAttribute(attr string) {
	for _, a := range v.Attributes {
		if a == attr {
			return
		}
	}
	v.Attributes = append(v.Attributes, attr)
}

// HasAttribute reports whether the exact attribute is present.
func (v Variable) HasAttribute(attr string) bool {
	for _, a := range v.Attributes {
		if a == attr {
			return true
		}
	}
	return false
}

// IsPointer reports whether the variable carries the POINTER attribute.
func (v Variable) IsPointer() bool {
	return v.HasAttribute("POINTER")
}

// IsArray reports whether any attribute is a DIMENSION specification.
// DIMENSION carries a varying bound list, so this is a substring test.
func (v Variable) IsArray() bool {
	for _, a := range v.Attributes {
		if strings.Contains(a, "DIMENSION") {
			return true
		}
	}
	return false
}

// Equal compares every field except PossiblyUnused. A variable can be judged used by
// one enclosing block and unused by another, so the flag is not part of its identity.
// Attributes compare as sets.
func (v Variable) Equal(other Variable) bool {
	if v.DataType != other.DataType ||
		v.Name != other.Name ||
		v.ParentFilePath != other.ParentFilePath ||
		v.LineDeclared != other.LineDeclared {
		return false
	}
	return sameAttributeSet(v.Attributes, other.Attributes)
}

func sameAttributeSet(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, x := range a {
		set[x] = struct{}{}
	}
	other := make(map[string]struct{}, len(b))
	for _, x := range b {
		if _, ok := set[x]; !ok {
			return false
		}
		other[x] = struct{}{}
	}
	return len(set) == len(other)
}

func (v Variable) String() string {
	return fmt.Sprintf("Variable(data_type=%q, name=%q, parent_file_path=%q)", v.DataType, v.Name, v.ParentFilePath)
}

// ContainsVariable reports whether vars holds a variable equal to v.
func ContainsVariable(vars []Variable, v Variable) bool {
	for _, x := range vars {
		if x.Equal(v) {
			return true
		}
	}
	return false
}
