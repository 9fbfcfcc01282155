package summary

import (
	"github.com/panbanda/f90lens/pkg/analyzer"
	"github.com/panbanda/f90lens/pkg/stats"
)

// BlockCounts counts code blocks by kind.
type BlockCounts struct {
	DoLoop      int `json:"do_loop_count" yaml:"doLoopCount" toon:"do_loop_count"`
	Function    int `json:"function_count" yaml:"functionCount" toon:"function_count"`
	IfBlock     int `json:"if_block_count" yaml:"ifBlockCount" toon:"if_block_count"`
	Interface   int `json:"interface_count" yaml:"interfaceCount" toon:"interface_count"`
	Module      int `json:"module_count" yaml:"moduleCount" toon:"module_count"`
	Program     int `json:"program_count" yaml:"programCount" toon:"program_count"`
	Subroutine  int `json:"subroutine_count" yaml:"subroutineCount" toon:"subroutine_count"`
	DerivedType int `json:"derived_type_declaration_count" yaml:"derivedTypeDeclarationCount" toon:"derived_type_declaration_count"`
}

// Total returns the number of blocks counted.
func (c BlockCounts) Total() int {
	return c.DoLoop + c.Function + c.IfBlock + c.Interface + c.Module + c.Program + c.Subroutine + c.DerivedType
}

// VariableCounts counts variables by built-in data type. A variable counts towards
// every type whose name occurs in its declared type, so INTEGER(I8) is an INTEGER and
// DOUBLE COMPLEX is also a COMPLEX.
type VariableCounts struct {
	Character       int `json:"character_count" yaml:"characterCount" toon:"character_count"`
	Complex         int `json:"complex_count" yaml:"complexCount" toon:"complex_count"`
	DoubleComplex   int `json:"double_complex_count" yaml:"doubleComplexCount" toon:"double_complex_count"`
	DoublePrecision int `json:"double_precision_count" yaml:"doublePrecisionCount" toon:"double_precision_count"`
	Integer         int `json:"integer_count" yaml:"integerCount" toon:"integer_count"`
	Logical         int `json:"logical_count" yaml:"logicalCount" toon:"logical_count"`
	Real            int `json:"real_count" yaml:"realCount" toon:"real_count"`
}

// Coverage is the share of statement lines that fall inside a top-level block.
type Coverage struct {
	StatementLines int     `json:"statement_lines" yaml:"statementLines" toon:"statement_lines"`
	CoveredLines   int     `json:"covered_lines" yaml:"coveredLines" toon:"covered_lines"`
	Ratio          float64 `json:"ratio" yaml:"ratio" toon:"ratio"`
}

// Summary is the aggregate report over a set of files.
type Summary struct {
	analyzer.FileCounts `yaml:",inline"`

	CommentCount   int                `json:"comment_count" yaml:"commentCount" toon:"comment_count"`
	TopLevelBlocks bool               `json:"top_level_code_blocks_only" yaml:"topLevelCodeBlocksOnly" toon:"top_level_code_blocks_only"`
	TopLevelVars   bool               `json:"top_level_variables_only" yaml:"topLevelVariablesOnly" toon:"top_level_variables_only"`
	Blocks         BlockCounts        `json:"code_block_type_summary" yaml:"codeBlockTypeSummary" toon:"code_block_type_summary"`
	Variables      VariableCounts     `json:"variable_data_type_summary" yaml:"variableDataTypeSummary" toon:"variable_data_type_summary"`
	BlockLengths   stats.Distribution `json:"block_lengths" yaml:"blockLengths" toon:"block_lengths"`
	Coverage       Coverage           `json:"coverage" yaml:"coverage" toon:"coverage"`
}
