package models

import "strings"

// BlockKind is the syntactic category of a code block.
type BlockKind string

const (
	KindProgram    BlockKind = "program"
	KindModule     BlockKind = "module"
	KindFunction   BlockKind = "function"
	KindSubroutine BlockKind = "subroutine"
	KindType       BlockKind = "type"
	KindInterface  BlockKind = "interface"
	KindDoLoop     BlockKind = "do_loop"
	KindIfBlock    BlockKind = "if_block"
)

// AllBlockKinds lists every block kind in reporting order.
var AllBlockKinds = []BlockKind{
	KindDoLoop,
	KindFunction,
	KindIfBlock,
	KindInterface,
	KindModule,
	KindProgram,
	KindSubroutine,
	KindType,
}

// Title returns the human readable form used in text reports, e.g. "Do loop".
func (k BlockKind) Title() string {
	s := strings.ReplaceAll(string(k), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Capabilities describes which kind-specific fields a block kind carries.
type Capabilities struct {
	Subprograms bool
	Recursion   bool
	Named       bool
}

var capabilities = map[BlockKind]Capabilities{
	KindProgram:    {Subprograms: true, Named: true},
	KindModule:     {Subprograms: true, Named: true},
	KindFunction:   {Subprograms: true, Recursion: true, Named: true},
	KindSubroutine: {Subprograms: true, Recursion: true, Named: true},
	KindType:       {Named: true},
	KindInterface:  {Subprograms: true, Named: true},
	KindDoLoop:     {Subprograms: true},
	KindIfBlock:    {Subprograms: true},
}

// Capabilities returns the capability set for the kind.
// Unknown kinds report no capabilities.
func (k BlockKind) Capabilities() Capabilities {
	return capabilities[k]
}

// SupportsSubprograms reports whether blocks of this kind may own nested blocks.
func (k BlockKind) SupportsSubprograms() bool {
	return capabilities[k].Subprograms
}

// Pattern is a tag assigned to a statement by the classifier. Every block kind has
// a start and an end pattern; VARIABLE_DECLARATION is a statement-level tag only.
type Pattern string

const (
	PatternProgram             Pattern = "PROGRAM"
	PatternProgramEnd          Pattern = "PROGRAM_END"
	PatternModule              Pattern = "MODULE"
	PatternModuleEnd           Pattern = "MODULE_END"
	PatternFunction            Pattern = "FUNCTION"
	PatternFunctionEnd         Pattern = "FUNCTION_END"
	PatternSubroutine          Pattern = "SUBROUTINE"
	PatternSubroutineEnd       Pattern = "SUBROUTINE_END"
	PatternType                Pattern = "TYPE"
	PatternTypeEnd             Pattern = "TYPE_END"
	PatternInterface           Pattern = "INTERFACE"
	PatternInterfaceEnd        Pattern = "INTERFACE_END"
	PatternDoLoop              Pattern = "DO_LOOP"
	PatternDoLoopEnd           Pattern = "DO_LOOP_END"
	PatternIfBlock             Pattern = "IF_BLOCK"
	PatternIfBlockEnd          Pattern = "IF_BLOCK_END"
	PatternVariableDeclaration Pattern = "VARIABLE_DECLARATION"
)

var patternKinds = map[Pattern]BlockKind{
	PatternProgram:       KindProgram,
	PatternProgramEnd:    KindProgram,
	PatternModule:        KindModule,
	PatternModuleEnd:     KindModule,
	PatternFunction:      KindFunction,
	PatternFunctionEnd:   KindFunction,
	PatternSubroutine:    KindSubroutine,
	PatternSubroutineEnd: KindSubroutine,
	PatternType:          KindType,
	PatternTypeEnd:       KindType,
	PatternInterface:     KindInterface,
	PatternInterfaceEnd:  KindInterface,
	PatternDoLoop:        KindDoLoop,
	PatternDoLoopEnd:     KindDoLoop,
	PatternIfBlock:       KindIfBlock,
	PatternIfBlockEnd:    KindIfBlock,
}

// Kind returns the block kind a start or end pattern belongs to.
// The second result is false for statement-level tags.
func (p Pattern) Kind() (BlockKind, bool) {
	k, ok := patternKinds[p]
	return k, ok
}

// IsEnd reports whether the pattern closes a block.
func (p Pattern) IsEnd() bool {
	_, ok := patternKinds[p]
	return ok && strings.HasSuffix(string(p), "_END")
}

// IsStart reports whether the pattern opens a block.
func (p Pattern) IsStart() bool {
	_, ok := patternKinds[p]
	return ok && !strings.HasSuffix(string(p), "_END")
}
