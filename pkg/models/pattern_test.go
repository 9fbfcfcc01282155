package models

import "testing"

func TestPattern_Classification(t *testing.T) {
	tests := []struct {
		pattern   Pattern
		wantKind  BlockKind
		wantOK    bool
		wantStart bool
		wantEnd   bool
	}{
		{PatternProgram, KindProgram, true, true, false},
		{PatternProgramEnd, KindProgram, true, false, true},
		{PatternDoLoop, KindDoLoop, true, true, false},
		{PatternIfBlockEnd, KindIfBlock, true, false, true},
		{PatternTypeEnd, KindType, true, false, true},
		{PatternVariableDeclaration, "", false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.pattern), func(t *testing.T) {
			kind, ok := tt.pattern.Kind()
			if kind != tt.wantKind || ok != tt.wantOK {
				t.Errorf("Kind() = (%q, %v), want (%q, %v)", kind, ok, tt.wantKind, tt.wantOK)
			}
			if got := tt.pattern.IsStart(); got != tt.wantStart {
				t.Errorf("IsStart() = %v, want %v", got, tt.wantStart)
			}
			if got := tt.pattern.IsEnd(); got != tt.wantEnd {
				t.Errorf("IsEnd() = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}

func TestBlockKind_Capabilities(t *testing.T) {
	for _, k := range AllBlockKinds {
		caps := k.Capabilities()
		if got, want := caps.Subprograms, k != KindType; got != want {
			t.Errorf("%s.Subprograms = %v, want %v", k, got, want)
		}
		if got, want := caps.Recursion, k == KindFunction || k == KindSubroutine; got != want {
			t.Errorf("%s.Recursion = %v, want %v", k, got, want)
		}
		if got, want := caps.Named, k != KindDoLoop && k != KindIfBlock; got != want {
			t.Errorf("%s.Named = %v, want %v", k, got, want)
		}
	}
	if BlockKind("unknown").SupportsSubprograms() {
		t.Error("unknown kinds should not support subprograms")
	}
}

func TestBlockKind_Title(t *testing.T) {
	tests := map[BlockKind]string{
		KindDoLoop:  "Do loop",
		KindIfBlock: "If block",
		KindModule:  "Module",
	}
	for k, want := range tests {
		if got := k.Title(); got != want {
			t.Errorf("%s.Title() = %q, want %q", k, got, want)
		}
	}
}

func TestStatement_Tags(t *testing.T) {
	s := NewStatement(5, "END", false)
	if s.HasMatchedPatterns() || s.IsEndStatement() {
		t.Fatal("new statement should carry no tags")
	}

	s.AddPattern(PatternModuleEnd)
	s.AddPattern(PatternProgramEnd)

	if !s.IsEndStatement() {
		t.Error("IsEndStatement() = false, want true")
	}
	if _, ok := s.StartKind(); ok {
		t.Error("StartKind() should report no start tag")
	}
	if k, ok := s.EndKind(); !ok || k != KindModule {
		t.Errorf("EndKind() = (%s, %v), want (module, true)", k, ok)
	}
	if !s.HasPattern(PatternProgramEnd) || s.HasPattern(PatternProgram) {
		t.Error("HasPattern() mismatch")
	}
}
