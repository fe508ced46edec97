package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"local", KwLocal, true},
		{"elseif", KwElseif, true},
		{"Local", Invalid, false},
		{"continue", Invalid, false},
		{"self", Invalid, false},
	}
	for _, tt := range tests {
		got, ok := LookupKeyword(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("LookupKeyword(%q) = %v,%v; want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindString(t *testing.T) {
	if KwFunction.String() != "function" {
		t.Errorf("KwFunction = %q", KwFunction.String())
	}
	if TildeEq.String() != "~=" {
		t.Errorf("TildeEq = %q", TildeEq.String())
	}
	if !PlusAssign.IsCompoundAssign() || Assign.IsCompoundAssign() {
		t.Errorf("IsCompoundAssign mismatch")
	}
}

func TestTokenClassifiers(t *testing.T) {
	if !(Token{Kind: KwUntil}).IsBlockEnd() || (Token{Kind: KwDo}).IsBlockEnd() {
		t.Errorf("IsBlockEnd mismatch")
	}
	if !(Token{Kind: KwWhile}).IsKeyword() || (Token{Kind: Ident}).IsKeyword() {
		t.Errorf("IsKeyword mismatch")
	}
	if !(Token{Kind: String}).IsLiteral() {
		t.Errorf("String must be a literal")
	}
}
