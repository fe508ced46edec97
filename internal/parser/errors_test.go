package parser

import (
	"strings"
	"testing"

	"moonlint/internal/diag"
	"moonlint/internal/source"
)

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"if x then", "expected 'end' to close 'if'"},
		{"local = 1", "expected identifier"},
		{"x", "expression is not a statement"},
		{"f() = 1", "cannot assign to this expression"},
		{"return 1 print(2)", "expected end of block after 'return'"},
		{"local x = )", "unexpected symbol near ')'"},
		{"end", "expected <eof>"},
		{`local s = "\q"`, "invalid escape sequence"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := ParseSource(source.NewFileSet(), "bad.lua", []byte(tt.src), Options{})
			if !res.Bag.HasErrors() {
				t.Fatalf("expected errors")
			}
			found := false
			for _, d := range res.Bag.Items() {
				if d.Code != diag.ParseError {
					t.Errorf("unexpected code %v", d.Code)
				}
				if strings.Contains(d.Message, tt.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("no diagnostic containing %q in %v", tt.want, res.Bag.Items())
			}
			if res.Tree == nil || !res.Tree.Root.IsValid() {
				t.Fatalf("tree must always be produced")
			}
		})
	}
}

func TestRecoveryKeepsLaterStatements(t *testing.T) {
	res := ParseSource(source.NewFileSet(), "bad.lua", []byte("local = 1\nprint(2)"), Options{})
	stmts := res.Tree.Stmts.Block(res.Tree.Root).Stmts
	if len(stmts) != 1 {
		t.Fatalf("expected print(2) to survive recovery, got %d statements", len(stmts))
	}
}

func TestMaxErrors(t *testing.T) {
	res := ParseSource(source.NewFileSet(), "bad.lua", []byte("x\ny\nz\nw"), Options{MaxErrors: 2})
	if res.Bag.Len() != 2 {
		t.Fatalf("got %d diagnostics, want 2", res.Bag.Len())
	}
}

func TestReporterReceivesCopies(t *testing.T) {
	extra := diag.NewBag(0)
	res := ParseSource(source.NewFileSet(), "bad.lua", []byte("x"), Options{Reporter: diag.BagReporter{Bag: extra}})
	if extra.Len() != res.Bag.Len() || extra.Len() == 0 {
		t.Fatalf("reporter got %d, bag %d", extra.Len(), res.Bag.Len())
	}
}

func TestDeepNesting(t *testing.T) {
	src := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)
	res := ParseSource(source.NewFileSet(), "deep.lua", []byte("local v = "+src), Options{})
	found := false
	for _, d := range res.Bag.Items() {
		if strings.Contains(d.Message, "too many syntax levels") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected depth error")
	}
}
