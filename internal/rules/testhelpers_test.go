package rules

import (
	"testing"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/parser"
	"moonlint/internal/source"
	"moonlint/internal/stdlib"
)

func parseLua(t *testing.T, src string) *ast.Tree {
	t.Helper()
	res := parser.ParseSource(source.NewFileSet(), "test.lua", []byte(src), parser.Options{})
	if res.Bag.Len() != 0 {
		for _, d := range res.Bag.Items() {
			t.Errorf("parse: %s", d.Message)
		}
		t.FailNow()
	}
	return res.Tree
}

func loadStd(t *testing.T, name string) *stdlib.StandardLibrary {
	t.Helper()
	lib, err := stdlib.Loader{}.Load(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return lib
}

func run(t *testing.T, rule Rule, src string, std *stdlib.StandardLibrary) ([]diag.Diagnostic, *ast.Tree) {
	t.Helper()
	tree := parseLua(t, src)
	return rule.Pass(tree, &Context{StandardLibrary: std}), tree
}

func messages(diags []diag.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

// ruleCase is one snippet and the messages the rule must produce for it.
type ruleCase struct {
	name string
	src  string
	want []string
}

func runCases(t *testing.T, rule Rule, std *stdlib.StandardLibrary, cases []ruleCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			diags, _ := run(t, rule, tt.src, std)
			got := messages(diags)
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("diagnostic %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// mustRule wraps a rule constructor: mustRule(t)(NewX(cfg)).
func mustRule(t *testing.T) func(Rule, error) Rule {
	return func(r Rule, err error) Rule {
		t.Helper()
		if err != nil {
			t.Fatalf("construct: %v", err)
		}
		return r
	}
}
