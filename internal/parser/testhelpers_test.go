package parser

import (
	"testing"

	"moonlint/internal/ast"
	"moonlint/internal/source"
)

func parseOK(t *testing.T, src string) *ast.Tree {
	t.Helper()
	res := ParseSource(source.NewFileSet(), "test.lua", []byte(src), Options{})
	if res.Bag.Len() != 0 {
		for _, d := range res.Bag.Items() {
			t.Errorf("unexpected diagnostic: %s", d.Message)
		}
		t.FailNow()
	}
	return res.Tree
}

func rootStmts(t *testing.T, tree *ast.Tree) []ast.StmtID {
	t.Helper()
	return tree.Stmts.Block(tree.Root).Stmts
}

// firstValue возвращает первое значение `local x = <expr>`.
func firstValue(t *testing.T, tree *ast.Tree) ast.ExprID {
	t.Helper()
	stmts := rootStmts(t, tree)
	if len(stmts) == 0 {
		t.Fatalf("no statements")
	}
	local, ok := tree.Stmts.Local(stmts[0])
	if !ok || len(local.Values) == 0 {
		t.Fatalf("first statement is not a local with a value")
	}
	return local.Values[0]
}
