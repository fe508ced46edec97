package rules

import (
	"fmt"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
)

// AlmostSwapped reports `a = b` directly followed by `b = a`.
type AlmostSwapped struct{}

func NewAlmostSwapped() *AlmostSwapped { return &AlmostSwapped{} }

func (*AlmostSwapped) Severity() diag.Severity { return diag.SevError }
func (*AlmostSwapped) RuleType() RuleType      { return Correctness }

func (*AlmostSwapped) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	tree.Walk(ast.Visitor{
		Block: func(_ ast.BlockID, b *ast.Block) bool {
			for i := 0; i+1 < len(b.Stmts); i++ {
				first, ok1 := singleAssign(tree, b.Stmts[i])
				second, ok2 := singleAssign(tree, b.Stmts[i+1])
				if !ok1 || !ok2 {
					continue
				}
				a, bText := tree.ExprText(first.Targets[0]), tree.ExprText(first.Values[0])
				if a == bText || tree.ExprText(second.Targets[0]) != bText || tree.ExprText(second.Values[0]) != a {
					continue
				}
				span := tree.Stmts.Get(b.Stmts[i]).Span.Cover(tree.Stmts.Get(b.Stmts[i+1]).Span)
				out = append(out, diag.New(diag.AlmostSwapped,
					fmt.Sprintf("this looks like you are trying to swap `%s` and `%s`", a, bText),
					diag.At(span)).
					WithNote(fmt.Sprintf("try: `%s, %s = %s, %s`", a, bText, bText, a)))
				i++
			}
			return true
		},
	})
	return out
}

func singleAssign(tree *ast.Tree, id ast.StmtID) (*ast.StmtAssignData, bool) {
	data, ok := tree.Stmts.Assign(id)
	if !ok || len(data.Targets) != 1 || len(data.Values) != 1 {
		return nil, false
	}
	return data, true
}
