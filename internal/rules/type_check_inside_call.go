package rules

import (
	"fmt"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/symbols"
)

// TypeCheckInsideCall reports `type(x == "string")`.
type TypeCheckInsideCall struct{}

func NewTypeCheckInsideCall() *TypeCheckInsideCall { return &TypeCheckInsideCall{} }

func (*TypeCheckInsideCall) Severity() diag.Severity { return diag.SevError }
func (*TypeCheckInsideCall) RuleType() RuleType      { return Correctness }

func (*TypeCheckInsideCall) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	var table *symbols.Table
	var out []diag.Diagnostic
	tree.Walk(ast.Visitor{
		Expr: func(id ast.ExprID, e *ast.Expr) bool {
			call, ok := tree.Exprs.Call(id)
			if !ok || len(call.Args) != 1 {
				return true
			}
			fn, ok := tree.Exprs.Name(call.Target)
			if !ok || (fn.Name != "type" && fn.Name != "typeof") {
				return true
			}
			cmp, ok := tree.Exprs.Binary(call.Args[0])
			if !ok || (cmp.Op != ast.BinEq && cmp.Op != ast.BinNe) {
				return true
			}
			if right := tree.Exprs.Get(cmp.Right); right == nil || right.Kind != ast.ExprString {
				return true
			}
			if table == nil {
				table = symbols.Resolve(tree)
			}
			if table.IsLocal(call.Target) {
				return true
			}
			out = append(out, diag.New(diag.TypeCheckInsideCall,
				"you are checking the type inside the call, not after",
				diag.At(e.Span)).
				WithNote(fmt.Sprintf("did you mean `%s(%s) %s %s`?",
					fn.Name, tree.ExprText(cmp.Left), cmp.Op, tree.ExprText(cmp.Right))))
			return true
		},
	})
	return out
}
