package rules

import (
	"fmt"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
)

// CompareNan reports `x == 0/0` and `x ~= 0/0`, which never behave as meant.
type CompareNan struct{}

func NewCompareNan() *CompareNan { return &CompareNan{} }

func (*CompareNan) Severity() diag.Severity { return diag.SevError }
func (*CompareNan) RuleType() RuleType      { return Correctness }

func (*CompareNan) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	tree.Walk(ast.Visitor{
		Expr: func(id ast.ExprID, e *ast.Expr) bool {
			if e.Kind != ast.ExprBinary {
				return true
			}
			data, _ := tree.Exprs.Binary(id)
			if data.Op != ast.BinEq && data.Op != ast.BinNe {
				return true
			}
			if !isVariable(tree, data.Left) || !isNan(tree, data.Right) {
				return true
			}
			// x == nan никогда не истинно, а x ~= nan всегда: правильная проверка обратная
			op := ast.BinNe
			if data.Op == ast.BinNe {
				op = ast.BinEq
			}
			variable := tree.ExprText(data.Left)
			replacement := fmt.Sprintf("%s %s %s", variable, op, variable)
			out = append(out, diag.New(diag.CompareNan,
				"comparing things to nan directly is not allowed",
				diag.At(e.Span)).
				WithNote(fmt.Sprintf("try: `%s` instead", replacement)).
				WithFix("compare the value with itself", e.Span, replacement, tree.Text(e.Span)))
			return true
		},
	})
	return out
}

func isVariable(tree *ast.Tree, id ast.ExprID) bool {
	expr := tree.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprName, ast.ExprMember, ast.ExprIndex:
		return true
	default:
		return false
	}
}

// isNan matches the literal 0/0.
func isNan(tree *ast.Tree, id ast.ExprID) bool {
	data, ok := tree.Exprs.Binary(id)
	return ok && data.Op == ast.BinDiv && isZero(tree, data.Left) && isZero(tree, data.Right)
}
