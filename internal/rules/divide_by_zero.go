package rules

import (
	"moonlint/internal/ast"
	"moonlint/internal/diag"
)

// DivideByZero reports `x / 0`. `0 / 0` is left to compare_nan.
type DivideByZero struct{}

func NewDivideByZero() *DivideByZero { return &DivideByZero{} }

func (*DivideByZero) Severity() diag.Severity { return diag.SevWarning }
func (*DivideByZero) RuleType() RuleType      { return Complexity }

func (*DivideByZero) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	tree.Walk(ast.Visitor{
		Expr: func(id ast.ExprID, e *ast.Expr) bool {
			data, ok := tree.Exprs.Binary(id)
			if !ok || (data.Op != ast.BinDiv && data.Op != ast.BinFloorDiv) {
				return true
			}
			if isZero(tree, data.Right) && !isZero(tree, data.Left) {
				out = append(out, diag.New(diag.DivideByZero,
					"dividing by zero is not allowed, use math.huge instead",
					diag.At(e.Span)))
			}
			return true
		},
	})
	return out
}
