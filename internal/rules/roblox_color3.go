package rules

import (
	"moonlint/internal/ast"
	"moonlint/internal/diag"
)

// RobloxColor3NewBounds reports Color3.new arguments above 1.
type RobloxColor3NewBounds struct{}

func NewRobloxColor3NewBounds() *RobloxColor3NewBounds { return &RobloxColor3NewBounds{} }

func (*RobloxColor3NewBounds) Severity() diag.Severity { return diag.SevWarning }
func (*RobloxColor3NewBounds) RuleType() RuleType      { return Correctness }

func (*RobloxColor3NewBounds) Pass(tree *ast.Tree, ctx *Context) []diag.Diagnostic {
	if !ctx.IsRoblox() {
		return nil
	}
	var out []diag.Diagnostic
	tree.Walk(ast.Visitor{
		Expr: func(id ast.ExprID, e *ast.Expr) bool {
			call, ok := tree.Exprs.Call(id)
			if !ok || !isPath(tree, call.Target, "Color3", "new") {
				return true
			}
			for _, arg := range call.Args {
				if v, ok := numberValue(tree, arg); ok && v > 1 {
					out = append(out, diag.New(diag.RobloxIncorrectColor3NewBounds,
						"Color3.new only takes in numbers from 0 to 1",
						diag.At(tree.Exprs.Get(arg).Span)).
						WithNote("did you mean Color3.fromRGB instead?"))
				}
			}
			return true
		},
	})
	return out
}

// isPath reports whether id is exactly the dotted chain want.
func isPath(tree *ast.Tree, id ast.ExprID, want ...string) bool {
	path, ok := tree.DottedPath(id)
	if !ok || len(path) != len(want) {
		return false
	}
	for i := range want {
		if path[i] != want[i] {
			return false
		}
	}
	return true
}
