package rules

import (
	"fmt"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
)

// RobloxSuspiciousUDim2New reports UDim2.new calls with fewer than four
// arguments.
type RobloxSuspiciousUDim2New struct{}

func NewRobloxSuspiciousUDim2New() *RobloxSuspiciousUDim2New { return &RobloxSuspiciousUDim2New{} }

func (*RobloxSuspiciousUDim2New) Severity() diag.Severity { return diag.SevWarning }
func (*RobloxSuspiciousUDim2New) RuleType() RuleType      { return Correctness }

func (*RobloxSuspiciousUDim2New) Pass(tree *ast.Tree, ctx *Context) []diag.Diagnostic {
	if !ctx.IsRoblox() {
		return nil
	}
	var out []diag.Diagnostic
	tree.Walk(ast.Visitor{
		Expr: func(id ast.ExprID, e *ast.Expr) bool {
			call, ok := tree.Exprs.Call(id)
			if !ok || call.ArgsKind != ast.CallArgsParens || !isPath(tree, call.Target, "UDim2", "new") {
				return true
			}
			provided := len(call.Args)
			numbers := 0
			unit := true
			for _, arg := range call.Args {
				v, ok := numberValue(tree, arg)
				if ok {
					numbers++
				}
				if !ok || v < 0 || v > 1 {
					unit = false
				}
			}
			// UDim2.new(UDim.new(), UDim.new())
			if provided >= 4 || (provided == 2 && numbers == 0) {
				return true
			}

			verb := "were"
			if provided == 1 {
				verb = "was"
			}
			d := diag.New(diag.RobloxSuspiciousUDim2New,
				fmt.Sprintf("UDim2.new takes 4 numbers, but %d %s provided.", provided, verb),
				diag.At(e.Span))
			if provided <= 2 && numbers == provided {
				if unit {
					d = d.WithNote("did you mean to use UDim2.fromScale instead?")
				} else {
					d = d.WithNote("did you mean to use UDim2.fromOffset instead?")
				}
			}
			out = append(out, d)
			return true
		},
	})
	return out
}
