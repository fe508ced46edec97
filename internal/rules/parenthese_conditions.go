package rules

import (
	"moonlint/internal/ast"
	"moonlint/internal/diag"
)

// ParentheseConditions reports `if (x) then`, `while (x) do` and `until (x)`.
type ParentheseConditions struct{}

func NewParentheseConditions() *ParentheseConditions { return &ParentheseConditions{} }

func (*ParentheseConditions) Severity() diag.Severity { return diag.SevWarning }
func (*ParentheseConditions) RuleType() RuleType      { return Style }

func (*ParentheseConditions) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	check := func(cond ast.ExprID) {
		data, ok := tree.Exprs.Paren(cond)
		if !ok {
			return
		}
		span := tree.Exprs.Get(cond).Span
		out = append(out, diag.New(diag.ParentheseConditions,
			"lua does not require parentheses around conditions",
			diag.At(span)).
			WithFix("remove the parentheses", span, tree.ExprText(data.Inner), tree.Text(span)))
	}
	tree.Walk(ast.Visitor{
		Stmt: func(id ast.StmtID, st *ast.Stmt) bool {
			switch st.Kind {
			case ast.StmtIf:
				data, _ := tree.Stmts.If(id)
				check(data.Cond)
				for _, elseIf := range data.ElseIfs {
					check(elseIf.Cond)
				}
			case ast.StmtWhile:
				data, _ := tree.Stmts.While(id)
				check(data.Cond)
			case ast.StmtRepeat:
				data, _ := tree.Stmts.Repeat(id)
				check(data.Until)
			}
			return true
		},
	})
	return out
}
