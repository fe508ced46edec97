package rules

import (
	"moonlint/internal/ast"
	"moonlint/internal/diag"
)

// UnbalancedAssignments reports assignments whose sides differ in length.
type UnbalancedAssignments struct{}

func NewUnbalancedAssignments() *UnbalancedAssignments { return &UnbalancedAssignments{} }

func (*UnbalancedAssignments) Severity() diag.Severity { return diag.SevWarning }
func (*UnbalancedAssignments) RuleType() RuleType      { return Complexity }

func (*UnbalancedAssignments) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	tree.Walk(ast.Visitor{
		Stmt: func(id ast.StmtID, st *ast.Stmt) bool {
			var names int
			var values []ast.ExprID
			switch st.Kind {
			case ast.StmtLocal:
				data, _ := tree.Stmts.Local(id)
				names, values = len(data.Names), data.Values
			case ast.StmtAssign:
				data, _ := tree.Stmts.Assign(id)
				names, values = len(data.Targets), data.Values
			default:
				return true
			}
			if len(values) == 0 || names == len(values) {
				return true
			}
			// local a, b = nil
			if len(values) == 1 && tree.Exprs.Get(values[0]).Kind == ast.ExprNil {
				return true
			}
			if names > len(values) {
				if isMultiValue(tree, values[len(values)-1]) {
					return true
				}
				out = append(out, diag.New(diag.UnbalancedAssignments,
					"values on right side don't match up to the left side of the assignment",
					diag.At(st.Span)))
				return true
			}
			extra := tree.Exprs.Get(values[names]).Span.Cover(tree.Exprs.Get(values[len(values)-1]).Span)
			out = append(out, diag.New(diag.UnbalancedAssignments,
				"too many values on the right side of the assignment",
				diag.At(st.Span)).
				WithSecondary(diag.LabelAt(extra, "unused values")))
			return true
		},
	})
	return out
}
