package rules

import (
	"fmt"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
)

// SuspiciousReverseLoop reports `for i = #t, 1 do` without a negative step.
type SuspiciousReverseLoop struct{}

func NewSuspiciousReverseLoop() *SuspiciousReverseLoop { return &SuspiciousReverseLoop{} }

func (*SuspiciousReverseLoop) Severity() diag.Severity { return diag.SevError }
func (*SuspiciousReverseLoop) RuleType() RuleType      { return Correctness }

func (*SuspiciousReverseLoop) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	tree.Walk(ast.Visitor{
		Stmt: func(id ast.StmtID, _ *ast.Stmt) bool {
			data, ok := tree.Stmts.NumericFor(id)
			if !ok || data.Step.IsValid() {
				return true
			}
			start, ok := tree.Exprs.Unary(data.Start)
			if !ok || start.Op != ast.UnLen {
				return true
			}
			if _, ok := numberValue(tree, data.Limit); !ok {
				return true
			}
			span := tree.Exprs.Get(data.Start).Span.Cover(tree.Exprs.Get(data.Limit).Span)
			out = append(out, diag.New(diag.SuspiciousReverseLoop,
				"this loop will only ever run once at most",
				diag.At(span)).
				WithNote(fmt.Sprintf("try adding `, -1` after `%s`", tree.ExprText(data.Limit))))
			return true
		},
	})
	return out
}
