package rules

import (
	"fmt"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/symbols"
)

// UndefinedVariable reports reads of names that are neither locals, standard
// library globals nor assigned as globals anywhere in the file.
type UndefinedVariable struct{}

func NewUndefinedVariable() *UndefinedVariable { return &UndefinedVariable{} }

func (*UndefinedVariable) Severity() diag.Severity { return diag.SevError }
func (*UndefinedVariable) RuleType() RuleType      { return Correctness }

func (*UndefinedVariable) Pass(tree *ast.Tree, ctx *Context) []diag.Diagnostic {
	table := symbols.Resolve(tree)
	defined := table.GlobalWrites()
	var out []diag.Diagnostic
	for _, ref := range table.References.Data() {
		if !ref.Read || !ref.IsGlobal() || defined[ref.Name] || ctx.IsStdGlobal(ref.Name) {
			continue
		}
		out = append(out, diag.New(diag.UndefinedVariable,
			fmt.Sprintf("`%s` is not defined", ref.Name),
			diag.At(ref.Span)))
	}
	return out
}
