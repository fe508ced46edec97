package rules

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/stdlib"
	"moonlint/internal/symbols"
)

// StandardLibraryUse checks calls of standard library functions against
// their declared arguments and writes to read-only properties.
type StandardLibraryUse struct{}

func NewStandardLibraryUse() *StandardLibraryUse { return &StandardLibraryUse{} }

func (*StandardLibraryUse) Severity() diag.Severity { return diag.SevError }
func (*StandardLibraryUse) RuleType() RuleType      { return Correctness }

func (r *StandardLibraryUse) Pass(tree *ast.Tree, ctx *Context) []diag.Diagnostic {
	if ctx == nil || ctx.StandardLibrary == nil {
		return nil
	}
	table := symbols.Resolve(tree)
	var out []diag.Diagnostic
	tree.Walk(ast.Visitor{
		Stmt: func(id ast.StmtID, st *ast.Stmt) bool {
			if st.Kind != ast.StmtAssign {
				return true
			}
			data, _ := tree.Stmts.Assign(id)
			for _, target := range data.Targets {
				out = append(out, r.checkWrite(tree, ctx, table, target)...)
			}
			return true
		},
		Expr: func(id ast.ExprID, e *ast.Expr) bool {
			if e.Kind == ast.ExprCall {
				out = append(out, r.checkCall(tree, ctx, table, id, e)...)
			}
			return true
		},
	})
	return out
}

// globalPath returns the dotted path of id when its root is not a local.
func globalPath(tree *ast.Tree, table *symbols.Table, id ast.ExprID) ([]string, bool) {
	path, ok := tree.DottedPath(id)
	if !ok {
		return nil, false
	}
	root, ok := baseName(tree, id)
	if !ok || table.IsLocal(root) {
		return nil, false
	}
	return path, true
}

func (r *StandardLibraryUse) checkCall(tree *ast.Tree, ctx *Context, table *symbols.Table, id ast.ExprID, e *ast.Expr) []diag.Diagnostic {
	call, _ := tree.Exprs.Call(id)
	path, ok := globalPath(tree, table, call.Target)
	if !ok {
		return nil
	}
	field, ok := ctx.StandardLibrary.FindGlobal(path)
	if !ok {
		return nil
	}
	name := strings.Join(path, ".")
	if field.Kind != stdlib.FieldFunction {
		panic(fmt.Sprintf("rules: standard library field `%s` is a %s but is called", name, field.Kind))
	}

	args := call.Args
	if field.Method && len(args) > 0 {
		// obj.method(obj, ...) передаёт self явно
		args = args[1:]
	}
	decl := field.Arguments

	var out []diag.Diagnostic
	hasVararg := len(decl) > 0 && decl[len(decl)-1].Type.Kind == stdlib.TypeVararg
	expected := len(decl)
	if hasVararg {
		expected--
	}
	minimum := expected
	for minimum > 0 && !decl[minimum-1].Required.Required {
		minimum--
	}
	// считаем только аргументы, записанные в вызове; f() и ... не раскрываем
	if hasVararg && decl[len(decl)-1].Required.Required && len(args) <= expected {
		out = append(out, diag.New(diag.StandardLibraryTypes,
			fmt.Sprintf("standard library function `%s` requires use of the vararg", name),
			diag.At(e.Span)).WithNote(decl[len(decl)-1].Required.Message))
	}

	if len(args) < minimum || (!hasVararg && len(args) > expected) {
		want := expected
		if len(args) < minimum {
			want = minimum
		}
		out = append(out, diag.New(diag.StandardLibraryTypes,
			fmt.Sprintf("standard library function `%s` requires %d parameters, %d passed", name, want, len(args)),
			diag.At(e.Span)))
	}

	for i := 0; i < len(args) && i < len(decl); i++ {
		want := decl[i]
		if want.Type.Kind == stdlib.TypeVararg {
			break
		}
		if d, ok := checkArgument(tree, args[i], want); !ok {
			out = append(out, d)
		}
	}
	return out
}

// checkArgument returns a diagnostic when the argument's known type cannot
// satisfy want.
func checkArgument(tree *ast.Tree, arg ast.ExprID, want stdlib.Argument) (diag.Diagnostic, bool) {
	got, ok := Classify(tree, arg)
	if !ok {
		return diag.Diagnostic{}, true
	}
	span := tree.Exprs.Get(arg).Span
	mismatch := func(received string) (diag.Diagnostic, bool) {
		return diag.New(diag.StandardLibraryTypes,
			fmt.Sprintf("expected `%s`, received `%s`", want.Type, received),
			diag.At(span)), false
	}

	switch want.Type.Kind {
	case stdlib.TypeConstant:
		if got.Kind != stdlib.TypeString {
			return mismatch(got.String())
		}
		lit, ok := tree.Exprs.Literal(tree.Exprs.Unparen(arg))
		if !ok || tree.Exprs.Get(tree.Exprs.Unparen(arg)).Kind != ast.ExprString {
			return diag.Diagnostic{}, true
		}
		value := norm.NFC.String(lit.Value)
		for _, allowed := range want.Type.Constants {
			if norm.NFC.String(allowed) == value {
				return diag.Diagnostic{}, true
			}
		}
		return mismatch(`"` + lit.Value + `"`)
	default:
		if !want.Type.Matches(got) {
			return mismatch(got.String())
		}
		return diag.Diagnostic{}, true
	}
}

func (r *StandardLibraryUse) checkWrite(tree *ast.Tree, ctx *Context, table *symbols.Table, target ast.ExprID) []diag.Diagnostic {
	path, ok := globalPath(tree, table, target)
	if !ok || len(path) < 2 {
		return nil
	}
	span := tree.Exprs.Get(target).Span
	name := strings.Join(path, ".")
	notWritable := func() []diag.Diagnostic {
		return []diag.Diagnostic{diag.New(diag.StandardLibraryTypes,
			fmt.Sprintf("standard library global `%s` is not writable", name),
			diag.At(span))}
	}

	if field, ok := ctx.StandardLibrary.FindGlobal(path); ok {
		if field.Kind == stdlib.FieldProperty && !field.Writable.CanOverride() {
			return notWritable()
		}
		return nil
	}
	// новое поле на свойстве: _G.x = 1
	if parent, ok := ctx.StandardLibrary.FindGlobal(path[:len(path)-1]); ok {
		if parent.Kind == stdlib.FieldProperty && !parent.Writable.CanAddFields() {
			return notWritable()
		}
	}
	return nil
}
