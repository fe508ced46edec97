package rules

import (
	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/source"
)

type EmptyIfConfig struct {
	CommentsCount bool `toml:"comments_count" yaml:"comments_count"`
}

func DefaultEmptyIfConfig() EmptyIfConfig { return EmptyIfConfig{} }

// EmptyIf reports if, elseif and else branches without statements.
type EmptyIf struct {
	cfg EmptyIfConfig
}

func NewEmptyIf(cfg EmptyIfConfig) *EmptyIf { return &EmptyIf{cfg: cfg} }

func (*EmptyIf) Severity() diag.Severity { return diag.SevWarning }
func (*EmptyIf) RuleType() RuleType      { return Style }

func (r *EmptyIf) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	report := func(span source.Span, msg string) {
		out = append(out, diag.New(diag.EmptyIf, msg, diag.At(span)))
	}
	tree.Walk(ast.Visitor{
		Stmt: func(id ast.StmtID, st *ast.Stmt) bool {
			data, ok := tree.Stmts.If(id)
			if !ok {
				return true
			}
			if r.empty(tree, data.Then) {
				report(st.Span, "empty if block")
			}
			for _, elseIf := range data.ElseIfs {
				if r.empty(tree, elseIf.Body) {
					report(elseIf.Span, "empty if block")
				}
			}
			if data.Else.IsValid() && r.empty(tree, data.Else) {
				report(tree.Stmts.Block(data.Else).Span, "empty else block")
			}
			return true
		},
	})
	return out
}

func (r *EmptyIf) empty(tree *ast.Tree, id ast.BlockID) bool {
	block := tree.Stmts.Block(id)
	if block == nil || len(block.Stmts) > 0 {
		return false
	}
	if r.cfg.CommentsCount && len(tree.CommentsIn(block.Span)) > 0 {
		return false
	}
	return true
}
