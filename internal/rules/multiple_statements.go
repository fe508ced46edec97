package rules

import (
	"fmt"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
)

// OneLineIf controls how `if c then x end` on one line is treated.
type OneLineIf string

const (
	OneLineIfAllow           OneLineIf = "allow"
	OneLineIfDeny            OneLineIf = "deny"
	OneLineIfBreakReturnOnly OneLineIf = "break-return-only"
)

type MultipleStatementsConfig struct {
	OneLineIf OneLineIf `toml:"one_line_if" yaml:"one_line_if"`
}

func DefaultMultipleStatementsConfig() MultipleStatementsConfig {
	return MultipleStatementsConfig{OneLineIf: OneLineIfBreakReturnOnly}
}

// MultipleStatements reports several statements sharing one line.
type MultipleStatements struct {
	oneLineIf OneLineIf
}

func NewMultipleStatements(cfg MultipleStatementsConfig) (*MultipleStatements, error) {
	switch cfg.OneLineIf {
	case OneLineIfAllow, OneLineIfDeny, OneLineIfBreakReturnOnly:
	default:
		return nil, fmt.Errorf("one_line_if: unknown value %q", cfg.OneLineIf)
	}
	return &MultipleStatements{oneLineIf: cfg.OneLineIf}, nil
}

func (*MultipleStatements) Severity() diag.Severity { return diag.SevWarning }
func (*MultipleStatements) RuleType() RuleType      { return Style }

const oneStatementPerLine = "only one statement per line"

func (r *MultipleStatements) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	tree.Walk(ast.Visitor{
		Block: func(_ ast.BlockID, b *ast.Block) bool {
			for i := 1; i < len(b.Stmts); i++ {
				prev, cur := tree.Stmts.Get(b.Stmts[i-1]), tree.Stmts.Get(b.Stmts[i])
				if tree.SameLine(prev.Span.End, cur.Span.Start) {
					out = append(out, diag.New(diag.MultipleStatements, oneStatementPerLine, diag.At(cur.Span)))
				}
			}
			return true
		},
		Stmt: func(id ast.StmtID, st *ast.Stmt) bool {
			if st.Kind == ast.StmtIf && r.flagOneLineIf(tree, id, st) {
				out = append(out, diag.New(diag.MultipleStatements, oneStatementPerLine, diag.At(st.Span)))
			}
			return true
		},
	})
	return out
}

func (r *MultipleStatements) flagOneLineIf(tree *ast.Tree, id ast.StmtID, st *ast.Stmt) bool {
	if r.oneLineIf == OneLineIfAllow || !tree.SameLine(st.Span.Start, st.Span.End) {
		return false
	}
	if r.oneLineIf == OneLineIfDeny {
		return true
	}
	data, _ := tree.Stmts.If(id)
	if len(data.ElseIfs) > 0 || data.Else.IsValid() {
		return true
	}
	body := tree.Stmts.Block(data.Then)
	if len(body.Stmts) != 1 {
		return true
	}
	switch tree.Stmts.Get(body.Stmts[0]).Kind {
	case ast.StmtBreak, ast.StmtReturn, ast.StmtContinue:
		return false
	default:
		return true
	}
}
