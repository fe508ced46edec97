package rules

import (
	"regexp"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/symbols"
)

type GlobalUsageConfig struct {
	IgnorePattern string `toml:"ignore_pattern" yaml:"ignore_pattern"`
}

func DefaultGlobalUsageConfig() GlobalUsageConfig { return GlobalUsageConfig{} }

// GlobalUsage reports every use of the global _G table.
type GlobalUsage struct {
	ignore *regexp.Regexp
}

func NewGlobalUsage(cfg GlobalUsageConfig) (*GlobalUsage, error) {
	re, err := compilePattern(cfg.IgnorePattern)
	if err != nil {
		return nil, err
	}
	return &GlobalUsage{ignore: re}, nil
}

func (*GlobalUsage) Severity() diag.Severity { return diag.SevWarning }
func (*GlobalUsage) RuleType() RuleType      { return Correctness }

func (r *GlobalUsage) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	table := symbols.Resolve(tree)
	exempt := make(map[ast.ExprID]bool)
	var uses []ast.ExprID
	tree.Walk(ast.Visitor{
		Expr: func(id ast.ExprID, e *ast.Expr) bool {
			switch e.Kind {
			case ast.ExprMember:
				data, _ := tree.Exprs.Member(id)
				if matches(r.ignore, data.Field.Text) {
					exempt[data.Target] = true
				}
			case ast.ExprName:
				name, _ := tree.Exprs.Name(id)
				if name.Name == "_G" && !table.IsLocal(id) {
					uses = append(uses, id)
				}
			}
			return true
		},
	})

	var out []diag.Diagnostic
	for _, id := range uses {
		if exempt[id] {
			continue
		}
		out = append(out, diag.New(diag.GlobalUsage,
			"use of `_G` is not allowed, structure your code in a more idiomatic way",
			diag.At(tree.Exprs.Get(id).Span)))
	}
	return out
}
