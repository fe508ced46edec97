package rules

import (
	"fmt"
	"regexp"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/source"
	"moonlint/internal/symbols"
)

type UnscopedVariablesConfig struct {
	IgnorePattern string `toml:"ignore_pattern" yaml:"ignore_pattern"`
}

func DefaultUnscopedVariablesConfig() UnscopedVariablesConfig {
	return UnscopedVariablesConfig{IgnorePattern: "^_"}
}

// UnscopedVariables reports writes to names that are not declared locally.
type UnscopedVariables struct {
	ignore *regexp.Regexp
}

func NewUnscopedVariables(cfg UnscopedVariablesConfig) (*UnscopedVariables, error) {
	re, err := compilePattern(cfg.IgnorePattern)
	if err != nil {
		return nil, err
	}
	return &UnscopedVariables{ignore: re}, nil
}

func (*UnscopedVariables) Severity() diag.Severity { return diag.SevWarning }
func (*UnscopedVariables) RuleType() RuleType      { return Complexity }

func (r *UnscopedVariables) Pass(tree *ast.Tree, ctx *Context) []diag.Diagnostic {
	table := symbols.Resolve(tree)
	seen := make(map[source.Span]bool)
	var out []diag.Diagnostic
	for _, ref := range table.References.Data() {
		if !ref.Write || !ref.IsGlobal() || seen[ref.Span] {
			continue
		}
		if matches(r.ignore, ref.Name) || ctx.IsStdGlobal(ref.Name) {
			continue
		}
		seen[ref.Span] = true
		out = append(out, diag.New(diag.UnscopedVariables,
			fmt.Sprintf("`%s` is not declared locally, and will be available in every scope", ref.Name),
			diag.LabelAt(ref.Span, "global variable defined here")))
	}
	return out
}
