package rules

import (
	"fmt"
	"regexp"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/symbols"
)

type UnusedVariableConfig struct {
	IgnorePattern   string `toml:"ignore_pattern" yaml:"ignore_pattern"`
	AllowUnusedSelf bool   `toml:"allow_unused_self" yaml:"allow_unused_self"`
}

func DefaultUnusedVariableConfig() UnusedVariableConfig {
	return UnusedVariableConfig{IgnorePattern: "^_", AllowUnusedSelf: true}
}

// UnusedVariable reports locals that are never read.
type UnusedVariable struct {
	ignore          *regexp.Regexp
	allowUnusedSelf bool
}

func NewUnusedVariable(cfg UnusedVariableConfig) (*UnusedVariable, error) {
	re, err := compilePattern(cfg.IgnorePattern)
	if err != nil {
		return nil, err
	}
	return &UnusedVariable{ignore: re, allowUnusedSelf: cfg.AllowUnusedSelf}, nil
}

func (*UnusedVariable) Severity() diag.Severity { return diag.SevWarning }
func (*UnusedVariable) RuleType() RuleType      { return Style }

func (r *UnusedVariable) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	table := symbols.Resolve(tree)
	var out []diag.Diagnostic
	for i, sym := range table.Symbols.Data() {
		id := symbols.SymbolID(i + 1)
		if table.IsRead(id) || matches(r.ignore, sym.Name) {
			continue
		}
		if sym.Kind == symbols.SymbolSelf && r.allowUnusedSelf {
			continue
		}
		msg := "`%s` is defined, but never used"
		if table.IsWritten(id) || (sym.Kind == symbols.SymbolLocal && sym.HasValue) {
			msg = "`%s` is assigned a value, but never used"
		}
		out = append(out, diag.New(diag.UnusedVariable, fmt.Sprintf(msg, sym.Name), diag.At(sym.Span)))
	}
	return out
}
