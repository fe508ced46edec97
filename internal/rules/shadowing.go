package rules

import (
	"fmt"
	"regexp"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/symbols"
)

type ShadowingConfig struct {
	IgnorePattern string `toml:"ignore_pattern" yaml:"ignore_pattern"`
}

func DefaultShadowingConfig() ShadowingConfig { return ShadowingConfig{IgnorePattern: "^_"} }

// Shadowing reports locals that hide another visible local.
type Shadowing struct {
	ignore *regexp.Regexp
}

func NewShadowing(cfg ShadowingConfig) (*Shadowing, error) {
	re, err := compilePattern(cfg.IgnorePattern)
	if err != nil {
		return nil, err
	}
	return &Shadowing{ignore: re}, nil
}

func (*Shadowing) Severity() diag.Severity { return diag.SevWarning }
func (*Shadowing) RuleType() RuleType      { return Style }

func (r *Shadowing) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	table := symbols.Resolve(tree)
	var out []diag.Diagnostic
	for _, sym := range table.Symbols.Data() {
		prev := table.Symbols.Get(sym.Shadows)
		if prev == nil || sym.Kind == symbols.SymbolSelf || prev.Kind == symbols.SymbolSelf {
			continue
		}
		if matches(r.ignore, sym.Name) {
			continue
		}
		out = append(out, diag.New(diag.Shadowing,
			fmt.Sprintf("shadowing variable `%s`", sym.Name),
			diag.At(sym.Span)).
			WithSecondary(diag.LabelAt(prev.Span, "previously defined here")))
	}
	return out
}
