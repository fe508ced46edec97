package rules

import (
	"regexp"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/stdlib"
)

// Rule is one independent analysis. Pass must not mutate the tree or the
// context and must accept any tree the parser produces.
type Rule interface {
	Pass(tree *ast.Tree, ctx *Context) []diag.Diagnostic
	Severity() diag.Severity
	RuleType() RuleType
}

// RuleType is informational only.
type RuleType uint8

const (
	// Complexity: something simple done in a complex way.
	Complexity RuleType = iota
	// Correctness: outright wrong or useless code.
	Correctness
	// Performance: code that can be written faster.
	Performance
	// Style: code that should be written more idiomatically.
	Style
)

func (t RuleType) String() string {
	switch t {
	case Complexity:
		return "complexity"
	case Correctness:
		return "correctness"
	case Performance:
		return "performance"
	case Style:
		return "style"
	default:
		return "unknown"
	}
}

// Context is shared by every rule of one checker.
type Context struct {
	StandardLibrary *stdlib.StandardLibrary
}

// IsRoblox reports whether the roblox library is in use.
func (c *Context) IsRoblox() bool {
	return c != nil && c.StandardLibrary.Name() == "roblox"
}

// IsStdGlobal reports whether name is a top-level standard library global.
func (c *Context) IsStdGlobal(name string) bool {
	if c == nil || c.StandardLibrary == nil {
		return false
	}
	_, ok := c.StandardLibrary.Globals[name]
	return ok
}

// compilePattern compiles an ignore_pattern; empty matches nothing.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}

func matches(re *regexp.Regexp, name string) bool {
	return re != nil && re.MatchString(name)
}
