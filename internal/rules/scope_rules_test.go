package rules

import (
	"testing"

	"moonlint/internal/diag"
)

func TestUnscopedVariablesScenario(t *testing.T) {
	rule := mustRule(t)(NewUnscopedVariables(DefaultUnscopedVariablesConfig()))
	diags, tree := run(t, rule, "y = 1\n", loadStd(t, "lua51"))
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %q", messages(diags))
	}
	d := diags[0]
	if d.Code != diag.UnscopedVariables || rule.Severity() != diag.SevWarning {
		t.Fatalf("code %s severity %s", d.Code, rule.Severity())
	}
	if d.Message != "`y` is not declared locally, and will be available in every scope" {
		t.Fatalf("message %q", d.Message)
	}
	if tree.Text(d.Primary.Span) != "y" || d.Primary.Message != "global variable defined here" {
		t.Fatalf("label %+v", d.Primary)
	}

	if diags, _ := run(t, rule, "_y = 1\n", loadStd(t, "lua51")); len(diags) != 0 {
		t.Fatalf("_y must be ignored, got %q", messages(diags))
	}
}

func TestUnscopedVariables(t *testing.T) {
	rule := mustRule(t)(NewUnscopedVariables(DefaultUnscopedVariablesConfig()))
	runCases(t, rule, loadStd(t, "lua51"), []ruleCase{
		{"local", "local x = 1\nx = 2", nil},
		{"function statement", "function helper() end", []string{"`helper` is not declared locally, and will be available in every scope"}},
		{"std global", "print = nil", nil},
		{"member write", "t = {}\nt.x = 1", []string{"`t` is not declared locally, and will be available in every scope"}},
		{"each site", "a = 1\na = 2", []string{
			"`a` is not declared locally, and will be available in every scope",
			"`a` is not declared locally, and will be available in every scope",
		}},
		{"inside function", "local function f() g = 1 end", []string{"`g` is not declared locally, and will be available in every scope"}},
		{"parameter", "local function f(p) p = 1 end", nil},
	})
}

func TestUnscopedVariablesBadPattern(t *testing.T) {
	if _, err := NewUnscopedVariables(UnscopedVariablesConfig{IgnorePattern: "("}); err == nil {
		t.Fatalf("invalid regex must fail construction")
	}
}

func TestShadowing(t *testing.T) {
	rule := mustRule(t)(NewShadowing(DefaultShadowingConfig()))
	runCases(t, rule, nil, []ruleCase{
		{"nested", "local x = 1\ndo local x = 2 end", []string{"shadowing variable `x`"}},
		{"same scope", "local x = 1\nlocal x = 2", []string{"shadowing variable `x`"}},
		{"param", "local x\nlocal function f(x) end", []string{"shadowing variable `x`"}},
		{"siblings", "do local x = 1 end\ndo local x = 2 end", nil},
		{"ignored", "local _ = 1\nlocal _ = 2", nil},
		{"methods", "function a:m() function b:n() end end", nil},
	})

	diags, tree := run(t, rule, "local x = 1\ndo local x = 2 end", nil)
	if len(diags[0].Secondary) != 1 || diags[0].Secondary[0].Message != "previously defined here" {
		t.Fatalf("secondary %+v", diags[0].Secondary)
	}
	if tree.Text(diags[0].Secondary[0].Span) != "x" || diags[0].Secondary[0].Span.Start != 6 {
		t.Fatalf("secondary must point at the first x")
	}
}

func TestUndefinedVariable(t *testing.T) {
	runCases(t, NewUndefinedVariable(), loadStd(t, "lua51"), []ruleCase{
		{"unknown", "print(foo)", []string{"`foo` is not defined"}},
		{"std", "print(math.pi)", nil},
		{"local", "local foo\nprint(foo)", nil},
		{"global written elsewhere", "function later() end\nlater()", nil},
		{"out of scope", "do local inner = 1 end\nprint(inner)", []string{"`inner` is not defined"}},
		{"self outside method", "local function f() return self end", []string{"`self` is not defined"}},
	})
}

func TestUnusedVariable(t *testing.T) {
	rule := mustRule(t)(NewUnusedVariable(DefaultUnusedVariableConfig()))
	runCases(t, rule, nil, []ruleCase{
		{"used", "local x = 1\nprint(x)", nil},
		{"assigned", "local x = 1", []string{"`x` is assigned a value, but never used"}},
		{"defined", "local x", []string{"`x` is defined, but never used"}},
		{"written later", "local x\nx = 2", []string{"`x` is assigned a value, but never used"}},
		{"param", "local function f(a) end\nf()", []string{"`a` is defined, but never used"}},
		{"ignored", "local _unused = 1", nil},
		{"self allowed", "local t = {}\nfunction t:m() end", nil},
		{"loop var", "for i = 1, 2 do end", []string{"`i` is defined, but never used"}},
		{"recursive only", "local function f() f() end", nil},
	})

	strict := mustRule(t)(NewUnusedVariable(UnusedVariableConfig{AllowUnusedSelf: false}))
	runCases(t, strict, nil, []ruleCase{
		{"self reported", "local t = {}\nfunction t:m() end", []string{"`self` is defined, but never used"}},
	})
}

func TestGlobalUsage(t *testing.T) {
	rule := mustRule(t)(NewGlobalUsage(DefaultGlobalUsageConfig()))
	msg := "use of `_G` is not allowed, structure your code in a more idiomatic way"
	runCases(t, rule, nil, []ruleCase{
		{"read", "print(_G.x)", []string{msg}},
		{"write", "_G.x = 1", []string{msg}},
		{"local", "local _G = {}\nprint(_G.x)", nil},
	})

	ignoring := mustRule(t)(NewGlobalUsage(GlobalUsageConfig{IgnorePattern: "^shared_"}))
	runCases(t, ignoring, nil, []ruleCase{
		{"ignored field", "_G.shared_state = 1", nil},
		{"other field", "_G.state = 1", []string{msg}},
	})
}
