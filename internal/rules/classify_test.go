package rules

import (
	"testing"

	"moonlint/internal/stdlib"
)

func classifyLocal(t *testing.T, expr string) (stdlib.ArgumentType, bool) {
	t.Helper()
	tree := parseLua(t, "local v = "+expr)
	local, _ := tree.Stmts.Local(tree.Stmts.Block(tree.Root).Stmts[0])
	return Classify(tree, local.Values[0])
}

func TestClassifyKnown(t *testing.T) {
	tests := []struct {
		expr string
		want stdlib.ArgumentType
	}{
		{"nil", stdlib.Nil},
		{"true", stdlib.Bool},
		{"false", stdlib.Bool},
		{"42", stdlib.Number},
		{"0x10", stdlib.Number},
		{`"s"`, stdlib.String},
		{"[[long]]", stdlib.String},
		{"function() end", stdlib.Func},
		{"{}", stdlib.TableArg},
		{"((1))", stdlib.Number},
		{"#t", stdlib.Number},
		{"-1", stdlib.Number},
		{`-"s"`, stdlib.String},
		{"not x", stdlib.Bool},
		{"x ^ 2", stdlib.Number},
		{"x % 2", stdlib.Number},
		{"x // 2", stdlib.Number},
		{"x & 1", stdlib.Number},
		{"x < 1", stdlib.Bool},
		{"x == nil", stdlib.Bool},
		{`x .. "s"`, stdlib.String},
		{"1 + 2", stdlib.Number},
		{`"a" * 2`, stdlib.String},
	}
	for _, tt := range tests {
		got, ok := classifyLocal(t, tt.expr)
		if !ok || !got.Equal(tt.want) {
			t.Errorf("Classify(%s) = %v, %v; want %v", tt.expr, got, ok, tt.want)
		}
	}
}

func TestClassifyUnknown(t *testing.T) {
	for _, expr := range []string{
		"x",
		"f()",
		"a.b",
		"a[1]",
		"obj:m()",
		"...",
		"x and y",
		"1 or 2",
		"x + y",
		"1 ^ x",
		"-x",
		"(f())",
		"if c then 1 else 2",
	} {
		src := expr
		if expr == "..." {
			src = "(function(...) return ... end)()"
		}
		if got, ok := classifyLocal(t, src); ok {
			t.Errorf("Classify(%s) = %v, want unknown", expr, got)
		}
	}
}

// Арифметика наследует тип левого операнда: `x + 1` остаётся неизвестным,
// а `"a" + 1` считается строкой, хотя в рантайме это число. Известный
// пропуск, а не ошибка.
func TestClassifyArithmeticFollowsLeftOperand(t *testing.T) {
	if _, ok := classifyLocal(t, "x + 1"); ok {
		t.Errorf("x + 1 must stay unknown")
	}
	got, ok := classifyLocal(t, `"10" + 1`)
	if !ok || !got.Equal(stdlib.String) {
		t.Errorf(`"10" + 1 = %v, %v; want string`, got, ok)
	}
}
