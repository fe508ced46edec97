package rules

import (
	"strings"
	"testing"

	"moonlint/internal/diag"
	"moonlint/internal/stdlib"
)

func mathCeilLibrary() *stdlib.StandardLibrary {
	lib := stdlib.New("test")
	lib.Globals["math"] = stdlib.Table(map[string]*stdlib.Field{
		"ceil": stdlib.Function(stdlib.Arg(stdlib.Number)),
	})
	return lib
}

func TestStandardLibraryCallScenario(t *testing.T) {
	rule := NewStandardLibraryUse()
	diags, tree := run(t, rule, `math.ceil("x")`, mathCeilLibrary())
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %q", messages(diags))
	}
	d := diags[0]
	if d.Code != diag.StandardLibraryTypes || rule.Severity() != diag.SevError {
		t.Fatalf("unexpected code %s / severity %s", d.Code, rule.Severity())
	}
	if !strings.Contains(d.Message, "expected `number`, received `string`") {
		t.Fatalf("message %q", d.Message)
	}
	if got := tree.Text(d.Primary.Span); got != `"x"` {
		t.Fatalf("label covers %q, want the string literal", got)
	}

	if diags, _ := run(t, rule, `math.ceil(5)`, mathCeilLibrary()); len(diags) != 0 {
		t.Fatalf("math.ceil(5): unexpected %q", messages(diags))
	}
	diags, _ = run(t, rule, `math.ceil(1, g())`, mathCeilLibrary())
	if got := messages(diags); len(got) != 1 || got[0] != "standard library function `math.ceil` requires 1 parameters, 2 passed" {
		t.Fatalf("math.ceil(1, g()): got %q", got)
	}
}

func TestStandardLibraryVararg(t *testing.T) {
	lib := stdlib.New("test")
	lib.Globals["f"] = stdlib.Function(
		stdlib.Arg(stdlib.Number),
		stdlib.Arg(stdlib.Number),
		stdlib.Argument{Type: stdlib.Vararg, Required: stdlib.RequiredWith("pass more values")},
	)
	rule := NewStandardLibraryUse()

	diags, _ := run(t, rule, "f(1, 2)", lib)
	if len(diags) != 1 || diags[0].Message != "standard library function `f` requires use of the vararg" {
		t.Fatalf("f(1, 2): got %q", messages(diags))
	}
	if len(diags[0].Notes) != 1 || diags[0].Notes[0] != "pass more values" {
		t.Fatalf("note = %q", diags[0].Notes)
	}
	for _, src := range []string{"f(1, 2, 3)", "f(1, 2, 3, 4, 5)"} {
		if diags, _ := run(t, rule, src, lib); len(diags) != 0 {
			t.Errorf("%s: unexpected %q", src, messages(diags))
		}
	}

	// call and vararg tails count as one written argument
	const want = "standard library function `f` requires use of the vararg"
	for _, src := range []string{"f(1, g())", "local function h(...) f(1, ...) end"} {
		diags, _ := run(t, rule, src, lib)
		got := messages(diags)
		if len(got) != 1 || got[0] != want {
			t.Errorf("%s: got %q", src, got)
		}
	}
	if diags, _ := run(t, rule, "f(1, 2, g())", lib); len(diags) != 0 {
		t.Errorf("f(1, 2, g()): unexpected %q", messages(diags))
	}
}

func TestStandardLibraryDisplayTypes(t *testing.T) {
	runCases(t, NewStandardLibraryUse(), loadStd(t, "roblox"), []ruleCase{
		{"unknown value", `Instance.new("Part", workspace)`, nil},
		{"omitted", `Instance.new("Part")`, nil},
		{"number", `Instance.new("Part", 5)`, []string{"expected `Instance`, received `number`"}},
		{"nil", `Instance.new("Part", nil)`, []string{"expected `Instance`, received `nil`"}},
	})
}

func TestStandardLibraryLua51(t *testing.T) {
	runCases(t, NewStandardLibraryUse(), loadStd(t, "lua51"), []ruleCase{
		{"ok", `print(math.floor(1.5), string.format("%d", 1))`, nil},
		{"too many", `math.floor(1, 2)`, []string{"standard library function `math.floor` requires 1 parameters, 2 passed"}},
		{"too few", `math.floor()`, []string{"standard library function `math.floor` requires 1 parameters, 0 passed"}},
		{"optional omitted", `collectgarbage()`, nil},
		{"max vararg", `math.max()`, []string{
			"standard library function `math.max` requires use of the vararg",
			"standard library function `math.max` requires 1 parameters, 0 passed",
		}},
		{"multi value tail", `math.floor(f())`, nil},
		{"multi value counts once", `math.floor(1, f())`, []string{"standard library function `math.floor` requires 1 parameters, 2 passed"}},
		{"multi value too many", `math.floor(1, 2, f())`, []string{"standard library function `math.floor` requires 1 parameters, 3 passed"}},
		{"local shadows", "local math = {}\nmath.floor(\"x\")", nil},
		{"unknown global", `foo.bar("x")`, nil},
		{"type mismatch", `math.floor(true)`, []string{"expected `number`, received `bool`"}},
		{"any accepted", `tostring({})`, nil},
		{"nil for optional", `math.random(nil)`, []string{"expected `number`, received `nil`"}},
		{"constant ok", `collectgarbage("count")`, nil},
		{"constant bad", `collectgarbage("nope")`, []string{"expected `" + constantsOf(t, "collectgarbage") + "`, received `\"nope\"`"}},
		{"constant number", `collectgarbage(1)`, []string{"expected `" + constantsOf(t, "collectgarbage") + "`, received `number`"}},
		{"method call skipped", `("x"):rep(1, 2, 3)`, nil},
		{"string call", `math.floor "x"`, []string{"expected `number`, received `string`"}},
		{"table call", `math.floor {}`, []string{"expected `number`, received `table`"}},
	})
}

func constantsOf(t *testing.T, name string) string {
	t.Helper()
	field, ok := loadStd(t, "lua51").FindGlobal([]string{name})
	if !ok {
		t.Fatalf("%s missing", name)
	}
	return field.Arguments[0].Type.String()
}

func TestStandardLibraryConstantNormalisation(t *testing.T) {
	lib := stdlib.New("test")
	lib.Globals["pick"] = stdlib.Function(stdlib.Arg(stdlib.Constant("caf\u00e9")))
	if diags, _ := run(t, NewStandardLibraryUse(), "pick(\"cafe\u0301\")", lib); len(diags) != 0 {
		t.Fatalf("NFC-equal constant rejected: %q", messages(diags))
	}
}

func TestStandardLibraryWrites(t *testing.T) {
	lib := stdlib.New("test")
	lib.Globals["game"] = stdlib.Table(map[string]*stdlib.Field{
		"Name":    stdlib.Property(stdlib.Overridden),
		"PlaceId": stdlib.Property(stdlib.ReadOnly),
		"Shared":  stdlib.Property(stdlib.NewFields),
	})
	runCases(t, NewStandardLibraryUse(), lib, []ruleCase{
		{"overridable", `game.Name = "x"`, nil},
		{"read only", `game.PlaceId = 1`, []string{"standard library global `game.PlaceId` is not writable"}},
		{"new field ok", `game.Shared.x = 1`, nil},
		{"new field denied", `game.PlaceId.x = 1`, []string{"standard library global `game.PlaceId.x` is not writable"}},
		{"local", "local game = {}\ngame.PlaceId = 1", nil},
	})
}

func TestStandardLibraryNonFunctionCallPanics(t *testing.T) {
	lib := stdlib.New("test")
	lib.Globals["value"] = stdlib.Property(stdlib.ReadOnly)
	defer func() {
		if recover() == nil {
			t.Fatalf("calling a property must panic")
		}
	}()
	run(t, NewStandardLibraryUse(), "value()", lib)
}

func TestStandardLibraryMethodWithExplicitSelf(t *testing.T) {
	lib := loadStd(t, "roblox")
	runCases(t, NewStandardLibraryUse(), lib, []ruleCase{
		{"explicit self", `game.GetService(game, "Players")`, nil},
		{"explicit self wrong type", `game.GetService(game, 1)`, []string{"expected `string`, received `number`"}},
	})
}
