package stdlib

import (
	"errors"
	"strings"
	"testing"
)

func sampleLibrary() *StandardLibrary {
	s := New("sample")
	s.Meta.Base = "lua51"
	s.Globals["f"] = Function(
		Arg(Number),
		OptArg(Constant("a", "b")),
		Argument{Type: Display("Instance"), Required: RequiredWith("pass an instance")},
		Argument{Type: Vararg, Required: NotRequired},
	)
	s.Globals["ns"] = Table(map[string]*Field{
		"p":     Property(Full),
		"ro":    Property(ReadOnly),
		"empty": Table(nil),
		"m":     Method(),
	})
	s.Globals["obj"] = StructRef("S")
	s.Meta.Structs["S"] = map[string]*Field{
		InheritKey: StructRef("Base"),
		"Name":     Property(Overridden),
	}
	s.Meta.Structs["Base"] = map[string]*Field{"Id": Property(NewFields)}
	return s
}

func equalFields(t *testing.T, path string, a, b *Field) {
	t.Helper()
	if a.Kind != b.Kind || a.Method != b.Method || a.Writable != b.Writable || a.Struct != b.Struct {
		t.Fatalf("%s: %+v != %+v", path, a, b)
	}
	if len(a.Arguments) != len(b.Arguments) {
		t.Fatalf("%s: argument count %d != %d", path, len(a.Arguments), len(b.Arguments))
	}
	for i := range a.Arguments {
		if !a.Arguments[i].Type.Equal(b.Arguments[i].Type) || a.Arguments[i].Required != b.Arguments[i].Required {
			t.Fatalf("%s: argument %d: %+v != %+v", path, i, a.Arguments[i], b.Arguments[i])
		}
	}
	equalMembers(t, path, a.Table, b.Table)
}

func equalMembers(t *testing.T, path string, a, b map[string]*Field) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("%s: member count %d != %d", path, len(a), len(b))
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			t.Fatalf("%s.%s missing", path, k)
		}
		equalFields(t, path+"."+k, av, bv)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			want := sampleLibrary()
			data, err := want.Marshal(format)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Parse(data, format)
			if err != nil {
				t.Fatalf("parse:\n%s\nerr: %v", data, err)
			}
			if got.Meta.Name != want.Meta.Name || got.Meta.Base != want.Meta.Base {
				t.Fatalf("meta mismatch: %+v", got.Meta)
			}
			equalMembers(t, "globals", got.Globals, want.Globals)
			if len(got.Meta.Structs) != len(want.Meta.Structs) {
				t.Fatalf("struct count mismatch")
			}
			for name := range want.Meta.Structs {
				equalMembers(t, name, got.Meta.Structs[name], want.Meta.Structs[name])
			}
		})
	}
}

func TestConvertBuiltinBetweenFormats(t *testing.T) {
	lib, err := Loader{}.LoadRaw("roblox")
	if err != nil {
		t.Fatal(err)
	}
	data, err := lib.Marshal(FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseTOML(data)
	if err != nil {
		t.Fatal(err)
	}
	equalMembers(t, "globals", back.Globals, lib.Globals)
}

func TestParseTOMLDocument(t *testing.T) {
	doc := `
[meta]
name = "x"

[globals.math.ceil]
args = [{ type = "number" }]

[[globals.print.args]]
type = "..."
required = false

[globals.io.open]
args = [{ type = "string" }, { type = ["r", "w"], required = false }]
`
	lib, err := ParseTOML([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	print, ok := lib.FindGlobal([]string{"print"})
	if !ok || len(print.Arguments) != 1 || print.Arguments[0].Type.Kind != TypeVararg || print.Arguments[0].Required.Required {
		t.Fatalf("bad print %+v", print)
	}
	open, _ := lib.FindGlobal([]string{"io", "open"})
	if open.Arguments[1].Type.Kind != TypeConstant || !open.Arguments[1].Type.Allows("w") {
		t.Fatalf("bad io.open %+v", open)
	}
	ceil, _ := lib.FindGlobal([]string{"math", "ceil"})
	if !ceil.Arguments[0].Required.Required {
		t.Fatalf("arguments default to required")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{"[globals.f]\nargs = [{ type = \"integer\" }]", "unknown type"},
		{"[globals.f]\nargs = [{ type = \"number\", required = true }]", "expected false or a message"},
		{"[globals.p]\nproperty = true\nwritable = \"sometimes\"", "writable"},
		{"[globals]\nx = 1", "expected a table"},
		{"[other]\nx = 1", "unknown top-level key"},
	}
	for _, tt := range tests {
		_, err := ParseTOML([]byte(tt.doc))
		if !errors.Is(err, ErrMalformed) || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%q: err = %v, want %q", tt.doc, err, tt.want)
		}
	}
	if _, err := ParseYAML([]byte("globals: [1, 2]")); !errors.Is(err, ErrMalformed) {
		t.Errorf("yaml list globals: err = %v", err)
	}
}
