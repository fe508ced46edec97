package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"moonlint/internal/diag"
	"moonlint/internal/source"
)

func sample(t *testing.T) ([]diag.Diagnostic, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("/home/user/project/src/init.lua", []byte("local a = 1\ny = 1\nif (a) then end\n"))
	fs.SetBaseDir("/home/user/project")
	span := func(s, e uint32) source.Span { return source.Span{File: id, Start: s, End: e} }

	diags := []diag.Diagnostic{
		diag.New(diag.UnscopedVariables, "`y` is not declared locally, and will be available in every scope",
			diag.LabelAt(span(12, 13), "global variable defined here")).
			WithSecondary(diag.LabelAt(span(6, 7), "other")).
			WithSeverity(diag.SevWarning),
		diag.New(diag.ParentheseConditions, "lua does not require parentheses around conditions", diag.At(span(21, 24))).
			WithNote("remove them").
			WithFix("remove the parentheses", span(21, 24), "a", "(a)").
			WithSeverity(diag.SevError),
	}
	return diags, fs
}

func TestPrettyLayout(t *testing.T) {
	diags, fs := sample(t)
	var buf bytes.Buffer
	Pretty(&buf, diags[:1], fs, PrettyOpts{PathMode: PathModeRelative, ShowNotes: true})

	want := strings.Join([]string{
		"warning[unscoped_variables]: `y` is not declared locally, and will be available in every scope",
		"  ┌─ src/init.lua:2:1",
		"  │",
		"1 │ local a = 1",
		"  │       - other",
		"2 │ y = 1",
		"  │ ^ global variable defined here",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	diags, fs := sample(t)
	var buf bytes.Buffer
	Pretty(&buf, diags[1:], fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})
	out := buf.String()

	for _, want := range []string{
		"error[parenthese_conditions]",
		"init.lua:3:4",
		"3 │ if (a) then end",
		"  │    ^^^",
		"= remove them",
		"= fix: remove the parentheses",
		"- if (a) then end",
		"+ if a then end",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestPrettyColorToggle(t *testing.T) {
	diags, fs := sample(t)
	var plain, colored bytes.Buffer
	Pretty(&plain, diags, fs, PrettyOpts{})
	Pretty(&colored, diags, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output contains escapes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes")
	}
}

func TestMarkerColumnsWide(t *testing.T) {
	line := "x = \"日本\" .. y"
	// y на байте 16, перед ним два широких символа
	col, width := markerColumns(line, source.LineCol{Line: 1, Col: 17}, source.LineCol{Line: 1, Col: 18})
	if col != 14 || width != 1 {
		t.Fatalf("col=%d width=%d, want 14 and 1", col, width)
	}
	col, width = markerColumns("\tab", source.LineCol{Line: 1, Col: 2}, source.LineCol{Line: 2, Col: 1})
	if col != tabWidth || width != 2 {
		t.Fatalf("col=%d width=%d", col, width)
	}
}

func TestQuiet(t *testing.T) {
	diags, fs := sample(t)
	var buf bytes.Buffer
	Quiet(&buf, diags, fs)
	want := "src/init.lua:2:1: warning[unscoped_variables]: `y` is not declared locally, and will be available in every scope\n" +
		"src/init.lua:3:4: error[parenthese_conditions]: lua does not require parentheses around conditions\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, Counts{Errors: 1, Warnings: 2}, false)
	want := "Results:\n1 errors\n2 warnings\n0 parse errors\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestParseStyle(t *testing.T) {
	for _, name := range []string{"rich", "quiet", "json", "sarif"} {
		st, ok := ParseStyle(name)
		if !ok || st.String() != name {
			t.Errorf("ParseStyle(%q) = %v, %v", name, st, ok)
		}
	}
	if _, ok := ParseStyle("fancy"); ok {
		t.Errorf("unexpected style")
	}
}
