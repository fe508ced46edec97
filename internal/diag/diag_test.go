package diag

import (
	"testing"

	"moonlint/internal/source"
)

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(New(UnusedVariable, "b", At(source.Span{File: 0, Start: 10, End: 11})).WithSeverity(SevWarning))
	b.Add(New(UndefinedVariable, "a", At(source.Span{File: 0, Start: 2, End: 3})).WithSeverity(SevError))
	b.Add(New(UnusedVariable, "b", At(source.Span{File: 0, Start: 10, End: 11})).WithSeverity(SevWarning))
	b.Add(New(Shadowing, "c", At(source.Span{File: 0, Start: 2, End: 3})).WithSeverity(SevWarning))

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup left %d items, want 3", b.Len())
	}
	b.Sort()
	got := []Code{}
	for _, d := range b.Items() {
		got = append(got, d.Code)
	}
	want := []Code{UndefinedVariable, Shadowing, UnusedVariable}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if !b.HasErrors() || b.Count(SevWarning) != 2 {
		t.Errorf("HasErrors=%v warnings=%d", b.HasErrors(), b.Count(SevWarning))
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(Diagnostic{}) {
		t.Fatal("first Add must succeed")
	}
	if b.Add(Diagnostic{}) {
		t.Fatal("second Add must hit the limit")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 1, Start: 0, End: 4}
	ReportError(r, ParseError, sp, "unexpected symbol").Emit()
	ReportError(r, ParseError, sp, "unexpected symbol").WithNote("ignored").Emit()
	ReportError(r, ParseError, sp, "missing `end`").Emit()
	if bag.Len() != 2 {
		t.Fatalf("bag has %d diagnostics, want 2", bag.Len())
	}
}

func TestWithNoteSkipsEmpty(t *testing.T) {
	d := New(RobloxSuspiciousUDim2New, "m", At(source.Span{})).WithNote("").WithNote("hint")
	if len(d.Notes) != 1 || d.Notes[0] != "hint" {
		t.Fatalf("notes = %q", d.Notes)
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	id := fs.Add("/workspace/src/init.lua", []byte("x = 1\nprint(y)\n"), 0)

	diags := []Diagnostic{
		New(UndefinedVariable, "`y` is not defined", At(source.Span{File: id, Start: 12, End: 13})).WithSeverity(SevError),
		New(UnscopedVariables, "`x` is not declared locally,\nand will be available in every scope", At(source.Span{File: id, Start: 0, End: 1})).
			WithSeverity(SevWarning).WithNote("hint"),
	}
	want := "src/init.lua:1:1: warning[unscoped_variables]: `x` is not declared locally, and will be available in every scope\n" +
		"src/init.lua:1:1: note[unscoped_variables]: hint\n" +
		"src/init.lua:2:7: error[undefined_variable]: `y` is not defined"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}
