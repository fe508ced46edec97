package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"moonlint/internal/diag"
	"moonlint/internal/parser"
	"moonlint/internal/rules"
	"moonlint/internal/source"
)

func loadFile(t *testing.T, content string) (*source.FileSet, *source.File) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.lua")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return fs, fs.Get(id)
}

func TestApplyParentheseConditions(t *testing.T) {
	src := "if (a and b) then end\nwhile (x) do end\n"
	fs, file := loadFile(t, src)
	parsed := parser.ParseFile(file, parser.Options{})
	if parsed.Bag.HasErrors() {
		t.Fatalf("parse errors: %v", parsed.Bag.Items())
	}
	diags := rules.NewParentheseConditions().Pass(parsed.Tree, &rules.Context{})
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}

	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 {
		t.Fatalf("applied = %d, want 2 (skipped %v)", len(res.Applied), res.Skipped)
	}
	got, err := os.ReadFile(file.Path)
	if err != nil {
		t.Fatal(err)
	}
	want := "if a and b then end\nwhile x do end\n"
	if string(got) != want {
		t.Fatalf("file = %q, want %q", got, want)
	}
	if len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != 2 {
		t.Fatalf("unexpected file changes %+v", res.FileChanges)
	}
	if rest := res.Remaining(diags); len(rest) != 0 {
		t.Fatalf("remaining = %+v, want none", rest)
	}
}

func TestApplyDryRunLeavesFile(t *testing.T) {
	src := "if (x) then end\n"
	fs, file := loadFile(t, src)
	span := source.Span{File: file.ID, Start: 3, End: 6}
	d := diag.New(diag.ParentheseConditions, "m", diag.At(span)).WithFix("remove parentheses", span, "x", "(x)")

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if string(res.FileChanges[0].Content) != "if x then end\n" {
		t.Fatalf("content = %q", res.FileChanges[0].Content)
	}
	got, _ := os.ReadFile(file.Path)
	if string(got) != src {
		t.Fatalf("dry run modified the file: %q", got)
	}
}

func TestApplySkips(t *testing.T) {
	fs, file := loadFile(t, "if (x) then end\n")
	span := source.Span{File: file.ID, Start: 3, End: 6}
	inner := source.Span{File: file.ID, Start: 4, End: 5}

	tests := []struct {
		name   string
		diags  []diag.Diagnostic
		reason string
	}{
		{
			name:   "stale old text",
			diags:  []diag.Diagnostic{diag.New(diag.ParentheseConditions, "m", diag.At(span)).WithFix("t", span, "x", "(y)")},
			reason: "existing text does not match expected content",
		},
		{
			name: "overlap",
			diags: []diag.Diagnostic{
				diag.New(diag.ParentheseConditions, "m", diag.At(span)).WithFix("t", span, "x", "(x)"),
				diag.New(diag.CompareNan, "m", diag.At(inner)).WithFix("t", inner, "y", "x"),
			},
			reason: "conflicts with a previously applied edit in " + file.Path,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Apply(fs, tt.diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
			if len(tt.diags) == 1 && !errors.Is(err, ErrNoFixes) {
				t.Fatalf("err = %v, want ErrNoFixes", err)
			}
			found := false
			for _, s := range res.Skipped {
				if s.Reason == tt.reason {
					found = true
				}
			}
			if !found {
				t.Fatalf("skipped = %+v, want reason %q", res.Skipped, tt.reason)
			}
		})
	}
}

func TestApplyVirtualFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.lua", []byte("if (x) then end"))
	span := source.Span{File: id, Start: 3, End: 6}
	d := diag.New(diag.ParentheseConditions, "m", diag.At(span)).WithFix("t", span, "x", "(x)")

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "target file is virtual" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	span := source.Span{File: 1}
	diagnostics := []diag.Diagnostic{{
		Code:    diag.ParentheseConditions,
		Primary: diag.At(span),
		Fixes: []diag.Fix{
			{ID: "fix-duplicate", Title: "first", Edits: []diag.TextEdit{{Span: span, NewText: "x"}}},
			{ID: "fix-duplicate", Title: "second", Edits: []diag.TextEdit{{Span: span, NewText: "x"}}},
			{Title: "empty"},
		},
	}}

	candidates, skips := gatherCandidates(diagnostics)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 2 {
		t.Fatalf("expected 2 skips, got %+v", skips)
	}
	if skips[0].Reason != "duplicate fix id" || skips[1].Reason != "fix has no edits" {
		t.Fatalf("unexpected reasons %+v", skips)
	}
}

func TestSelectByID(t *testing.T) {
	span := source.Span{File: 1}
	diagnostics := []diag.Diagnostic{{
		Code:    diag.CompareNan,
		Primary: diag.At(span),
		Fixes: []diag.Fix{
			{ID: "a", Edits: []diag.TextEdit{{Span: span}}},
			{ID: "b", Edits: []diag.TextEdit{{Span: span}}},
		},
	}}
	cands, _ := gatherCandidates(diagnostics)
	sel, _ := selectCandidates(cands, ApplyOptions{Mode: ApplyModeID, TargetID: "b"})
	if len(sel) != 1 || sel[0].fix.ID != "b" {
		t.Fatalf("selected %+v", sel)
	}
	if _, skipped := selectCandidates(cands, ApplyOptions{Mode: ApplyModeID, TargetID: "zzz"}); len(skipped) != 1 {
		t.Fatalf("expected a skip for a missing id")
	}
}

func TestSpansConflict(t *testing.T) {
	sp := func(s, e uint32) source.Span { return source.Span{Start: s, End: e} }
	tests := []struct {
		a, b source.Span
		want bool
	}{
		{sp(0, 3), sp(3, 5), false},
		{sp(0, 3), sp(2, 5), true},
		{sp(2, 2), sp(2, 2), false},
		{sp(2, 2), sp(0, 5), true},
		{sp(0, 5), sp(5, 5), false},
	}
	for _, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Errorf("spansConflict(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
