package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"moonlint/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     Code
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics one per line as
// "path:line:col: severity[code]: message", sorted by position.
// Notes are appended as extra "note" lines when includeNotes is set.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = appendShort(rendered, d, fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		return di.Column < dj.Column
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s:%d:%d: %s[%s]: %s", d.Path, d.Line, d.Column, d.Severity, d.Code, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendShort(out []shortDiagnostic, d Diagnostic, fs *source.FileSet, includeNotes bool) []shortDiagnostic {
	file := fs.Get(d.Primary.Span.File)
	if file == nil {
		return out
	}
	start, _ := fs.Resolve(d.Primary.Span)
	path := trimDot(file.FormatPath("relative", fs.BaseDir()))
	out = append(out, shortDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code,
		Path:     path,
		Line:     start.Line,
		Column:   start.Col,
		Message:  sanitizeMessage(d.Message),
	})
	if includeNotes {
		for _, note := range d.Notes {
			out = append(out, shortDiagnostic{
				Severity: "note",
				Code:     d.Code,
				Path:     path,
				Line:     start.Line,
				Column:   start.Col,
				Message:  sanitizeMessage(note),
			})
		}
	}
	return out
}

func trimDot(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
