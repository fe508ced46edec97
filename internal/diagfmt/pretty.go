package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"moonlint/internal/diag"
	"moonlint/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, note, gutter, secondary, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:       color.New(color.FgRed, color.Bold),
		warn:      color.New(color.FgYellow, color.Bold),
		note:      color.New(color.FgCyan, color.Bold),
		gutter:    color.New(color.FgBlue, color.Bold),
		secondary: color.New(color.FgBlue),
		bold:      color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.note, p.gutter, p.secondary, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	if sev == diag.SevError {
		return p.err
	}
	return p.warn
}

type marker struct {
	span    source.Span
	message string
	primary bool
}

// Pretty renders diagnostics with source excerpts:
//
//	warning[unscoped_variables]: `y` is not declared locally, ...
//	  ┌─ init.lua:1:1
//	  │
//	1 │ y = 1
//	  │ ^ global variable defined here
//
// Diagnostics are printed in the given order; callers sort them first.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sevColor := p.severity(d.Severity)
	fmt.Fprintf(w, "%s%s\n", sevColor.Sprintf("%s[%s]", d.Severity, d.Code), p.bold.Sprint(": "+d.Message))

	file := fs.Get(d.Primary.Span.File)
	if file == nil {
		return
	}
	markers := []marker{{span: d.Primary.Span, message: d.Primary.Message, primary: true}}
	for _, l := range d.Secondary {
		if l.Span.File == d.Primary.Span.File {
			markers = append(markers, marker{span: l.Span, message: l.Message})
		}
	}

	type located struct {
		marker
		start, end source.LineCol
	}
	byLine := make(map[uint32][]located)
	var lines []uint32
	maxLine := uint32(0)
	for _, m := range markers {
		start, end := fs.Resolve(m.span)
		if _, seen := byLine[start.Line]; !seen {
			lines = append(lines, start.Line)
		}
		byLine[start.Line] = append(byLine[start.Line], located{m, start, end})
		maxLine = max(maxLine, start.Line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })

	gutterWidth := len(strconv.FormatUint(uint64(maxLine), 10))
	pad := strings.Repeat(" ", gutterWidth)
	bar := p.gutter.Sprint("│")

	primaryStart, _ := fs.Resolve(d.Primary.Span)
	fmt.Fprintf(w, "%s %s %s:%d:%d\n", pad, p.gutter.Sprint("┌─"),
		file.FormatPath(formatPath(opts.PathMode), fs.BaseDir()), primaryStart.Line, primaryStart.Col)
	fmt.Fprintf(w, "%s %s\n", pad, bar)

	for i, line := range lines {
		if i > 0 && line > lines[i-1]+1 {
			fmt.Fprintf(w, "%s %s\n", pad, p.gutter.Sprint("·"))
		}
		text := file.GetLine(line)
		fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprintf("%*d", gutterWidth, line), bar, expandTabs(text))

		group := byLine[line]
		sort.SliceStable(group, func(a, b int) bool { return group[a].start.Col < group[b].start.Col })
		for _, m := range group {
			col, width := markerColumns(text, m.start, m.end)
			ch, c := "-", p.secondary
			if m.primary {
				ch, c = "^", sevColor
			}
			underline := strings.Repeat(" ", col) + strings.Repeat(ch, width)
			if m.message != "" {
				underline += " " + m.message
			}
			fmt.Fprintf(w, "%s %s %s\n", pad, bar, c.Sprint(underline))
		}
	}

	if opts.ShowNotes && len(d.Notes) > 0 {
		fmt.Fprintf(w, "%s %s\n", pad, bar)
		for _, note := range d.Notes {
			fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("="), note)
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			fmt.Fprintf(w, "%s %s %s%s\n", pad, p.gutter.Sprint("="), p.note.Sprint("fix: "), f.Title)
			for _, edit := range f.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, l := range preview.before {
					fmt.Fprintf(w, "%s   %s\n", pad, p.err.Sprint("- "+expandTabs(l)))
				}
				for _, l := range preview.after {
					fmt.Fprintf(w, "%s   %s\n", pad, p.note.Sprint("+ "+expandTabs(l)))
				}
			}
		}
	}
}

// markerColumns converts a byte range on one line into a display column and
// width. Spans running past the line are cut at its end.
func markerColumns(line string, start, end source.LineCol) (col, width int) {
	from := min(int(start.Col)-1, len(line))
	from = max(from, 0)
	to := len(line)
	if end.Line == start.Line {
		to = min(max(int(end.Col)-1, from), len(line))
	}
	col = displayWidth(line[:from])
	width = max(displayWidth(line[from:to]), 1)
	return col, width
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

// Quiet prints one line per diagnostic: path:line:col: severity[code]: message.
func Quiet(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet) {
	out := diag.FormatShortDiagnostics(diags, fs, false)
	if out != "" {
		fmt.Fprintln(w, out)
	}
}

// Counts feed the closing summary.
type Counts struct {
	Errors      int
	Warnings    int
	ParseErrors int
}

// Summary prints the totals block shown after a check.
func Summary(w io.Writer, c Counts, useColor bool) {
	p := newPalette(useColor)
	fmt.Fprintln(w, p.bold.Sprint("Results:"))
	fmt.Fprintln(w, p.err.Sprintf("%d errors", c.Errors))
	fmt.Fprintln(w, p.warn.Sprintf("%d warnings", c.Warnings))
	fmt.Fprintln(w, p.err.Sprintf("%d parse errors", c.ParseErrors))
}
