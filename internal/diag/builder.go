package diag

import "moonlint/internal/source"

// New builds a diagnostic anchored on primary. Severity is left as SevAllow;
// the checker stamps the effective one.
func New(code Code, msg string, primary Label) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: msg,
		Primary: primary,
	}
}

// At is a shortcut for a label without a message.
func At(span source.Span) Label {
	return Label{Span: span}
}

// LabelAt returns a label with text.
func LabelAt(span source.Span, msg string) Label {
	return Label{Span: span, Message: msg}
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	if msg == "" {
		return d
	}
	d.Notes = append(d.Notes, msg)
	return d
}

func (d Diagnostic) WithSecondary(labels ...Label) Diagnostic {
	d.Secondary = append(d.Secondary, labels...)
	return d
}

func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}

// WithFix appends a fix with a single replacement edit.
func (d Diagnostic) WithFix(title string, span source.Span, newText, oldText string) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{
		Title:         title,
		Applicability: FixApplicabilityAlwaysSafe,
		Edits:         []TextEdit{{Span: span, NewText: newText, OldText: oldText}},
	})
	return d
}
