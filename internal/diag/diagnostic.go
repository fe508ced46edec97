package diag

import (
	"moonlint/internal/source"
)

// Label points at a byte range of the analysed source.
// An empty Message means the label carries no text.
type Label struct {
	Span    source.Span
	Message string
}

// Diagnostic is a single finding produced by a rule.
type Diagnostic struct {
	Code      Code
	Message   string
	Severity  Severity
	Primary   Label
	Secondary []Label
	Notes     []string
	Fixes     []Fix
}

// Start returns the primary byte offset, used for ordering.
func (d Diagnostic) Start() uint32 {
	return d.Primary.Span.Start
}

// File returns the file the primary label points into.
func (d Diagnostic) File() source.FileID {
	return d.Primary.Span.File
}
