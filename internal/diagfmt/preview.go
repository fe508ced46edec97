package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"moonlint/internal/diag"
	"moonlint/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview returns the whole lines touched by edit, before and
// after it is applied.
func buildFixEditPreview(fs *source.FileSet, edit diag.TextEdit) (fixEditPreview, error) {
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fixEditPreview{}, fmt.Errorf("file too large: %w", err)
	}
	if edit.Span.End > size || edit.Span.Start > edit.Span.End {
		return fixEditPreview{}, fmt.Errorf("edit span %s out of range", edit.Span)
	}

	start, end := fs.Resolve(edit.Span)
	from := lineStart(file, start.Line)
	to := lineEnd(file, max(end.Line, start.Line), size)

	original := string(file.Content[from:to])
	relStart := edit.Span.Start - from
	relEnd := edit.Span.End - from
	after := original[:relStart] + edit.NewText + original[relEnd:]

	return fixEditPreview{
		before: strings.Split(original, "\n"),
		after:  strings.Split(after, "\n"),
	}, nil
}

// lineStart returns the offset of the first byte of a 1-based line.
func lineStart(f *source.File, line uint32) uint32 {
	if line <= 1 || int(line-2) >= len(f.LineIdx) {
		return 0
	}
	return f.LineIdx[line-2] + 1
}

// lineEnd returns the offset of the newline ending line, or size for the last line.
func lineEnd(f *source.File, line, size uint32) uint32 {
	if line == 0 || int(line-1) >= len(f.LineIdx) {
		return size
	}
	return f.LineIdx[line-1]
}
