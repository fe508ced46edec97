// Package fix applies the machine-applicable edits attached to diagnostics.
package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"moonlint/internal/diag"
	"moonlint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines which fixes are selected.
type ApplyMode uint8

const (
	// ApplyModeAll applies every always-safe fix that does not overlap an earlier one.
	ApplyModeAll ApplyMode = iota
	// ApplyModeOnce applies the first fix, preferring always-safe ones.
	ApplyModeOnce
	// ApplyModeID applies the fix with ApplyOptions.TargetID.
	ApplyModeID
)

// ApplyOptions configures selection and output.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun keeps files untouched; the new contents are in FileChange.Content.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID        string
	Title     string
	Code      diag.Code
	Span      source.Span // primary span of the diagnostic
	Path      string
	EditCount int
}

// SkippedFix is a fix that was not applied, with the reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises one rewritten file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

// ApplyResult aggregates applied fixes, skipped ones and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply selects fixes from diagnostics according to opts and rewrites the
// affected files. Edits whose OldText no longer matches are skipped.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, errors.New("fix: FileSet is nil")
	}

	candidates, skips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, skips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, skips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	buffers, err := applyCandidates(fs, selected, result)
	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	ids := make([]source.FileID, 0, len(buffers))
	for id := range buffers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		buf := buffers[id]
		file := fs.Get(id)
		if !opts.DryRun {
			if err := writeFile(file.Path, buf.content); err != nil {
				return result, err
			}
		}
		result.FileChanges = append(result.FileChanges, FileChange{
			Path:      file.Path,
			EditCount: len(buf.applied),
			Content:   buf.content,
		})
	}
	return result, nil
}

// gatherCandidates flattens diagnostics into fixes. A fix without edits or
// with an already seen ID is skipped; a missing ID is derived from the code
// and position.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var cands []candidate
	var skips []SkippedFix
	seen := make(map[string]bool)

	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.Span.File, d.Primary.Span.Start, idx)
			}
			if seen[f.ID] {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = true
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands, skips
}

// sortCandidates orders by file, primary start and end, then insertion order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := candidates[i].diag.Primary.Span, candidates[j].diag.Primary.Span
		if si.File != sj.File {
			return si.File < sj.File
		}
		if si.Start != sj.Start {
			return si.Start < sj.Start
		}
		if si.End != sj.End {
			return si.End < sj.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		var selected []candidate
		var skipped []SkippedFix
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: "applicability is " + cand.fix.Applicability.String(),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return []candidate{cand}, nil
			}
		}
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

type fileBuffer struct {
	content []byte
	applied []diag.TextEdit // в координатах исходного файла, по возрастанию Start
}

// applyCandidates stages every fix atomically: either all of its edits land
// or none do.
func applyCandidates(fs *source.FileSet, selected []candidate, result *ApplyResult) (map[source.FileID]*fileBuffer, error) {
	buffers := make(map[source.FileID]*fileBuffer)

	for _, cand := range selected {
		staged, reason := stage(fs, buffers, cand.fix.Edits)
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{ID: cand.fix.ID, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for id, buf := range staged {
			buffers[id] = buf
		}
		path := ""
		if file := fs.Get(cand.diag.Primary.Span.File); file != nil {
			path = file.Path
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:        cand.fix.ID,
			Title:     cand.fix.Title,
			Code:      cand.diag.Code,
			Span:      cand.diag.Primary.Span,
			Path:      path,
			EditCount: len(cand.fix.Edits),
		})
	}
	return buffers, nil
}

func stage(fs *source.FileSet, buffers map[source.FileID]*fileBuffer, edits []diag.TextEdit) (map[source.FileID]*fileBuffer, string) {
	byFile := make(map[source.FileID][]diag.TextEdit)
	for _, e := range edits {
		byFile[e.Span.File] = append(byFile[e.Span.File], e)
	}

	staged := make(map[source.FileID]*fileBuffer, len(byFile))
	for id, fileEdits := range byFile {
		file := fs.Get(id)
		if file == nil {
			return nil, "unknown file"
		}
		if file.Flags&source.FileVirtual != 0 {
			return nil, "target file is virtual"
		}
		prev := buffers[id]
		if prev == nil {
			prev = &fileBuffer{content: file.Content}
		}
		for _, e := range fileEdits {
			for _, done := range prev.applied {
				if spansConflict(done.Span, e.Span) {
					return nil, "conflicts with a previously applied edit in " + file.Path
				}
			}
		}

		// с конца, чтобы смещения ещё не применённых правок не поехали
		sort.SliceStable(fileEdits, func(i, j int) bool {
			return fileEdits[i].Span.Start > fileEdits[j].Span.Start
		})
		working := append([]byte(nil), prev.content...)
		applied := append([]diag.TextEdit(nil), prev.applied...)
		for _, e := range fileEdits {
			start := int(e.Span.Start) + shift(applied, e.Span.Start)
			end := int(e.Span.End) + shift(applied, e.Span.End)
			if start < 0 || end < start || end > len(working) {
				return nil, "edit span out of range"
			}
			if e.OldText != "" && string(working[start:end]) != e.OldText {
				return nil, "existing text does not match expected content"
			}
			tail := append([]byte(nil), working[end:]...)
			working = append(append(working[:start], e.NewText...), tail...)
			applied = insertSorted(applied, e)
		}
		staged[id] = &fileBuffer{content: working, applied: applied}
	}
	return staged, ""
}

// spansConflict reports whether two half-open spans overlap. Two insertions
// never conflict; an insertion conflicts with a span strictly containing it.
func spansConflict(a, b source.Span) bool {
	switch {
	case a.Empty() && b.Empty():
		return false
	case a.Empty():
		return b.Start < a.Start && a.Start < b.End
	case b.Empty():
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// shift returns how far offset pos of the original file moved after edits.
func shift(applied []diag.TextEdit, pos uint32) int {
	delta := 0
	for _, e := range applied {
		if e.Span.End > pos {
			break
		}
		delta += len(e.NewText) - int(e.Span.Len())
	}
	return delta
}

func insertSorted(edits []diag.TextEdit, edit diag.TextEdit) []diag.TextEdit {
	i := sort.Search(len(edits), func(i int) bool { return edits[i].Span.Start > edit.Span.Start })
	edits = append(edits, diag.TextEdit{})
	copy(edits[i+1:], edits[i:])
	edits[i] = edit
	return edits
}

// Remaining drops the diagnostics whose fix was applied.
func (r *ApplyResult) Remaining(diagnostics []diag.Diagnostic) []diag.Diagnostic {
	type key struct {
		code diag.Code
		span source.Span
	}
	fixed := make(map[key]bool, len(r.Applied))
	for _, a := range r.Applied {
		fixed[key{a.Code, a.Span}] = true
	}
	out := make([]diag.Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		if !fixed[key{d.Code, d.Primary.Span}] {
			out = append(out, d)
		}
	}
	return out
}

func writeFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
