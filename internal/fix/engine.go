// Package fix applies text edits attached to diagnostics back to the files
// they came from. Selection and application are deterministic: candidates
// are sorted by position, staged per file, and guarded by the edits'
// expected old text.
package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"casecheck/internal/diag"
	"casecheck/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies only the first candidate.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every non-conflicting candidate.
	ApplyModeAll
	// ApplyModeID applies the single candidate with the given ID.
	ApplyModeID
)

// ApplyOptions configures how fixes are selected and applied.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun stages everything but writes nothing to disk.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID        string
	Title     string
	Code      diag.Code
	Message   string
	Path      string
	EditCount int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	id    string
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts,
// and applies them to the files registered in fs.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, buildSkips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, buildSkips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, applySkips, changes, err := applyCandidates(fs, selected, opts.DryRun)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, applySkips...)
	result.FileChanges = append(result.FileChanges, changes...)
	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates flattens diagnostics into candidate fixes and synthesizes
// stable IDs (code-file-start-index) for selection by --id.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)

	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{
					Title:  f.Title,
					Reason: "fix has no edits",
				})
				continue
			}
			cands = append(cands, candidate{
				diag:  d,
				fix:   f,
				id:    fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx),
				order: order,
			})
			order++
		}
	}
	return cands, skips
}

// sortCandidates produces a deterministic order: file, span, insertion order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		return candidates[i].id < candidates[j].id
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.id == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		return candidates, nil
	case ApplyModeOnce:
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

func applyCandidates(fs *source.FileSet, selected []candidate, dryRun bool) ([]AppliedFix, []SkippedFix, []FileChange, error) {
	buffers := make(map[source.FileID][]byte)
	appliedEdits := make(map[source.FileID][]diag.FixEdit)
	fileEditCount := make(map[source.FileID]int)

	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)

	for _, cand := range selected {
		file := fs.Get(cand.diag.Primary.File)
		skipReason := ""

		working := buffers[file.ID]
		if working == nil {
			working = append([]byte(nil), file.Content...)
		}

		// Правки в пределах одного fix применяем справа налево, чтобы
		// смещения левее оставались валидными.
		edits := append([]diag.FixEdit(nil), cand.fix.Edits...)
		sort.SliceStable(edits, func(i, j int) bool {
			return edits[i].Span.Start > edits[j].Span.Start
		})

		staged := append([]byte(nil), working...)
		for _, edit := range edits {
			if edit.Span.File != file.ID {
				skipReason = "edit crosses file boundary"
				break
			}
			if overlaps(appliedEdits[file.ID], edit) {
				skipReason = "conflicts with previously applied edits"
				break
			}
			start := int(edit.Span.Start) + cumulativeDelta(appliedEdits[file.ID], edit.Span.Start)
			end := int(edit.Span.End) + cumulativeDelta(appliedEdits[file.ID], edit.Span.End)
			if start < 0 || end < start || end > len(staged) {
				skipReason = "edit span out of range"
				break
			}
			if edit.OldText != "" && string(staged[start:end]) != edit.OldText {
				skipReason = "existing text does not match expected content"
				break
			}
			suffix := append([]byte(nil), staged[end:]...)
			staged = append(append(staged[:start], []byte(edit.NewText)...), suffix...)
		}
		if skipReason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: skipReason})
			continue
		}

		buffers[file.ID] = staged
		appliedEdits[file.ID] = append(appliedEdits[file.ID], edits...)
		fileEditCount[file.ID] += len(edits)
		applied = append(applied, AppliedFix{
			ID:        cand.id,
			Title:     cand.fix.Title,
			Code:      cand.diag.Code,
			Message:   cand.diag.Message,
			Path:      file.Path,
			EditCount: len(edits),
		})
	}

	changes := make([]FileChange, 0, len(buffers))
	ids := make([]source.FileID, 0, len(buffers))
	for id := range buffers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		file := fs.Get(id)
		changes = append(changes, FileChange{Path: file.Path, EditCount: fileEditCount[id]})
		if dryRun || file.Flags&source.FileVirtual != 0 {
			continue
		}
		if err := os.WriteFile(file.Path, buffers[id], 0o644); err != nil {
			return applied, skipped, changes, fmt.Errorf("fix: write %s: %w", file.Path, err)
		}
	}
	return applied, skipped, changes, nil
}

// cumulativeDelta returns how much earlier edits shifted the given offset.
func cumulativeDelta(edits []diag.FixEdit, offset uint32) int {
	delta := 0
	for _, e := range edits {
		if e.Span.End <= offset {
			delta += len(e.NewText) - int(e.Span.Len())
		}
	}
	return delta
}

func overlaps(edits []diag.FixEdit, edit diag.FixEdit) bool {
	for _, e := range edits {
		if edit.Span.Start < e.Span.End && e.Span.Start < edit.Span.End {
			return true
		}
	}
	return false
}
