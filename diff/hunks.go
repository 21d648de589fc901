package diff

import (
	"fmt"
	"strings"
)

// Hunk is a contiguous section of a unified diff with its surrounding context.
type Hunk struct {
	OldStart int           `json:"oldStart"` // Starting line in original
	OldLines int           `json:"oldLines"` // Number of original lines in the hunk
	NewStart int           `json:"newStart"` // Starting line in modified
	NewLines int           `json:"newLines"` // Number of modified lines in the hunk
	Lines    []UnifiedLine `json:"lines"`
}

// Header returns the "@@ -a,b +c,d @@" line for the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// Hunks groups the changed lines of a unified diff into hunks carrying up to
// contextLines unchanged lines on each side. Changes separated by no more
// than 2*contextLines unchanged lines share a hunk.
// A negative contextLines returns the whole diff as a single hunk.
func Hunks(lines []UnifiedLine, contextLines int) []Hunk {
	if len(lines) == 0 {
		return []Hunk{}
	}
	if contextLines < 0 {
		return []Hunk{newHunk(lines, 0, len(lines))}
	}

	var hunks []Hunk
	start, end := -1, -1 // current hunk covers lines[start:end]

	for i, line := range lines {
		if line.Kind == KindContext {
			continue
		}
		lo := max(0, i-contextLines)
		hi := min(len(lines), i+contextLines+1)

		if start >= 0 && lo <= end {
			end = hi
			continue
		}
		if start >= 0 {
			hunks = append(hunks, newHunk(lines, start, end))
		}
		start, end = lo, hi
	}

	if start >= 0 {
		hunks = append(hunks, newHunk(lines, start, end))
	}
	if hunks == nil {
		return []Hunk{}
	}
	return hunks
}

// newHunk builds the hunk for lines[start:end] and computes its header ranges.
// An empty side starts at the line before the hunk, as in `diff -u`.
func newHunk(lines []UnifiedLine, start, end int) Hunk {
	oldBefore, newBefore := 0, 0
	for _, line := range lines[:start] {
		if line.OriginalLine != nil {
			oldBefore = *line.OriginalLine
		}
		if line.ModifiedLine != nil {
			newBefore = *line.ModifiedLine
		}
	}

	h := Hunk{Lines: lines[start:end:end]}
	for _, line := range h.Lines {
		if line.OriginalLine != nil {
			h.OldLines++
		}
		if line.ModifiedLine != nil {
			h.NewLines++
		}
	}

	h.OldStart = oldBefore
	if h.OldLines > 0 {
		h.OldStart++
	}
	h.NewStart = newBefore
	if h.NewLines > 0 {
		h.NewStart++
	}
	return h
}

// FormatHunks renders hunks as headers followed by their prefixed lines.
func FormatHunks(hunks []Hunk) string {
	var sb strings.Builder
	for i, h := range hunks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(h.Header())
		if len(h.Lines) > 0 {
			sb.WriteByte('\n')
			sb.WriteString(FormatUnified(h.Lines))
		}
	}
	return sb.String()
}
