package diff

// LineKind tags a rendered line or cell.
type LineKind string

const (
	KindAdded   LineKind = "+"
	KindRemoved LineKind = "-"
	KindContext LineKind = " "
)

// Summary counts the added and removed lines of a diff.
type Summary struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// UnifiedLine is one line of the unified view.
// OriginalLine is nil for added lines and ModifiedLine is nil for removed lines.
type UnifiedLine struct {
	Kind         LineKind `json:"kind"`
	Text         string   `json:"text"`
	OriginalLine *int     `json:"originalLine"`
	ModifiedLine *int     `json:"modifiedLine"`
}

// UnifiedDiff is the single-column projection of an edit script.
type UnifiedDiff struct {
	Summary Summary       `json:"summary"`
	Lines   []UnifiedLine `json:"lines"`
}

// ComputeUnifiedDiff diffs two texts line by line and returns the unified view.
func ComputeUnifiedDiff(original, modified string, opts Options) UnifiedDiff {
	return Unified(Align(SplitLines(original), SplitLines(modified), opts))
}

// Unified projects an edit script onto one line per op.
// The original counter advances on Equal and Delete, the modified counter
// on Equal and Insert.
func Unified(ops []EditOp) UnifiedDiff {
	result := UnifiedDiff{Lines: make([]UnifiedLine, 0, len(ops))}
	origLine, modLine := 0, 0

	for _, op := range ops {
		line := UnifiedLine{Text: op.Text}
		switch op.Kind {
		case OpEqual:
			origLine++
			modLine++
			line.Kind = KindContext
			line.OriginalLine = intPtr(origLine)
			line.ModifiedLine = intPtr(modLine)
		case OpDelete:
			origLine++
			line.Kind = KindRemoved
			line.OriginalLine = intPtr(origLine)
			result.Summary.Removed++
		case OpInsert:
			modLine++
			line.Kind = KindAdded
			line.ModifiedLine = intPtr(modLine)
			result.Summary.Added++
		}
		result.Lines = append(result.Lines, line)
	}

	return result
}

// IsEqual reports whether the diff has no added or removed lines.
func (u UnifiedDiff) IsEqual() bool {
	return u.Summary.Added == 0 && u.Summary.Removed == 0
}

func intPtr(n int) *int {
	return &n
}
