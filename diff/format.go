package diff

import (
	"strings"
)

// FormatUnified serializes a unified diff as "<kind> <text>" lines joined by
// newlines, the form used for copy and download.
func FormatUnified(lines []UnifiedLine) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writePrefixed(&sb, line.Kind, line.Text)
	}
	return sb.String()
}

// FormatSplit serializes a side-by-side diff in the same prefixed form.
// A paired row contributes its removed line followed by its added line;
// a context row contributes one line.
func FormatSplit(rows []SplitRow) string {
	var sb strings.Builder
	first := true
	emit := func(kind LineKind, text string) {
		if !first {
			sb.WriteByte('\n')
		}
		first = false
		writePrefixed(&sb, kind, text)
	}

	for _, row := range rows {
		if row.Original.Kind == KindContext && row.Modified.Kind == KindContext {
			emit(KindContext, row.Modified.Text)
			continue
		}
		if !row.Original.IsBlank() {
			emit(row.Original.Kind, row.Original.Text)
		}
		if !row.Modified.IsBlank() {
			emit(row.Modified.Kind, row.Modified.Text)
		}
	}
	return sb.String()
}

func writePrefixed(sb *strings.Builder, kind LineKind, text string) {
	sb.WriteString(string(kind))
	sb.WriteByte(' ')
	sb.WriteString(text)
}
