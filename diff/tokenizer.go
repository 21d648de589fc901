package diff

import (
	"strings"
)

// SplitLines splits text into lines on "\n".
// Empty text has no lines. A single trailing newline ends the last line
// rather than starting a new empty one, so "a\n" is one line and "a\n\n" is two.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	lines := strings.Split(text, "\n")
	if strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines is the inverse of SplitLines.
// trailingNewline restores the final "\n" that SplitLines absorbs.
func JoinLines(lines []string, trailingNewline bool) string {
	text := strings.Join(lines, "\n")
	if trailingNewline {
		text += "\n"
	}
	return text
}

// normalizeWhitespace collapses every run of whitespace to a single space
// and trims both ends. It is only used to decide whether two lines match.
func normalizeWhitespace(line string) string {
	return strings.Join(strings.Fields(line), " ")
}
