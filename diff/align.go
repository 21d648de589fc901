package diff

import (
	"slices"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Algorithm names the engine that computes the edit script.
type Algorithm string

const (
	// AlgorithmMyers is the O(ND) engine from diffmatchpatch. It is the default.
	AlgorithmMyers Algorithm = "myers"
	// AlgorithmLCS fills the full longest-common-subsequence table.
	// It needs O(N*M) memory and is meant for small inputs and cross-checks.
	AlgorithmLCS Algorithm = "lcs"
)

// Options controls how lines are matched.
type Options struct {
	// IgnoreWhitespace matches lines that differ only in runs of whitespace.
	IgnoreWhitespace bool      `json:"ignoreWhitespace"`
	Algorithm        Algorithm `json:"algorithm,omitempty"`
}

// Align computes a minimal line-level edit script turning original into modified.
// Within every changed block deletes precede inserts.
//
// The engine always runs from the lesser key sequence to the greater one and
// the script is mirrored otherwise, so Align(b, a) is Align(a, b) with deletes
// and inserts swapped.
func Align(original, modified []string, opts Options) []EditOp {
	keysA := lineKeys(original, opts.IgnoreWhitespace)
	keysB := lineKeys(modified, opts.IgnoreWhitespace)

	engine := myersScript
	if opts.Algorithm == AlgorithmLCS {
		engine = lcsScript
	}

	var kinds []OpKind
	if slices.Compare(keysA, keysB) <= 0 {
		kinds = engine(keysA, keysB)
	} else {
		kinds = mirrorScript(engine(keysB, keysA))
	}

	return buildOps(normalizeScript(kinds), original, modified)
}

// lineKeys returns the strings lines are compared by.
func lineKeys(lines []string, ignoreWhitespace bool) []string {
	if !ignoreWhitespace {
		return lines
	}
	keys := make([]string, len(lines))
	for i, line := range lines {
		keys[i] = normalizeWhitespace(line)
	}
	return keys
}

// maxEncodedLines is the number of distinct lines the rune encoding can hold:
// every valid code point from 1 up, minus the surrogate range.
const maxEncodedLines = utf8.MaxRune - 0x800

// myersScript diffs two line sequences with diffmatchpatch by mapping every
// distinct line to one rune, the same trick DiffLinesToRunes uses.
func myersScript(a, b []string) []OpKind {
	ra, rb, ok := encodeLines(a, b)
	if !ok {
		return lcsScript(a, b)
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // no deadline: the script must be minimal and deterministic

	diffs := dmp.DiffMainRunes(ra, rb, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	kinds := make([]OpKind, 0, len(ra)+len(rb))
	for _, d := range diffs {
		kind := OpEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = OpDelete
		case diffmatchpatch.DiffInsert:
			kind = OpInsert
		}
		for n := utf8.RuneCountInString(d.Text); n > 0; n-- {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// encodeLines assigns each distinct line a valid, non-surrogate rune.
// Diff texts are built with string(runes), so surrogates would decode as U+FFFD.
func encodeLines(a, b []string) (ra, rb []rune, ok bool) {
	index := make(map[string]rune, len(a)+len(b))
	next := rune(1)
	encode := func(lines []string) []rune {
		out := make([]rune, len(lines))
		for i, line := range lines {
			r, seen := index[line]
			if !seen {
				r = next
				index[line] = r
				next++
				if next == 0xD800 {
					next = 0xE000
				}
			}
			out[i] = r
		}
		return out
	}
	ra = encode(a)
	rb = encode(b)
	return ra, rb, len(index) <= maxEncodedLines
}
