package diff

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cell(kind LineKind, text string, n int) Cell {
	return Cell{Kind: kind, Text: text, LineNumber: intPtr(n)}
}

var blankCell = Cell{Kind: KindContext}

func TestComputeSplitDiffFullReplacement(t *testing.T) {
	got, err := ComputeSplitDiff("a\nb", "x\ny", Options{})
	require.NoError(t, err)

	want := []SplitRow{
		{Original: cell(KindRemoved, "a", 1), Modified: cell(KindAdded, "x", 1)},
		{Original: cell(KindRemoved, "b", 2), Modified: cell(KindAdded, "y", 2)},
	}
	assert.Equal(t, want, got.Rows)
	assert.Equal(t, Summary{Added: 2, Removed: 2}, got.Summary)
}

func TestComputeSplitDiffLiteralScenario(t *testing.T) {
	got, err := ComputeSplitDiff("line1\nline2\nline3", "line1\nline2-changed\nline3\nline4", Options{})
	require.NoError(t, err)

	want := []SplitRow{
		{Original: cell(KindContext, "line1", 1), Modified: cell(KindContext, "line1", 1)},
		{Original: cell(KindRemoved, "line2", 2), Modified: cell(KindAdded, "line2-changed", 2)},
		{Original: cell(KindContext, "line3", 3), Modified: cell(KindContext, "line3", 3)},
		{Original: blankCell, Modified: cell(KindAdded, "line4", 4)},
	}
	assert.Equal(t, want, got.Rows)
	assert.Equal(t, Summary{Added: 2, Removed: 1}, got.Summary)
}

func TestComputeSplitDiffUnequalRuns(t *testing.T) {
	t.Run("longer delete run", func(t *testing.T) {
		got, err := ComputeSplitDiff("p\na\nb\nc", "p\nx", Options{})
		require.NoError(t, err)
		want := []SplitRow{
			{Original: cell(KindContext, "p", 1), Modified: cell(KindContext, "p", 1)},
			{Original: cell(KindRemoved, "a", 2), Modified: cell(KindAdded, "x", 2)},
			{Original: cell(KindRemoved, "b", 3), Modified: blankCell},
			{Original: cell(KindRemoved, "c", 4), Modified: blankCell},
		}
		assert.Equal(t, want, got.Rows)
		assert.Equal(t, Summary{Added: 1, Removed: 3}, got.Summary)
	})

	t.Run("longer insert run", func(t *testing.T) {
		got, err := ComputeSplitDiff("a", "x\ny\nz", Options{})
		require.NoError(t, err)
		want := []SplitRow{
			{Original: cell(KindRemoved, "a", 1), Modified: cell(KindAdded, "x", 1)},
			{Original: blankCell, Modified: cell(KindAdded, "y", 2)},
			{Original: blankCell, Modified: cell(KindAdded, "z", 3)},
		}
		assert.Equal(t, want, got.Rows)
	})
}

func TestComputeSplitDiffOneSided(t *testing.T) {
	got, err := ComputeSplitDiff("a\nb\nc", "a\nc", Options{})
	require.NoError(t, err)
	want := []SplitRow{
		{Original: cell(KindContext, "a", 1), Modified: cell(KindContext, "a", 1)},
		{Original: cell(KindRemoved, "b", 2), Modified: blankCell},
		{Original: cell(KindContext, "c", 3), Modified: cell(KindContext, "c", 2)},
	}
	assert.Equal(t, want, got.Rows)
	assert.True(t, got.Rows[1].Modified.IsBlank())

	got, err = ComputeSplitDiff("", "x", Options{})
	require.NoError(t, err)
	assert.Equal(t, []SplitRow{{Original: blankCell, Modified: cell(KindAdded, "x", 1)}}, got.Rows)
}

func TestComputeSplitDiffEmpty(t *testing.T) {
	got, err := ComputeSplitDiff("", "", Options{})
	require.NoError(t, err)
	assert.Empty(t, got.Rows)
	assert.True(t, got.IsEqual())
}

func TestComputeSplitDiffEmptyEncodesRowsArray(t *testing.T) {
	got, err := ComputeSplitDiff("", "", Options{})
	require.NoError(t, err)
	require.NotNil(t, got.Rows)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rows":[]`)
}

func TestComputeSplitDiffIgnoreWhitespace(t *testing.T) {
	got, err := ComputeSplitDiff("a  b\nc", "a b\nc", Options{IgnoreWhitespace: true})
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, cell(KindContext, "a b", 1), got.Rows[0].Original)
	assert.Equal(t, cell(KindContext, "a b", 1), got.Rows[0].Modified)
	assert.True(t, got.IsEqual())
}

func TestSplitMatchesUnified(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for iter := 0; iter < 300; iter++ {
		a := strings.Join(randomLines(rng, rng.Intn(15)), "\n")
		b := strings.Join(randomLines(rng, rng.Intn(15)), "\n")
		for _, algo := range engines {
			opts := Options{Algorithm: algo}
			split, err := ComputeSplitDiff(a, b, opts)
			require.NoError(t, err, "%q -> %q", a, b)
			unified := ComputeUnifiedDiff(a, b, opts)
			require.Equal(t, unified.Summary, split.Summary)

			// Row contributions agree with the summary and every line of both
			// texts appears once, in order.
			added, removed := 0, 0
			var origTexts, modTexts []string
			for _, row := range split.Rows {
				if row.Original.Kind == KindRemoved {
					removed++
				}
				if row.Modified.Kind == KindAdded {
					added++
				}
				if !row.Original.IsBlank() {
					require.Equal(t, len(origTexts)+1, *row.Original.LineNumber)
					origTexts = append(origTexts, row.Original.Text)
				}
				if !row.Modified.IsBlank() {
					require.Equal(t, len(modTexts)+1, *row.Modified.LineNumber)
					modTexts = append(modTexts, row.Modified.Text)
				}
				require.False(t, row.Original.IsBlank() && row.Modified.IsBlank(), "empty row")
			}
			require.Equal(t, Summary{Added: added, Removed: removed}, split.Summary)
			require.Equal(t, SplitLines(a), append([]string{}, origTexts...))
			require.Equal(t, SplitLines(b), append([]string{}, modTexts...))
		}
	}
}

func TestSplitRunsInconsistent(t *testing.T) {
	del := func(text string) EditOp { return EditOp{Kind: OpDelete, OriginalIndex: 1, Text: text} }
	ins := func(text string) EditOp { return EditOp{Kind: OpInsert, ModifiedIndex: 1, Text: text} }
	eq := func(text string) EditOp { return EditOp{Kind: OpEqual, OriginalIndex: 1, ModifiedIndex: 1, Text: text} }

	cases := []struct {
		name string
		runs []Run
	}{
		{"adjacent delete runs", []Run{
			{Kind: OpDelete, Ops: []EditOp{del("a")}},
			{Kind: OpDelete, Ops: []EditOp{del("b")}},
		}},
		{"adjacent equal runs", []Run{
			{Kind: OpEqual, Ops: []EditOp{eq("a")}},
			{Kind: OpEqual, Ops: []EditOp{eq("b")}},
		}},
		{"empty run", []Run{
			{Kind: OpInsert, Ops: nil},
		}},
		{"three changed runs in one block", []Run{
			{Kind: OpDelete, Ops: []EditOp{del("a")}},
			{Kind: OpInsert, Ops: []EditOp{ins("x")}},
			{Kind: OpDelete, Ops: []EditOp{del("b")}},
		}},
		{"unknown kind", []Run{
			{Kind: OpKind(9), Ops: []EditOp{eq("a")}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitRuns(tc.runs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInconsistentScript) ||
				strings.Contains(err.Error(), ErrInconsistentScript.Error()), "got %v", err)
			assert.Empty(t, got.Rows, "no partial rows on failure")
		})
	}
}

func TestSplitRunsInsertBeforeDelete(t *testing.T) {
	runs := []Run{
		{Kind: OpInsert, Ops: []EditOp{{Kind: OpInsert, ModifiedIndex: 1, Text: "x"}}},
		{Kind: OpDelete, Ops: []EditOp{{Kind: OpDelete, OriginalIndex: 1, Text: "a"}, {Kind: OpDelete, OriginalIndex: 2, Text: "b"}}},
	}
	got, err := SplitRuns(runs)
	require.NoError(t, err)
	want := []SplitRow{
		{Original: cell(KindRemoved, "a", 1), Modified: cell(KindAdded, "x", 1)},
		{Original: cell(KindRemoved, "b", 2), Modified: blankCell},
	}
	assert.Equal(t, want, got.Rows)
}

func TestSplitStats(t *testing.T) {
	split, err := ComputeSplitDiff("p\na\nb\nc\nq", "p\nx\nq\nr", Options{})
	require.NoError(t, err)
	st := SplitStats(split)
	assert.Equal(t, Stats{Added: 2, Removed: 3, Modified: 1, OriginalLines: 5, ModifiedLines: 4}, st)
}
