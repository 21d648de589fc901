package diff

import (
	"errors"
	"strconv"

	"github.com/rohanthewiz/serr"
)

// ErrInconsistentScript reports an edit script the split walk cannot lay out.
// Scripts produced by Align never trigger it; seeing it means a bug.
var ErrInconsistentScript = errors.New("inconsistent edit script")

// Cell is one side of a split row.
// A blank cell has KindContext, no text and a nil LineNumber.
type Cell struct {
	Kind       LineKind `json:"kind"`
	Text       string   `json:"text"`
	LineNumber *int     `json:"lineNumber"`
}

// IsBlank reports whether the cell is filler for a one-sided row.
func (c Cell) IsBlank() bool {
	return c.LineNumber == nil
}

// SplitRow pairs an original-side cell with a modified-side cell.
type SplitRow struct {
	Original Cell `json:"original"`
	Modified Cell `json:"modified"`
}

// SplitDiff is the side-by-side projection of an edit script.
type SplitDiff struct {
	Summary Summary    `json:"summary"`
	Rows    []SplitRow `json:"rows"`
}

// ComputeSplitDiff diffs two texts line by line and returns the side-by-side view.
func ComputeSplitDiff(original, modified string, opts Options) (SplitDiff, error) {
	return Split(Align(SplitLines(original), SplitLines(modified), opts))
}

// Split projects an edit script onto side-by-side rows.
func Split(ops []EditOp) (SplitDiff, error) {
	return SplitRuns(Runs(ops))
}

type splitState int

const (
	stateInvalid  splitState = iota
	stateMatched             // equal run: both sides populated
	stateOneSided            // lone insert or delete run
	statePaired              // delete run next to insert run: modification block
)

// classify picks the state for the run at position i.
func classify(runs []Run, i int) splitState {
	run := runs[i]
	if run.Len() == 0 {
		return stateInvalid
	}
	if i > 0 && runs[i-1].Kind == run.Kind {
		return stateInvalid
	}

	switch run.Kind {
	case OpEqual:
		return stateMatched
	case OpDelete, OpInsert:
		if i+1 == len(runs) || runs[i+1].Kind == OpEqual {
			return stateOneSided
		}
		next := runs[i+1]
		if next.Len() == 0 || next.Kind == run.Kind {
			return stateInvalid
		}
		// A changed block holds one delete run and one insert run at most.
		if i+2 < len(runs) && runs[i+2].Kind != OpEqual {
			return stateInvalid
		}
		return statePaired
	}
	return stateInvalid
}

// SplitRuns walks the runs of an edit script and lays them out as rows.
// It returns ErrInconsistentScript, and no rows, when two runs are adjacent
// in a way a normalized script cannot produce.
func SplitRuns(runs []Run) (SplitDiff, error) {
	result := SplitDiff{Rows: make([]SplitRow, 0, len(runs))}
	origLine, modLine := 0, 0

	removedCell := func(text string) Cell {
		origLine++
		result.Summary.Removed++
		return Cell{Kind: KindRemoved, Text: text, LineNumber: intPtr(origLine)}
	}
	addedCell := func(text string) Cell {
		modLine++
		result.Summary.Added++
		return Cell{Kind: KindAdded, Text: text, LineNumber: intPtr(modLine)}
	}
	blank := Cell{Kind: KindContext}

	for i := 0; i < len(runs); {
		run := runs[i]

		switch classify(runs, i) {
		case stateMatched:
			for _, op := range run.Ops {
				origLine++
				modLine++
				result.Rows = append(result.Rows, SplitRow{
					Original: Cell{Kind: KindContext, Text: op.Text, LineNumber: intPtr(origLine)},
					Modified: Cell{Kind: KindContext, Text: op.Text, LineNumber: intPtr(modLine)},
				})
			}
			i++

		case stateOneSided:
			for _, op := range run.Ops {
				if run.Kind == OpDelete {
					result.Rows = append(result.Rows, SplitRow{Original: removedCell(op.Text), Modified: blank})
				} else {
					result.Rows = append(result.Rows, SplitRow{Original: blank, Modified: addedCell(op.Text)})
				}
			}
			i++

		case statePaired:
			dels, ins := run, runs[i+1]
			if run.Kind == OpInsert {
				dels, ins = ins, dels
			}
			for k := 0; k < max(dels.Len(), ins.Len()); k++ {
				row := SplitRow{Original: blank, Modified: blank}
				if k < dels.Len() {
					row.Original = removedCell(dels.Ops[k].Text)
				}
				if k < ins.Len() {
					row.Modified = addedCell(ins.Ops[k].Text)
				}
				result.Rows = append(result.Rows, row)
			}
			i += 2

		default:
			return SplitDiff{}, serr.Wrap(ErrInconsistentScript, "cannot lay out run",
				"run", strconv.Itoa(i),
				"kind", run.Kind.String(),
				"length", strconv.Itoa(run.Len()),
			)
		}
	}

	return result, nil
}

// IsEqual reports whether the diff has no added or removed lines.
func (s SplitDiff) IsEqual() bool {
	return s.Summary.Added == 0 && s.Summary.Removed == 0
}
