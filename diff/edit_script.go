package diff

// OpKind classifies one element of an edit script.
type OpKind int

const (
	OpEqual OpKind = iota
	OpDelete
	OpInsert
)

func (k OpKind) String() string {
	switch k {
	case OpEqual:
		return "equal"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	}
	return "unknown"
}

// EditOp is one line of an edit script.
// OriginalIndex and ModifiedIndex are 1-based; zero means the op has no line
// on that side (a Delete has no ModifiedIndex, an Insert no OriginalIndex).
type EditOp struct {
	Kind          OpKind
	OriginalIndex int
	ModifiedIndex int
	Text          string
}

// Run is a maximal sequence of consecutive ops of the same kind.
type Run struct {
	Kind OpKind
	Ops  []EditOp
}

// Len returns the number of lines in the run.
func (r Run) Len() int {
	return len(r.Ops)
}

// Runs coalesces consecutive same-kind ops into runs.
// The returned runs share the backing array of ops.
func Runs(ops []EditOp) []Run {
	var runs []Run
	start := 0
	for i := 1; i <= len(ops); i++ {
		if i < len(ops) && ops[i].Kind == ops[start].Kind {
			continue
		}
		runs = append(runs, Run{Kind: ops[start].Kind, Ops: ops[start:i]})
		start = i
	}
	return runs
}

// buildOps turns a per-line sequence of kinds into ops, attaching line
// numbers and text. Equal ops carry the modified-side text, which differs
// from the original only when lines matched after whitespace normalization.
func buildOps(kinds []OpKind, original, modified []string) []EditOp {
	ops := make([]EditOp, 0, len(kinds))
	i, j := 0, 0
	for _, kind := range kinds {
		switch kind {
		case OpEqual:
			ops = append(ops, EditOp{Kind: OpEqual, OriginalIndex: i + 1, ModifiedIndex: j + 1, Text: modified[j]})
			i++
			j++
		case OpDelete:
			ops = append(ops, EditOp{Kind: OpDelete, OriginalIndex: i + 1, Text: original[i]})
			i++
		case OpInsert:
			ops = append(ops, EditOp{Kind: OpInsert, ModifiedIndex: j + 1, Text: modified[j]})
			j++
		}
	}
	return ops
}

// mirrorScript turns a script for b->a into one for a->b.
func mirrorScript(kinds []OpKind) []OpKind {
	out := make([]OpKind, len(kinds))
	for i, k := range kinds {
		switch k {
		case OpDelete:
			out[i] = OpInsert
		case OpInsert:
			out[i] = OpDelete
		default:
			out[i] = k
		}
	}
	return out
}

// normalizeScript reorders every maximal non-equal region so that all of its
// deletes come before all of its inserts. This keeps each changed block
// contiguous and gives the split view one delete run and one insert run to pair.
func normalizeScript(kinds []OpKind) []OpKind {
	out := make([]OpKind, 0, len(kinds))
	dels, ins := 0, 0
	flush := func() {
		for ; dels > 0; dels-- {
			out = append(out, OpDelete)
		}
		for ; ins > 0; ins-- {
			out = append(out, OpInsert)
		}
	}
	for _, kind := range kinds {
		switch kind {
		case OpDelete:
			dels++
		case OpInsert:
			ins++
		default:
			flush()
			out = append(out, kind)
		}
	}
	flush()
	return out
}
