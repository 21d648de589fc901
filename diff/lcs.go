package diff

// lcsCost is the price of finishing a script from some table cell:
// the number of edits, then the number of changed blocks those edits open.
type lcsCost struct {
	edits  int
	blocks int
}

func (c lcsCost) less(o lcsCost) bool {
	return c.edits < o.edits || (c.edits == o.edits && c.blocks < o.blocks)
}

// Table state: whether the op before the cell was an equal line (or the
// start) or a change. A change made after an equal line opens a new block.
const (
	afterEqual = iota
	afterChange
)

// lcsEntry holds the cheapest completion for both states of a cell.
type lcsEntry [2]lcsCost

// lcsScript computes an edit script from a dynamic-programming table over
// the longest common subsequence. Among minimal scripts it returns one with
// the fewest changed blocks, so an equal line never splits a change that
// could have been contiguous.
func lcsScript(before, after []string) []OpKind {
	table := computeLCS(before, after)
	return backtrackLCS(before, after, table)
}

// openChange prices one delete or insert in front of rest.
func openChange(rest lcsCost, state int) lcsCost {
	rest.edits++
	if state == afterEqual {
		rest.blocks++
	}
	return rest
}

// computeLCS fills the (m+1) x (n+1) table from the bottom-right corner.
// table[i][j][s] is the cheapest way to turn before[i:] into after[j:]
// when the previous op left state s.
func computeLCS(before, after []string) [][]lcsEntry {
	m, n := len(before), len(after)

	table := make([][]lcsEntry, m+1)
	for i := range table {
		table[i] = make([]lcsEntry, n+1)
	}

	for i := m; i >= 0; i-- {
		for j := n; j >= 0; j-- {
			if i == m && j == n {
				continue
			}
			for state := afterEqual; state <= afterChange; state++ {
				var best lcsCost
				found := false
				if i < m && j < n && before[i] == after[j] {
					best, found = table[i+1][j+1][afterEqual], true
				}
				if i < m {
					if c := openChange(table[i+1][j][afterChange], state); !found || c.less(best) {
						best, found = c, true
					}
				}
				if j < n {
					if c := openChange(table[i][j+1][afterChange], state); !found || c.less(best) {
						best = c
					}
				}
				table[i][j][state] = best
			}
		}
	}

	return table
}

// backtrackLCS walks the table from the top-left corner, following the
// cheapest move. Ties prefer an equal line, then a delete.
func backtrackLCS(before, after []string, table [][]lcsEntry) []OpKind {
	m, n := len(before), len(after)
	kinds := make([]OpKind, 0, m+n)

	i, j, state := 0, 0, afterEqual
	for i < m || j < n {
		cur := table[i][j][state]
		switch {
		case i < m && j < n && before[i] == after[j] && table[i+1][j+1][afterEqual] == cur:
			kinds = append(kinds, OpEqual)
			i++
			j++
			state = afterEqual
		case i < m && openChange(table[i+1][j][afterChange], state) == cur:
			kinds = append(kinds, OpDelete)
			i++
			state = afterChange
		default:
			kinds = append(kinds, OpInsert)
			j++
			state = afterChange
		}
	}

	return kinds
}
