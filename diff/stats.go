package diff

// Stats provides summary statistics for a diff.
// Modified counts paired rows of the split view, where a removed line sits
// next to an added one.
type Stats struct {
	Added         int `json:"added"`
	Removed       int `json:"removed"`
	Modified      int `json:"modified"`
	OriginalLines int `json:"originalLines"`
	ModifiedLines int `json:"modifiedLines"`
}

// SplitStats computes statistics from a side-by-side diff.
func SplitStats(s SplitDiff) Stats {
	st := Stats{Added: s.Summary.Added, Removed: s.Summary.Removed}
	for _, row := range s.Rows {
		if !row.Original.IsBlank() {
			st.OriginalLines++
		}
		if !row.Modified.IsBlank() {
			st.ModifiedLines++
		}
		if row.Original.Kind == KindRemoved && row.Modified.Kind == KindAdded {
			st.Modified++
		}
	}
	return st
}
