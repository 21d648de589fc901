package web

import (
	"html"
	"strconv"

	"textdiff/diff"

	"github.com/rohanthewiz/element"
)

const emptyDiffMessage = "No differences found or no text to compare"

// DiffSummaryComponent renders the added/removed counters above a diff.
type DiffSummaryComponent struct {
	Stats diff.Stats
}

// Render implements the element.Component interface
func (s DiffSummaryComponent) Render(b *element.Builder) (x any) {
	b.Div("class", "diff-summary").R(
		b.Span("class", "summary-added").T("+"+strconv.Itoa(s.Stats.Added)),
		b.Span("class", "summary-removed").T("-"+strconv.Itoa(s.Stats.Removed)),
		func() (x any) {
			if s.Stats.Modified > 0 {
				b.Span("class", "summary-modified").T(strconv.Itoa(s.Stats.Modified) + " modified")
			}
			return
		}(),
	)
	return
}

// UnifiedViewComponent renders a unified diff as a grid of rows:
// original line number, modified line number, marker, text.
type UnifiedViewComponent struct {
	Diff            diff.UnifiedDiff
	ShowLineNumbers bool
}

// Render implements the element.Component interface
func (u UnifiedViewComponent) Render(b *element.Builder) (x any) {
	b.Div("class", "diff-view unified"+lineNumberClass(u.ShowLineNumbers)).R(
		element.ForEach(u.Diff.Lines, func(line diff.UnifiedLine) {
			b.Div("class", "diff-row "+rowClass(line.Kind)).R(
				b.Span("class", "line-num").T(lineNumber(line.OriginalLine)),
				b.Span("class", "line-num").T(lineNumber(line.ModifiedLine)),
				b.Span("class", "marker").T(string(line.Kind)),
				b.Span("class", "line-text").T(html.EscapeString(line.Text)),
			)
		}),
	)
	return
}

// SplitViewComponent renders a side-by-side diff, one row per aligned pair.
type SplitViewComponent struct {
	Diff            diff.SplitDiff
	ShowLineNumbers bool
}

// Render implements the element.Component interface
func (s SplitViewComponent) Render(b *element.Builder) (x any) {
	b.Div("class", "diff-view split"+lineNumberClass(s.ShowLineNumbers)).R(
		element.ForEach(s.Diff.Rows, func(row diff.SplitRow) {
			b.Div("class", "diff-row").R(
				renderCell(b, "original", row.Original),
				renderCell(b, "modified", row.Modified),
			)
		}),
	)
	return
}

func renderCell(b *element.Builder, side string, cell diff.Cell) (x any) {
	class := "diff-cell " + side + " " + rowClass(cell.Kind)
	if cell.IsBlank() {
		class += " blank"
	}
	b.Div("class", class).R(
		b.Span("class", "line-num").T(lineNumber(cell.LineNumber)),
		b.Span("class", "line-text").T(html.EscapeString(cell.Text)),
	)
	return
}

// DiffPanelComponent is the content of the diff pane: summary plus the
// selected view, or the empty state when there is nothing to show.
type DiffPanelComponent struct {
	Result          *diff.DiffResult
	ViewMode        string
	ShowLineNumbers bool
}

// Render implements the element.Component interface
func (p DiffPanelComponent) Render(b *element.Builder) (x any) {
	if p.Result == nil || len(p.Result.Unified.Lines) == 0 {
		b.Div("class", "empty-state").T(emptyDiffMessage)
		return
	}

	element.RenderComponents(b, DiffSummaryComponent{Stats: p.Result.Stats})
	if p.ViewMode == "split" {
		element.RenderComponents(b, SplitViewComponent{Diff: p.Result.Split, ShowLineNumbers: p.ShowLineNumbers})
	} else {
		element.RenderComponents(b, UnifiedViewComponent{Diff: p.Result.Unified, ShowLineNumbers: p.ShowLineNumbers})
	}
	return
}

// renderDiffPanel renders the diff pane as an HTML fragment.
func renderDiffPanel(result *diff.DiffResult, viewMode string, showLineNumbers bool) string {
	b := element.NewBuilder()
	element.RenderComponents(b, DiffPanelComponent{
		Result:          result,
		ViewMode:        viewMode,
		ShowLineNumbers: showLineNumbers,
	})
	return b.String()
}

func rowClass(kind diff.LineKind) string {
	switch kind {
	case diff.KindAdded:
		return "added"
	case diff.KindRemoved:
		return "removed"
	}
	return "context"
}

func lineNumber(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func lineNumberClass(show bool) string {
	if show {
		return ""
	}
	return " no-line-numbers"
}
