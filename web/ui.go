package web

import (
	_ "embed"
	"html"
	"strconv"

	"textdiff/db"
	"textdiff/diff"

	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

//go:embed assets/js/ui.js
var uiJS string

//go:embed assets/css/ui.css
var uiCSS string

// pageState is what the page is rendered from: the restored document,
// the user's preferences and the diff of the document's texts.
type pageState struct {
	Doc    db.Document
	Prefs  db.DiffPreferences
	Result *diff.DiffResult
}

// UIHandler serves the diff viewer page using element package
func UIHandler(c rweb.Context) error {
	return c.WriteHTML(generateMainUI(loadPageState()))
}

// loadPageState restores the saved document. Storage failures are logged
// and the page starts empty.
func loadPageState() pageState {
	prefs := currentPreferences()
	state := pageState{
		Doc: db.Document{
			Name:             db.DefaultDocument,
			IgnoreWhitespace: prefs.IgnoreWhitespace,
			ViewMode:         prefs.DefaultMode,
		},
		Prefs: *prefs,
	}

	if database, err := db.GetDB(); err != nil {
		logger.LogErr(err, "failed to get database connection")
	} else if doc, err := database.GetDocument(db.DefaultDocument); err != nil {
		logger.LogErr(err, "failed to restore document")
	} else if doc != nil {
		state.Doc = *doc
	}

	opts := diff.Options{
		IgnoreWhitespace: state.Doc.IgnoreWhitespace,
		Algorithm:        diff.Algorithm(prefs.Algorithm),
	}
	result, err := getDiffService().GenerateDiff(state.Doc.Original, state.Doc.Modified, opts)
	if err != nil {
		logger.LogErr(err, "failed to diff restored document")
	}
	state.Result = result

	return state
}

func generateMainUI(state pageState) string {
	b := element.NewBuilder()

	b.Html().R(
		b.Head().R(
			b.Title().T("Text Diff Viewer"),
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
			b.Style().T(uiCSS),
		),
		b.Body().R(
			b.Div("id", "app", "data-algorithm", state.Prefs.Algorithm).R(
				// Header
				b.Header().R(
					b.Div("class", "header-content").R(
						b.H1().T("Text Diff Viewer"),
						b.P("class", "subtitle").T("Compare two texts line by line"),
					),
				),
				b.Main().R(
					// Input panes
					b.Section("class", "input-panes").R(
						textPane(b, "original", "Original Text", state.Doc.Original),
						textPane(b, "modified", "Modified Text", state.Doc.Modified),
					),
					// Options and actions
					b.Div("class", "toolbar").R(
						b.Label("class", "option").R(
							checkbox(b, "ignore-whitespace", state.Doc.IgnoreWhitespace),
							b.Span().T("Ignore whitespace"),
						),
						b.Div("class", "view-tabs").R(
							b.Button("class", tabClass(db.ViewUnified, state.Doc.ViewMode), "data-view", db.ViewUnified).T("Unified"),
							b.Button("class", tabClass(db.ViewSplit, state.Doc.ViewMode), "data-view", db.ViewSplit).T("Split"),
						),
						b.Div("class", "actions").R(
							b.Button("id", "copy-btn", "class", "btn-secondary").T("Copy Diff"),
							b.Button("id", "download-btn", "class", "btn-secondary").T("Download Diff"),
							b.Button("id", "save-btn", "class", "btn-primary").T("Save to History"),
						),
					),
					// Diff output
					b.Section("id", "diff-view", "class", "diff-pane").R(
						func() (x any) {
							element.RenderComponents(b, DiffPanelComponent{
								Result:          state.Result,
								ViewMode:        state.Doc.ViewMode,
								ShowLineNumbers: state.Prefs.ShowLineNumbers,
							})
							return
						}(),
					),
					b.Aside("id", "history", "class", "history").R(
						b.H3().T("History"),
						b.Div("id", "history-list", "class", "history-list").R(),
					),
				),
			),
			b.Script().T(uiJS),
		),
	)

	return b.String()
}

// textPane renders one labelled input area with its line count.
func textPane(b *element.Builder, id, label, text string) (x any) {
	b.Div("class", "text-pane").R(
		b.Div("class", "pane-header").R(
			b.Label("for", id).T(label),
			b.Span("id", id+"-count", "class", "line-count").T(lineCountLabel(text)),
		),
		// HTML parsing drops one newline right after <textarea>.
		b.Textarea("id", id, "spellcheck", "false", "placeholder", "Paste "+id+" text here...").T("\n"+html.EscapeString(text)),
	)
	return
}

func checkbox(b *element.Builder, id string, checked bool) (x any) {
	if checked {
		b.Input("type", "checkbox", "id", id, "checked", "checked")
	} else {
		b.Input("type", "checkbox", "id", id)
	}
	return
}

func tabClass(view, active string) string {
	if view == active {
		return "view-tab active"
	}
	return "view-tab"
}

// lineCountLabel mirrors the count the script keeps up to date while typing.
func lineCountLabel(text string) string {
	n := len(diff.SplitLines(text))
	if n == 1 {
		return "1 line"
	}
	return strconv.Itoa(n) + " lines"
}
