package web

import (
	"textdiff/config"
	"textdiff/db"
	"textdiff/diff"
	"textdiff/platform/shutdown"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// Global diff service instance
var diffService *diff.DiffService

// InitDiffService initializes the diff service.
// Should be called during server startup.
func InitDiffService(cfg *config.Config) {
	diffService = diff.NewDiffService(diff.Options{Algorithm: diff.AlgorithmMyers}, cfg.MemoSize)
	logger.Info("Diff service initialized", "memoSize", cfg.MemoSize)
}

func getDiffService() *diff.DiffService {
	if diffService == nil {
		InitDiffService(config.Get())
	}
	return diffService
}

// computeDiff decodes a request body and diffs the two texts in it.
func computeDiff(body []byte) (diffRequest, *diff.DiffResult, error) {
	if shutdown.CheckShutdown() {
		return diffRequest{}, nil, &requestError{status: 503, err: serr.New("server is shutting down")}
	}
	req, err := decodeDiffRequest(body, config.Get().MaxInputBytes)
	if err != nil {
		return req, nil, err
	}
	result, err := getDiffService().GenerateDiff(req.Original, req.Modified, req.options())
	if err != nil {
		return req, nil, serr.Wrap(err, "failed to generate diff")
	}
	return req, result, nil
}

// writeDiffError logs server-side failures and answers with the right status.
func writeDiffError(c rweb.Context, err error) error {
	status := statusOf(err)
	if status == 500 {
		logger.LogErr(err, "diff request failed")
	}
	return c.WriteError(err, status)
}

// unifiedDiffHandler returns the unified projection.
// POST /api/diff/unified
func unifiedDiffHandler(c rweb.Context) error {
	_, result, err := computeDiff(c.Request().Body())
	if err != nil {
		return writeDiffError(c, err)
	}

	return c.WriteJSON(map[string]interface{}{
		"hash":    result.Hash,
		"summary": result.Unified.Summary,
		"lines":   result.Unified.Lines,
		"stats":   result.Stats,
	})
}

// splitDiffHandler returns the side-by-side projection.
// POST /api/diff/split
func splitDiffHandler(c rweb.Context) error {
	_, result, err := computeDiff(c.Request().Body())
	if err != nil {
		return writeDiffError(c, err)
	}

	return c.WriteJSON(map[string]interface{}{
		"hash":    result.Hash,
		"summary": result.Split.Summary,
		"rows":    result.Split.Rows,
		"stats":   result.Stats,
	})
}

// hunksDiffHandler returns the unified diff grouped into hunks.
// POST /api/diff/hunks
func hunksDiffHandler(c rweb.Context) error {
	req, result, err := computeDiff(c.Request().Body())
	if err != nil {
		return writeDiffError(c, err)
	}

	type hunkJSON struct {
		Header string             `json:"header"`
		Lines  []diff.UnifiedLine `json:"lines"`
	}
	hunks := diff.Hunks(result.Unified.Lines, req.contextLines(config.Get()))
	out := make([]hunkJSON, 0, len(hunks))
	for _, h := range hunks {
		out = append(out, hunkJSON{Header: h.Header(), Lines: h.Lines})
	}

	return c.WriteJSON(map[string]interface{}{
		"hash":    result.Hash,
		"summary": result.Unified.Summary,
		"hunks":   out,
	})
}

// diffViewHandler renders the diff pane as an HTML fragment for the page.
// POST /api/diff/view
func diffViewHandler(c rweb.Context) error {
	req, result, err := computeDiff(c.Request().Body())
	if err != nil {
		return writeDiffError(c, err)
	}

	return c.WriteHTML(renderDiffPanel(result, req.ViewMode, currentPreferences().ShowLineNumbers))
}

// diffTextHandler returns the plain-text diff for copy and download.
// The browser saves the text under the returned filename.
// POST /api/diff/text
func diffTextHandler(c rweb.Context) error {
	req, result, err := computeDiff(c.Request().Body())
	if err != nil {
		return writeDiffError(c, err)
	}

	text, err := diffText(result, req.Format, req.contextLines(config.Get()))
	if err != nil {
		return writeDiffError(c, err)
	}

	return c.WriteJSON(map[string]interface{}{
		"filename": downloadFilename,
		"text":     text,
		"empty":    result.Unified.IsEqual(),
	})
}

const downloadFilename = "text-diff.txt"

// currentPreferences loads the saved preferences, falling back to defaults
// when the database is unavailable.
func currentPreferences() *db.DiffPreferences {
	database, err := db.GetDB()
	if err != nil {
		logger.LogErr(err, "failed to get database connection")
		return db.DefaultPreferences(defaultUserID)
	}
	prefs, err := database.GetDiffPreferences(defaultUserID)
	if err != nil {
		logger.LogErr(err, "failed to load diff preferences")
		return db.DefaultPreferences(defaultUserID)
	}
	return prefs
}
