package web

import (
	"encoding/json"
	"strconv"

	"textdiff/config"
	"textdiff/db"
	"textdiff/diff"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// The app is single-user; preferences are stored under one ID.
const defaultUserID = "default"

const defaultHistoryLimit = 50

// getDocumentHandler returns the saved editor document.
// GET /api/document
func getDocumentHandler(c rweb.Context) error {
	database, err := db.GetDB()
	if err != nil {
		logger.LogErr(err, "failed to get database connection")
		return c.WriteError(serr.Wrap(err, "database connection failed"), 500)
	}

	doc, err := database.GetDocument(db.DefaultDocument)
	if err != nil {
		logger.LogErr(err, "failed to get document")
		return c.WriteError(serr.Wrap(err, "failed to retrieve document"), 500)
	}
	if doc == nil {
		doc = &db.Document{Name: db.DefaultDocument, ViewMode: db.ViewUnified}
	}

	return c.WriteJSON(doc)
}

// saveDocumentHandler stores the editor panes so a reload restores them.
// PUT /api/document
func saveDocumentHandler(c rweb.Context) error {
	body := c.Request().Body()
	if err := checkBodySize(body, config.Get().MaxInputBytes); err != nil {
		return c.WriteError(err, statusOf(err))
	}

	var doc db.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return c.WriteError(serr.Wrap(err, "invalid request body"), 400)
	}
	doc.Name = db.DefaultDocument
	if doc.ViewMode != "" && doc.ViewMode != db.ViewUnified && doc.ViewMode != db.ViewSplit {
		return c.WriteError(serr.New("invalid view mode", "viewMode", doc.ViewMode), 400)
	}

	database, err := db.GetDB()
	if err != nil {
		logger.LogErr(err, "failed to get database connection")
		return c.WriteError(serr.Wrap(err, "database connection failed"), 500)
	}

	if err := database.SaveDocument(&doc); err != nil {
		logger.LogErr(err, "failed to save document")
		return c.WriteError(serr.Wrap(err, "failed to save document"), 500)
	}

	return c.WriteJSON(map[string]interface{}{
		"success":   true,
		"updatedAt": doc.UpdatedAt,
	})
}

// getPreferencesHandler retrieves diff viewing preferences.
// GET /api/preferences
func getPreferencesHandler(c rweb.Context) error {
	return c.WriteJSON(currentPreferences())
}

// savePreferencesHandler saves diff viewing preferences.
// POST /api/preferences
func savePreferencesHandler(c rweb.Context) error {
	prefs := db.DefaultPreferences(defaultUserID)
	if err := json.Unmarshal(c.Request().Body(), prefs); err != nil {
		return c.WriteError(serr.Wrap(err, "invalid request body"), 400)
	}
	prefs.UserID = defaultUserID

	if err := validatePreferences(prefs); err != nil {
		return c.WriteError(err, 400)
	}

	database, err := db.GetDB()
	if err != nil {
		logger.LogErr(err, "failed to get database connection")
		return c.WriteError(serr.Wrap(err, "database connection failed"), 500)
	}

	if err := database.SaveDiffPreferences(prefs); err != nil {
		logger.LogErr(err, "failed to save preferences")
		return c.WriteError(serr.Wrap(err, "failed to save preferences"), 500)
	}

	return c.WriteJSON(map[string]interface{}{
		"success": true,
	})
}

func validatePreferences(prefs *db.DiffPreferences) error {
	if prefs.DefaultMode != db.ViewUnified && prefs.DefaultMode != db.ViewSplit {
		return serr.New("invalid default view mode", "defaultMode", prefs.DefaultMode)
	}
	switch diff.Algorithm(prefs.Algorithm) {
	case diff.AlgorithmMyers, diff.AlgorithmLCS:
	default:
		return serr.New("unknown diff algorithm", "algorithm", prefs.Algorithm)
	}
	return nil
}

// listHistoryHandler lists saved diffs, newest first.
// GET /api/history?limit=N
func listHistoryHandler(c rweb.Context) error {
	limit := defaultHistoryLimit
	if raw := c.Request().QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.WriteError(serr.Wrap(err, "invalid limit", "limit", raw), 400)
		}
		limit = n
	}

	database, err := db.GetDB()
	if err != nil {
		logger.LogErr(err, "failed to get database connection")
		return c.WriteError(serr.Wrap(err, "database connection failed"), 500)
	}

	diffs, err := database.ListDiffs(limit)
	if err != nil {
		logger.LogErr(err, "failed to list diffs")
		return c.WriteError(serr.Wrap(err, "failed to list diffs"), 500)
	}

	return c.WriteJSON(map[string]interface{}{
		"diffs": diffs,
		"count": len(diffs),
	})
}

// saveHistoryHandler diffs the request texts and stores the result.
// POST /api/history
func saveHistoryHandler(c rweb.Context) error {
	body := c.Request().Body()
	req, result, err := computeDiff(body)
	if err != nil {
		return writeDiffError(c, err)
	}

	saved := historyEntry(req.Title, req, result)

	database, err := db.GetDB()
	if err != nil {
		logger.LogErr(err, "failed to get database connection")
		return c.WriteError(serr.Wrap(err, "database connection failed"), 500)
	}

	id, err := database.SaveDiff(saved)
	if err != nil {
		logger.LogErr(err, "failed to save diff")
		return c.WriteError(serr.Wrap(err, "failed to save diff"), 500)
	}

	return c.WriteJSON(map[string]interface{}{
		"id":      id,
		"title":   saved.Title,
		"summary": result.Unified.Summary,
	})
}

// historyEntry builds the record stored for a computed diff.
func historyEntry(title string, req diffRequest, result *diff.DiffResult) *db.SavedDiff {
	if title == "" {
		title = "Diff " + result.Timestamp.Format("Jan 2, 15:04")
	}
	return &db.SavedDiff{
		Title:    title,
		Original: req.Original,
		Modified: req.Modified,
		Options: db.SavedOptions{
			IgnoreWhitespace: result.Options.IgnoreWhitespace,
			Algorithm:        string(result.Options.Algorithm),
		},
		Added:       result.Unified.Summary.Added,
		Removed:     result.Unified.Summary.Removed,
		DiffText:    diff.FormatUnified(result.Unified.Lines),
		ContentHash: result.Hash,
	}
}

// getHistoryHandler returns one saved diff with its texts.
// GET /api/history/:id
func getHistoryHandler(c rweb.Context) error {
	id, err := historyID(c)
	if err != nil {
		return c.WriteError(err, 400)
	}

	database, err := db.GetDB()
	if err != nil {
		logger.LogErr(err, "failed to get database connection")
		return c.WriteError(serr.Wrap(err, "database connection failed"), 500)
	}

	saved, err := database.GetDiff(id)
	if err != nil {
		logger.LogErr(err, "failed to get diff")
		return c.WriteError(serr.Wrap(err, "failed to retrieve diff"), 500)
	}
	if saved == nil {
		return c.WriteError(serr.New("diff not found"), 404)
	}

	return c.WriteJSON(saved)
}

// deleteHistoryHandler removes a saved diff.
// DELETE /api/history/:id
func deleteHistoryHandler(c rweb.Context) error {
	id, err := historyID(c)
	if err != nil {
		return c.WriteError(err, 400)
	}

	database, err := db.GetDB()
	if err != nil {
		logger.LogErr(err, "failed to get database connection")
		return c.WriteError(serr.Wrap(err, "database connection failed"), 500)
	}

	deleted, err := database.DeleteDiff(id)
	if err != nil {
		logger.LogErr(err, "failed to delete diff")
		return c.WriteError(serr.Wrap(err, "failed to delete diff"), 500)
	}
	if !deleted {
		return c.WriteError(serr.New("diff not found"), 404)
	}

	return c.WriteJSON(map[string]interface{}{
		"success": true,
	})
}

func historyID(c rweb.Context) (int64, error) {
	raw := c.Request().Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, serr.Wrap(err, "invalid diff ID", "id", raw)
	}
	return id, nil
}
