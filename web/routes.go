package web

import (
	"github.com/rohanthewiz/rweb"
)

// SetupRoutes configures all HTTP routes for the server
func SetupRoutes(s *rweb.Server) {
	// Root endpoint - serves the main web UI
	s.Get("/", rootHandler)

	s.Get("/api/app", appInfoHandler)

	// Diff endpoints
	s.Post("/api/diff/unified", unifiedDiffHandler)
	s.Post("/api/diff/split", splitDiffHandler)
	s.Post("/api/diff/hunks", hunksDiffHandler)
	s.Post("/api/diff/view", diffViewHandler)
	s.Post("/api/diff/text", diffTextHandler)

	// Editor document and preferences
	s.Get("/api/document", getDocumentHandler)
	s.Put("/api/document", saveDocumentHandler)
	s.Get("/api/preferences", getPreferencesHandler)
	s.Post("/api/preferences", savePreferencesHandler)

	// Saved diffs
	s.Get("/api/history", listHistoryHandler)
	s.Post("/api/history", saveHistoryHandler)
	s.Get("/api/history/:id", getHistoryHandler)
	s.Delete("/api/history/:id", deleteHistoryHandler)
}

// rootHandler serves the main web UI
func rootHandler(c rweb.Context) error {
	return UIHandler(c)
}

// appInfoHandler returns application information
func appInfoHandler(c rweb.Context) error {
	return c.WriteJSON(map[string]interface{}{
		"version":   Version,
		"status":    "ok",
		"algorithm": string(getDiffService().Defaults().Algorithm),
	})
}

// Version of the application, reported by /api/app
const Version = "0.1.0"
