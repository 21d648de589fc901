package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// DefaultDocument is the name of the editor state the web UI restores.
const DefaultDocument = "default"

// View modes understood by the UI
const (
	ViewUnified = "unified"
	ViewSplit   = "split"
)

// Document is the persisted content of the two editor panes.
type Document struct {
	Name             string    `json:"name"`
	Original         string    `json:"original"`
	Modified         string    `json:"modified"`
	IgnoreWhitespace bool      `json:"ignoreWhitespace"`
	ViewMode         string    `json:"viewMode"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SaveDocument inserts or replaces a document by name.
func (db *DB) SaveDocument(doc *Document) error {
	if doc.Name == "" {
		doc.Name = DefaultDocument
	}
	if doc.ViewMode == "" {
		doc.ViewMode = ViewUnified
	}
	if doc.ViewMode != ViewUnified && doc.ViewMode != ViewSplit {
		return serr.New("invalid view mode", "viewMode", doc.ViewMode)
	}
	doc.UpdatedAt = time.Now()

	_, err := db.Exec(`
		INSERT INTO documents (name, original, modified, ignore_whitespace, view_mode, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE
		SET original = EXCLUDED.original,
			modified = EXCLUDED.modified,
			ignore_whitespace = EXCLUDED.ignore_whitespace,
			view_mode = EXCLUDED.view_mode,
			updated_at = EXCLUDED.updated_at
	`, doc.Name, doc.Original, doc.Modified, doc.IgnoreWhitespace, doc.ViewMode, doc.UpdatedAt)
	if err != nil {
		return serr.Wrap(err, "failed to save document", "name", doc.Name)
	}

	logger.Debug("Saved document",
		"name", doc.Name,
		"originalBytes", len(doc.Original),
		"modifiedBytes", len(doc.Modified),
	)
	return nil
}

// GetDocument retrieves a document by name.
// Returns nil if no document has been saved under that name.
func (db *DB) GetDocument(name string) (*Document, error) {
	var doc Document
	err := db.QueryRow(`
		SELECT name, original, modified, ignore_whitespace, view_mode, updated_at
		FROM documents
		WHERE name = ?
	`, name).Scan(
		&doc.Name,
		&doc.Original,
		&doc.Modified,
		&doc.IgnoreWhitespace,
		&doc.ViewMode,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, serr.Wrap(err, "failed to get document", "name", name)
	}
	return &doc, nil
}

// DeleteDocument removes a document. Deleting a missing document is not an error.
func (db *DB) DeleteDocument(name string) error {
	if _, err := db.Exec("DELETE FROM documents WHERE name = ?", name); err != nil {
		return serr.Wrap(err, "failed to delete document", "name", name)
	}
	return nil
}
