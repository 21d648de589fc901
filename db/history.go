package db

import (
	"database/sql"
	"errors"
	"time"

	duckdb "github.com/marcboeker/go-duckdb/v2"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// SavedOptions mirrors the options STRUCT column of diff_history.
type SavedOptions struct {
	IgnoreWhitespace bool   `json:"ignoreWhitespace" mapstructure:"ignore_whitespace"`
	Algorithm        string `json:"algorithm" mapstructure:"algorithm"`
}

// SavedDiff is a diff the user chose to keep.
type SavedDiff struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Original    string       `json:"original,omitempty"`
	Modified    string       `json:"modified,omitempty"`
	Options     SavedOptions `json:"options"`
	Added       int          `json:"added"`
	Removed     int          `json:"removed"`
	DiffText    string       `json:"diffText,omitempty"` // unified plain-text form
	ContentHash string       `json:"contentHash"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// SaveDiff stores a diff in the history.
// Returns the ID of the created entry.
func (db *DB) SaveDiff(d *SavedDiff) (int64, error) {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	var id int64
	err := db.QueryRow(`
		INSERT INTO diff_history (title, original, modified, options, added, removed, diff_text, content_hash, created_at)
		VALUES (?, ?, ?, {'ignore_whitespace': ?::BOOLEAN, 'algorithm': ?::VARCHAR}, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		d.Title,
		d.Original,
		d.Modified,
		d.Options.IgnoreWhitespace,
		d.Options.Algorithm,
		d.Added,
		d.Removed,
		d.DiffText,
		d.ContentHash,
		d.CreatedAt,
	).Scan(&id)

	if err != nil {
		return 0, serr.Wrap(err, "failed to save diff", "title", d.Title)
	}
	d.ID = id

	logger.Debug("Saved diff",
		"id", id,
		"title", d.Title,
		"added", d.Added,
		"removed", d.Removed,
	)

	return id, nil
}

// GetDiff retrieves a saved diff by ID, including both texts.
// Returns nil if it does not exist.
func (db *DB) GetDiff(id int64) (*SavedDiff, error) {
	var d SavedDiff
	var options duckdb.Composite[SavedOptions]

	err := db.QueryRow(`
		SELECT id, title, original, modified, options, added, removed, diff_text, content_hash, created_at
		FROM diff_history
		WHERE id = ?
	`, id).Scan(
		&d.ID,
		&d.Title,
		&d.Original,
		&d.Modified,
		&options,
		&d.Added,
		&d.Removed,
		&d.DiffText,
		&d.ContentHash,
		&d.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, serr.Wrap(err, "failed to get diff")
	}
	d.Options = options.Get()

	return &d, nil
}

// ListDiffs returns saved diffs without their texts, newest first.
// limit <= 0 returns all of them.
func (db *DB) ListDiffs(limit int) ([]*SavedDiff, error) {
	query := `
		SELECT id, title, options, added, removed, content_hash, created_at
		FROM diff_history
		ORDER BY created_at DESC, id DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, serr.Wrap(err, "failed to list diffs")
	}
	defer rows.Close()

	diffs := []*SavedDiff{}
	for rows.Next() {
		var d SavedDiff
		var options duckdb.Composite[SavedOptions]

		if err := rows.Scan(&d.ID, &d.Title, &options, &d.Added, &d.Removed, &d.ContentHash, &d.CreatedAt); err != nil {
			return nil, serr.Wrap(err, "failed to scan diff")
		}
		d.Options = options.Get()
		diffs = append(diffs, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.Wrap(err, "failed to iterate diffs")
	}

	return diffs, nil
}

// DeleteDiff removes a saved diff. It reports whether a row was deleted.
func (db *DB) DeleteDiff(id int64) (bool, error) {
	result, err := db.Exec("DELETE FROM diff_history WHERE id = ?", id)
	if err != nil {
		return false, serr.Wrap(err, "failed to delete diff")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, serr.Wrap(err, "failed to count deleted rows")
	}
	return n > 0, nil
}
