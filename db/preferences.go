package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rohanthewiz/serr"
)

// DiffPreferences represents user preferences for diff viewing
type DiffPreferences struct {
	UserID           string    `json:"userId"`
	DefaultMode      string    `json:"defaultMode"`
	IgnoreWhitespace bool      `json:"ignoreWhitespace"`
	ContextLines     int       `json:"contextLines"`
	WordWrap         bool      `json:"wordWrap"`
	ShowLineNumbers  bool      `json:"showLineNumbers"`
	Algorithm        string    `json:"algorithm"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DefaultPreferences returns the preferences used before a user saves any.
func DefaultPreferences(userID string) *DiffPreferences {
	return &DiffPreferences{
		UserID:          userID,
		DefaultMode:     ViewUnified,
		ContextLines:    3,
		ShowLineNumbers: true,
		Algorithm:       "myers",
		UpdatedAt:       time.Now(),
	}
}

// GetDiffPreferences retrieves user preferences for diff viewing.
// Returns default preferences if none exist.
func (db *DB) GetDiffPreferences(userID string) (*DiffPreferences, error) {
	var prefs DiffPreferences
	err := db.QueryRow(`
		SELECT user_id, default_mode, ignore_whitespace, context_lines, word_wrap, show_line_numbers, algorithm, updated_at
		FROM diff_preferences
		WHERE user_id = ?
	`, userID).Scan(
		&prefs.UserID,
		&prefs.DefaultMode,
		&prefs.IgnoreWhitespace,
		&prefs.ContextLines,
		&prefs.WordWrap,
		&prefs.ShowLineNumbers,
		&prefs.Algorithm,
		&prefs.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultPreferences(userID), nil
		}
		return nil, serr.Wrap(err, "failed to get diff preferences", "userId", userID)
	}

	return &prefs, nil
}

// SaveDiffPreferences stores user preferences for diff viewing.
func (db *DB) SaveDiffPreferences(prefs *DiffPreferences) error {
	if prefs.DefaultMode != ViewUnified && prefs.DefaultMode != ViewSplit {
		return serr.New("invalid default view mode", "defaultMode", prefs.DefaultMode)
	}
	if prefs.Algorithm == "" {
		prefs.Algorithm = "myers"
	}
	prefs.UpdatedAt = time.Now()

	_, err := db.Exec(`
		INSERT INTO diff_preferences (user_id, default_mode, ignore_whitespace, context_lines, word_wrap, show_line_numbers, algorithm, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET default_mode = ?, ignore_whitespace = ?, context_lines = ?, word_wrap = ?, show_line_numbers = ?, algorithm = ?, updated_at = ?
	`,
		prefs.UserID,
		prefs.DefaultMode,
		prefs.IgnoreWhitespace,
		prefs.ContextLines,
		prefs.WordWrap,
		prefs.ShowLineNumbers,
		prefs.Algorithm,
		prefs.UpdatedAt,
		prefs.DefaultMode,
		prefs.IgnoreWhitespace,
		prefs.ContextLines,
		prefs.WordWrap,
		prefs.ShowLineNumbers,
		prefs.Algorithm,
		prefs.UpdatedAt,
	)

	if err != nil {
		return serr.Wrap(err, "failed to save diff preferences", "userId", prefs.UserID)
	}

	return nil
}
