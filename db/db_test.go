package db

import (
	"testing"

	"textdiff/config"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(config.MemoryDB)
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestMigrate(t *testing.T) {
	database := openTestDB(t)

	version, err := database.SchemaVersion()
	if err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("Expected schema version %d, got %d", len(migrations), version)
	}

	// Running again is a no-op
	if err := database.Migrate(); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
	version, _ = database.SchemaVersion()
	if version != len(migrations) {
		t.Errorf("Expected schema version to stay %d, got %d", len(migrations), version)
	}
}

func TestDocuments(t *testing.T) {
	database := openTestDB(t)

	doc, err := database.GetDocument(DefaultDocument)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if doc != nil {
		t.Fatalf("Expected no document yet, got %+v", doc)
	}

	err = database.SaveDocument(&Document{Original: "a\nb", Modified: "a\nc"})
	if err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	doc, err = database.GetDocument(DefaultDocument)
	if err != nil || doc == nil {
		t.Fatalf("Expected saved document, got %v / %v", doc, err)
	}
	if doc.Original != "a\nb" || doc.Modified != "a\nc" {
		t.Errorf("Unexpected texts: %q / %q", doc.Original, doc.Modified)
	}
	if doc.ViewMode != ViewUnified {
		t.Errorf("Expected default view mode, got %q", doc.ViewMode)
	}

	// Saving again replaces the row
	err = database.SaveDocument(&Document{Name: DefaultDocument, Original: "", Modified: "x", IgnoreWhitespace: true, ViewMode: ViewSplit})
	if err != nil {
		t.Fatalf("SaveDocument update failed: %v", err)
	}
	doc, _ = database.GetDocument(DefaultDocument)
	if doc.Original != "" || doc.Modified != "x" || !doc.IgnoreWhitespace || doc.ViewMode != ViewSplit {
		t.Errorf("Document not updated: %+v", doc)
	}

	if err := database.SaveDocument(&Document{ViewMode: "columns"}); err == nil {
		t.Error("Expected error for invalid view mode")
	}

	if err := database.DeleteDocument(DefaultDocument); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	doc, _ = database.GetDocument(DefaultDocument)
	if doc != nil {
		t.Error("Expected document to be deleted")
	}
}

func TestDiffPreferences(t *testing.T) {
	database := openTestDB(t)

	prefs, err := database.GetDiffPreferences("default")
	if err != nil {
		t.Fatalf("GetDiffPreferences failed: %v", err)
	}
	if prefs.DefaultMode != ViewUnified || prefs.ContextLines != 3 || !prefs.ShowLineNumbers {
		t.Errorf("Unexpected default preferences: %+v", prefs)
	}

	prefs.DefaultMode = ViewSplit
	prefs.IgnoreWhitespace = true
	prefs.ContextLines = 5
	if err := database.SaveDiffPreferences(prefs); err != nil {
		t.Fatalf("SaveDiffPreferences failed: %v", err)
	}

	got, err := database.GetDiffPreferences("default")
	if err != nil {
		t.Fatalf("GetDiffPreferences failed: %v", err)
	}
	if got.DefaultMode != ViewSplit || !got.IgnoreWhitespace || got.ContextLines != 5 || got.Algorithm != "myers" {
		t.Errorf("Preferences not persisted: %+v", got)
	}

	prefs.DefaultMode = "stacked"
	if err := database.SaveDiffPreferences(prefs); err == nil {
		t.Error("Expected error for invalid mode")
	}
}

func TestDiffHistory(t *testing.T) {
	database := openTestDB(t)

	first := &SavedDiff{
		Title:       "first",
		Original:    "a",
		Modified:    "b",
		Options:     SavedOptions{IgnoreWhitespace: true, Algorithm: "lcs"},
		Added:       1,
		Removed:     1,
		DiffText:    "- a\n+ b",
		ContentHash: "abc",
	}
	id1, err := database.SaveDiff(first)
	if err != nil {
		t.Fatalf("SaveDiff failed: %v", err)
	}
	if first.ID != id1 {
		t.Errorf("Expected ID to be set on the saved diff")
	}

	id2, err := database.SaveDiff(&SavedDiff{Title: "second", Options: SavedOptions{Algorithm: "myers"}, ContentHash: "def"})
	if err != nil {
		t.Fatalf("SaveDiff failed: %v", err)
	}

	got, err := database.GetDiff(id1)
	if err != nil || got == nil {
		t.Fatalf("GetDiff failed: %v / %v", got, err)
	}
	if got.Title != "first" || got.Original != "a" || got.Modified != "b" || got.DiffText != "- a\n+ b" {
		t.Errorf("Unexpected saved diff: %+v", got)
	}
	if !got.Options.IgnoreWhitespace || got.Options.Algorithm != "lcs" {
		t.Errorf("Options not round-tripped: %+v", got.Options)
	}

	list, err := database.ListDiffs(0)
	if err != nil {
		t.Fatalf("ListDiffs failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 diffs, got %d", len(list))
	}
	if list[0].ID != id2 {
		t.Errorf("Expected newest diff first, got %d", list[0].ID)
	}
	if list[0].Original != "" || list[1].DiffText != "" {
		t.Error("Expected list entries without texts")
	}

	limited, err := database.ListDiffs(1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("Expected 1 diff with limit, got %d (%v)", len(limited), err)
	}

	deleted, err := database.DeleteDiff(id1)
	if err != nil || !deleted {
		t.Fatalf("Expected delete to succeed, got %v / %v", deleted, err)
	}
	deleted, err = database.DeleteDiff(id1)
	if err != nil || deleted {
		t.Errorf("Expected second delete to report nothing deleted, got %v / %v", deleted, err)
	}

	missing, err := database.GetDiff(id1)
	if err != nil || missing != nil {
		t.Errorf("Expected nil for deleted diff, got %v / %v", missing, err)
	}
}
