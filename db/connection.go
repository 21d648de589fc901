package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"textdiff/config"

	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// DB represents the database connection
type DB struct {
	conn *sql.DB
	path string
}

var (
	instance   *DB
	instanceMu sync.Mutex
)

// GetDB returns the shared database instance, opening it at the configured
// path on first use.
func GetDB() (*DB, error) {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance != nil {
		return instance, nil
	}

	cfg := config.Get()
	if cfg.DBPath != config.MemoryDB {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0700); err != nil {
			return nil, serr.Wrap(err, "failed to create data directory", "dir", filepath.Dir(cfg.DBPath))
		}
	}

	db, err := Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	instance = db
	return instance, nil
}

// Open connects to the database at path and runs migrations.
// config.MemoryDB opens a private in-memory database.
func Open(path string) (*DB, error) {
	dsn := path
	if path == config.MemoryDB {
		dsn = ""
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open database", "path", path)
	}

	// Test connection
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, serr.Wrap(err, "failed to ping database", "path", path)
	}

	db := &DB{
		conn: conn,
		path: path,
	}

	logger.Info("Database connected", "path", path)

	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, serr.Wrap(err, "failed to run migrations")
	}

	return db, nil
}

// CloseDB closes the shared instance, if open.
func CloseDB() error {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	return err
}

// Path returns the database location
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Transaction executes a function within a database transaction
func (db *DB) Transaction(fn func(*sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return serr.Wrap(err, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p) // re-throw panic after rollback
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return serr.Wrap(err, "failed to commit transaction")
	}

	return nil
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, serr.Wrap(err, fmt.Sprintf("query failed: %s", query))
	}
	return rows, nil
}

// QueryRow executes a query that returns a single row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

// Exec executes a query that doesn't return rows
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	result, err := db.conn.Exec(query, args...)
	if err != nil {
		return nil, serr.Wrap(err, fmt.Sprintf("exec failed: %s", query))
	}
	return result, nil
}
