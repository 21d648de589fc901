package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	defaultAddress       = ":8000"
	defaultContextLines  = 3
	defaultMaxInputBytes = 5 << 20
	defaultMemoSize      = 16

	// MemoryDB selects an in-memory database instead of a file.
	MemoryDB = ":memory:"
)

// Config holds application configuration
type Config struct {
	Address       string // listen address for the web server
	DataDir       string // directory holding the database file
	DBPath        string // database file, or MemoryDB
	Debug         bool
	ContextLines  int   // default context lines around hunks
	MaxInputBytes int64 // largest accepted request body
	MemoSize      int   // number of diff results the service remembers
}

// globalConfig holds the application configuration instance
var globalConfig *Config

// Initialize sets up the configuration from environment variables
func Initialize() {
	globalConfig = Load(os.Getenv)
}

// Get returns the global configuration instance
func Get() *Config {
	if globalConfig == nil {
		Initialize()
	}
	return globalConfig
}

// Load builds a configuration from a lookup function such as os.Getenv.
// Unset or malformed values fall back to defaults.
func Load(getenv func(string) string) *Config {
	cfg := &Config{
		Address:       defaultAddress,
		ContextLines:  defaultContextLines,
		MaxInputBytes: defaultMaxInputBytes,
		MemoSize:      defaultMemoSize,
	}

	if addr := getenv("TEXTDIFF_ADDR"); addr != "" {
		cfg.Address = addr
	}

	cfg.DataDir = getenv("TEXTDIFF_DATA_DIR")
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}

	cfg.DBPath = getenv("TEXTDIFF_DB")
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "textdiff.db")
	}

	if debug, err := strconv.ParseBool(getenv("TEXTDIFF_DEBUG")); err == nil {
		cfg.Debug = debug
	}

	if n, err := strconv.Atoi(getenv("TEXTDIFF_CONTEXT_LINES")); err == nil {
		cfg.ContextLines = n
	}

	if n, err := strconv.ParseInt(getenv("TEXTDIFF_MAX_INPUT_BYTES"), 10, 64); err == nil && n > 0 {
		cfg.MaxInputBytes = n
	}

	if n, err := strconv.Atoi(getenv("TEXTDIFF_MEMO_SIZE")); err == nil && n > 0 {
		cfg.MemoSize = n
	}

	return cfg
}

// defaultDataDir returns ~/.local/share/textdiff, or a relative directory
// when the home directory is unknown.
func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".textdiff"
	}
	return filepath.Join(homeDir, ".local", "share", "textdiff")
}
