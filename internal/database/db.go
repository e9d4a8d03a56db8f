// Package database provides database connection management.
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/at-ishikawa/recall/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	item_id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	status TEXT DEFAULT 'learning' NOT NULL,
	stage INTEGER DEFAULT 0 NOT NULL,
	correct_streak INTEGER DEFAULT 0 NOT NULL,
	next_review_date TEXT,
	last_processed_date TEXT,
	postponed INTEGER DEFAULT 0 NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT,
	history TEXT DEFAULT '[]' NOT NULL,
	response_times TEXT DEFAULT '[]' NOT NULL,
	error_ratios TEXT DEFAULT '[]' NOT NULL,
	review_log TEXT DEFAULT '[]' NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_stats (
	date TEXT PRIMARY KEY,
	elapsed_today REAL DEFAULT 0 NOT NULL
);
`

// Open opens the SQLite database at the configured path, creating the parent
// directory and the schema when missing.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}

	db, err := sqlx.Connect("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Connect(%s) > %w", cfg.Path, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("db.Exec(PRAGMA foreign_keys) > %w", err)
	}
	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("db.Exec(schema) > %w", err)
	}
	return db, nil
}
