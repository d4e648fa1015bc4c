// Package sqlite provides SQLite-based storage for site configurations and
// the index of synced site endpoints.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// migrations are applied in order. PRAGMA user_version records how many
// have run, so new entries must only ever be appended.
var migrations = []string{
	`CREATE TABLE knowledge_site (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kb_name TEXT NOT NULL,
		site_name TEXT NOT NULL,
		folder_name TEXT NOT NULL,
		hostname TEXT NOT NULL,
		start_urls TEXT NOT NULL DEFAULT '[]',
		pattern TEXT NOT NULL DEFAULT '',
		remove_selectors TEXT NOT NULL DEFAULT '[]',
		max_urls INTEGER NOT NULL DEFAULT 1,
		site_version INTEGER NOT NULL DEFAULT 1,
		site_mtime REAL NOT NULL DEFAULT 0,
		create_time TEXT NOT NULL
	);
	CREATE UNIQUE INDEX idx_knowledge_site_folder ON knowledge_site(kb_name, folder_name);`,

	`CREATE TABLE site_endpoint (
		id TEXT PRIMARY KEY,
		site_id INTEGER NOT NULL REFERENCES knowledge_site(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		file_path TEXT NOT NULL DEFAULT '',
		loader TEXT NOT NULL DEFAULT '',
		splitter TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		size INTEGER NOT NULL DEFAULT 0,
		tokens INTEGER NOT NULL DEFAULT 0,
		doc_count INTEGER NOT NULL DEFAULT 0,
		content_hash TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL,
		UNIQUE(site_id, url)
	);
	CREATE INDEX idx_site_endpoint_site_id ON site_endpoint(site_id);`,
}

// DB wraps the SQLite connection shared by the storage services.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path, or MemoryPath.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects to the database, configures it and brings the schema up to
// date.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// One writer at a time.
	conn.SetMaxOpenConns(1)

	if err := configure(conn, db.path != MemoryPath); err != nil {
		conn.Close()
		return err
	}
	if err := migrate(conn); err != nil {
		conn.Close()
		return err
	}

	db.db = conn
	return nil
}

func configure(conn *sql.DB, wal bool) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	if wal {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := conn.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// SchemaVersion returns the number of applied migrations.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v)
	return v, err
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}
