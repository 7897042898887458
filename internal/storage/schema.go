package storage

import (
	"database/sql"
	"fmt"
)

const createScansTable = `
CREATE TABLE IF NOT EXISTS scans (
	id TEXT PRIMARY KEY,
	root TEXT NOT NULL,
	started_at TEXT NOT NULL,
	num_files INTEGER NOT NULL
)`

const createFilesTable = `
CREATE TABLE IF NOT EXISTS files (
	scan_id TEXT NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
	relative_path TEXT NOT NULL,
	file_name TEXT NOT NULL,
	extension TEXT NOT NULL,
	language TEXT NOT NULL,
	size_bytes INTEGER NOT NULL,
	last_modified TEXT NOT NULL,
	num_lines INTEGER NOT NULL,
	num_characters INTEGER NOT NULL,
	num_functions INTEGER NOT NULL,
	num_classes INTEGER NOT NULL,
	functions TEXT NOT NULL,
	classes TEXT NOT NULL,
	imports TEXT,
	includes TEXT,
	PRIMARY KEY (scan_id, relative_path)
)`

var schemaIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_files_language ON files(language)`,
	`CREATE INDEX IF NOT EXISTS idx_files_file_name ON files(file_name)`,
}

// CreateSchema creates the scans and files tables plus their indexes.
// Safe to call on an existing database; everything is IF NOT EXISTS.
// Must be called with PRAGMA foreign_keys = ON.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	tables := []struct {
		name string
		ddl  string
	}{
		{"scans", createScansTable},
		{"files", createFilesTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range schemaIndexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	return nil
}
