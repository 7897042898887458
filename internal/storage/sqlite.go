package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/repolens/repolens/internal/scan"
)

// OpenDatabase opens (creating if needed) a catalog database at dbPath and
// ensures the schema exists. Caller owns the returned handle.
func OpenDatabase(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys (must be set for each connection)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// ScanRecord is one row of the scans table.
type ScanRecord struct {
	ID        string
	Root      string
	StartedAt string
	NumFiles  int
}

// CatalogStore persists catalogs into SQLite alongside the JSON artifact.
type CatalogStore struct {
	db *sql.DB
}

// NewCatalogStore creates a store over an opened database. The schema must
// already exist (OpenDatabase handles that).
func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// SaveCatalog writes the scan row and all file rows in one transaction.
// Re-saving the same scan id replaces its rows.
func (s *CatalogStore) SaveCatalog(catalog *scan.Catalog) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	_, err = sq.Insert("scans").
		Columns("id", "root", "started_at", "num_files").
		Values(catalog.ID, catalog.Root, catalog.StartedAt.Format(time.RFC3339), catalog.Len()).
		Options("OR REPLACE").
		RunWith(tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to write scan row: %w", err)
	}

	// Build the insert once, then prepare it for the batch.
	builder := sq.Insert("files").
		Columns(
			"scan_id", "relative_path", "file_name", "extension", "language",
			"size_bytes", "last_modified", "num_lines", "num_characters",
			"num_functions", "num_classes", "functions", "classes",
			"imports", "includes",
		).
		Options("OR REPLACE")

	sqlStr, _, err := builder.
		Values("", "", "", "", "", 0, "", 0, 0, 0, 0, "", "", nil, nil).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL: %w", err)
	}

	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, entry := range catalog.Entries {
		functions, err := encodeNames(entry.Functions)
		if err != nil {
			return err
		}
		classes, err := encodeNames(entry.Classes)
		if err != nil {
			return err
		}

		_, err = stmt.Exec(
			catalog.ID,
			entry.RelativePath,
			entry.FileName,
			entry.Extension,
			string(entry.Language),
			entry.SizeBytes,
			entry.LastModified,
			entry.NumLines,
			entry.NumCharacters,
			entry.NumFunctions,
			entry.NumClasses,
			functions,
			classes,
			encodeOptionalNames(entry.Imports),
			encodeOptionalNames(entry.Includes),
		)
		if err != nil {
			return fmt.Errorf("failed to insert file %s: %w", entry.RelativePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}

	return nil
}

// ListScans returns all scan rows, most recent first.
func (s *CatalogStore) ListScans() ([]ScanRecord, error) {
	rows, err := sq.Select("id", "root", "started_at", "num_files").
		From("scans").
		OrderBy("started_at DESC").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var rec ScanRecord
		if err := rows.Scan(&rec.ID, &rec.Root, &rec.StartedAt, &rec.NumFiles); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CountFiles returns the number of file rows stored for a scan.
func (s *CatalogStore) CountFiles(scanID string) (int, error) {
	var count int
	err := sq.Select("COUNT(*)").
		From("files").
		Where(sq.Eq{"scan_id": scanID}).
		RunWith(s.db).
		QueryRow().
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return count, nil
}

// encodeNames serializes a name list as JSON for a TEXT column.
func encodeNames(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("failed to encode name list: %w", err)
	}
	return string(data), nil
}

// encodeOptionalNames serializes a conditional name list, keeping absence as
// NULL so it round-trips distinctly from an empty list.
func encodeOptionalNames(names []string) any {
	if names == nil {
		return nil
	}
	data, err := json.Marshal(names)
	if err != nil {
		return nil
	}
	return string(data)
}
