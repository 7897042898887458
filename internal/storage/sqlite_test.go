package storage

// Test Plan for the SQLite catalog sink:
// - OpenDatabase creates the schema on a fresh file
// - SaveCatalog writes the scan row and one row per entry, round-tripping
//   the JSON-encoded name lists and NULL for absent conditional lists
// - Re-saving the same scan id replaces rows instead of duplicating
// - ListScans returns saved scans

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/scan"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDatabase(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testSQLiteCatalog() *scan.Catalog {
	catalog := &scan.Catalog{
		ID:        "scan-test-1",
		Root:      "/src/widgets",
		StartedAt: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
	}
	catalog.Append(scan.CatalogEntry{
		FileName:      "main.py",
		RelativePath:  "app/main.py",
		Extension:     ".py",
		Language:      scan.LanguagePython,
		SizeBytes:     120,
		LastModified:  "2026-08-25T09:00:00Z",
		NumLines:      12,
		NumCharacters: 118,
		NumFunctions:  2,
		NumClasses:    1,
		Functions:     []string{"main", "run"},
		Classes:       []string{"App"},
		Imports:       []string{"os", "foo.bar"},
	})
	catalog.Append(scan.CatalogEntry{
		FileName:     "README.sql",
		RelativePath: "README.sql",
		Extension:    ".sql",
		Language:     scan.LanguageUnknown,
		Functions:    []string{},
		Classes:      []string{},
	})
	return catalog
}

func TestSaveCatalog_RoundTrip(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	store := NewCatalogStore(db)
	require.NoError(t, store.SaveCatalog(testSQLiteCatalog()))

	count, err := store.CountFiles("scan-test-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var (
		language  string
		functions string
		imports   sql.NullString
		includes  sql.NullString
	)
	row := db.QueryRow(
		`SELECT language, functions, imports, includes FROM files WHERE scan_id = ? AND relative_path = ?`,
		"scan-test-1", "app/main.py",
	)
	require.NoError(t, row.Scan(&language, &functions, &imports, &includes))

	assert.Equal(t, "python", language)
	assert.JSONEq(t, `["main","run"]`, functions)
	// Test: present conditional list round-trips as JSON text
	require.True(t, imports.Valid)
	assert.JSONEq(t, `["os","foo.bar"]`, imports.String)
	// Test: absent conditional list stays NULL
	assert.False(t, includes.Valid)
}

func TestSaveCatalog_ReplaceOnResave(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	store := NewCatalogStore(db)

	catalog := testSQLiteCatalog()
	require.NoError(t, store.SaveCatalog(catalog))
	require.NoError(t, store.SaveCatalog(catalog))

	count, err := store.CountFiles(catalog.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	scans, err := store.ListScans()
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, catalog.ID, scans[0].ID)
	assert.Equal(t, "/src/widgets", scans[0].Root)
	assert.Equal(t, 2, scans[0].NumFiles)
}

func TestListScans_Empty(t *testing.T) {
	t.Parallel()

	store := NewCatalogStore(openTestDB(t))
	scans, err := store.ListScans()
	require.NoError(t, err)
	assert.Empty(t, scans)
}
