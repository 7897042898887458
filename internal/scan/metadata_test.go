package scan

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the metadata assembler:
// - Full record for a Python file: names, counts, size, timestamp
// - A file that vanished before assembly downgrades to a zeroed record
// - Unknown languages carry statistics but no symbol extras
// - JSON shape: conditional fields appear only when produced

func TestCountLines(t *testing.T) {
	t.Parallel()

	cases := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\r\nb\r\n", 2},
		{"a\rb", 2},
		{"\n\n", 2},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, countLines(tc.content), "content %q", tc.content)
	}
}

func TestAssembler_PythonFile(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	content := "import os\n\ndef f():\n    pass\n\nclass C:\n    pass\n"
	path := writeTestFile(t, tempDir, "a.py", []byte(content))

	assembler := NewAssembler(tempDir, NewDispatcher())
	entry := assembler.Assemble(path)

	assert.Equal(t, "a.py", entry.FileName)
	assert.Equal(t, "a.py", entry.RelativePath)
	assert.Equal(t, ".py", entry.Extension)
	assert.Equal(t, LanguagePython, entry.Language)
	assert.Equal(t, int64(len(content)), entry.SizeBytes)
	assert.Equal(t, 7, entry.NumLines)
	assert.Equal(t, len(content), entry.NumCharacters)
	assert.Equal(t, 1, entry.NumFunctions)
	assert.Equal(t, 1, entry.NumClasses)
	assert.Equal(t, []string{"f"}, entry.Functions)
	assert.Equal(t, []string{"C"}, entry.Classes)
	assert.Equal(t, []string{"os"}, entry.Imports)

	_, err := time.Parse(time.RFC3339, entry.LastModified)
	assert.NoError(t, err, "last modified should be RFC 3339")
}

func TestAssembler_MissingFileDowngrades(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	missing := filepath.Join(tempDir, "gone.py")

	assembler := NewAssembler(tempDir, NewDispatcher())
	entry := assembler.Assemble(missing)

	assert.Equal(t, "gone.py", entry.FileName)
	assert.Equal(t, LanguagePython, entry.Language)
	assert.Equal(t, int64(0), entry.SizeBytes)
	assert.Equal(t, "", entry.LastModified)
	assert.Equal(t, 0, entry.NumLines)
	assert.Equal(t, 0, entry.NumCharacters)
	assert.NotNil(t, entry.Functions)
	assert.Empty(t, entry.Functions)
}

func TestAssembler_UnknownLanguageStatsOnly(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := writeTestFile(t, tempDir, "schema.sql", []byte("create table t (id int);\n"))

	assembler := NewAssembler(tempDir, NewDispatcher())
	entry := assembler.Assemble(path)

	assert.Equal(t, LanguageUnknown, entry.Language)
	assert.Equal(t, 1, entry.NumLines)
	assert.NotNil(t, entry.Functions)
	assert.NotNil(t, entry.Classes)
	assert.Nil(t, entry.Imports)
	assert.Nil(t, entry.Notebook)
}

func TestCatalogEntry_JSONShape(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	assembler := NewAssembler(tempDir, NewDispatcher())

	// Test: a Python entry serializes imports, and empty name lists stay []
	pyPath := writeTestFile(t, tempDir, "mod.py", []byte("import sys\n"))
	pyEntry := assembler.Assemble(pyPath)

	raw, err := json.Marshal(pyEntry)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "imports")
	assert.Equal(t, []any{}, fields["functions"])
	assert.NotContains(t, fields, "includes")
	assert.NotContains(t, fields, "notebook")

	// Test: an unknown-language entry omits all conditional fields
	sqlPath := writeTestFile(t, tempDir, "q.sql", []byte("select 1;\n"))
	raw, err = json.Marshal(assembler.Assemble(sqlPath))
	require.NoError(t, err)

	fields = map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "imports")
	assert.Contains(t, fields, "num_lines")
	assert.Contains(t, fields, "language")
	assert.Equal(t, "unknown", fields["language"])
}
