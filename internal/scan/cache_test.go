package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionCache_RoundTrip(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := writeTestFile(t, tempDir, "a.py", []byte("def f():\n    pass\n"))

	cache, err := NewExtractionCache(128)
	require.NoError(t, err)
	defer cache.Close()

	entry := NewAssembler(tempDir, NewDispatcher()).Assemble(path)
	cache.Store(path, entry)

	got, ok := cache.Lookup(path)
	require.True(t, ok)
	assert.Equal(t, entry.RelativePath, got.RelativePath)
	assert.Equal(t, entry.Functions, got.Functions)
}

func TestExtractionCache_ModifiedFileMisses(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := writeTestFile(t, tempDir, "a.py", []byte("def f():\n    pass\n"))

	cache, err := NewExtractionCache(128)
	require.NoError(t, err)
	defer cache.Close()

	cache.Store(path, NewAssembler(tempDir, NewDispatcher()).Assemble(path))

	// Rewrite with different size so the fingerprint cannot collide even on
	// coarse modification-time resolution.
	require.NoError(t, os.WriteFile(path, []byte("def f():\n    pass\n\ndef g():\n    pass\n"), 0644))

	_, ok := cache.Lookup(path)
	assert.False(t, ok)
}

func TestExtractionCache_InvalidateDrops(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := writeTestFile(t, tempDir, "a.py", []byte("def f():\n    pass\n"))

	cache, err := NewExtractionCache(128)
	require.NoError(t, err)
	defer cache.Close()

	cache.Store(path, NewAssembler(tempDir, NewDispatcher()).Assemble(path))
	cache.Invalidate(path)

	_, ok := cache.Lookup(path)
	assert.False(t, ok)
}

func TestExtractionCache_MissingFileMisses(t *testing.T) {
	t.Parallel()

	cache, err := NewExtractionCache(128)
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.Lookup(filepath.Join(t.TempDir(), "never-stored.py"))
	assert.False(t, ok)
}
