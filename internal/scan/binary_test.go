package scan

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProbablyText_NullByteMeansBinary(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	text := writeTestFile(t, tempDir, "plain.txt", []byte("hello world\n"))
	assert.True(t, IsProbablyText(text))

	binary := writeTestFile(t, tempDir, "blob.bin", []byte{'a', 'b', 0x00, 'c'})
	assert.False(t, IsProbablyText(binary))
}

func TestIsProbablyText_NullBeyondSampleIgnored(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	// Test: the check samples only the first 1024 bytes, so a null byte
	// after that window does not flip the verdict
	content := append(bytes.Repeat([]byte{'a'}, binarySampleSize), 0x00)
	path := writeTestFile(t, tempDir, "tail-null.txt", content)
	assert.True(t, IsProbablyText(path))
}

func TestIsProbablyText_MissingFileFailsClosed(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	assert.False(t, IsProbablyText(missing))
}
