package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the code-file classifier:
// - Name-only allow-list wins before any extension rule
// - Binary extension deny-list wins even when content has code markers
// - Allow-listed extensions require text content
// - Content-marker heuristic handles extensionless and unrecognized files
// - Extension lookups are case-insensitive

func writeTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestClassifier_NameOnlyAllowList(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	classifier := NewClassifier(DefaultTables())

	dockerfile := writeTestFile(t, tempDir, "Dockerfile", []byte("FROM alpine:3.20\n"))
	makefile := writeTestFile(t, tempDir, "Makefile", []byte("all:\n\ttrue\n"))

	isCode, ruleName := classifier.Classify(dockerfile)
	assert.True(t, isCode)
	assert.Equal(t, "name-only allow-list", ruleName)

	assert.True(t, classifier.IsCodeFile(makefile))
}

func TestClassifier_BinaryExtensionDenyListWinsOverMarkers(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	classifier := NewClassifier(DefaultTables())

	// Test: deny-listed extension rejects the file even though the content
	// is full of code markers
	path := writeTestFile(t, tempDir, "logo.png", []byte("function draw() { return 1; }\n"))

	isCode, ruleName := classifier.Classify(path)
	assert.False(t, isCode)
	assert.Equal(t, "binary extension deny-list", ruleName)

	// Test: the deny-list lookup lower-cases the extension first
	upper := writeTestFile(t, tempDir, "PHOTO.JPG", []byte("const x = 1;\n"))
	assert.False(t, classifier.IsCodeFile(upper))
}

func TestClassifier_CodeExtensionRequiresText(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	classifier := NewClassifier(DefaultTables())

	// Test: allow-listed extension with text content is code
	textPath := writeTestFile(t, tempDir, "config.json", []byte("{\"name\": \"demo\"}\n"))
	isCode, ruleName := classifier.Classify(textPath)
	assert.True(t, isCode)
	assert.Equal(t, "code extension allow-list", ruleName)

	// Test: allow-listed extension over binary content is rejected
	binaryPath := writeTestFile(t, tempDir, "mislabeled.py", []byte{'d', 'e', 'f', 0x00, 0x01})
	isCode, ruleName = classifier.Classify(binaryPath)
	assert.False(t, isCode)
	assert.Equal(t, "code extension allow-list", ruleName)
}

func TestClassifier_ContentMarkerHeuristic(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	classifier := NewClassifier(DefaultTables())

	// Test: shebang marks an extensionless file as code
	script := writeTestFile(t, tempDir, "run", []byte("#!/bin/sh\necho hi\n"))
	isCode, ruleName := classifier.Classify(script)
	assert.True(t, isCode)
	assert.Equal(t, "content markers", ruleName)

	// Test: marker keywords in an unrecognized extension
	unknownExt := writeTestFile(t, tempDir, "widget.xyz", []byte("console.log('hi')\n"))
	assert.True(t, classifier.IsCodeFile(unknownExt))

	// Test: plain prose has no markers
	prose := writeTestFile(t, tempDir, "notes", []byte("remember to water plants\nand call back tomorrow\n"))
	isCode, ruleName = classifier.Classify(prose)
	assert.False(t, isCode)
	assert.Equal(t, "content markers", ruleName)

	// Test: binary content skips the heuristic entirely
	binary := writeTestFile(t, tempDir, "blob", []byte{0x00, 'd', 'e', 'f', ' '})
	assert.False(t, classifier.IsCodeFile(binary))
}
