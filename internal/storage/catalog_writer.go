package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/repolens/repolens/internal/scan"
)

// OutputDirName is the directory under the scan root where artifacts land.
const OutputDirName = ".repolens"

// CatalogFileName is the serialized catalog artifact.
const CatalogFileName = "catalog.json"

// CatalogWriter persists scan artifacts using the temp → rename pattern, so
// an interrupted run never leaves a half-written catalog behind.
type CatalogWriter struct {
	outputDir string
	tempDir   string
}

// NewCatalogWriter creates a writer rooted at outputDir.
func NewCatalogWriter(outputDir string) (*CatalogWriter, error) {
	tempDir := filepath.Join(outputDir, ".tmp")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Clean up stale temp files
	if err := os.RemoveAll(tempDir); err != nil {
		return nil, fmt.Errorf("failed to clean temp directory: %w", err)
	}

	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &CatalogWriter{
		outputDir: outputDir,
		tempDir:   tempDir,
	}, nil
}

// WriteCatalog serializes the catalog entries as a machine-indented JSON
// array and writes them atomically. Returns the final artifact path.
func (w *CatalogWriter) WriteCatalog(catalog *scan.Catalog) (string, error) {
	data, err := json.MarshalIndent(catalog.Entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal catalog: %w", err)
	}

	return w.WriteFile(CatalogFileName, data)
}

// WriteFile writes one artifact atomically under the output directory.
func (w *CatalogWriter) WriteFile(filename string, data []byte) (string, error) {
	tempPath := filepath.Join(w.tempDir, filename)
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	// Rename to final location (atomic operation)
	finalPath := filepath.Join(w.outputDir, filename)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to rename temp file: %w", err)
	}

	return finalPath, nil
}

// DefaultOutputDir returns the artifact directory for a scan of rootDir.
func DefaultOutputDir(rootDir string) string {
	return filepath.Join(rootDir, OutputDirName)
}
