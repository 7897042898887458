package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/repolens/repolens/internal/scan"
)

// ReadCatalog loads a serialized catalog artifact back into entries. The
// search, graph, docgen, and MCP layers all consume catalogs this way.
func ReadCatalog(path string) ([]scan.CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var entries []scan.CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	return entries, nil
}

// DefaultCatalogPath returns where a scan of rootDir writes its catalog.
func DefaultCatalogPath(rootDir string) string {
	return filepath.Join(rootDir, OutputDirName, CatalogFileName)
}
