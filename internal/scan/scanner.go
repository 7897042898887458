package scan

import (
	"context"
	"fmt"
	"path/filepath"
)

// Config contains configuration for a scan.
type Config struct {
	// Root directory of the codebase to scan
	RootDir string

	// Ignore patterns applied during discovery (glob syntax)
	IgnorePatterns []string
}

// Scanner runs the full pipeline over a directory tree: discover files,
// classify them, extract symbols, and assemble catalog entries.
type Scanner interface {
	// Scan processes all files under the configured root and returns the
	// catalog. ctx is checked between files so cancellation stops the run
	// promptly; per-file failures never abort it.
	Scan(ctx context.Context) (*Catalog, error)

	// ScanFile classifies and assembles a single file. The second result is
	// false when the classifier rejects the file.
	ScanFile(path string) (CatalogEntry, bool)

	// ScanWithCache is Scan with per-file memoization: files whose size and
	// mtime fingerprint match a cached entry skip re-extraction. Used by
	// watch mode; a one-shot scan passes no cache and stays stateless.
	ScanWithCache(ctx context.Context, cache *ExtractionCache) (*Catalog, error)
}

// scanner implements the Scanner interface.
type scanner struct {
	config     *Config
	discovery  *FileDiscovery
	classifier *Classifier
	assembler  *Assembler
	progress   ProgressReporter
}

// New creates a scanner with silent progress reporting.
func New(config *Config) (Scanner, error) {
	return NewWithProgress(config, &NoOpProgressReporter{})
}

// NewWithProgress creates a scanner that reports progress to the given
// reporter.
func NewWithProgress(config *Config, progress ProgressReporter) (Scanner, error) {
	if config.RootDir == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	discovery, err := NewFileDiscovery(config.RootDir, config.IgnorePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to create file discovery: %w", err)
	}

	return &scanner{
		config:     config,
		discovery:  discovery,
		classifier: NewClassifier(DefaultTables()),
		assembler:  NewAssembler(config.RootDir, NewDispatcher()),
		progress:   progress,
	}, nil
}

// Scan discovers, classifies, and extracts every file under the root. Files
// are processed one at a time; each file is fully assembled before the next
// begins, so catalog order equals traversal order.
func (s *scanner) Scan(ctx context.Context) (*Catalog, error) {
	return s.ScanWithCache(ctx, nil)
}

// ScanWithCache runs the same pipeline, consulting cache (when non-nil)
// before extracting each file.
func (s *scanner) ScanWithCache(ctx context.Context, cache *ExtractionCache) (*Catalog, error) {
	s.progress.OnDiscoveryStart()
	files, err := s.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	s.progress.OnDiscoveryComplete(len(files))

	catalog := NewCatalog(s.config.RootDir)

	s.progress.OnScanStart(len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if cache != nil {
			if entry, ok := cache.Lookup(path); ok {
				catalog.Append(entry)
				s.progress.OnFileScanned(filepath.Base(path))
				continue
			}
		}

		if entry, ok := s.ScanFile(path); ok {
			catalog.Append(entry)
			if cache != nil {
				cache.Store(path, entry)
			}
		}
		s.progress.OnFileScanned(filepath.Base(path))
	}
	s.progress.OnScanComplete(catalog.Len())

	return catalog, nil
}

// ScanFile classifies and assembles a single file.
func (s *scanner) ScanFile(path string) (CatalogEntry, bool) {
	if !s.classifier.IsCodeFile(path) {
		return CatalogEntry{}, false
	}
	return s.assembler.Assemble(path), true
}
