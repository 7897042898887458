package cli

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/scan"
	"github.com/repolens/repolens/internal/storage"
	"github.com/repolens/repolens/internal/watch"
)

var (
	scanQuietFlag bool
	scanWatchFlag bool
	scanDBFlag    string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory tree and build the metadata catalog",
	Long: `Scan walks a directory tree, classifies each file, extracts functions,
classes, and import references per language, and writes the catalog as a
JSON array under the output directory.

Examples:
  # Scan the current directory
  repolens scan

  # Scan a specific directory without progress output
  repolens scan ./working/myrepo --quiet

  # Also persist the catalog into SQLite
  repolens scan --db .repolens/catalog.db

  # Keep rescanning as files change
  repolens scan --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&scanQuietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	scanCmd.Flags().BoolVarP(&scanWatchFlag, "watch", "w", false, "Watch for file changes and rescan")
	scanCmd.Flags().StringVar(&scanDBFlag, "db", "", "Also write the catalog to a SQLite database at this path")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	scanner, err := scan.NewWithProgress(&scan.Config{
		RootDir:        root,
		IgnorePatterns: cfg.Scan.Ignore,
	}, NewCLIProgressReporter(scanQuietFlag))
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	writer, err := storage.NewCatalogWriter(filepath.Join(root, cfg.Scan.OutputDir))
	if err != nil {
		return fmt.Errorf("failed to create catalog writer: %w", err)
	}

	if scanWatchFlag {
		return runScanWatch(ctx, cfg, scanner, writer, root)
	}

	catalog, err := scanner.Scan(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("scan cancelled")
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	return persistCatalog(catalog, writer, scanQuietFlag)
}

// runScanWatch performs an initial cached scan, then rescans on every
// debounced change batch until cancelled.
func runScanWatch(ctx context.Context, cfg *config.Config, scanner scan.Scanner, writer *storage.CatalogWriter, root string) error {
	cache, err := scan.NewExtractionCache(cfg.Scan.CacheCapacity)
	if err != nil {
		return err
	}
	defer cache.Close()

	rescan := func() error {
		catalog, err := scanner.ScanWithCache(ctx, cache)
		if err != nil {
			return err
		}
		return persistCatalog(catalog, writer, scanQuietFlag)
	}

	if err := rescan(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("scan cancelled")
		}
		return fmt.Errorf("initial scan failed: %w", err)
	}

	watcher, err := watch.New(root, []string{".git", "node_modules", cfg.Scan.OutputDir})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	changes := make(chan []string, 10)
	if err := watcher.Start(ctx, func(files []string) {
		changes <- files
	}); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	if !scanQuietFlag {
		log.Println("Watching for changes (Ctrl+C to stop)...")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case files := <-changes:
			for _, file := range files {
				cache.Invalidate(file)
			}
			if !scanQuietFlag {
				log.Printf("%d file(s) changed, rescanning...", len(files))
			}
			if err := rescan(); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Printf("Warning: rescan failed: %v", err)
			}
		}
	}
}

// persistCatalog writes the JSON artifact and, with --db, the SQLite rows.
func persistCatalog(catalog *scan.Catalog, writer *storage.CatalogWriter, quiet bool) error {
	path, err := writer.WriteCatalog(catalog)
	if err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if !quiet {
		fmt.Printf("Catalog written to %s\n", path)
	}

	if scanDBFlag == "" {
		return nil
	}

	db, err := storage.OpenDatabase(scanDBFlag)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := storage.NewCatalogStore(db).SaveCatalog(catalog); err != nil {
		return fmt.Errorf("failed to save catalog to database: %w", err)
	}
	if !quiet {
		fmt.Printf("Catalog saved to database %s\n", scanDBFlag)
	}

	return nil
}
