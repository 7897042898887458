package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/scan"
	"github.com/repolens/repolens/internal/storage"
)

// signalContext returns a context cancelled by SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	return ctx, cancel
}

// resolveRoot returns the absolute scan root: the first positional argument
// if present, else the working directory.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root directory: %w", err)
	}
	return abs, nil
}

// loadConfig loads configuration for root, honoring the global --config
// flag.
func loadConfig(root string) (*config.Config, error) {
	if cfgFile != "" {
		return config.NewLoaderWithFile(root, cfgFile).Load()
	}
	return config.LoadFromDir(root)
}

// loadCatalogForRoot reads the catalog a previous scan of root produced.
func loadCatalogForRoot(root string, cfg *config.Config) ([]scan.CatalogEntry, error) {
	path := filepath.Join(root, cfg.Scan.OutputDir, storage.CatalogFileName)
	entries, err := storage.ReadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("no catalog at %s (run 'repolens scan' first): %w", path, err)
	}
	return entries, nil
}
