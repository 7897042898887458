// Package mcp exposes a scanned catalog to MCP clients over stdio. Three
// read-only tools: catalog statistics, per-file metadata lookup, and symbol
// search backed by the keyword index.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/repolens/repolens/internal/scan"
	"github.com/repolens/repolens/internal/search"
)

// Server manages the MCP server lifecycle over one loaded catalog.
type Server struct {
	entries  []scan.CatalogEntry
	searcher *search.Coordinator
	mcp      *server.MCPServer
}

// NewServer builds the keyword index for entries and registers the catalog
// tools.
func NewServer(ctx context.Context, entries []scan.CatalogEntry) (*Server, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog is empty: run a scan first")
	}

	searcher, err := search.NewCoordinator(ctx, entries, search.CoordinatorConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"repolens-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	AddCatalogStatsTool(mcpServer, entries)
	AddFileMetadataTool(mcpServer, entries)
	AddSymbolSearchTool(mcpServer, searcher)

	return &Server{
		entries:  entries,
		searcher: searcher,
		mcp:      mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the search index.
func (s *Server) Close() error {
	if s.searcher != nil {
		return s.searcher.Close()
	}
	return nil
}
