package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/mcp"
)

var mcpRootFlag string

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server over the scanned catalog",
	Long: `Start a Model Context Protocol server that lets LLM-powered assistants
query the scanned catalog. Communicates via stdio (standard MCP transport).

Tools:
  catalog_stats  - file/function/class totals and language breakdown
  file_metadata  - the full record for one file
  symbol_search  - keyword search over symbol names

Example:
  repolens mcp --root ./working/myrepo`,
	RunE: runMCPServer,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpRootFlag, "root", ".", "Scan root whose catalog to serve")
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	root, err := resolveRoot([]string{mcpRootFlag})
	if err != nil {
		return err
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	entries, err := loadCatalogForRoot(root, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "RepoLens MCP Server\n")
	fmt.Fprintf(os.Stderr, "Catalog: %d files from %s\n\n", len(entries), root)

	server, err := mcp.NewServer(ctx, entries)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
