package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/fetch"
)

var (
	fetchDestFlag  string
	fetchDepthFlag int
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <repository-url>",
	Short: "Download a repository for scanning",
	Long: `Fetch clones a repository into the destination directory. For GitHub
URLs, a failed clone falls back to downloading the branch ZIP (main, then
master) - no history, just files.

Each fetch lands in its own directory (repo_repo_1, repo_repo_2, ...) so
repeated fetches never overwrite each other.

Examples:
  repolens fetch https://github.com/owner/repo
  repolens fetch https://github.com/owner/repo --dest ./mirrors --depth 0`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchDestFlag, "dest", "", "Destination directory (default from config: repos)")
	fetchCmd.Flags().IntVar(&fetchDepthFlag, "depth", -1, "Clone depth; 1 = shallow, 0 = full (default from config)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	root, err := resolveRoot(nil)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dest := cfg.Fetch.DestDir
	if fetchDestFlag != "" {
		dest = fetchDestFlag
	}
	depth := cfg.Fetch.Depth
	if fetchDepthFlag >= 0 {
		depth = fetchDepthFlag
	}

	fetcher := fetch.NewFetcher(dest, depth)
	dir, err := fetcher.Fetch(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	fmt.Printf("Repository downloaded to %s\n", dir)
	return nil
}
