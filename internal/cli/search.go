package cli

import (
	"fmt"
	"strings"

	"github.com/philippgille/chromem-go"
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/search"
)

var (
	searchRootFlag     string
	searchLimitFlag    int
	searchLanguageFlag string
	searchSemanticFlag bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the scanned catalog",
	Long: `Search queries a previously scanned catalog. The default engine is a
keyword index over file paths and symbol names; --semantic switches to
vector search over per-file summaries (requires OPENAI_API_KEY).

Examples:
  repolens search "http client"
  repolens search UserRepository --language python --limit 5
  repolens search "where is authentication handled" --semantic`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchRootFlag, "root", ".", "Scan root whose catalog to query")
	searchCmd.Flags().IntVar(&searchLimitFlag, "limit", 20, "Maximum number of results")
	searchCmd.Flags().StringVar(&searchLanguageFlag, "language", "", "Restrict results to one language tag")
	searchCmd.Flags().BoolVar(&searchSemanticFlag, "semantic", false, "Use semantic search instead of the keyword index")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	root, err := resolveRoot([]string{searchRootFlag})
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

	coordinatorConfig := search.CoordinatorConfig{}
	engine := search.EngineKeyword
	if searchSemanticFlag {
		if cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("semantic search requires OPENAI_API_KEY")
		}
		coordinatorConfig.Embedder = chromem.NewEmbeddingFuncOpenAI(
			cfg.OpenAIAPIKey,
			chromem.EmbeddingModelOpenAI(cfg.Search.EmbeddingModel),
		)
		engine = search.EngineSemantic
	}

	coordinator, err := search.NewCoordinator(ctx, entries, coordinatorConfig)
	if err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}
	defer coordinator.Close()

	results, err := coordinator.Search(ctx, engine, args[0], &search.Options{
		Limit:    searchLimitFlag,
		Language: searchLanguageFlag,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%2d. %s  [%s]  score=%.3f\n", i+1, result.RelativePath, result.Language, result.Score)
		if len(result.Symbols) > 0 {
			fmt.Printf("    symbols: %s\n", strings.Join(result.Symbols, ", "))
		}
		if result.Detail != "" {
			fmt.Printf("    %s\n", result.Detail)
		}
	}

	return nil
}
