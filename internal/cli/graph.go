package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/graph"
)

var (
	graphRootFlag string
	graphDotFlag  string
	graphTopFlag  int
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build the import graph from the scanned catalog",
	Long: `Graph builds a directed graph from the catalog's import references:
file vertices, module vertices, and one edge per file→module import. It
prints the most-imported modules and can export the graph as Graphviz DOT.

Examples:
  repolens graph
  repolens graph --top 20
  repolens graph --dot imports.dot`,
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringVar(&graphRootFlag, "root", ".", "Scan root whose catalog to use")
	graphCmd.Flags().StringVar(&graphDotFlag, "dot", "", "Write the graph in DOT format to this file")
	graphCmd.Flags().IntVar(&graphTopFlag, "top", 10, "Number of fan-in entries to print")
}

func runGraph(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot([]string{graphRootFlag})
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

	ig, err := graph.Build(entries)
	if err != nil {
		return fmt.Errorf("failed to build import graph: %w", err)
	}

	fmt.Printf("Import graph: %d vertices, %d edges\n", ig.Order(), ig.Size())

	stats := ig.ModuleFanIn()
	if len(stats) == 0 {
		fmt.Println("No import references in the catalog.")
	} else {
		limit := graphTopFlag
		if limit <= 0 || limit > len(stats) {
			limit = len(stats)
		}
		fmt.Println("Most imported modules:")
		for _, stat := range stats[:limit] {
			fmt.Printf("  %4d  %s\n", stat.FanIn, stat.Module)
		}
	}

	if graphDotFlag != "" {
		out, err := os.Create(graphDotFlag)
		if err != nil {
			return fmt.Errorf("failed to create DOT file: %w", err)
		}
		defer out.Close()

		if err := ig.WriteDOT(out); err != nil {
			return err
		}
		fmt.Printf("DOT graph written to %s\n", graphDotFlag)
	}

	return nil
}
