package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/docgen"
	"github.com/repolens/repolens/internal/storage"
)

var (
	docgenRootFlag        string
	docgenOutputFlag      string
	docgenInstructionFlag string
)

// docgenCmd represents the docgen command
var docgenCmd = &cobra.Command{
	Use:   "docgen",
	Short: "Generate Markdown documentation from the scanned catalog",
	Long: `Docgen renders the catalog into a bounded prompt and asks an OpenAI
model to produce repository documentation grounded strictly in the
extracted metadata. Requires OPENAI_API_KEY.

Examples:
  repolens docgen
  repolens docgen --output docs/OVERVIEW.md
  repolens docgen --instructions ./instruction.txt`,
	RunE: runDocgen,
}

func init() {
	rootCmd.AddCommand(docgenCmd)
	docgenCmd.Flags().StringVar(&docgenRootFlag, "root", ".", "Scan root whose catalog to document")
	docgenCmd.Flags().StringVar(&docgenOutputFlag, "output", "DOCUMENTATION.md", "Output file name under the artifact directory")
	docgenCmd.Flags().StringVar(&docgenInstructionFlag, "instructions", "", "Instruction file overriding the built-in system prompt")
}

func runDocgen(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	root, err := resolveRoot([]string{docgenRootFlag})
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

	instructionFile := cfg.Docgen.InstructionFile
	if docgenInstructionFlag != "" {
		instructionFile = docgenInstructionFlag
	}
	instructions, err := docgen.LoadInstructions(instructionFile)
	if err != nil {
		return err
	}

	client, err := docgen.NewOpenAIClient(docgen.OpenAIConfig{
		APIKey:          cfg.OpenAIAPIKey,
		BaseURL:         cfg.Docgen.BaseURL,
		Model:           cfg.Docgen.Model,
		MaxOutputTokens: cfg.Docgen.MaxOutputTokens,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Generating documentation for %d files with %s...\n", len(entries), cfg.Docgen.Model)

	doc, err := docgen.NewGenerator(client, cfg.Docgen.MaxInputBytes).Generate(ctx, entries, instructions)
	if err != nil {
		return err
	}

	writer, err := storage.NewCatalogWriter(filepath.Join(root, cfg.Scan.OutputDir))
	if err != nil {
		return fmt.Errorf("failed to create writer: %w", err)
	}

	path, err := writer.WriteFile(docgenOutputFlag, []byte(doc))
	if err != nil {
		return fmt.Errorf("failed to write documentation: %w", err)
	}

	fmt.Printf("Documentation written to %s\n", path)
	return nil
}
