package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/stage"
)

var stageDestFlag string

// stageCmd represents the stage command
var stageCmd = &cobra.Command{
	Use:   "stage <repository-dir>",
	Short: "Copy a repository's code files into a clean working tree",
	Long: `Stage walks a fetched repository and copies every file the code-file
classifier accepts into <working-root>/<repo-name>/, preserving relative
paths. Binary assets, media, and unclassifiable files are left behind.

Examples:
  repolens stage ./repos/widgets_repo_1
  repolens stage ./repos/widgets_repo_1 --dest ./working`,
	Args: cobra.ExactArgs(1),
	RunE: runStage,
}

func init() {
	rootCmd.AddCommand(stageCmd)
	stageCmd.Flags().StringVar(&stageDestFlag, "dest", "working", "Working root the code files are copied under")
}

func runStage(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	result, err := stage.NewStager().Stage(ctx, args[0], stageDestFlag)
	if err != nil {
		return fmt.Errorf("staging failed: %w", err)
	}

	fmt.Printf("Code files copied to %s (%d copied, %d skipped)\n",
		result.DestRoot, result.Copied, result.Skipped)
	return nil
}
