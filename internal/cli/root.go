package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "repolens",
	Short: "RepoLens - repository metadata extraction",
	Long: `RepoLens extracts structural metadata from heterogeneous codebases:
functions, classes, imports, and file statistics, without a compiler front
end per language.

Typical workflow:
  repolens fetch https://github.com/owner/repo   # acquire a repository
  repolens stage ./repos/repo_repo_1             # copy out the code files
  repolens scan ./working/repo                   # build the metadata catalog
  repolens search "http client"                  # query the catalog
  repolens docgen                                # generate documentation`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/repolens.yml)")
}
