package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cedarbuild/cedar/internal/scaffolding"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"i"},
	Short:   "Initialize a project in the current directory",
	Long: `Initialize a cedar project in the current working directory: the src/,
include/, and build/ directories, a default cedar.toml manifest, a starter
src/main.c, and a .cedar.yml tool config.

Examples:
  cedar init                      # Initialize here
  cedar init --git                # Also initialize a git repository`,
	Args: cobra.NoArgs,
	RunE: runInitCmd,
}

var initGit bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initGit, "git", "g", false, "Initialize a git repository (default branch main)")
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	dir, err := resolveRoot(nil)
	if err != nil {
		return err
	}

	fmt.Printf("Creating cedar project in %s\n", dir)

	if err := scaffolding.NewGenerator().Generate(dir, scaffolding.Options{Git: initGit}); err != nil {
		return err
	}

	fmt.Println("Finished")
	return nil
}
