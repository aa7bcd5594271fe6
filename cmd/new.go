package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cedarbuild/cedar/internal/scaffolding"
)

var newCmd = &cobra.Command{
	Use:     "new <name>",
	Aliases: []string{"n"},
	Short:   "Create a new project directory and initialize it",
	Long: `Create a directory with the given name (relative or absolute) and
initialize it as a cedar project. The project name in the manifest defaults
to the directory's base name.

Examples:
  cedar new demo                  # ./demo
  cedar new tools/parser          # nested path, created as needed
  cedar new demo --git            # also initialize a git repository`,
	Args: cobra.ExactArgs(1),
	RunE: runNewCmd,
}

var newGit bool

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().BoolVarP(&newGit, "git", "g", false, "Initialize a git repository (default branch main)")
}

func runNewCmd(cmd *cobra.Command, args []string) error {
	dir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", args[0], err)
	}

	fmt.Printf("Creating %s (%s)\n", filepath.Base(dir), dir)

	if err := scaffolding.NewGenerator().Generate(dir, scaffolding.Options{Git: newGit}); err != nil {
		return err
	}

	fmt.Println("Finished")
	return nil
}
