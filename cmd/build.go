package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cedarbuild/cedar/internal/build"
	"github.com/cedarbuild/cedar/internal/config"
)

var buildCmd = &cobra.Command{
	Use:     "build [path]",
	Aliases: []string{"b"},
	Short:   "Compile the project",
	Long: `Compile the project at the given path (default: current directory).

The build validates the project layout, parses cedar.toml, discovers every
file under src/ and include/, and invokes the manifest's compiler. The
output binary is written to build/<name>. Compiler output streams through
unchanged.

Examples:
  cedar build                     # Build the project in the current directory
  cedar build ./examples/demo     # Build a project at an explicit path`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuildCmd,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuildCmd(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pipeline := build.NewPipeline(build.WithLogger(newLogger(cfg)))

	fmt.Printf("Compiling project (%s)\n", root)

	result, err := pipeline.Run(cmd.Context(), root)
	if err != nil {
		return err
	}

	if result.ExitCode != 0 {
		// The pipeline succeeded (spawn + wait), but the compiler itself
		// rejected the code. Surface that without masking it as a cedar
		// failure.
		fmt.Fprintf(os.Stderr, "compiler exited with status %d\n", result.ExitCode)
		return fmt.Errorf("%s %s: compiler reported errors", result.Manifest.Meta.Name, result.Manifest.Meta.Version)
	}

	fmt.Printf("Finished %s v%s in %s\n",
		result.Manifest.Meta.Name,
		result.Manifest.Meta.Version,
		result.Duration.Round(time.Millisecond))

	return nil
}
