package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/cedarbuild/cedar/internal/build"
	"github.com/cedarbuild/cedar/internal/config"
	"github.com/cedarbuild/cedar/internal/project"
)

var runCmd = &cobra.Command{
	Use:     "run [path]",
	Aliases: []string{"r"},
	Short:   "Compile the project then run the produced binary",
	Long: `Compile the project at the given path (default: current directory) and,
when compilation succeeds, execute build/<name> with its output attached to
this terminal. The program's exit status becomes cedar's exit status.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRunCmd,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pipeline := build.NewPipeline(build.WithLogger(newLogger(cfg)))

	result, err := pipeline.Run(cmd.Context(), root)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("compiler exited with status %d, not running", result.ExitCode)
	}

	binary := project.NewLayout(root).OutputPath(result.Manifest.Meta.Name)

	child := exec.CommandContext(cmd.Context(), binary)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %s: %w", binary, err)
	}

	return nil
}
