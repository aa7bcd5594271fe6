package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cedarbuild/cedar/internal/build"
	"github.com/cedarbuild/cedar/internal/config"
	"github.com/cedarbuild/cedar/internal/project"
	"github.com/cedarbuild/cedar/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch [path]",
	Aliases: []string{"w"},
	Short:   "Watch for source changes and rebuild",
	Long: `Watch the project's src/ and include/ trees and rebuild whenever a C
source or header changes. Changes are debounced so editor save bursts
trigger a single rebuild. Stop with Ctrl-C.

Examples:
  cedar watch                     # Watch the project in the current directory
  cedar watch ./examples/demo     # Watch a project at an explicit path`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatchCmd,
}

var watchVerbose bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Print each changed file")
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	layout := project.NewLayout(root)
	if err := layout.Validate(); err != nil {
		return err
	}

	pipeline := build.NewPipeline(build.WithLogger(newLogger(cfg)))

	fileWatcher, err := watcher.NewFileWatcher(cfg.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	fileWatcher.AddFilter(watcher.CSourceFilter)
	fileWatcher.AddFilter(watcher.IgnoreDirsFilter(cfg.Watch.Ignore...))

	rebuild := func() {
		result, err := pipeline.Run(cmd.Context(), root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
			return
		}
		if result.ExitCode != 0 {
			fmt.Fprintf(os.Stderr, "compiler exited with status %d\n", result.ExitCode)
			return
		}
		fmt.Printf("Finished %s v%s in %s\n",
			result.Manifest.Meta.Name,
			result.Manifest.Meta.Version,
			result.Duration.Round(time.Millisecond))
	}

	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) {
		if watchVerbose {
			for _, event := range events {
				fmt.Printf("%s: %s\n", event.Type, event.Path)
			}
		} else {
			fmt.Printf("%d file(s) changed\n", len(events))
		}
		rebuild()
	})

	for _, dir := range []string{layout.SrcDir, layout.IncludeDir} {
		if err := fileWatcher.AddRecursive(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	fileWatcher.Start(cmd.Context())

	fmt.Printf("Watching %s for changes\n", root)
	rebuild()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sig:
	case <-cmd.Context().Done():
	}

	fmt.Println("Stopping watch")
	return nil
}
