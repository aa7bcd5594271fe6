// Package cmd provides the command-line interface for cedar.
//
// Configuration System:
//
//	Tool settings are resolved from multiple sources with clear precedence:
//	1. Command-line flags (--config, --log-level) - highest priority
//	2. Individual environment variables (CEDAR_LOG_LEVEL, etc.)
//	3. Configuration file (.cedar.yml in the working directory) - lowest
//
// Tool configuration only covers how cedar behaves (logging, watch). What a
// project builds is described solely by its cedar.toml manifest.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cedarbuild/cedar/internal/config"
	"github.com/cedarbuild/cedar/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cedar",
	Short: "A C project manager",
	Long: `Cedar is a project manager for C: it scaffolds conventional project
layouts and drives the compiler toolchain declared in the project manifest.

A cedar project is a directory containing a cedar.toml manifest and the
conventional src/, include/, and build/ directories. Building validates the
layout, parses the manifest, discovers every file under src/ and include/,
and invokes the configured compiler with the output written to build/.

Quick Start:
  cedar init                      Initialize a project in the current directory
  cedar new my-project            Create and initialize a new project directory
  cedar build                     Compile the project
  cedar run                       Compile then run the produced binary
  cedar watch                     Rebuild automatically on source changes`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .cedar.yml)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig wires viper to the optional .cedar.yml tool config and CEDAR_
// environment variables. A missing config file is not an error; defaults
// apply.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cedar")
	}

	viper.SetEnvPrefix("CEDAR")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}

// newLogger builds the CLI logger from the resolved tool configuration.
func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
}

// resolveRoot turns an optional positional path argument into an absolute
// project root. The current directory is resolved exactly once, here at the
// boundary; nothing below the CLI consults the working directory.
func resolveRoot(args []string) (string, error) {
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to resolve path %q: %w", args[0], err)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve current directory: %w", err)
	}

	return cwd, nil
}
