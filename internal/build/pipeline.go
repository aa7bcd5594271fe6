// Package build sequences the cedar build pipeline: layout validation,
// manifest loading, source discovery, command assembly, and the compiler
// process itself.
//
// The pipeline is strictly linear. Each stage either succeeds and hands its
// output to the next, or fails and ends the build with a typed error from
// internal/errors. There are no retries and no recovery; presentation of
// failures belongs to the caller.
package build

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	cedarerrors "github.com/cedarbuild/cedar/internal/errors"
	"github.com/cedarbuild/cedar/internal/logging"
	"github.com/cedarbuild/cedar/internal/manifest"
	"github.com/cedarbuild/cedar/internal/project"
	"github.com/cedarbuild/cedar/internal/scanner"
	"github.com/cedarbuild/cedar/internal/toolchain"
)

// Result describes one completed build.
type Result struct {
	Manifest     *manifest.Manifest
	SourceFiles  []string
	IncludeFiles []string
	Invocation   toolchain.Invocation
	// ExitCode is the compiler's exit status. A non-zero exit does not fail
	// the pipeline; callers decide how to present it.
	ExitCode int
	// Duration is wall-clock time from pipeline entry to compiler exit.
	Duration time.Duration
}

// Pipeline runs builds against explicit project roots. It holds no state
// between runs; every build validates, parses, and discovers fresh.
type Pipeline struct {
	logger logging.Logger
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger logging.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithOutput redirects the compiler child process output. The pipeline never
// captures compiler output; it stays connected to these writers.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(p *Pipeline) {
		p.stdout = stdout
		p.stderr = stderr
	}
}

// NewPipeline creates a build pipeline. By default compiler output goes to
// the process's own stdout/stderr and logging is disabled.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: logging.NopLogger{},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithComponent("build")

	return p
}

// Run executes one build of the project at root. The root is always explicit;
// resolving "current directory" is the caller's job. The context is passed to
// the compiler process, so a caller-supplied deadline or cancellation kills a
// hung compiler; with context.Background() the pipeline waits indefinitely.
func (p *Pipeline) Run(ctx context.Context, root string) (*Result, error) {
	start := time.Now()

	layout := project.NewLayout(root)
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	p.logger.Debug(ctx, "project layout validated", "root", root)

	m, err := manifest.Load(layout.ManifestPath)
	if err != nil {
		return nil, err
	}
	p.logger.Debug(ctx, "manifest parsed",
		"name", m.Meta.Name, "version", m.Meta.Version, "compiler", m.Build.Compiler)

	srcFiles, err := scanner.Discover(layout.SrcDir)
	if err != nil {
		return nil, err
	}
	includeFiles, err := scanner.Discover(layout.IncludeDir)
	if err != nil {
		return nil, err
	}
	p.logger.Debug(ctx, "sources discovered",
		"src", len(srcFiles), "include", len(includeFiles))

	inv, err := toolchain.BuildInvocation(m.Build.Compiler,
		srcFiles, includeFiles, m.Build.CFlags, layout.OutputPath(m.Meta.Name))
	if err != nil {
		return nil, err
	}

	exitCode, err := p.spawn(ctx, inv)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Manifest:     m,
		SourceFiles:  srcFiles,
		IncludeFiles: includeFiles,
		Invocation:   inv,
		ExitCode:     exitCode,
		Duration:     time.Since(start),
	}
	p.logger.Info(ctx, "build finished",
		"name", m.Meta.Name, "exit_code", exitCode, "duration", result.Duration)

	return result, nil
}

// spawn starts the compiler and blocks until it exits, returning its exit
// status. A compiler that cannot be started is a recoverable spawn error,
// never a panic.
func (p *Pipeline) spawn(ctx context.Context, inv toolchain.Invocation) (int, error) {
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr

	if err := cmd.Start(); err != nil {
		return 0, cedarerrors.NewProcessSpawnError(inv.Program, err)
	}
	p.logger.Debug(ctx, "compiler spawned", "program", inv.Program, "args", len(inv.Args))

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, cedarerrors.NewProcessSpawnError(inv.Program, err)
	}

	return 0, nil
}
