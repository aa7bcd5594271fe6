// Package scaffolding creates the initial skeleton of a cedar project: the
// conventional directories, a default manifest, a starter source file, and
// optionally a git repository. The build pipeline only ever consumes a root
// this package (or the user) has already populated.
package scaffolding

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/cedarbuild/cedar/internal/config"
	"github.com/cedarbuild/cedar/internal/manifest"
	"github.com/cedarbuild/cedar/internal/project"
)

// Options control project generation.
type Options struct {
	// Name is the project name; defaults to the target directory's base name.
	Name     string
	Version  string
	Compiler string
	CFlags   []string
	// Git initializes a repository with default branch main.
	Git bool
}

// Generator scaffolds new cedar projects.
type Generator struct{}

// NewGenerator creates a project generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate populates dir as a cedar project. The directory is created if it
// does not exist. A directory that already contains a manifest is refused
// rather than overwritten.
func (g *Generator) Generate(dir string, opts Options) error {
	if opts.Name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("failed to resolve project directory: %w", err)
		}
		opts.Name = filepath.Base(abs)
	}
	if opts.Version == "" {
		opts.Version = "0.1.0"
	}
	if opts.Compiler == "" {
		opts.Compiler = "gcc"
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	manifestPath := filepath.Join(dir, manifest.FileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists in %s, refusing to overwrite", manifest.FileName, dir)
	}

	for _, sub := range []string{project.SrcDirName, project.IncludeDirName, project.BuildDirName} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", sub, err)
		}
	}

	if err := renderTo(manifestPath, manifestTemplate, opts); err != nil {
		return err
	}
	if err := renderTo(filepath.Join(dir, project.SrcDirName, "main.c"), mainTemplate, opts); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignoreContent), 0644); err != nil {
		return fmt.Errorf("failed to write .gitignore: %w", err)
	}
	if err := config.Default().Write(filepath.Join(dir, ".cedar.yml")); err != nil {
		return err
	}

	if opts.Git {
		if err := initRepository(dir); err != nil {
			return err
		}
	}

	return nil
}

func renderTo(path string, tmpl *template.Template, opts Options) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, opts); err != nil {
		return fmt.Errorf("failed to render %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	return nil
}

// initRepository creates a git repository with main as the default branch,
// matching what `git init -b main` would do. Already-initialized directories
// are left alone.
func initRepository(dir string) error {
	_, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.Main,
		},
	})
	if err != nil && err != git.ErrRepositoryAlreadyExists {
		return fmt.Errorf("failed to initialize git repository: %w", err)
	}

	return nil
}
