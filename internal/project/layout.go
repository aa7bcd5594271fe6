// Package project models the conventional on-disk layout of a cedar project.
package project

import (
	"os"
	"path/filepath"

	"github.com/cedarbuild/cedar/internal/errors"
	"github.com/cedarbuild/cedar/internal/manifest"
)

// Conventional directory names under a project root.
const (
	SrcDirName     = "src"
	IncludeDirName = "include"
	BuildDirName   = "build"
)

// Layout holds the resolved paths of a project root's required children.
// The build pipeline never writes outside BuildDir.
type Layout struct {
	Root         string
	ManifestPath string
	SrcDir       string
	IncludeDir   string
	BuildDir     string
}

// NewLayout resolves the conventional paths under root.
func NewLayout(root string) Layout {
	return Layout{
		Root:         root,
		ManifestPath: filepath.Join(root, manifest.FileName),
		SrcDir:       filepath.Join(root, SrcDirName),
		IncludeDir:   filepath.Join(root, IncludeDirName),
		BuildDir:     filepath.Join(root, BuildDirName),
	}
}

// OutputPath returns where the output binary for the given project name is
// written.
func (l Layout) OutputPath(name string) string {
	return filepath.Join(l.BuildDir, name)
}

// Validate checks that the manifest file and the src, include, and build
// directories all exist under the root. It runs before any parsing or
// discovery so a broken layout is reported before other work starts. The
// first missing entry is identified in the returned error.
func (l Layout) Validate() error {
	for _, path := range []string{l.ManifestPath, l.SrcDir, l.IncludeDir, l.BuildDir} {
		if _, err := os.Stat(path); err != nil {
			return errors.NewInvalidDirectory(path)
		}
	}

	return nil
}
