package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cedarerrors "github.com/cedarbuild/cedar/internal/errors"
	"github.com/cedarbuild/cedar/internal/manifest"
	"github.com/cedarbuild/cedar/internal/project"
)

func TestCommandsAreRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"init", "new", "build", "run", "watch", "version"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestResolveRootExplicitPath(t *testing.T) {
	root, err := resolveRoot([]string{"some/relative/dir"})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(root))
	assert.Equal(t, "dir", filepath.Base(root))
}

// chdir is a pre-Go 1.24 stand-in for t.Chdir.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestResolveRootDefaultsToCwd(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	root, err := resolveRoot(nil)
	require.NoError(t, err)

	// Symlinked temp dirs (macOS) make exact equality brittle; resolve both.
	wantResolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, wantResolved, gotResolved)
}

func TestInitThenLayoutValidates(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	initCmd.SetContext(context.Background())
	require.NoError(t, runInitCmd(initCmd, nil))

	assert.NoError(t, project.NewLayout(dir).Validate())

	m, err := manifest.Load(filepath.Join(dir, manifest.FileName))
	require.NoError(t, err)
	assert.NotEmpty(t, m.Meta.Name)
}

func TestNewCreatesProjectDirectory(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "fresh")

	newCmd.SetContext(context.Background())
	require.NoError(t, runNewCmd(newCmd, []string{target}))

	assert.NoError(t, project.NewLayout(target).Validate())

	m, err := manifest.Load(filepath.Join(target, manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "fresh", m.Meta.Name)
}

func TestBuildFailsCleanlyOutsideAProject(t *testing.T) {
	dir := t.TempDir()

	buildCmd.SetContext(context.Background())
	err := runBuildCmd(buildCmd, []string{dir})

	require.Error(t, err)
	assert.True(t, cedarerrors.IsInvalidDirectory(err))
}
