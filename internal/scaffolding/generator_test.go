package scaffolding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarbuild/cedar/internal/manifest"
	"github.com/cedarbuild/cedar/internal/project"
)

func TestGenerateCreatesValidProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "myproj")

	require.NoError(t, NewGenerator().Generate(dir, Options{}))

	// The generated root must pass the same layout validation the build
	// pipeline applies.
	require.NoError(t, project.NewLayout(dir).Validate())

	m, err := manifest.Load(filepath.Join(dir, manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "myproj", m.Meta.Name)
	assert.Equal(t, "0.1.0", m.Meta.Version)
	assert.Equal(t, "gcc", m.Build.Compiler)

	assert.FileExists(t, filepath.Join(dir, "src", "main.c"))
	assert.FileExists(t, filepath.Join(dir, ".gitignore"))
	assert.FileExists(t, filepath.Join(dir, ".cedar.yml"))
}

func TestGenerateHonorsOptions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "other")

	require.NoError(t, NewGenerator().Generate(dir, Options{
		Name:     "renamed",
		Version:  "2.0.0",
		Compiler: "gcc",
		CFlags:   []string{"-Wall", "-O2"},
	}))

	m, err := manifest.Load(filepath.Join(dir, manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "renamed", m.Meta.Name)
	assert.Equal(t, "2.0.0", m.Meta.Version)
	assert.Equal(t, []string{"-Wall", "-O2"}, m.Build.CFlags)
}

func TestGenerateStarterProgramMentionsProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")

	require.NoError(t, NewGenerator().Generate(dir, Options{}))

	src, err := os.ReadFile(filepath.Join(dir, "src", "main.c"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "Hello from hello!")
}

func TestGenerateRefusesExistingManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.FileName), []byte("[meta]\n"), 0644))

	err := NewGenerator().Generate(dir, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite")
}

func TestGenerateWithGit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "repo")

	require.NoError(t, NewGenerator().Generate(dir, Options{Git: true}))

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)

	head, err := repo.Reference("HEAD", false)
	require.NoError(t, err)
	assert.Equal(t, "refs/heads/main", head.Target().String())
}

func TestGenerateWithoutGit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "norepo")

	require.NoError(t, NewGenerator().Generate(dir, Options{}))

	_, err := git.PlainOpen(dir)
	assert.ErrorIs(t, err, git.ErrRepositoryNotExists)
}
