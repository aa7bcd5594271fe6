package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cedarerrors "github.com/cedarbuild/cedar/internal/errors"
	"github.com/cedarbuild/cedar/internal/manifest"
	"github.com/cedarbuild/cedar/internal/project"
)

const demoManifest = `
[meta]
name = "demo"
version = "0.1.0"

[build]
compiler = "gcc"
cflags = []
`

// scaffoldProject creates a complete project root with the given manifest and
// a single src/main.c.
func scaffoldProject(t *testing.T, manifestText string) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, manifest.FileName), []byte(manifestText), 0644))
	for _, dir := range []string{project.SrcDirName, project.IncludeDirName, project.BuildDirName} {
		require.NoError(t, os.Mkdir(filepath.Join(root, dir), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, project.SrcDirName, "main.c"),
		[]byte("int main(void) { return 0; }\n"), 0644))

	return root
}

// stubCompiler installs a fake gcc on PATH. The stub touches the path given
// after -o and exits with the given status.
func stubCompiler(t *testing.T, exitCode string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub compiler uses a shell script")
	}

	binDir := t.TempDir()
	script := `#!/bin/sh
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-o" ]; then out="$a"; fi
  prev="$a"
done
if [ -n "$out" ]; then : > "$out"; fi
exit ` + exitCode + `
`
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "gcc"), []byte(script), 0755))
	t.Setenv("PATH", binDir)
}

func TestRunSucceedsAndWritesOutput(t *testing.T) {
	stubCompiler(t, "0")
	root := scaffoldProject(t, demoManifest)

	result, err := NewPipeline().Run(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "demo", result.Manifest.Meta.Name)
	assert.Positive(t, result.Duration)
	assert.FileExists(t, filepath.Join(root, "build", "demo"))
}

func TestRunInvocationShape(t *testing.T) {
	stubCompiler(t, "0")
	root := scaffoldProject(t, `
[meta]
name = "demo"
version = "0.1.0"

[build]
compiler = "gcc"
cflags = ["-Wall", "-O2"]
`)
	require.NoError(t, os.WriteFile(filepath.Join(root, "include", "a.h"), []byte("#define A 1\n"), 0644))

	result, err := NewPipeline().Run(context.Background(), root)
	require.NoError(t, err)

	args := result.Invocation.Args
	require.GreaterOrEqual(t, len(args), 6)

	// Source files precede include files, cflags follow both in declared
	// order, and the output flag pair comes last.
	assert.Equal(t, filepath.Join(root, "src", "main.c"), args[0])
	assert.Equal(t, filepath.Join(root, "include", "a.h"), args[1])
	assert.Equal(t, []string{"-Wall", "-O2"}, args[2:4])
	assert.Equal(t, []string{"-o", filepath.Join(root, "build", "demo")}, args[len(args)-2:])
}

func TestRunMissingBuildDirFailsBeforeManifestRead(t *testing.T) {
	root := scaffoldProject(t, "this is not even toml {{{")
	require.NoError(t, os.Remove(filepath.Join(root, project.BuildDirName)))

	// The broken manifest would fail parsing, but the layout check runs
	// first, so the reported failure must be the missing directory.
	_, err := NewPipeline().Run(context.Background(), root)
	require.Error(t, err)
	assert.True(t, cedarerrors.IsInvalidDirectory(err))
}

func TestRunMissingLayoutEntries(t *testing.T) {
	for _, missing := range []string{manifest.FileName, project.SrcDirName, project.IncludeDirName, project.BuildDirName} {
		t.Run(missing, func(t *testing.T) {
			root := scaffoldProject(t, demoManifest)
			require.NoError(t, os.RemoveAll(filepath.Join(root, missing)))

			_, err := NewPipeline().Run(context.Background(), root)
			require.Error(t, err)
			assert.True(t, cedarerrors.IsInvalidDirectory(err))
		})
	}
}

func TestRunInvalidManifest(t *testing.T) {
	root := scaffoldProject(t, `
[meta]
version = "0.1.0"

[build]
compiler = "gcc"
`)

	_, err := NewPipeline().Run(context.Background(), root)
	require.Error(t, err)
	assert.True(t, cedarerrors.IsInvalidManifest(err))
}

func TestRunUnsupportedCompiler(t *testing.T) {
	root := scaffoldProject(t, `
[meta]
name = "demo"

[build]
compiler = "msvc"
`)

	_, err := NewPipeline().Run(context.Background(), root)
	require.Error(t, err)
	assert.True(t, cedarerrors.IsUnsupportedCompiler(err))
}

func TestRunCompilerNotOnPathIsSpawnFailure(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	root := scaffoldProject(t, demoManifest)

	_, err := NewPipeline().Run(context.Background(), root)
	require.Error(t, err)
	assert.True(t, cedarerrors.IsProcessSpawnError(err))
	assert.True(t, cedarerrors.IsRecoverable(err))
}

func TestRunNonZeroCompilerExitIsNotAPipelineError(t *testing.T) {
	stubCompiler(t, "3")
	root := scaffoldProject(t, demoManifest)

	result, err := NewPipeline().Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
}

func TestRunLeavesFilesystemUntouchedOnEarlyFailure(t *testing.T) {
	root := scaffoldProject(t, demoManifest)
	require.NoError(t, os.RemoveAll(filepath.Join(root, project.IncludeDirName)))

	_, err := NewPipeline().Run(context.Background(), root)
	require.Error(t, err)

	entries, readErr := os.ReadDir(filepath.Join(root, project.BuildDirName))
	require.NoError(t, readErr)
	assert.Empty(t, entries, "failed build must not write into build/")
}

func TestRunWithOutputWriters(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub compiler uses a shell script")
	}

	binDir := t.TempDir()
	script := `#!/bin/sh
echo "compiling things"
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-o" ]; then out="$a"; fi
  prev="$a"
done
if [ -n "$out" ]; then : > "$out"; fi
exit 0
`
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "gcc"), []byte(script), 0755))
	t.Setenv("PATH", binDir)

	root := scaffoldProject(t, demoManifest)

	var stdout, stderr bytes.Buffer
	pipeline := NewPipeline(WithOutput(&stdout, &stderr))

	_, err := pipeline.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "compiling things")
}
