// Package scanner discovers compilable files under a project directory.
//
// Discovery is a depth-first recursive walk: subdirectories are descended
// into and their files appended in place, leaf files are appended directly.
// The result is recomputed on every build and never cached. Enumeration uses
// os.ReadDir, so the order is deterministic (lexical per directory), though
// callers must not rely on a particular order. Symbolic links are reported
// as plain files and never followed into, so a link cycle cannot hang a
// build.
package scanner

import (
	"os"
	"path/filepath"

	"github.com/cedarbuild/cedar/internal/errors"
)

// Discover returns every file under dir at any depth. Directories themselves
// are excluded. An unreadable directory fails the whole discovery with a
// wrapped I/O error; no partial result is returned.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewIOError("failed to read directory", err).WithPath(dir)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			sub, err := Discover(path)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}

		files = append(files, path)
	}

	return files, nil
}
