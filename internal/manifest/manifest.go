// Package manifest defines the typed project manifest and its parser.
//
// The manifest is the declarative cedar.toml at the project root. Parsing is
// total: a Manifest is either fully decoded and validated or an error is
// returned, never a partially populated value. A parsed Manifest is treated
// as immutable for the duration of a build.
package manifest

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/cedarbuild/cedar/internal/errors"
	"github.com/cedarbuild/cedar/internal/toolchain"
)

// FileName is the manifest file name expected at every project root.
const FileName = "cedar.toml"

// Manifest is the typed representation of a project's cedar.toml.
type Manifest struct {
	Meta  Meta  `toml:"meta" validate:"required"`
	Build Build `toml:"build" validate:"required"`
}

// Meta holds project metadata.
type Meta struct {
	// Name names the project and the output binary written into build/.
	Name string `toml:"name" validate:"required"`
	// Version is displayed, not semantically validated.
	Version string `toml:"version"`
}

// Build holds the build settings.
type Build struct {
	// Compiler is the toolchain identifier, matched case-insensitively.
	Compiler string `toml:"compiler" validate:"required"`
	// CFlags are passed to the compiler verbatim, in declared order.
	CFlags []string `toml:"cflags"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes and validates manifest text. Decode failures and missing
// required fields yield an invalid-manifest error; a compiler identifier
// that does not resolve to a supported toolchain yields an
// unsupported-compiler error. Both are detected here, before any build work.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.NewInvalidManifest("manifest_decode",
			"manifest failed to decode", err)
	}

	if err := validate.Struct(&m); err != nil {
		return nil, errors.NewInvalidManifest("manifest_field",
			fmt.Sprintf("manifest is missing required fields: %v", err), err)
	}

	if _, err := toolchain.Resolve(m.Build.Compiler); err != nil {
		return nil, err
	}

	return &m, nil
}

// Load reads and parses the manifest at path. Read failures are wrapped as
// I/O errors; parse failures are returned unchanged.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("failed to read manifest", err).WithPath(path)
	}

	return Parse(data)
}
