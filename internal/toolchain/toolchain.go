// Package toolchain resolves compiler identifiers and assembles compiler
// invocations.
//
// Toolchains form a small closed set: gcc is supported, clang is recognized
// but reserved for future support, and everything else is unknown. Adding a
// toolchain means adding a variant here, not scattering string comparisons
// through the codebase.
package toolchain

import (
	"fmt"
	"strings"

	"github.com/cedarbuild/cedar/internal/errors"
)

// Toolchain identifies a compiler implementation.
type Toolchain int

const (
	// Unknown is the zero value for identifiers that match nothing.
	Unknown Toolchain = iota
	// GCC is the GNU C compiler, the only toolchain with a working backend.
	GCC
	// Clang is recognized in manifests but has no backend yet.
	Clang
)

// String returns the canonical lowercase name of the toolchain.
func (t Toolchain) String() string {
	switch t {
	case GCC:
		return "gcc"
	case Clang:
		return "clang"
	default:
		return "unknown"
	}
}

// Program returns the executable name to spawn for this toolchain, or empty
// when the toolchain has no working backend.
func (t Toolchain) Program() string {
	if t == GCC {
		return "gcc"
	}
	return ""
}

// Supported reports whether the toolchain has a working backend.
func (t Toolchain) Supported() bool {
	return t == GCC
}

// Resolve maps a manifest compiler identifier to a supported toolchain.
// Matching is case-insensitive. Identifiers that are recognized but have no
// backend yet fail distinctly from unknown ones.
func Resolve(id string) (Toolchain, error) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "gcc":
		return GCC, nil
	case "clang":
		return Clang, errors.NewUnsupportedCompiler("compiler_reserved",
			fmt.Sprintf("compiler %q is recognized but not yet supported", id))
	default:
		return Unknown, errors.NewUnsupportedCompiler("compiler_unknown",
			fmt.Sprintf("compiler %q does not match any known toolchain", id))
	}
}
