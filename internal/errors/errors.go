// Package errors defines the structured error taxonomy used across the cedar
// build pipeline.
//
// Every failure a build can produce is one of five categories: an invalid
// project layout, an invalid manifest, an unsupported compiler, a wrapped
// filesystem error, or a failure to spawn the compiler process. Stages return
// these errors unchanged; the CLI is responsible for presentation.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes build failures.
type ErrorType string

const (
	ErrorTypeInvalidDirectory    ErrorType = "invalid_directory"
	ErrorTypeInvalidManifest     ErrorType = "invalid_manifest"
	ErrorTypeUnsupportedCompiler ErrorType = "unsupported_compiler"
	ErrorTypeIO                  ErrorType = "io"
	ErrorTypeProcessSpawn        ErrorType = "process_spawn"
)

// CedarError is a structured error with category, stable code, and context.
type CedarError struct {
	Type        ErrorType
	Code        string
	Message     string
	Path        string
	Cause       error
	Recoverable bool
}

// Error implements the error interface.
func (e *CedarError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *CedarError) Unwrap() error {
	return e.Cause
}

// Is matches errors by type and code so callers can compare categories with
// errors.Is without depending on message text.
func (e *CedarError) Is(target error) bool {
	var t *CedarError
	if errors.As(target, &t) {
		if t.Code == "" {
			return e.Type == t.Type
		}
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithPath attaches the filesystem path the error refers to.
func (e *CedarError) WithPath(path string) *CedarError {
	e.Path = path

	return e
}

// Error creation functions

// NewInvalidDirectory reports a project layout missing a required entry.
// The missing member's path is carried for diagnostics.
func NewInvalidDirectory(missing string) *CedarError {
	return &CedarError{
		Type:        ErrorTypeInvalidDirectory,
		Code:        "layout_missing_entry",
		Message:     "project layout is missing a required entry",
		Path:        missing,
		Recoverable: false,
	}
}

// NewInvalidManifest reports a manifest that failed to decode or failed
// field validation.
func NewInvalidManifest(code, message string, cause error) *CedarError {
	return &CedarError{
		Type:        ErrorTypeInvalidManifest,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewUnsupportedCompiler reports a toolchain identifier that does not resolve
// to a working compiler. Recognized-but-reserved identifiers use a distinct
// code from unknown ones.
func NewUnsupportedCompiler(code, message string) *CedarError {
	return &CedarError{
		Type:        ErrorTypeUnsupportedCompiler,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewIOError wraps an underlying filesystem failure.
func NewIOError(message string, cause error) *CedarError {
	return &CedarError{
		Type:        ErrorTypeIO,
		Code:        "io_failure",
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewProcessSpawnError reports that the external compiler process could not
// be started or waited on.
func NewProcessSpawnError(program string, cause error) *CedarError {
	return &CedarError{
		Type:        ErrorTypeProcessSpawn,
		Code:        "spawn_failed",
		Message:     fmt.Sprintf("failed to start compiler process %q", program),
		Cause:       cause,
		Recoverable: true,
	}
}

// Error predicate helpers

// IsInvalidDirectory checks if an error is a layout validation failure.
func IsInvalidDirectory(err error) bool {
	return isType(err, ErrorTypeInvalidDirectory)
}

// IsInvalidManifest checks if an error is a manifest parse/validation failure.
func IsInvalidManifest(err error) bool {
	return isType(err, ErrorTypeInvalidManifest)
}

// IsUnsupportedCompiler checks if an error is a toolchain resolution failure.
func IsUnsupportedCompiler(err error) bool {
	return isType(err, ErrorTypeUnsupportedCompiler)
}

// IsIOError checks if an error wraps a filesystem failure.
func IsIOError(err error) bool {
	return isType(err, ErrorTypeIO)
}

// IsProcessSpawnError checks if an error is a compiler spawn failure.
func IsProcessSpawnError(err error) bool {
	return isType(err, ErrorTypeProcessSpawn)
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var ce *CedarError
	if errors.As(err, &ce) {
		return ce.Recoverable
	}

	return false
}

func isType(err error, t ErrorType) bool {
	var ce *CedarError
	if errors.As(err, &ce) {
		return ce.Type == t
	}

	return false
}
