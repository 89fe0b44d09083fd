package models

import (
	"errors"
	"fmt"
)

// ErrorType identifies the category of error that occurred.
type ErrorType string

const (
	// Missing tool directories or executables, invalid assets.toml
	ErrConfiguration ErrorType = "configuration_error"

	// An external tool exited non-zero or could not be started
	ErrToolFailed ErrorType = "tool_failed"

	// Failed copies, deletions, stats
	ErrFilesystem ErrorType = "filesystem_error"
)

var (
	// ErrToolsDirUndefined is returned when no tools directory could be determined.
	ErrToolsDirUndefined = errors.New("one or more tool directories not defined, can't continue; you might not have built the tools, check the README for instructions")

	// ErrToolMissing is returned when a required tool executable does not exist.
	ErrToolMissing = errors.New("missing tool, did you follow the instructions?")
)

// BuildError is the error returned by every fatal failure in the asset builder
// and the packager.
type BuildError struct {
	Type     ErrorType
	Path     string
	ExitCode int
	Err      error
}

func (e *BuildError) Error() string {
	if e.Type == ErrToolFailed && e.Err == nil {
		return fmt.Sprintf("building %s failed: exit code %d", e.Path, e.ExitCode)
	}
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// IsErrorType reports whether err wraps a BuildError of the given type.
func IsErrorType(err error, t ErrorType) bool {
	var be *BuildError
	return errors.As(err, &be) && be.Type == t
}
