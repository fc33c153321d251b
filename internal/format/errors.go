package format

import (
	"errors"
	"fmt"
	"os/exec"
)

// InvocationError describes a formatter run that could not be started or that
// did not exit cleanly. ExitCode is -1 when the process never ran or was
// killed by a signal.
type InvocationError struct {
	Path     string
	Binary   string
	ExitCode int
	Stderr   string
	Wrapped  error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%s failed on %s: %v", e.Binary, e.Path, e.Wrapped)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *InvocationError) Unwrap() error {
	return e.Wrapped
}

// Launched reports whether the formatter process started at all.
func (e *InvocationError) Launched() bool {
	var exitErr *exec.ExitError
	return errors.As(e.Wrapped, &exitErr)
}

// FileError ties a failure that does not already name its file to that file.
type FileError struct {
	Path    string
	Wrapped error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Wrapped)
}

func (e *FileError) Unwrap() error {
	return e.Wrapped
}
