package source

import (
	"fmt"
)

type NoExtensionsError struct{}

func (e *NoExtensionsError) Error() string {
	return "at least one file extension is required"
}

type EmptyExtensionError struct {
	Index int
}

func (e *EmptyExtensionError) Error() string {
	return fmt.Sprintf("file extension %d is empty", e.Index)
}

// ListDirError is returned when a directory on the frontier cannot be listed.
type ListDirError struct {
	Dir     string
	Wrapped error
}

func (e *ListDirError) Error() string {
	return fmt.Sprintf("cannot list directory %s: %v", e.Dir, e.Wrapped)
}

func (e *ListDirError) Unwrap() error {
	return e.Wrapped
}

type InvalidGitignoreError struct {
	Path    string
	Wrapped error
}

func (e *InvalidGitignoreError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Wrapped)
}

func (e *InvalidGitignoreError) Unwrap() error {
	return e.Wrapped
}
