package fs

import (
	"fmt"
)

const invalidRootMessage = "The specified path does not exist or the path isn't a folder"

type MissingRootError struct{}

func (e *MissingRootError) Error() string {
	return "a root directory is required: set it with --path"
}

type RootNotFoundError struct {
	Path string
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", invalidRootMessage, e.Path)
}

type RootNotDirectoryError struct {
	Path string
}

func (e *RootNotDirectoryError) Error() string {
	return fmt.Sprintf("%s: %s", invalidRootMessage, e.Path)
}

type RootAccessError struct {
	Path    string
	Wrapped error
}

func (e *RootAccessError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", invalidRootMessage, e.Path, e.Wrapped)
}

func (e *RootAccessError) Unwrap() error {
	return e.Wrapped
}
