package fs

import (
	"os"
)

// RequireDir checks that path names an existing directory. It is the
// precondition for any traversal of a source tree.
func RequireDir(path string) error {
	if path == "" {
		return &MissingRootError{}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &RootNotFoundError{Path: path}
		}
		return &RootAccessError{Path: path, Wrapped: err}
	}

	if !info.IsDir() {
		return &RootNotDirectoryError{Path: path}
	}
	return nil
}
