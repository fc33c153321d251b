package source

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/monochromegane/go-gitignore"
)

// GitignoreFile is the name of the ignore file read from a tree's root.
const GitignoreFile = ".gitignore"

// LoadGitignore builds a matcher from root/.gitignore. Patterns are matched
// against paths built from root, so the same root string must be used for
// traversal. A nil matcher and nil error are returned when there is no file.
func LoadGitignore(root string) (gitignore.IgnoreMatcher, error) {
	path := filepath.Join(root, GitignoreFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil //nolint:nilnil // absence is not an error
		}
		return nil, &InvalidGitignoreError{Path: path, Wrapped: err}
	}

	m, err := gitignore.NewGitIgnore(path, root)
	if err != nil {
		return nil, &InvalidGitignoreError{Path: path, Wrapped: err}
	}
	return m, nil
}
