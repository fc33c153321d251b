// Package repo asks git which files in a tree have changed.
package repo

import (
	"context"
)

// Revision represents a specific git point-in-time (tag, branch or hash).
type Revision string

func (r Revision) String() string { return string(r) }

// Gitter defines the interface for git repository operations.
type Gitter interface {
	// ChangedFiles returns the absolute paths of files under dir that differ
	// between since and the working tree, together with untracked files that
	// are not ignored.
	ChangedFiles(ctx context.Context, dir string, since Revision) ([]string, error)
}
