package repo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// CLIGitter is the concrete implementation of Gitter using the git CLI.
type CLIGitter struct {
	binary string
}

// NewCLIGitter creates a new CLIGitter instance.
func NewCLIGitter() *CLIGitter {
	return &CLIGitter{binary: "git"}
}

// run executes git with -C dir and returns its trimmed stdout.
func (g *CLIGitter) run(ctx context.Context, dir string, args ...string) (string, error) {
	//nolint:gosec // arguments are built internally
	cmd := exec.CommandContext(ctx, g.binary, append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Args:    args,
			Output:  strings.TrimSpace(stderr.String()),
			Wrapped: err,
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// getGitRoot finds the top-level directory of the git repository containing dir.
func (g *CLIGitter) getGitRoot(ctx context.Context, dir string) (string, error) {
	out, err := g.run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to find git root: %w", err)
	}
	return out, nil
}

// ChangedFiles returns the files under dir that differ from since, plus
// untracked files git does not ignore. Deleted files are left out.
func (g *CLIGitter) ChangedFiles(ctx context.Context, dir string, since Revision) ([]string, error) {
	root, err := g.getGitRoot(ctx, dir)
	if err != nil {
		return nil, err
	}

	// Both listings are relative to the repository root.
	diff, err := g.run(ctx, dir, "diff", "--name-only", "--diff-filter=ACMR", since.String(), "--", ".")
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}
	untracked, err := g.run(ctx, dir, "ls-files", "--others", "--exclude-standard", "--full-name", "--", ".")
	if err != nil {
		return nil, fmt.Errorf("git ls-files failed: %w", err)
	}

	seen := make(map[string]bool)
	var changed []string
	for _, line := range append(splitLines(diff), splitLines(untracked)...) {
		path := filepath.Join(root, filepath.FromSlash(line))
		if seen[path] {
			continue
		}
		seen[path] = true
		changed = append(changed, path)
	}
	return changed, nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
