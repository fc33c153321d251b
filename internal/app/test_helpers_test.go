package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/cppfmt/internal/repo"
)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) FormatTree(ctx context.Context, opts FormatOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

func (m *MockManager) WatchTree(ctx context.Context, opts FormatOptions, readyChan chan<- struct{}) error {
	args := m.Called(ctx, opts, readyChan)
	return args.Error(0)
}

// MockGitter is a test mock for the repo.Gitter interface.
type MockGitter struct {
	ChangedFilesFunc func(ctx context.Context, dir string, since repo.Revision) ([]string, error)
}

func (m *MockGitter) ChangedFiles(ctx context.Context, dir string, since repo.Revision) ([]string, error) {
	if m.ChangedFilesFunc != nil {
		return m.ChangedFilesFunc(ctx, dir, since)
	}
	return nil, nil
}

// stubFormatter records every call and fails for paths containing "broken".
type stubFormatter struct {
	mu     sync.Mutex
	calls  []string
	styles []string
}

func (s *stubFormatter) Format(_ context.Context, path, style string) error {
	s.mu.Lock()
	s.calls = append(s.calls, path)
	s.styles = append(s.styles, style)
	s.mu.Unlock()
	if strings.Contains(path, "broken") {
		return errors.New("exit status 1")
	}
	return nil
}

func (s *stubFormatter) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// writeTree creates files (relative paths) under dir with placeholder content.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("int main() {}\n"), 0o600))
	}
}
