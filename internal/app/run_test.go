package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/andyballingall/cppfmt/internal/fs"
)

// trueBinary returns a formatter that always succeeds without touching files.
func trueBinary(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX true binary")
	}
	p, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not found in PATH")
	}
	return p
}

// openHandles counts this process's file descriptors that refer to path.
func openHandles(t *testing.T, path string) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("needs /proc/self/fd")
	}
	n := 0
	for _, e := range entries {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", e.Name()))
		if err == nil && target == path {
			n++
		}
	}
	return n
}

func TestRun(t *testing.T) {
	t.Parallel()

	noEnv := fs.MapEnvProvider(nil)

	t.Run("run help", func(t *testing.T) {
		t.Parallel()
		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"cppfmt", "--help"}, &stdout, io.Discard, noEnv)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "cppfmt finds every C++ source file")
	})

	t.Run("run with nil env", func(t *testing.T) {
		t.Parallel()
		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"cppfmt", "--version"}, &stdout, io.Discard, nil)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "version")
	})

	t.Run("run invalid root", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "nope")
		var stdout, stderr bytes.Buffer
		err := Run(context.Background(), []string{"cppfmt", "--path", missing}, &stdout, &stderr, noEnv)
		require.Error(t, err)
		assert.Equal(t,
			"Error: The specified path does not exist or the path isn't a folder: "+missing+"\n",
			stderr.String())
		assert.Empty(t, stdout.String())
	})

	t.Run("run formats the tree", func(t *testing.T) {
		t.Parallel()
		bin := trueBinary(t)
		dir := t.TempDir()
		writeTree(t, dir, "a.cpp", "sub/b.hpp", "sub/c.txt")

		var stdout, stderr bytes.Buffer
		err := Run(context.Background(), []string{"cppfmt", "-p", dir, "--formatter", bin, "-c"},
			&stdout, &stderr, noEnv)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Summary: 2 formatted, 0 failed")
		assert.Contains(t, stderr.String(), "🔄 Formatting: "+filepath.Join(dir, "a.cpp")+"...")
		assert.NotContains(t, stderr.String(), "c.txt")
	})

	t.Run("run with a formatter that cannot start", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeTree(t, dir, "a.cpp", "b.h")
		missing := filepath.Join(t.TempDir(), "no-such-formatter")

		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"cppfmt", "-p", dir, "--formatter", missing, "-c"},
			&stdout, io.Discard, noEnv)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Summary: 0 formatted, 2 failed")

		var stderr bytes.Buffer
		err = Run(context.Background(), []string{"cppfmt", "-p", dir, "--formatter", missing, "--fail-on-error"},
			io.Discard, &stderr, noEnv)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Error: 2 of 2 files failed to format")
	})

	t.Run("run json output", func(t *testing.T) {
		t.Parallel()
		bin := trueBinary(t)
		dir := t.TempDir()
		writeTree(t, dir, "a.cpp")

		var stdout bytes.Buffer
		err := Run(context.Background(), []string{"cppfmt", "-p", dir, "--formatter", bin, "-o", "json"},
			&stdout, io.Discard, noEnv)
		require.NoError(t, err)
		assert.Equal(t, int64(1), gjson.Get(stdout.String(), "stats.formatted").Int())
		assert.Equal(t, "google", gjson.Get(stdout.String(), "style").String())
	})

	t.Run("run writes the log file when asked", func(t *testing.T) {
		t.Parallel()
		bin := trueBinary(t)
		dir := t.TempDir()
		writeTree(t, dir, "a.cpp")
		logFile := filepath.Join(t.TempDir(), "cppfmt.log")
		env := fs.MapEnvProvider{LogEnvVar: logFile}

		err := Run(context.Background(), []string{"cppfmt", "-p", dir, "--formatter", bin}, io.Discard, io.Discard, env)
		require.NoError(t, err)

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"file":"`+filepath.Join(dir, "a.cpp")+`"`)
	})

	t.Run("run closes the log file when formatting fails", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeTree(t, dir, "a.cpp")
		logDir, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		logFile := filepath.Join(logDir, "cppfmt.log")
		env := fs.MapEnvProvider{LogEnvVar: logFile}
		missing := filepath.Join(t.TempDir(), "no-such-formatter")

		err = Run(context.Background(), []string{"cppfmt", "-p", dir, "--formatter", missing, "--fail-on-error"},
			io.Discard, io.Discard, env)
		require.Error(t, err)
		assert.FileExists(t, logFile)
		assert.Zero(t, openHandles(t, logFile))
	})

	t.Run("run leaves no log file by default", func(t *testing.T) {
		t.Parallel()
		bin := trueBinary(t)
		dir := t.TempDir()
		writeTree(t, dir, "a.cpp")

		require.NoError(t, Run(context.Background(), []string{"cppfmt", "-p", dir, "--formatter", bin},
			io.Discard, io.Discard, noEnv))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("run interrupted by user", func(t *testing.T) {
		t.Parallel()
		bin := trueBinary(t)
		dir := t.TempDir()
		writeTree(t, dir, "a.cpp")

		ctx, cancel := context.WithCancel(context.Background())

		var stderr bytes.Buffer
		done := make(chan error, 1)
		go func() {
			done <- Run(ctx, []string{"cppfmt", "-p", dir, "--formatter", bin, "--watch"}, io.Discard, &stderr, noEnv)
		}()

		// Wait a bit for it to start watching
		time.Sleep(500 * time.Millisecond)
		cancel()
		err := <-done

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "Interrupted by user", "Stderr was: %q, Err was: %v", stderr.String(), err)
	})
}
