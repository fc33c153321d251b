package format

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
)

// CLIFormatter is the Formatter implementation that shells out to clang-format
// (or a compatible binary) once per file.
type CLIFormatter struct {
	binary string
	stdout io.Writer
	stderr io.Writer
}

// NewCLIFormatter creates a CLIFormatter. The tool's own output is forwarded
// to stdout and stderr; nil writers discard it.
func NewCLIFormatter(binary string, stdout, stderr io.Writer) *CLIFormatter {
	if binary == "" {
		binary = DefaultBinary
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &CLIFormatter{binary: binary, stdout: stdout, stderr: stderr}
}

// Binary returns the executable this formatter runs.
func (f *CLIFormatter) Binary() string {
	return f.binary
}

// Args returns the arguments passed to the binary for one file.
func Args(path, style string) []string {
	return []string{"--style", style, "-i", path}
}

// Format runs `<binary> --style <style> -i <path>` and waits for it to exit.
func (f *CLIFormatter) Format(ctx context.Context, path, style string) error {
	var captured bytes.Buffer

	//nolint:gosec // the binary is chosen by the user running cppfmt
	cmd := exec.CommandContext(ctx, f.binary, Args(path, style)...)
	cmd.Stdout = f.stdout
	cmd.Stderr = io.MultiWriter(f.stderr, &captured)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	invErr := &InvocationError{
		Path:     path,
		Binary:   f.binary,
		ExitCode: -1,
		Stderr:   strings.TrimSpace(captured.String()),
		Wrapped:  err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		invErr.ExitCode = exitErr.ExitCode()
	}
	return invErr
}
