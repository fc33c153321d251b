package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/andyballingall/cppfmt/internal/fs"
)

// Run executes cppfmt with args, where args[0] is the program name. Any
// error is printed once to stderr and returned; the caller picks the exit code.
// A nil env reads the process environment.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, env fs.EnvProvider) error {
	if env == nil {
		env = fs.NewEnvProvider()
	}

	// Each run gets its own level and manager so parallel tests do not share state
	level := &slog.LevelVar{}
	cmd := NewRootCmd(&LazyManager{}, level, stderr, env)
	if len(args) > 0 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		// SilenceErrors is set, so this is the only place the error is shown
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return err
}
