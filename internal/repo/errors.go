package repo

import (
	"fmt"
	"strings"
)

// CommandError is returned when a git invocation fails.
type CommandError struct {
	Args    []string
	Output  string
	Wrapped error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Wrapped)
	if e.Output != "" {
		msg += " (output: " + e.Output + ")"
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Wrapped
}
