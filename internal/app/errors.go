package app

import (
	"fmt"
)

// FormatFailuresError is returned when failures should change the exit status.
type FormatFailuresError struct {
	Failed  int
	Total   int
	Wrapped error
}

func (e *FormatFailuresError) Error() string {
	return fmt.Sprintf("%d of %d files failed to format", e.Failed, e.Total)
}

func (e *FormatFailuresError) Unwrap() error {
	return e.Wrapped
}
